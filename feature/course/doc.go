// Package course keeps the warehouse course table in sync with the courses of
// one Canvas term.
//
// Courses are paged from the Canvas GraphQL API (term.coursesConnection),
// normalized with Schema and reconciled into the course table. Courses that
// left the term are deleted; warehouse_id is derived from canvas_id.
//
// # HTTP Endpoints
//
//   - POST /sync/course      : run a sync now (409 while one is running)
//   - GET  /sync/course/plan : counts a sync would apply, without writing
//   - GET  /sync/course/last : the last recorded run
package course
