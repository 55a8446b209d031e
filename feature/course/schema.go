package course

import (
	"fmt"

	"inventory-sync/core/normalize"
	"inventory-sync/feature/course/models"
)

// JobName identifies the course job in logs, run records and routes.
const JobName = "course"

// SourceName is recorded as the data source of successful runs.
const SourceName = "canvas_graphql"

// ConnectionPath locates the courses connection in the GraphQL response.
const ConnectionPath = "data.term.coursesConnection"

// Query pages through the courses of one term.
const Query = `query coursesQuery($termID: ID!, $pageSize: Int!, $pageCursor: String) {
  term(id: $termID) {
    coursesConnection(first: $pageSize, after: $pageCursor) {
      nodes {
        _id
        name
        sisId
        state
        createdAt
        account {
          _id
        }
      }
      pageInfo {
        hasNextPage
        endCursor
      }
    }
  }
}`

// Schema maps a courses connection node onto the course table. term_id comes
// from the queried term and warehouse_id offsets canvas_id by increment.
// published_at is not part of the connection, so the sync never writes it.
func Schema(termID, increment int64) (*normalize.Schema, error) {
	return normalize.NewSchema("canvas_id",
		normalize.Field{Name: "canvas_id", Source: "_id", Type: normalize.TypeInt},
		normalize.Field{Name: "name", Type: normalize.TypeString, Required: true},
		normalize.Field{Name: "account_id", Source: "account._id", Type: normalize.TypeInt, Required: true},
		normalize.Field{Name: "term_id", Type: normalize.TypeInt, Derive: func(map[string]any) (any, error) {
			return termID, nil
		}},
		normalize.Field{Name: "sis_id", Source: "sisId", Type: normalize.TypeInt},
		normalize.Field{Name: "created_at", Source: "createdAt", Type: normalize.TypeTime},
		normalize.Field{Name: "workflow_state", Source: "state", Type: normalize.TypeString},
		normalize.Field{Name: "warehouse_id", Type: normalize.TypeInt, Derive: func(rec map[string]any) (any, error) {
			id, ok := rec["canvas_id"].(int64)
			if !ok {
				return nil, fmt.Errorf("canvas_id is %T", rec["canvas_id"])
			}
			return id + increment, nil
		}},
	)
}

// Table is the warehouse table of the job.
func Table() string {
	return models.Course{}.TableName()
}
