// Package loader registers the HTTP features of the service.
//
// Each feature implements Feature and registers its own routes. The start
// command registers every feature with a Manager and calls LoadAll once the
// global middleware is in place; disabled features are skipped.
//
//	mgr := loader.NewManager()
//	mgr.Register(course.NewFeature(job, recorder, log))
//	err := mgr.LoadAll(app)
package loader
