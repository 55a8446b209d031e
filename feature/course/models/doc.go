// Package models defines the GORM model of the course table.
//
// The model is used to create the table (migrate command) and as the expected
// shape in schema integrity checks. Rows are written through
// database.TableStore, not through the model.
package models
