// Package checks holds the individual integrity checks used by the integrity
// feature and the integrity command.
package checks
