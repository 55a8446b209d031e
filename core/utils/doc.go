// Package utils provides common utility functions for the inventory-sync application.
// It includes strict scalar conversions (integers, booleans, timestamps) shared by the
// record normalizer and the SQL store adapter, where a failed conversion must be
// reported rather than silently defaulted.
package utils
