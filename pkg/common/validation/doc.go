// Package validation provides common configuration validation utilities
// for the gosync library.
package validation
