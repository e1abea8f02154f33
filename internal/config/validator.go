// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// `internal/config/loader.go` calls `validateStruct` immediately after
// unmarshalling the merged Koanf tree, so the binary never runs with
// partial or malformed configuration.  The rules in use are `required`,
// `hostname_port`, `oneof` for the store driver, and `required_if` to
// tie DSN/path requirements to the selected driver.
package config

import "github.com/go-playground/validator/v10"

var v = validator.New()

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}
