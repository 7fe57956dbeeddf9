// Package schemas keeps the directive schemas a document is checked against:
// the builtin set and those read from TOML schema files.
package schemas
