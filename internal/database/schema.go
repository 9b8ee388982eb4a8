package database

import _ "embed"

// Schema is the DDL for the departments and employees tables. It is not
// applied at startup; integration tests and local setup run it by hand.
//
//go:embed schema.sql
var Schema string
