package postgres

import _ "embed"

// Schema is the reference DDL for all engine tables. The integration test
// harness applies it to fresh containers.
//
//go:embed schema.sql
var Schema string
