package postgres

import "embed"

// Migrations holds the schema migrations for the credit_applications store.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations holding the SQL files.
const MigrationsDir = "migrations"
