package database

import (
	"context"
	"embed"
	"fmt"
	"strings"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// InitializeSchema runs the bundled DDL script for the provider's engine,
// one statement at a time, stopping at the first failure.
func InitializeSchema(ctx context.Context, p Provider) error {
	db, err := p.Conn(ctx)
	if err != nil {
		return err
	}

	script, err := Script(db.DriverName())
	if err != nil {
		return err
	}

	for i, stmt := range SplitStatements(script) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d failed: %w", i+1, err)
		}
	}
	return nil
}

// Script returns the DDL for a database/sql driver name.
func Script(driverName string) (string, error) {
	name := "schema/postgres.sql"
	if driverName == "mysql" {
		name = "schema/mysql.sql"
	}
	b, err := schemaFS.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("unable to read %s: %w", name, err)
	}
	return string(b), nil
}

// SplitStatements splits script on ';' and drops blank fragments.
// Semicolons inside literals or comments are not special-cased.
func SplitStatements(script string) []string {
	var stmts []string
	for _, part := range strings.Split(script, ";") {
		if s := strings.TrimSpace(part); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
