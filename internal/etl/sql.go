package etl

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/BartekS5/csvmap/pkg/logger"
	"github.com/BartekS5/csvmap/pkg/models"
)

// SQLLoader inserts records into a SQL Server table. Each batch runs in one
// transaction.
type SQLLoader struct {
	DB    *sql.DB
	Table string
}

func NewSQLLoader(db *sql.DB, table string) *SQLLoader {
	return &SQLLoader{DB: db, Table: table}
}

func (l *SQLLoader) Load(ctx context.Context, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i, rec := range records {
		query, args := buildInsert(l.Table, rec)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("error inserting record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	logger.Infof("SQL Loader: inserted %d records into %s", len(records), l.Table)
	return nil
}

func buildInsert(table string, rec models.Record) (string, []interface{}) {
	colNames := make([]string, 0, len(rec))
	placeholders := make([]string, 0, len(rec))
	args := make([]interface{}, 0, len(rec))

	for _, f := range rec {
		colNames = append(colNames, quoteIdent(f.Name))
		placeholders = append(placeholders, fmt.Sprintf("@p%d", len(args)+1))
		args = append(args, f.Value)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteTable(table), strings.Join(colNames, ", "), strings.Join(placeholders, ", "))
	return query, args
}

// quoteTable quotes each part of a possibly schema-qualified name.
func quoteTable(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = quoteIdent(p)
	}
	return strings.Join(parts, ".")
}

func quoteIdent(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}
