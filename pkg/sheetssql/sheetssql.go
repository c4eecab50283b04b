// Package sheetssql treats a Google Spreadsheet as a small database: each
// sheet is a table with a header row and a type row, and structs map to rows
// via `ssql_header`/`ssql_type` tags.
package sheetssql

import (
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/kmoroney/carraig-house/pkg/clients/sheetsclient"
)

// SheetsClient defines the interface for sheets operations
type SheetsClient interface {
	GetValues(spreadsheetID, sheetRange string) ([][]interface{}, error)
	AppendRows(spreadsheetID, sheetRange string, values [][]interface{}) error
	UpdateRow(spreadsheetID, sheetTitle string, rowNumber int, values []interface{}) error
	DeleteRow(spreadsheetID, sheetTitle string, rowNumber int) error
	CreateSheet(spreadsheetID, sheetTitle string) (int64, error)
	Service() *sheets.Service
}

// Column defines a column with name and type
type Column struct {
	Name string
	Type string // e.g. "text", "date", "int", "bool", "uuid"
}

// TableSchema defines the structure of a table
type TableSchema struct {
	Name    string
	Columns []Column
}

// Schema defines the database schema
type Schema struct {
	Tables []TableSchema
}

// DB represents a connection to a Google Sheets "database"
type DB struct {
	client        SheetsClient
	spreadsheetID string
	schema        *Schema
}

// NewDB creates a new Sheets SQL database connection and ensures schema exists
func NewDB(client *sheetsclient.Client, spreadsheetID string, schema *Schema) (*DB, error) {
	db := &DB{
		client:        client,
		spreadsheetID: spreadsheetID,
		schema:        schema,
	}

	if err := db.ensureSchema(); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return db, nil
}

// Client returns the underlying sheets client
func (db *DB) Client() SheetsClient {
	return db.client
}

// SpreadsheetID returns the database spreadsheet ID
func (db *DB) SpreadsheetID() string {
	return db.spreadsheetID
}

// InsertRow appends a single row to the specified table
func (db *DB) InsertRow(tableName string, row []interface{}) error {
	return db.client.AppendRows(db.spreadsheetID, tableName, [][]interface{}{row})
}

// InsertRows appends multiple rows to the specified table
func (db *DB) InsertRows(tableName string, rows [][]interface{}) error {
	return db.client.AppendRows(db.spreadsheetID, tableName, rows)
}

// UpdateRow overwrites one table row in place. rowNumber is the 1-based sheet
// row (data starts at row 3, after the header and type rows).
func (db *DB) UpdateRow(tableName string, rowNumber int, row []interface{}) error {
	return db.client.UpdateRow(db.spreadsheetID, tableName, rowNumber, row)
}

// DeleteRow removes one table row. rowNumber is the 1-based sheet row.
func (db *DB) DeleteRow(tableName string, rowNumber int) error {
	return db.client.DeleteRow(db.spreadsheetID, tableName, rowNumber)
}
