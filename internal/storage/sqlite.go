package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/phonebook/internal/apperr"
	"github.com/starford/phonebook/internal/models"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS contacts (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	number     TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_contacts_name ON contacts(name);
`

// SQLite implements Provider on a SQLite database. Ids are the integer
// row ids rendered as decimal strings.
type SQLite struct {
	conn *sql.DB
}

var _ Provider = (*SQLite)(nil)

// OpenSQLite opens (or creates) the SQLite database and applies the schema.
func OpenSQLite(dsn string) (*SQLite, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("storage: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: apply schema: %w", err)
	}
	return &SQLite{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *SQLite) Close() error {
	return db.conn.Close()
}

// List returns all contacts ordered by id.
func (db *SQLite) List(ctx context.Context) ([]models.Contact, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id, name, number FROM contacts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	defer rows.Close()

	out := []models.Contact{}
	for rows.Next() {
		var (
			id int64
			c  models.Contact
		)
		if err := rows.Scan(&id, &c.Name, &c.Number); err != nil {
			return nil, fmt.Errorf("storage: scan: %w", err)
		}
		c.ID = strconv.FormatInt(id, 10)
		out = append(out, c)
	}
	return out, rows.Err()
}

// Get returns a single contact.
func (db *SQLite) Get(ctx context.Context, id string) (models.Contact, error) {
	rowID, ok := parseRowID(id)
	if !ok {
		return models.Contact{}, apperr.ErrNotFound
	}
	c := models.Contact{ID: id}
	err := db.conn.QueryRowContext(ctx, `SELECT name, number FROM contacts WHERE id = ?`, rowID).
		Scan(&c.Name, &c.Number)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Contact{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.Contact{}, fmt.Errorf("storage: get %s: %w", id, err)
	}
	return c, nil
}

// Create inserts a contact and returns it with its new id.
func (db *SQLite) Create(ctx context.Context, c models.Contact) (models.Contact, error) {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO contacts (name, number) VALUES (?, ?)`, c.Name, c.Number)
	if err != nil {
		return models.Contact{}, fmt.Errorf("storage: insert: %w", err)
	}
	rowID, err := res.LastInsertId()
	if err != nil {
		return models.Contact{}, fmt.Errorf("storage: last insert id: %w", err)
	}
	c.ID = strconv.FormatInt(rowID, 10)
	return c, nil
}

// Update overwrites name and number of an existing contact.
func (db *SQLite) Update(ctx context.Context, c models.Contact) (models.Contact, error) {
	rowID, ok := parseRowID(c.ID)
	if !ok {
		return models.Contact{}, apperr.ErrNotFound
	}
	res, err := db.conn.ExecContext(ctx, `
		UPDATE contacts SET name = ?, number = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, c.Name, c.Number, rowID)
	if err != nil {
		return models.Contact{}, fmt.Errorf("storage: update %s: %w", c.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Contact{}, apperr.ErrNotFound
	}
	return c, nil
}

// Delete removes a contact.
func (db *SQLite) Delete(ctx context.Context, id string) error {
	rowID, ok := parseRowID(id)
	if !ok {
		return apperr.ErrNotFound
	}
	res, err := db.conn.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, rowID)
	if err != nil {
		return fmt.Errorf("storage: delete %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func parseRowID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	return n, err == nil && n > 0
}
