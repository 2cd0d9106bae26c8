package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rl1809/stock-gen/internal/core/domain"
)

// MySQLAdapter keeps the stock document in a single row, so Save is one
// upsert statement and inherits the database's all-or-nothing guarantee.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

// InitSchema creates the backing table if it does not exist.
func (m *MySQLAdapter) InitSchema(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS stock_store (
			id TINYINT PRIMARY KEY,
			doc JSON NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("create stock_store table: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) Load(ctx context.Context) (domain.Store, error) {
	var raw []byte
	err := m.db.QueryRowContext(ctx, `SELECT doc FROM stock_store WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		store := domain.Store{}
		if err := m.Save(ctx, store); err != nil {
			return nil, fmt.Errorf("bootstrap stock row: %w", err)
		}
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query stock document: %w", err)
	}
	return domain.DecodeStore(raw)
}

func (m *MySQLAdapter) Save(ctx context.Context, store domain.Store) error {
	data, err := domain.EncodeStore(store, false)
	if err != nil {
		return err
	}
	_, err = m.db.ExecContext(ctx, `
		INSERT INTO stock_store (id, doc) VALUES (1, ?)
		ON DUPLICATE KEY UPDATE doc = VALUES(doc)`, data)
	if err != nil {
		return fmt.Errorf("upsert stock document: %w", err)
	}
	return nil
}
