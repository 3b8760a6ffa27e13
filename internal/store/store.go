package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the SQLite database file holding the five entity tables.
type Store struct {
	db   *sql.DB
	qb   squirrel.StatementBuilderType
	path string
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		signup_date DATE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		price REAL NOT NULL CHECK(price > 0)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id INTEGER PRIMARY KEY,
		user_id INTEGER NOT NULL,
		order_date DATE NOT NULL,
		total_amount REAL NOT NULL CHECK(total_amount >= 0),
		FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id INTEGER PRIMARY KEY,
		order_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL CHECK(quantity > 0),
		subtotal REAL NOT NULL CHECK(subtotal >= 0),
		FOREIGN KEY (order_id) REFERENCES orders(id),
		FOREIGN KEY (product_id) REFERENCES products(id)
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id INTEGER PRIMARY KEY,
		user_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		rating INTEGER NOT NULL CHECK(rating >= 1 AND rating <= 5),
		review_text TEXT,
		review_date DATE NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id),
		FOREIGN KEY (product_id) REFERENCES products(id)
	)`,
}

var indexStatements = []string{
	"CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id)",
	"CREATE INDEX IF NOT EXISTS idx_orders_order_date ON orders(order_date)",
	"CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id)",
	"CREATE INDEX IF NOT EXISTS idx_order_items_product_id ON order_items(product_id)",
	"CREATE INDEX IF NOT EXISTS idx_reviews_user_id ON reviews(user_id)",
	"CREATE INDEX IF NOT EXISTS idx_reviews_product_id ON reviews(product_id)",
}

func Open(path string) (*Store, error) {
	dbPath := path
	if !strings.Contains(dbPath, "?") {
		dbPath += "?cache=shared&_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database %s: %w", path, err)
	}

	return &Store{
		db:   db,
		qb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		path: path,
	}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Builder() squirrel.StatementBuilderType {
	return s.qb
}

// CreateSchema creates the five entity tables.
func (s *Store) CreateSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// CreateIndexes adds secondary indexes on the foreign key columns.
func (s *Store) CreateIndexes(ctx context.Context) error {
	for _, stmt := range indexStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}
	}
	return nil
}

func (s *Store) TableRowCount(ctx context.Context, table string) (int, error) {
	var count int
	err := s.qb.Select("COUNT(*)").From(table).RunWith(s.db).QueryRowContext(ctx).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return count, nil
}
