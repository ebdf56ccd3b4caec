package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/vanshika/recipenet/internal/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS categories (
	id              INTEGER PRIMARY KEY,
	primary_label   TEXT NOT NULL,
	secondary_label TEXT NOT NULL,
	UNIQUE (primary_label, secondary_label)
);
CREATE TABLE IF NOT EXISTS nodes (
	category_id INTEGER NOT NULL REFERENCES categories(id),
	node_id     TEXT NOT NULL,
	count       INTEGER NOT NULL,
	PRIMARY KEY (category_id, node_id)
);
CREATE TABLE IF NOT EXISTS edges (
	category_id INTEGER NOT NULL REFERENCES categories(id),
	seq         INTEGER NOT NULL,
	source      TEXT NOT NULL,
	target      TEXT NOT NULL,
	weight      REAL NOT NULL,
	PRIMARY KEY (category_id, seq)
);
`

// SQLiteStore serves categories straight from a SQLite file.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens path read-only.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Categories returns the keys in insertion order.
func (s *SQLiteStore) Categories(ctx context.Context) ([]domain.CategoryKey, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT primary_label, secondary_label FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var keys []domain.CategoryKey
	for rows.Next() {
		var key domain.CategoryKey
		if err := rows.Scan(&key.Primary, &key.Secondary); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Load reads the node table and the edge table (in seq order) of key.
func (s *SQLiteStore) Load(ctx context.Context, key domain.CategoryKey) (domain.Category, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM categories WHERE primary_label = ? AND secondary_label = ?`,
		key.Primary, key.Secondary,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, fmt.Errorf("%w: %s", ErrCategoryNotFound, key.Label())
	}
	if err != nil {
		return domain.Category{}, fmt.Errorf("lookup category %s: %w", key.Label(), err)
	}

	category := domain.Category{Key: key}

	nodeRows, err := s.db.QueryContext(ctx, `SELECT node_id, count FROM nodes WHERE category_id = ? ORDER BY rowid`, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("load nodes for %s: %w", key.Label(), err)
	}
	defer nodeRows.Close()
	for nodeRows.Next() {
		var n domain.Node
		if err := nodeRows.Scan(&n.ID, &n.Count); err != nil {
			return domain.Category{}, fmt.Errorf("scan node: %w", err)
		}
		category.Nodes = append(category.Nodes, n)
	}
	if err := nodeRows.Err(); err != nil {
		return domain.Category{}, err
	}

	edgeRows, err := s.db.QueryContext(ctx, `SELECT source, target, weight FROM edges WHERE category_id = ? ORDER BY seq`, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("load edges for %s: %w", key.Label(), err)
	}
	defer edgeRows.Close()
	for edgeRows.Next() {
		var e domain.Edge
		if err := edgeRows.Scan(&e.Source, &e.Target, &e.Weight); err != nil {
			return domain.Category{}, fmt.Errorf("scan edge: %w", err)
		}
		category.Edges = append(category.Edges, e)
	}
	return category, edgeRows.Err()
}

// Reload is a no-op: every Load already queries the file.
func (s *SQLiteStore) Reload(context.Context) error {
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// WriteSQLite creates (or empties) the schema at path and stores categories in order.
func WriteSQLite(path string, categories []domain.Category) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM edges`, `DELETE FROM nodes`, `DELETE FROM categories`} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("clear tables: %w", err)
		}
	}

	for _, c := range categories {
		res, err := tx.Exec(`INSERT INTO categories (primary_label, secondary_label) VALUES (?, ?)`, c.Key.Primary, c.Key.Secondary)
		if err != nil {
			return fmt.Errorf("insert category %s: %w", c.Key.Label(), err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for _, n := range c.Nodes {
			if _, err := tx.Exec(`INSERT OR REPLACE INTO nodes (category_id, node_id, count) VALUES (?, ?, ?)`, id, n.ID, n.Count); err != nil {
				return fmt.Errorf("insert node %s: %w", n.ID, err)
			}
		}
		for seq, e := range c.Edges {
			if _, err := tx.Exec(`INSERT INTO edges (category_id, seq, source, target, weight) VALUES (?, ?, ?, ?, ?)`, id, seq, e.Source, e.Target, e.Weight); err != nil {
				return fmt.Errorf("insert edge %d: %w", seq, err)
			}
		}
	}

	return tx.Commit()
}
