package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/platewise/rts/pkg/rts/ingredient"
	"github.com/platewise/rts/pkg/rts/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes the
// schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Pragmas are per-connection; a single pooled connection keeps them in
	// force for every statement.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS recipes (
	name TEXT PRIMARY KEY,
	head TEXT,
	updated_at TEXT
);

CREATE TABLE IF NOT EXISTS revisions (
	id TEXT PRIMARY KEY,
	recipe TEXT NOT NULL,
	session TEXT,
	parent TEXT,
	note TEXT,
	raw_text TEXT,
	created_at TEXT,
	FOREIGN KEY(recipe) REFERENCES recipes(name) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_revisions_recipe ON revisions(recipe, created_at);

CREATE TABLE IF NOT EXISTS revision_ingredients (
	revision_id TEXT NOT NULL,
	pos INTEGER NOT NULL,
	quantity TEXT,
	unit TEXT,
	name TEXT,
	PRIMARY KEY(revision_id, pos),
	FOREIGN KEY(revision_id) REFERENCES revisions(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS sessions (
	name TEXT PRIMARY KEY,
	head TEXT,
	created_at TEXT
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertRecipe inserts or updates a recipe head
func (s *sqliteStore) UpsertRecipe(ctx context.Context, r store.Recipe) error {
	const stmt = `
INSERT INTO recipes (name, head, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	head=excluded.head,
	updated_at=excluded.updated_at;`

	_, err := s.db.ExecContext(ctx, stmt, r.Name, r.Head, formatTime(r.UpdatedAt))
	return err
}

// GetRecipe returns a recipe by name
func (s *sqliteStore) GetRecipe(ctx context.Context, name string) (store.Recipe, bool, error) {
	const stmt = `SELECT name, head, updated_at FROM recipes WHERE name = ?;`

	var (
		r  store.Recipe
		ts string
	)
	err := s.db.QueryRowContext(ctx, stmt, name).Scan(&r.Name, &r.Head, &ts)
	if err == sql.ErrNoRows {
		return store.Recipe{}, false, nil
	}
	if err != nil {
		return store.Recipe{}, false, err
	}
	r.UpdatedAt = parseTime(ts)
	return r, true, nil
}

// ListRecipes returns all tracked recipes ordered by name
func (s *sqliteStore) ListRecipes(ctx context.Context) ([]store.Recipe, error) {
	const stmt = `SELECT name, head, updated_at FROM recipes ORDER BY name;`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []store.Recipe
	for rows.Next() {
		var (
			r  store.Recipe
			ts string
		)
		if err := rows.Scan(&r.Name, &r.Head, &ts); err != nil {
			return nil, err
		}
		r.UpdatedAt = parseTime(ts)
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}

// AppendRevision records a revision and its parsed ingredients atomically
func (s *sqliteStore) AppendRevision(ctx context.Context, rev store.Revision) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO revisions (id, recipe, session, parent, note, raw_text, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?);`

	if _, err := tx.ExecContext(ctx, stmt,
		rev.ID, rev.Recipe, rev.Session, rev.Parent, rev.Note, rev.RawText, formatTime(rev.CreatedAt)); err != nil {
		return err
	}

	const ingStmt = `
INSERT INTO revision_ingredients (revision_id, pos, quantity, unit, name)
VALUES (?, ?, ?, ?, ?);`

	for i, ing := range rev.Ingredients {
		if _, err := tx.ExecContext(ctx, ingStmt, rev.ID, i, ing.Quantity, ing.Unit, ing.Name); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetRevision returns a revision by ID, including its ingredients
func (s *sqliteStore) GetRevision(ctx context.Context, id string) (store.Revision, bool, error) {
	const stmt = `
SELECT id, recipe, session, parent, note, raw_text, created_at
FROM revisions WHERE id = ?;`

	var (
		rev store.Revision
		ts  string
	)
	err := s.db.QueryRowContext(ctx, stmt, id).Scan(
		&rev.ID, &rev.Recipe, &rev.Session, &rev.Parent, &rev.Note, &rev.RawText, &ts)
	if err == sql.ErrNoRows {
		return store.Revision{}, false, nil
	}
	if err != nil {
		return store.Revision{}, false, err
	}
	rev.CreatedAt = parseTime(ts)

	ings, err := s.loadIngredients(ctx, id)
	if err != nil {
		return store.Revision{}, false, err
	}
	rev.Ingredients = ings
	return rev, true, nil
}

// ListRevisions returns a recipe's revisions, newest first
func (s *sqliteStore) ListRevisions(ctx context.Context, recipe string, limit int) ([]store.Revision, error) {
	if limit <= 0 {
		limit = 20
	}

	const stmt = `
SELECT id, recipe, session, parent, note, raw_text, created_at
FROM revisions WHERE recipe = ?
ORDER BY created_at DESC, id DESC
LIMIT ?;`

	rows, err := s.db.QueryContext(ctx, stmt, recipe, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revs []store.Revision
	for rows.Next() {
		var (
			rev store.Revision
			ts  string
		)
		if err := rows.Scan(&rev.ID, &rev.Recipe, &rev.Session, &rev.Parent, &rev.Note, &rev.RawText, &ts); err != nil {
			return nil, err
		}
		rev.CreatedAt = parseTime(ts)
		revs = append(revs, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range revs {
		ings, err := s.loadIngredients(ctx, revs[i].ID)
		if err != nil {
			return nil, err
		}
		revs[i].Ingredients = ings
	}
	return revs, nil
}

func (s *sqliteStore) loadIngredients(ctx context.Context, revisionID string) ([]ingredient.Ingredient, error) {
	const stmt = `
SELECT quantity, unit, name FROM revision_ingredients
WHERE revision_id = ? ORDER BY pos;`

	rows, err := s.db.QueryContext(ctx, stmt, revisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ings []ingredient.Ingredient
	for rows.Next() {
		var ing ingredient.Ingredient
		if err := rows.Scan(&ing.Quantity, &ing.Unit, &ing.Name); err != nil {
			return nil, err
		}
		ings = append(ings, ing)
	}
	return ings, rows.Err()
}

// UpsertSession inserts or updates a session head
func (s *sqliteStore) UpsertSession(ctx context.Context, sess store.Session) error {
	const stmt = `
INSERT INTO sessions (name, head, created_at)
VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	head=excluded.head;`

	_, err := s.db.ExecContext(ctx, stmt, sess.Name, sess.Head, formatTime(sess.CreatedAt))
	return err
}

// GetSession returns a session by name
func (s *sqliteStore) GetSession(ctx context.Context, name string) (store.Session, bool, error) {
	const stmt = `SELECT name, head, created_at FROM sessions WHERE name = ?;`

	var (
		sess store.Session
		ts   string
	)
	err := s.db.QueryRowContext(ctx, stmt, name).Scan(&sess.Name, &sess.Head, &ts)
	if err == sql.ErrNoRows {
		return store.Session{}, false, nil
	}
	if err != nil {
		return store.Session{}, false, err
	}
	sess.CreatedAt = parseTime(ts)
	return sess, true, nil
}

// ListSessions returns all sessions ordered by name
func (s *sqliteStore) ListSessions(ctx context.Context) ([]store.Session, error) {
	const stmt = `SELECT name, head, created_at FROM sessions ORDER BY name;`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []store.Session
	for rows.Next() {
		var (
			sess store.Session
			ts   string
		)
		if err := rows.Scan(&sess.Name, &sess.Head, &ts); err != nil {
			return nil, err
		}
		sess.CreatedAt = parseTime(ts)
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
