package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/blogoto/blogoto/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/blogoto/blogoto/internal/core/domain"
	"github.com/blogoto/blogoto/internal/core/ports/driven"
)

// credentialsKey is the fixed settings row holding the OAuth tokens.
const credentialsKey = "google_tokens"

// Store is a SQLite-backed store for posts and singleton settings.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store in the specified data directory.
// If dataDir is empty, defaults to ~/.blogoto/data/blog.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".blogoto", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "blog.db")

	// WAL mode: the webhook drain writes while the read API serves.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// PostStore returns a PostStore interface backed by this store.
func (s *Store) PostStore() driven.PostStore {
	return &postStore{store: s}
}

// CredentialStore returns a CredentialStore interface backed by this store.
func (s *Store) CredentialStore() driven.CredentialStore {
	return &credentialStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Post Store ====================

// postStore implements driven.PostStore.
type postStore struct {
	store *Store
}

var _ driven.PostStore = (*postStore)(nil)

// Upsert stores a post, fully replacing any post with the same ID.
func (s *postStore) Upsert(ctx context.Context, post domain.Post) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO posts (id, title, slug, html_content, published_at, status, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			slug = excluded.slug,
			html_content = excluded.html_content,
			published_at = excluded.published_at,
			status = excluded.status,
			updated_at = excluded.updated_at
	`, post.ID, post.Title, post.Slug, post.HTMLContent,
		post.PublishedAt.UTC(), string(post.Status), time.Now().UTC())

	if err != nil {
		return fmt.Errorf("upserting post: %w", err)
	}
	return nil
}

// ListPublished returns published posts, newest publish time first.
func (s *postStore) ListPublished(ctx context.Context) ([]domain.Post, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, slug, html_content, published_at, status
		FROM posts
		WHERE status = ?
		ORDER BY published_at DESC
	`, string(domain.PostStatusPublished))
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating posts: %w", err)
	}
	return posts, nil
}

// GetBySlug retrieves a post by slug. On collision the most recently
// published post wins.
func (s *postStore) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, title, slug, html_content, published_at, status
		FROM posts
		WHERE slug = ?
		ORDER BY published_at DESC
		LIMIT 1
	`, slug)

	post, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (*domain.Post, error) {
	var post domain.Post
	var status string
	if err := row.Scan(&post.ID, &post.Title, &post.Slug, &post.HTMLContent, &post.PublishedAt, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning post: %w", err)
	}
	post.Status = domain.PostStatus(status)
	return &post, nil
}

// ==================== Credential Store ====================

// credentialStore implements driven.CredentialStore over the settings
// table, keyed by a fixed singleton identifier.
type credentialStore struct {
	store *Store
}

var _ driven.CredentialStore = (*credentialStore)(nil)

// Get retrieves the stored credentials.
func (s *credentialStore) Get(ctx context.Context) (*domain.Credentials, error) {
	var value string
	row := s.store.db.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE key = ?", credentialsKey)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading credentials: %w", err)
	}

	var creds domain.Credentials
	if err := json.Unmarshal([]byte(value), &creds); err != nil {
		return nil, fmt.Errorf("decoding credentials: %w", err)
	}
	return &creds, nil
}

// Save stores credentials, replacing any previous set.
func (s *credentialStore) Save(ctx context.Context, creds domain.Credentials) error {
	value, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, credentialsKey, string(value), time.Now().UTC())

	if err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	return nil
}
