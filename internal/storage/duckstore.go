package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/logo-studio/backend/internal/models"
	"github.com/marcboeker/go-duckdb"
)

// DuckStore implements Store on a single DuckDB file. Documents are kept as
// MessagePack blobs next to the metadata columns used for listing.
type DuckStore struct {
	db     *sql.DB
	dbPath string
}

// NewDuckStore opens (or creates) the project database at dbPath.
func NewDuckStore(dbPath string) (*DuckStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	fmt.Printf("[DuckStore] Opening project database at: %s\n", dbPath)

	connector, err := duckdb.NewConnector(dbPath, func(execer driver.ExecerContext) error {
		pragmas := []string{
			"PRAGMA memory_limit='256MB'",
			"PRAGMA threads=2",
			"PRAGMA enable_progress_bar=false",
		}
		for _, pragma := range pragmas {
			if _, err := execer.ExecContext(context.Background(), pragma, nil); err != nil {
				fmt.Printf("[DuckStore] Pragma error: %v\n", err)
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB connector: %w", err)
	}

	db := sql.OpenDB(connector)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS projects (
			id          VARCHAR PRIMARY KEY,
			name        VARCHAR NOT NULL,
			layer_count INTEGER NOT NULL,
			size        BIGINT NOT NULL,
			saved_at    BIGINT NOT NULL,
			document    BLOB NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &DuckStore{db: db, dbPath: dbPath}, nil
}

// Save stores doc as a new project.
func (s *DuckStore) Save(doc *models.ProjectDocument) (*models.ProjectInfo, error) {
	blob, err := models.MarshalMsgpack(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding project: %w", err)
	}

	info := projectInfo(uuid.New().String(), doc, int64(len(blob)))
	_, err = s.db.Exec(
		`INSERT INTO projects (id, name, layer_count, size, saved_at, document) VALUES (?, ?, ?, ?, ?, ?)`,
		info.ID, info.Name, info.LayerCount, info.Size, info.SavedAt.UnixMilli(), blob,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting project: %w", err)
	}
	return info, nil
}

// Update overwrites an existing project.
func (s *DuckStore) Update(id string, doc *models.ProjectDocument) (*models.ProjectInfo, error) {
	blob, err := models.MarshalMsgpack(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding project: %w", err)
	}

	info := projectInfo(id, doc, int64(len(blob)))
	res, err := s.db.Exec(
		`UPDATE projects SET name = ?, layer_count = ?, size = ?, saved_at = ?, document = ? WHERE id = ?`,
		info.Name, info.LayerCount, info.Size, info.SavedAt.UnixMilli(), blob, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}
	if err := requireRow(res, id); err != nil {
		return nil, err
	}
	return info, nil
}

// Get retrieves project metadata by ID.
func (s *DuckStore) Get(id string) (*models.ProjectInfo, error) {
	row := s.db.QueryRow(`SELECT id, name, layer_count, size, saved_at FROM projects WHERE id = ?`, id)
	info, err := scanInfo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying project: %w", err)
	}
	return info, nil
}

// Load reads a project document.
func (s *DuckStore) Load(id string) (*models.ProjectDocument, error) {
	var blob []byte
	err := s.db.QueryRow(`SELECT document FROM projects WHERE id = ?`, id).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying project: %w", err)
	}

	var doc models.ProjectDocument
	if err := models.UnmarshalMsgpack(blob, &doc); err != nil {
		return nil, fmt.Errorf("decoding project: %w", err)
	}
	return &doc, nil
}

// List returns the most recently saved projects.
func (s *DuckStore) List(limit int) ([]*models.ProjectInfo, error) {
	query := `SELECT id, name, layer_count, size, saved_at FROM projects ORDER BY saved_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	list := []*models.ProjectInfo{}
	for rows.Next() {
		info, err := scanInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		list = append(list, info)
	}
	return list, rows.Err()
}

// Delete removes a project.
func (s *DuckStore) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return requireRow(res, id)
}

// Rename changes the name stored in a project's document.
func (s *DuckStore) Rename(id string, newName string) (*models.ProjectInfo, error) {
	doc, err := s.Load(id)
	if err != nil {
		return nil, err
	}
	doc.LogoSettings.Name = newName
	return s.Update(id, doc)
}

// Close closes the database. The file is kept.
func (s *DuckStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInfo(row scanner) (*models.ProjectInfo, error) {
	var (
		info    models.ProjectInfo
		savedAt int64
	)
	if err := row.Scan(&info.ID, &info.Name, &info.LayerCount, &info.Size, &savedAt); err != nil {
		return nil, err
	}
	info.SavedAt = time.UnixMilli(savedAt)
	return &info, nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return nil
}
