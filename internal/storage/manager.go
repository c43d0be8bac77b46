package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/logo-studio/backend/internal/models"
)

// ErrProjectNotFound is returned for unknown project ids.
var ErrProjectNotFound = errors.New("project not found")

// Store defines the interface for project storage.
type Store interface {
	Save(doc *models.ProjectDocument) (*models.ProjectInfo, error)
	Update(id string, doc *models.ProjectDocument) (*models.ProjectInfo, error)
	Get(id string) (*models.ProjectInfo, error)
	Load(id string) (*models.ProjectDocument, error)
	List(limit int) ([]*models.ProjectInfo, error)
	Delete(id string) error
	Rename(id string, newName string) (*models.ProjectInfo, error)
	Close() error
}

const projectExt = ".json"

// LocalStore implements Store with one JSON document per project on the
// local filesystem and an in-memory index of their metadata.
type LocalStore struct {
	mu       sync.RWMutex
	dir      string
	projects map[string]*models.ProjectInfo
}

// NewLocalStore creates a LocalStore in dir, indexing projects already there.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating project directory: %w", err)
	}

	s := &LocalStore{
		dir:      dir,
		projects: make(map[string]*models.ProjectInfo),
	}
	s.scanExisting()
	return s, nil
}

// scanExisting indexes the project files left by a previous run. Files that
// cannot be read are skipped.
func (s *LocalStore) scanExisting() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		fmt.Printf("[ProjectStore] Warning: failed to scan project directory: %v\n", err)
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != projectExt {
			continue
		}
		id := strings.TrimSuffix(name, projectExt)
		doc, size, err := s.readDocument(id)
		if err != nil {
			fmt.Printf("[ProjectStore] Skipping %s: %v\n", name, err)
			continue
		}
		s.projects[id] = projectInfo(id, doc, size)
	}

	fmt.Printf("[ProjectStore] Indexed %d existing projects\n", len(s.projects))
}

// Save stores doc as a new project.
func (s *LocalStore) Save(doc *models.ProjectDocument) (*models.ProjectInfo, error) {
	id := uuid.New().String()
	size, err := s.writeDocument(id, doc)
	if err != nil {
		return nil, err
	}

	info := projectInfo(id, doc, size)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[id] = info

	return copyInfo(info), nil
}

// Update overwrites an existing project.
func (s *LocalStore) Update(id string, doc *models.ProjectDocument) (*models.ProjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}

	size, err := s.writeDocument(id, doc)
	if err != nil {
		return nil, err
	}
	info := projectInfo(id, doc, size)
	s.projects[id] = info
	return copyInfo(info), nil
}

// Get retrieves project metadata by ID.
func (s *LocalStore) Get(id string) (*models.ProjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.projects[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return copyInfo(info), nil
}

// Load reads a project document.
func (s *LocalStore) Load(id string) (*models.ProjectDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.projects[id]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	doc, _, err := s.readDocument(id)
	return doc, err
}

// List returns the most recently saved projects.
func (s *LocalStore) List(limit int) ([]*models.ProjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*models.ProjectInfo, 0, len(s.projects))
	for _, info := range s.projects {
		list = append(list, copyInfo(info))
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].SavedAt.After(list[j].SavedAt)
	})

	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// Delete removes a project.
func (s *LocalStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}

	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting project: %w", err)
	}
	delete(s.projects, id)
	return nil
}

// Rename changes the name stored in a project's document.
func (s *LocalStore) Rename(id string, newName string) (*models.ProjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}

	doc, _, err := s.readDocument(id)
	if err != nil {
		return nil, err
	}
	doc.LogoSettings.Name = newName
	size, err := s.writeDocument(id, doc)
	if err != nil {
		return nil, err
	}

	info := projectInfo(id, doc, size)
	s.projects[id] = info
	return copyInfo(info), nil
}

// Close implements Store. The filesystem needs no teardown.
func (s *LocalStore) Close() error {
	return nil
}

func (s *LocalStore) path(id string) string {
	return filepath.Join(s.dir, id+projectExt)
}

// writeDocument writes through a temp file so a crash never leaves a torn
// project behind.
func (s *LocalStore) writeDocument(id string, doc *models.ProjectDocument) (int64, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encoding project: %w", err)
	}

	tmp := s.path(id) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return 0, fmt.Errorf("writing project: %w", err)
	}
	if err := os.Rename(tmp, s.path(id)); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("writing project: %w", err)
	}
	return int64(len(data)), nil
}

func (s *LocalStore) readDocument(id string) (*models.ProjectDocument, int64, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		return nil, 0, fmt.Errorf("reading project: %w", err)
	}
	var doc models.ProjectDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, 0, fmt.Errorf("decoding project: %w", err)
	}
	return &doc, int64(len(data)), nil
}

func projectInfo(id string, doc *models.ProjectDocument, size int64) *models.ProjectInfo {
	savedAt := time.Now()
	if doc.Timestamp > 0 {
		savedAt = time.UnixMilli(doc.Timestamp)
	}
	return &models.ProjectInfo{
		ID:         id,
		Name:       doc.LogoSettings.Name,
		LayerCount: len(doc.Layers),
		Size:       size,
		SavedAt:    savedAt,
	}
}

func copyInfo(info *models.ProjectInfo) *models.ProjectInfo {
	c := *info
	return &c
}
