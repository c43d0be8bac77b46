// mock_storage.go - Mock project storage for testing
package testutil

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/logo-studio/backend/internal/models"
	"github.com/logo-studio/backend/internal/storage"
)

// MockStorage implements storage.Store in memory for testing
type MockStorage struct {
	mu       sync.RWMutex
	projects map[string]*models.ProjectInfo
	docs     map[string][]byte
	order    map[string]int
	seq      int

	// Err, when set, is returned by every call.
	Err error
}

// NewMockStorage creates an empty mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		projects: make(map[string]*models.ProjectInfo),
		docs:     make(map[string][]byte),
		order:    make(map[string]int),
	}
}

func (m *MockStorage) Save(doc *models.ProjectDocument) (*models.ProjectInfo, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.put(generateTestID(), doc)
}

func (m *MockStorage) Update(id string, doc *models.ProjectDocument) (*models.ProjectInfo, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.projects[id]; !ok {
		return nil, storage.ErrProjectNotFound
	}
	return m.put(id, doc)
}

// put stores an encoded copy so callers can't mutate what was saved.
func (m *MockStorage) put(id string, doc *models.ProjectDocument) (*models.ProjectInfo, error) {
	data, err := models.MarshalMsgpack(doc)
	if err != nil {
		return nil, err
	}
	m.seq++
	info := &models.ProjectInfo{
		ID:         id,
		Name:       doc.LogoSettings.Name,
		LayerCount: len(doc.Layers),
		Size:       int64(len(data)),
		SavedAt:    time.UnixMilli(doc.Timestamp),
	}
	m.projects[id] = info
	m.docs[id] = data
	m.order[id] = m.seq
	out := *info
	return &out, nil
}

func (m *MockStorage) Get(id string) (*models.ProjectInfo, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	info, ok := m.projects[id]
	if !ok {
		return nil, storage.ErrProjectNotFound
	}
	out := *info
	return &out, nil
}

func (m *MockStorage) Load(id string) (*models.ProjectDocument, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.docs[id]
	if !ok {
		return nil, storage.ErrProjectNotFound
	}
	var doc models.ProjectDocument
	if err := models.UnmarshalMsgpack(data, &doc); err != nil {
		return nil, err
	}
	doc.LogoSettings.Name = m.projects[id].Name
	return &doc, nil
}

// List returns projects in reverse save order.
func (m *MockStorage) List(limit int) ([]*models.ProjectInfo, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*models.ProjectInfo, 0, len(m.projects))
	for _, info := range m.projects {
		c := *info
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return m.order[out[i].ID] > m.order[out[j].ID] })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockStorage) Delete(id string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.projects[id]; !ok {
		return storage.ErrProjectNotFound
	}
	delete(m.projects, id)
	delete(m.docs, id)
	delete(m.order, id)
	return nil
}

func (m *MockStorage) Rename(id string, newName string) (*models.ProjectInfo, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	info, ok := m.projects[id]
	if !ok {
		return nil, storage.ErrProjectNotFound
	}
	info.Name = newName
	out := *info
	return &out, nil
}

func (m *MockStorage) Close() error {
	return nil
}

// Ensure MockStorage implements storage.Store
var _ storage.Store = (*MockStorage)(nil)

// Test Helper Methods

// AddProject stores doc under a fixed id
func (m *MockStorage) AddProject(id string, doc *models.ProjectDocument) *models.ProjectInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	info, err := m.put(id, doc)
	if err != nil {
		panic(fmt.Sprintf("failed to encode test project: %v", err))
	}
	return info
}

// ProjectCount returns the number of stored projects
func (m *MockStorage) ProjectCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.projects)
}

// generateTestID generates a simple test ID
var testIDCounter int
var testIDMutex sync.Mutex

func generateTestID() string {
	testIDMutex.Lock()
	defer testIDMutex.Unlock()
	testIDCounter++
	return fmt.Sprintf("test-id-%d", testIDCounter)
}
