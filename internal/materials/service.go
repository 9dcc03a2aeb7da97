// Package materials reads the metadata descriptors produced by the
// document-conversion pipeline. The conversion itself happens outside
// this process; materials arrive on disk as page images plus a
// metadata.json, indexed by a manifest.json.
package materials

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kyozai-live/backend/internal/models"
)

// ErrMaterialNotFound indicates the material id has no metadata on disk.
var ErrMaterialNotFound = fmt.Errorf("material not found")

// Service serves material manifests and metadata from the materials
// directory. Metadata files are immutable once converted, so reads are
// cached per material id.
type Service struct {
	dir string

	mu    sync.RWMutex
	cache map[string]*models.Material
}

// NewService creates a materials service rooted at dir.
func NewService(dir string) *Service {
	return &Service{dir: dir, cache: make(map[string]*models.Material)}
}

// Manifest returns the material index. A missing manifest yields an
// empty index, not an error.
func (s *Service) Manifest() (models.Manifest, error) {
	path := filepath.Join(s.dir, "manifest.json")
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return models.Manifest{Version: "1.0", Materials: []models.ManifestEntry{}}, nil
	}
	if err != nil {
		return models.Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var m models.Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return models.Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	return m, nil
}

// Get returns the full metadata descriptor for one material.
func (s *Service) Get(materialID string) (*models.Material, error) {
	s.mu.RLock()
	if m, ok := s.cache[materialID]; ok {
		s.mu.RUnlock()
		return m, nil
	}
	s.mu.RUnlock()

	path := filepath.Join(s.dir, materialID, "metadata.json")
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrMaterialNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	var m models.Material
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse metadata %s: %w", materialID, err)
	}

	s.mu.Lock()
	s.cache[materialID] = &m
	s.mu.Unlock()
	return &m, nil
}

// PageCount reports the page count of a material, or false when the
// material is unknown. Satisfies the gateway's PageCounter.
func (s *Service) PageCount(materialID string) (int, bool) {
	m, err := s.Get(materialID)
	if err != nil {
		return 0, false
	}
	return m.TotalPages, true
}
