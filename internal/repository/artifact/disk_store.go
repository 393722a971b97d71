package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DiskStore persists artifacts under a local root directory by
// projectID/path.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: strings.TrimSpace(root)}
}

func (s *DiskStore) Put(_ context.Context, projectID, path string, content []byte) error {
	fullPath, err := s.pathFor(projectID, path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, content, 0o644)
}

func (s *DiskStore) Get(_ context.Context, projectID, path string) ([]byte, error) {
	fullPath, err := s.pathFor(projectID, path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(fullPath)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return raw, err
}

func (s *DiskStore) GetURL(_ context.Context, _, _ string) (string, error) {
	return "", nil
}

func (s *DiskStore) List(_ context.Context, projectID string) ([]string, error) {
	projectRoot, err := s.projectRoot(projectID)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, 8)
	walkErr := filepath.WalkDir(projectRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(projectRoot, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if walkErr != nil {
		if os.IsNotExist(walkErr) {
			return []string{}, nil
		}
		return nil, walkErr
	}
	sort.Strings(paths)
	return paths, nil
}

func (s *DiskStore) projectRoot(projectID string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("store is nil")
	}
	root := strings.TrimSpace(s.root)
	if root == "" {
		return "", fmt.Errorf("root is required")
	}
	projectID, err := cleanProjectID(projectID)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, projectID), nil
}

func (s *DiskStore) pathFor(projectID, path string) (string, error) {
	projectRoot, err := s.projectRoot(projectID)
	if err != nil {
		return "", err
	}
	path, err = cleanPath(path)
	if err != nil {
		return "", err
	}
	return filepath.Join(projectRoot, filepath.FromSlash(path)), nil
}
