// Package artifact persists raw analysis artifacts keyed by project and
// file path. Persistence is a caching convenience for the navigation shell;
// engine correctness never depends on it.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a project/path pair has no stored content.
var ErrNotFound = errors.New("artifact not found")

// Store defines operations for persisting analysis artifacts.
type Store interface {
	Put(ctx context.Context, projectID, path string, content []byte) error
	Get(ctx context.Context, projectID, path string) ([]byte, error)
	GetURL(ctx context.Context, projectID, path string) (string, error)
	List(ctx context.Context, projectID string) ([]string, error)
}

func cleanProjectID(projectID string) (string, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return "", fmt.Errorf("project_id is required")
	}
	if strings.Contains(projectID, "..") || filepath.IsAbs(projectID) {
		return "", fmt.Errorf("invalid project_id: %s", projectID)
	}
	return projectID, nil
}

func cleanPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("path is required")
	}
	if strings.Contains(path, "..") || filepath.IsAbs(path) {
		return "", fmt.Errorf("invalid path: %s", path)
	}
	return strings.TrimLeft(path, "/"), nil
}

func objectKey(projectID, path string) string {
	return projectID + "/" + path
}
