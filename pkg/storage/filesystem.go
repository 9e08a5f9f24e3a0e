package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemArtifactStore keeps shapefile archives on local disk, for
// deployments without object storage.
type FilesystemArtifactStore struct {
	root string
}

// NewFilesystemArtifactStore creates the root directory if needed.
func NewFilesystemArtifactStore(root string) (*FilesystemArtifactStore, error) {
	if root == "" {
		return nil, fmt.Errorf("artifact root is required")
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create artifact root: %w", err)
	}
	return &FilesystemArtifactStore{root: root}, nil
}

// PutArchive writes an archive under the root and returns its sha256 checksum.
func (s *FilesystemArtifactStore) PutArchive(ctx context.Context, key string, data []byte) (string, error) {
	path, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create artifact directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

// GetArchive opens a stored archive.
func (s *FilesystemArtifactStore) GetArchive(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact: %w", err)
	}
	return f, nil
}

// resolve joins key under the root, refusing traversal outside it.
func (s *FilesystemArtifactStore) resolve(key string) (string, error) {
	path := filepath.Join(s.root, filepath.FromSlash(key))
	if !strings.HasPrefix(path, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid artifact key: %s", key)
	}
	return path, nil
}
