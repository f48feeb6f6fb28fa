package persistent

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type LocalArtifactRepo struct {
	dir string
}

func NewLocalArtifactRepo(dir string) *LocalArtifactRepo {
	return &LocalArtifactRepo{dir: dir}
}

// temp файл + rename
func (r *LocalArtifactRepo) Save(ctx context.Context, key string, data []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("LocalArtifactRepo - Save: %w", err)
	}

	path, err := r.path(key)
	if err != nil {
		return fmt.Errorf("LocalArtifactRepo - Save - r.path: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("LocalArtifactRepo - Save - os.MkdirAll: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".artifact-*")
	if err != nil {
		return fmt.Errorf("LocalArtifactRepo - Save - os.CreateTemp: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()

		return fmt.Errorf("LocalArtifactRepo - Save - tmp.Write: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("LocalArtifactRepo - Save - tmp.Close: %w", err)
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("LocalArtifactRepo - Save - os.Chmod: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("LocalArtifactRepo - Save - os.Rename: %w", err)
	}

	return nil
}

func (r *LocalArtifactRepo) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid key %q", key)
	}

	return filepath.Join(r.dir, clean), nil
}
