package media

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists processed upload files under a base directory and
// serves them read-only. Database rows reference files by the relative
// path Save returns.
type Store struct {
	dir string
}

// NewStore creates the base directory (and subdirectories for each
// image kind) if needed.
func NewStore(dir string) (*Store, error) {
	for _, sub := range []string{"goods_images", "outcome_images"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("creating media directory: %w", err)
		}
	}
	return &Store{dir: dir}, nil
}

// Save writes data under the given subdirectory with a random name and
// returns the relative path ("goods_images/<uuid>.jpg").
func (s *Store) Save(subdir string, data []byte) (string, error) {
	name := uuid.NewString() + ".jpg"
	rel := filepath.ToSlash(filepath.Join(subdir, name))

	if err := os.WriteFile(filepath.Join(s.dir, subdir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("writing media file: %w", err)
	}
	return rel, nil
}

// Remove deletes a stored file by its relative path. Missing files are
// not an error: a dangling row must never block item deletion.
func (s *Store) Remove(rel string) error {
	rel = filepath.Clean(rel)
	if strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return fmt.Errorf("invalid media path: %s", rel)
	}
	err := os.Remove(filepath.Join(s.dir, rel))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing media file: %w", err)
	}
	return nil
}

// Handler serves the media directory, for mounting at /media/.
func (s *Store) Handler() http.Handler {
	return http.FileServer(http.Dir(s.dir))
}

// URL returns the public path for a stored relative path.
func URL(rel string) string {
	return "/media/" + rel
}
