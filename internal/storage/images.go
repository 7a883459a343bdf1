package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"blogd/internal/schema"
)

var errOutsidePublicDir = errors.New("image path escapes the public directory")

func isLocalImage(ref string) bool {
	_, ok := schema.LocalUploadPath(ref)
	return ok
}

// removeLocalImage deletes the file behind a /uploads/ reference. External
// references and missing files are not errors; it reports whether a file was
// actually removed.
func (s *Store) removeLocalImage(ref string) (bool, error) {
	local, ok := schema.LocalUploadPath(ref)
	if !ok {
		return false, nil
	}

	root, err := filepath.Abs(s.publicDir)
	if err != nil {
		return false, fmt.Errorf("resolve public dir: %w", err)
	}
	target := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(local, "/")))
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false, errOutsidePublicDir
	}

	err = os.Remove(target)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ReplaceFeaturedImage removes oldRef when a post's image changes to newRef.
func (s *Store) ReplaceFeaturedImage(oldRef, newRef string) (bool, error) {
	if oldRef == "" || oldRef == newRef {
		return false, nil
	}
	return s.removeLocalImage(oldRef)
}
