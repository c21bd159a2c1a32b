package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Kind tags an upload with its intended use, which determines the
// stored filename prefix.
type Kind string

const (
	KindProfile Kind = "profile"
	KindPost    Kind = "post"
	KindStory   Kind = "story"
)

// Store persists binary blobs and hands back opaque reference strings.
// Callers only ever store and echo the reference.
type Store interface {
	Save(kind Kind, originalName string, r io.Reader) (string, error)
	Remove(reference string) error
}

// DiskStore writes uploads to a local directory served at /uploads.
type DiskStore struct {
	dir string
}

// NewDiskStore ensures the uploads directory exists and returns a store over it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *DiskStore) Dir() string { return s.dir }

func (s *DiskStore) Save(kind Kind, originalName string, r io.Reader) (string, error) {
	ext := filepath.Ext(originalName)
	name := fmt.Sprintf("%s-%s%s", kind, uuid.NewString(), ext)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// Remove deletes the blob behind a reference. A reference that does not
// point into the store is ignored rather than treated as an error.
func (s *DiskStore) Remove(reference string) error {
	if !strings.HasPrefix(reference, "/uploads/") {
		return nil
	}
	name := strings.TrimPrefix(reference, "/uploads/")
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
