// Package avatars keeps local copies of the profile pictures chosen by users.
package avatars

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/dreamias/internal/common"
	"github.com/dmitrijs2005/dreamias/internal/filex"
)

const dirName = "avatars"

// Store copies avatar images into <dataDir>/avatars.
type Store struct {
	dir string
}

// NewStore creates the avatar directory under dataDir if needed.
func NewStore(dataDir string) (*Store, error) {
	dir, err := filex.EnsureDir(dataDir, dirName)
	if err != nil {
		return nil, fmt.Errorf("avatar dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the images are stored in.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file the avatar of email is stored in.
func (s *Store) Path(email string) string {
	return filepath.Join(s.dir, "avatar_"+common.SanitizeKey(email)+".jpg")
}

// Save copies srcPath over the stored avatar of email and returns its
// file:// reference.
func (s *Store) Save(email, srcPath string) (string, error) {
	if strings.TrimSpace(srcPath) == "" {
		return "", fmt.Errorf("save avatar: %w", common.ErrorValidation)
	}

	dst := s.Path(email)
	if err := filex.CopyFile(srcPath, dst); err != nil {
		return "", fmt.Errorf("save avatar: %w", err)
	}

	abs, err := filepath.Abs(dst)
	if err != nil {
		return "", fmt.Errorf("save avatar: %w", err)
	}
	return FileURI(abs), nil
}

// FileURI formats an absolute path as a file:// URI.
func FileURI(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
