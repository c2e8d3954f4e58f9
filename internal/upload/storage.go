package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxImages is the upload limit per listing request.
const MaxImages = 10

const (
	propertiesSubdir = "properties"
	publicPrefix     = "/uploads"
)

// Storage persists uploaded listing images on disk. Files are stored under
// <baseDir>/properties with generated names and referenced by their public
// path (/uploads/properties/<name>).
type Storage struct {
	baseDir string
}

// NewStorage creates the storage, ensuring the target directory exists.
func NewStorage(baseDir string) (*Storage, error) {
	dir := filepath.Join(baseDir, propertiesSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Storage{baseDir: baseDir}, nil
}

// SaveImages stores each uploaded file and returns its public path.
func (s *Storage) SaveImages(files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := s.saveOne(fh)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *Storage) saveOne(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.baseDir, propertiesSubdir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return path.Join(publicPrefix, propertiesSubdir, name), nil
}

// Remove deletes a stored image by its public path, best effort. Paths
// outside the properties directory are ignored.
func (s *Storage) Remove(publicPath string) {
	prefix := publicPrefix + "/" + propertiesSubdir + "/"
	if !strings.HasPrefix(publicPath, prefix) {
		return
	}
	name := filepath.Base(strings.TrimPrefix(publicPath, prefix))
	_ = os.Remove(filepath.Join(s.baseDir, propertiesSubdir, name))
}
