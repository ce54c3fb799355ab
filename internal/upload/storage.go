package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"studio-admin/internal/models"
)

const (
	// MaxFileSize caps a single uploaded image at 10 MB.
	MaxFileSize = 10 << 20
	// ThumbWidth is the width thumbnails are resized to.
	ThumbWidth = 320
)

var ErrUnsupportedType = errors.New("only jpg, png and webp images are accepted")

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Store writes uploaded images to a directory on disk and serves them
// back through a static route.
type Store struct {
	Dir     string
	BaseURL string
}

func NewStore(dir, baseURL string) *Store {
	return &Store{Dir: dir, BaseURL: strings.TrimSuffix(baseURL, "/")}
}

// Save streams one uploaded file into the named subfolder and returns the
// image reference. A 320px thumbnail is written next to jpg and png
// originals; webp files are stored as-is.
func (s *Store) Save(folder, filename string, r io.Reader) (*models.Image, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, ErrUnsupportedType
	}

	publicID := uuid.NewString()
	dir := filepath.Join(s.Dir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	name := publicID + ext
	path := filepath.Join(dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	written, err := io.Copy(dst, io.LimitReader(r, MaxFileSize+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > MaxFileSize {
		err = fmt.Errorf("file exceeds %d bytes", MaxFileSize)
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	if ext != ".webp" {
		if err := s.writeThumbnail(path, dir, publicID, ext); err != nil {
			_ = os.Remove(path)
			return nil, err
		}
	}

	return &models.Image{
		URL:      s.url(folder, name),
		PublicID: publicID,
	}, nil
}

// Remove deletes an image and its thumbnail by public id.
func (s *Store) Remove(folder, publicID string) error {
	matches, err := filepath.Glob(filepath.Join(s.Dir, folder, publicID+"*"))
	if err != nil {
		return err
	}
	for _, match := range matches {
		if err := os.Remove(match); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeThumbnail(srcPath, dir, publicID, ext string) error {
	img, err := imaging.Open(srcPath)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	thumb := imaging.Resize(img, ThumbWidth, 0, imaging.Lanczos)
	return imaging.Save(thumb, filepath.Join(dir, publicID+"_thumb"+ext))
}

func (s *Store) url(folder, name string) string {
	if folder == "" {
		return s.BaseURL + "/" + name
	}
	return s.BaseURL + "/" + folder + "/" + name
}
