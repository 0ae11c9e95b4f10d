package media

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	MaxPhotoSize = 10 << 20
	ThumbWidth   = 320
	maxDimension = 6000
)

var (
	AllowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}
	AllowedMIMEs      = []string{"image/jpeg", "image/png", "image/gif"}

	ErrInvalidExtension = errors.New("invalid file extension")
	ErrInvalidMIME      = errors.New("invalid MIME type")
	ErrFileTooLarge     = errors.New("file size exceeds limit")
)

// Saved is one stored upload. Refs are relative to the store root.
type Saved struct {
	Ref       string
	ThumbRef  string
	SizeBytes int64
}

type Store struct {
	root string
}

func NewStore(root string) (*Store, error) {
	for _, dir := range []string{"photo", "thumb"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	return &Store{root: root}, nil
}

func (s *Store) Root() string { return s.root }

// Path maps a ref back to a file path; refs escaping the root are rejected.
func (s *Store) Path(ref string) (string, error) {
	if ref == "" || strings.Contains(ref, "..") || filepath.IsAbs(ref) {
		return "", fmt.Errorf("invalid ref %q", ref)
	}
	return filepath.Join(s.root, filepath.FromSlash(ref)), nil
}

// SaveFormFiles stores every file under formKey. A failing file does not stop
// the rest; its error is joined into the returned error.
func (s *Store) SaveFormFiles(form *multipart.Form, formKey string) ([]Saved, error) {
	files := form.File[formKey]
	if len(files) == 0 {
		return nil, fmt.Errorf("missing files: %s", formKey)
	}

	var saved []Saved
	var errs []error
	for _, hdr := range files {
		f, err := hdr.Open()
		if err != nil {
			errs = append(errs, fmt.Errorf("open %s: %w", hdr.Filename, err))
			continue
		}
		out, err := s.SavePhoto(f, hdr.Filename)
		f.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("save %s: %w", hdr.Filename, err))
			continue
		}
		saved = append(saved, out)
	}
	return saved, errors.Join(errs...)
}

// SavePhoto validates, stores the original and writes a jpeg thumbnail.
func (s *Store) SavePhoto(r io.Reader, filename string) (Saved, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !contains(AllowedExtensions, ext) {
		return Saved{}, fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
	}

	buf, err := io.ReadAll(io.LimitReader(r, MaxPhotoSize+1))
	if err != nil {
		return Saved{}, fmt.Errorf("read upload: %w", err)
	}
	if len(buf) > MaxPhotoSize {
		return Saved{}, ErrFileTooLarge
	}
	if mime := http.DetectContentType(buf); !contains(AllowedMIMEs, mime) {
		return Saved{}, fmt.Errorf("%w: %s", ErrInvalidMIME, mime)
	}

	img, err := imaging.Decode(bytes.NewReader(buf), imaging.AutoOrientation(true))
	if err != nil {
		return Saved{}, fmt.Errorf("decode image %q: %w", filename, err)
	}
	if b := img.Bounds(); b.Dx() > maxDimension || b.Dy() > maxDimension {
		return Saved{}, fmt.Errorf("image dimensions %dx%d exceed max %dx%d", b.Dx(), b.Dy(), maxDimension, maxDimension)
	}

	id := uuid.New().String()
	ref := filepath.ToSlash(filepath.Join("photo", id+ext))
	if err := os.WriteFile(filepath.Join(s.root, ref), buf, 0o644); err != nil {
		return Saved{}, fmt.Errorf("write original: %w", err)
	}

	thumbRef := filepath.ToSlash(filepath.Join("thumb", id+".jpg"))
	thumb := imaging.Resize(img, ThumbWidth, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(s.root, thumbRef), imaging.JPEGQuality(85)); err != nil {
		return Saved{Ref: ref, SizeBytes: int64(len(buf))}, fmt.Errorf("write thumbnail: %w", err)
	}

	return Saved{Ref: ref, ThumbRef: thumbRef, SizeBytes: int64(len(buf))}, nil
}

func contains(list []string, v string) bool {
	for _, a := range list {
		if a == v {
			return true
		}
	}
	return false
}
