package uploads

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Upload kinds, encoded into the stored filename.
const (
	KindPhoto   = "photo"
	KindArticle = "article"
)

const jpegQuality = 82

// Store writes uploaded photos to a local directory, re-encoded at reduced
// quality, and serves removal for publication cleanup. Filenames follow
// <publicationId>-<userId>-<kind>-<timestamp>-<random><ext> so files are
// discoverable per publication and collision-free. The publication id is
// generated before the upload is written, so no rename pass exists.
type Store struct {
	dir string
}

// NewStore creates the uploads directory if needed and returns a Store.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes into.
func (s *Store) Dir() string {
	return s.dir
}

// Save re-encodes an uploaded image (JPEG or PNG, format preserved) and
// writes it to disk. Returns the public URL under /uploads.
func (s *Store) Save(file *multipart.FileHeader, publicationID, userID, kind string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", file.Filename, err)
	}

	name := s.filename(publicationID, userID, kind, file.Filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if strings.HasSuffix(name, ".png") {
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(dst, img)
	} else {
		err = jpeg.Encode(dst, img, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}

	return "/uploads/" + name, nil
}

// Remove deletes the file behind a /uploads URL. A missing file is not an
// error; deletions during publication cleanup are best-effort.
func (s *Store) Remove(url string) error {
	name := strings.TrimPrefix(url, "/uploads/")
	if name == "" || strings.Contains(name, "/") {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *Store) filename(publicationID, userID, kind, original string) string {
	if publicationID == "" {
		publicationID = "unknown"
	}
	if userID == "" {
		userID = "unknown"
	}

	ext := strings.ToLower(filepath.Ext(original))
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
		ext = ".jpg"
	}

	timestamp := strings.NewReplacer(":", "-", ".", "-").Replace(time.Now().UTC().Format(time.RFC3339))
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]

	return fmt.Sprintf("%s-%s-%s-%s-%s%s", publicationID, userID, kind, timestamp, random, ext)
}
