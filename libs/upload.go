package libs

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrFileTooLarge dikembalikan bila ukuran file melebihi batas upload.
var ErrFileTooLarge = errors.New("file exceeds maximum upload size")

// UploadedFile hanya hidup selama satu request.
type UploadedFile struct {
	FieldName    string
	OriginalName string
	FileName     string
	Path         string
}

// UploadSink menyimpan file multipart ke satu folder dengan nama yang digenerate.
type UploadSink struct {
	dir     string
	maxSize int64
	now     func() time.Time
}

func NewUploadSink(dir string, maxSize int64) *UploadSink {
	return &UploadSink{dir: dir, maxSize: maxSize, now: time.Now}
}

// Dir mengembalikan folder tujuan upload.
func (s *UploadSink) Dir() string {
	return s.dir
}

// Save menulis file ke disk sebagai {field}-{unix millis}{ext}.
func (s *UploadSink) Save(c *gin.Context, field string, header *multipart.FileHeader) (*UploadedFile, error) {
	if s.maxSize > 0 && header.Size > s.maxSize {
		return nil, fmt.Errorf("%w (%d > %d bytes)", ErrFileTooLarge, header.Size, s.maxSize)
	}

	if err := os.MkdirAll(s.dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	name := GenerateFileName(field, header.Filename, s.now())
	path := filepath.Join(s.dir, name)

	if err := c.SaveUploadedFile(header, path); err != nil {
		return nil, fmt.Errorf("save uploaded file: %w", err)
	}

	return &UploadedFile{
		FieldName:    field,
		OriginalName: header.Filename,
		FileName:     name,
		Path:         path,
	}, nil
}

// GenerateFileName membentuk nama file; ekstensi diambil dari '.' terakhir
// nama asli, kosong bila tidak ada.
func GenerateFileName(field, original string, at time.Time) string {
	ext := ""
	if i := strings.LastIndex(original, "."); i >= 0 {
		ext = original[i:]
	}
	// Nama asli dari klien tidak boleh membawa separator ke nama file.
	ext = strings.NewReplacer("/", "", `\`, "").Replace(ext)
	return fmt.Sprintf("%s-%d%s", field, at.UnixMilli(), ext)
}

// PublicPath membuang prefix folder static dari path di disk.
func PublicPath(publicRoot, diskPath string) (string, error) {
	rel, err := filepath.Rel(publicRoot, diskPath)
	if err != nil {
		return "", fmt.Errorf("public path for %s: %w", diskPath, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("public path for %s: outside %s", diskPath, publicRoot)
	}
	return "/" + filepath.ToSlash(rel), nil
}
