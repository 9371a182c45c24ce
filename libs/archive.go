package libs

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidArchive menandakan file bukan ZIP yang valid atau isinya rusak.
	ErrInvalidArchive = errors.New("invalid zip archive")
	// ErrUnsafeEntry menandakan entry ZIP yang akan ditulis di luar folder tujuan.
	ErrUnsafeEntry = errors.New("zip entry escapes destination folder")
)

var imageExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".gif":  true,
	".png":  true,
}

// Extract membongkar semua entry ZIP ke destDir. File yang sudah ada ditimpa.
// Path file hasil ekstraksi dikembalikan sesuai urutan di arsip.
// maxBytes membatasi total ukuran hasil ekstraksi; 0 berarti tanpa batas.
func Extract(zipPath, destDir string, maxBytes int64) ([]string, error) {
	r, err := zip.OpenReader(zipPath)
	if errors.Is(err, zip.ErrInsecurePath) {
		if r != nil {
			r.Close()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnsafeEntry, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	defer r.Close()

	root, err := filepath.Abs(destDir)
	if err != nil {
		return nil, fmt.Errorf("resolve destination: %w", err)
	}
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create destination: %w", err)
	}

	budget := &extractBudget{limit: maxBytes}
	var files []string
	for _, f := range r.File {
		target, err := entryTarget(root, f.Name)
		if err != nil {
			return files, err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, os.ModePerm); err != nil {
				return files, fmt.Errorf("create %s: %w", f.Name, err)
			}
			continue
		}

		if err := writeEntry(f, target, budget); err != nil {
			return files, err
		}
		files = append(files, target)
	}

	return files, nil
}

// ExtractAndRemove menjalankan Extract lalu menghapus file ZIP sumber,
// berhasil ataupun gagal. Kegagalan hapus hanya dicatat di log.
func ExtractAndRemove(zipPath, destDir string, maxBytes int64) ([]string, error) {
	files, err := Extract(zipPath, destDir, maxBytes)
	if rmErr := os.Remove(zipPath); rmErr != nil {
		log.Printf("⚠️  Failed to remove uploaded archive %s: %v", zipPath, rmErr)
	}
	return files, err
}

// ListImages membaca isi level atas dir dan mengembalikan public path
// untuk file dengan ekstensi gambar. publicPrefix harus sudah di-escape,
// nama file di-escape di sini.
func ListImages(dir, publicPrefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	prefix := strings.TrimRight(publicPrefix, "/")
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsImage(e.Name()) {
			continue
		}
		files = append(files, prefix+"/"+url.PathEscape(e.Name()))
	}
	return files, nil
}

// IsImage memeriksa ekstensi tanpa membedakan huruf besar kecil.
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

func entryTarget(root, name string) (string, error) {
	clean := filepath.FromSlash(strings.ReplaceAll(name, `\`, "/"))
	target := filepath.Join(root, clean)
	if target != root && !strings.HasPrefix(target, root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafeEntry, name)
	}
	return target, nil
}

func writeEntry(f *zip.File, target string, budget *extractBudget) error {
	if err := budget.reserve(f.Name, int64(f.UncompressedSize64)); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(target), err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrInvalidArchive, f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("write %s: %w", f.Name, err)
	}

	n, err := io.Copy(out, budget.reader(entryReader{rc}))
	if err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", f.Name, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	if err := budget.consume(f.Name, n); err != nil {
		os.Remove(target)
		return err
	}
	return nil
}

// extractBudget menghitung sisa byte yang boleh ditulis dari satu arsip.
// Ukuran di header ZIP bisa dipalsukan, jadi jumlah byte hasil baca juga dibatasi.
type extractBudget struct {
	limit int64
	used  int64
}

func (b *extractBudget) remaining() int64 {
	return b.limit - b.used
}

func (b *extractBudget) reserve(name string, declared int64) error {
	if b.limit <= 0 || declared <= b.remaining() {
		return nil
	}
	return b.exceeded(name)
}

func (b *extractBudget) reader(r io.Reader) io.Reader {
	if b.limit <= 0 {
		return r
	}
	return io.LimitReader(r, b.remaining()+1)
}

func (b *extractBudget) consume(name string, n int64) error {
	b.used += n
	if b.limit > 0 && b.used > b.limit {
		return b.exceeded(name)
	}
	return nil
}

func (b *extractBudget) exceeded(name string) error {
	return fmt.Errorf("%w: %s: extracted content exceeds %d bytes", ErrInvalidArchive, name, b.limit)
}

// entryReader menandai error baca dari arsip sebagai ErrInvalidArchive,
// supaya bisa dibedakan dari error tulis ke disk.
type entryReader struct {
	r io.Reader
}

func (e entryReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if err != nil && err != io.EOF {
		err = fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	return n, err
}
