package libs

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageMirror menyalin gambar lokal ke penyimpanan remote dan mengembalikan URL-nya.
type ImageMirror interface {
	Mirror(ctx context.Context, path string) (string, error)
}

// CloudinaryMirror mengunggah gambar produk ke Cloudinary.
type CloudinaryMirror struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryMirror(url, folder string) (*CloudinaryMirror, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &CloudinaryMirror{cld: cld, folder: folder}, nil
}

func (m *CloudinaryMirror) Mirror(ctx context.Context, path string) (string, error) {
	result, err := m.cld.Upload.Upload(ctx, path, uploader.UploadParams{Folder: m.folder})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", result.Error.Message)
	}
	return result.SecureURL, nil
}
