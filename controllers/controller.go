// File: controllers/controller.go
package controllers

import (
	"context"
	"time"

	"image-upload-backend/config"
	"image-upload-backend/libs"
	"image-upload-backend/repositories"

	"github.com/gin-gonic/gin"
)

const requestTimeout = 10 * time.Second

// Pinger memeriksa koneksi database untuk health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Controller menampung dependensi yang akan digunakan oleh semua handler.
type Controller struct {
	Products repositories.ProductRepository
	Admins   repositories.AdminRepository
	Uploads  *libs.UploadSink
	Mirror   libs.ImageMirror
	DB       Pinger
	Config   *config.AppConfig
}

// New membuat Controller. Mirror boleh nil bila Cloudinary tidak dipakai.
func New(cfg *config.AppConfig, products repositories.ProductRepository, admins repositories.AdminRepository,
	db Pinger, mirror libs.ImageMirror) *Controller {
	return &Controller{
		Products: products,
		Admins:   admins,
		Uploads:  libs.NewUploadSink(cfg.UploadDir, cfg.MaxUploadSize),
		Mirror:   mirror,
		DB:       db,
		Config:   cfg,
	}
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}
