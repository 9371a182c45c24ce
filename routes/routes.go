package routes

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"image-upload-backend/controllers"
	"image-upload-backend/middleware"

	"github.com/gin-gonic/gin"
)

// Setup mengonfigurasi dan mengembalikan Gin engine.
func Setup(ctrl *controllers.Controller) *gin.Engine {
	cfg := ctrl.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.MaxMultipartMemory = 8 << 20

	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if len(cfg.PasetoSecretKey) > 0 {
		r.Use(middleware.ParseAdmin(cfg.PasetoSecretKey, cfg.AuthRequired))
	}

	// Rute yang mengubah data wajib token bila AUTH_REQUIRED aktif.
	write := r.Group("/")
	if cfg.AuthRequired {
		write.Use(middleware.RequireAdmin())
	}
	{
		write.POST("/add-image", ctrl.AddProduct)
		write.POST("/zip-file-extract", ctrl.ExtractZip)
	}
	r.GET("/get-products", ctrl.GetProducts)

	api := r.Group("/api")
	{
		// Rute utilitas
		api.GET("/health", ctrl.HealthCheck)
		api.GET("/stats", ctrl.GetStats)

		// Rute otentikasi
		api.POST("/login", ctrl.Login)
		api.POST("/register", ctrl.Register)

		admins := api.Group("/admins")
		if cfg.AuthRequired {
			admins.Use(middleware.RequireAdmin())
		}
		admins.GET("", ctrl.GetAdmins)
	}

	r.Static(controllers.UploadsRoute, cfg.UploadDir)
	r.NoRoute(fallback(cfg.PublicDir))
	return r
}

// fallback menyajikan file statis dari folder public, atau index.html untuk
// path lain (pola single-page app). Method selain GET/HEAD mendapat 404 JSON.
func fallback(publicDir string) gin.HandlerFunc {
	index := filepath.Join(publicDir, "index.html")
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
			return
		}

		// path.Clean dengan awalan "/" memastikan ".." tidak keluar dari publicDir.
		urlPath := path.Clean("/" + c.Request.URL.Path)
		if strings.HasPrefix(urlPath, controllers.UploadsRoute+"/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}

		rel := filepath.FromSlash(strings.TrimPrefix(urlPath, "/"))
		if rel != "" {
			candidate := filepath.Join(publicDir, rel)
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
				c.File(candidate)
				return
			}
		}

		if _, err := os.Stat(index); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
			return
		}
		c.File(index)
	}
}
