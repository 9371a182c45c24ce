package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig menampung semua variabel konfigurasi aplikasi.
type AppConfig struct {
	Port      string
	Env       string
	MongoMode string
	MongoURI  string
	MongoDB   string

	PublicDir           string
	UploadDir           string
	DefaultProductImage string
	MaxUploadSize       int64
	MaxExtractSize      int64

	AllowedOrigins []string
	CloudinaryURL  string

	AuthRequired    bool
	PasetoSecretKey []byte

	TempSweepInterval time.Duration
	TempMaxAge        time.Duration
}

// Load memuat konfigurasi dari file .env atau environment variables.
func Load() *AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	publicDir := getEnv("PUBLIC_DIR", "public")

	cfg := &AppConfig{
		Port:                getEnv("PORT", "5000"),
		Env:                 getEnv("ENVIRONMENT", "development"),
		MongoMode:           getEnv("MONGO_MODE", "local"),
		MongoDB:             getEnv("MONGO_DB", "imageDB"),
		PublicDir:           publicDir,
		UploadDir:           getEnv("UPLOAD_DIR", filepath.Join(publicDir, "uploads")),
		DefaultProductImage: getEnv("DEFAULT_PRODUCT_IMAGE", "/uploads/default_product.jpg"),
		MaxUploadSize:       getEnvInt64("MAX_UPLOAD_SIZE", 50<<20),
		MaxExtractSize:      getEnvInt64("MAX_EXTRACT_SIZE", 500<<20),
		AllowedOrigins:      splitList(getEnv("ALLOWED_ORIGINS", "*")),
		CloudinaryURL:       getEnv("CLOUDINARY_URL", ""),
		AuthRequired:        getEnvBool("AUTH_REQUIRED", false),
		PasetoSecretKey:     []byte(getEnv("PASETO_SECRET_KEY", "")),
		TempSweepInterval:   getEnvDuration("TEMP_SWEEP_INTERVAL", time.Hour),
		TempMaxAge:          getEnvDuration("TEMP_MAX_AGE", 24*time.Hour),
	}

	// Atur URI MongoDB berdasarkan mode
	if cfg.MongoMode == "atlas" {
		cfg.MongoURI = getEnv("MONGO_URI_ATLAS", "")
	} else {
		cfg.MongoURI = getEnv("MONGO_URI_LOCAL", "mongodb://localhost:27017/imageDB")
	}

	return cfg
}

// Validate memeriksa kombinasi konfigurasi yang tidak bisa dipakai untuk start.
func (cfg *AppConfig) Validate() error {
	if cfg.MongoURI == "" {
		return fmt.Errorf("MONGO_MODE %q but no MongoDB URI is set", cfg.MongoMode)
	}
	if cfg.UploadDir == "" {
		return errors.New("UPLOAD_DIR must not be empty")
	}
	if rel, err := filepath.Rel(cfg.PublicDir, cfg.UploadDir); err != nil || rel == ".." ||
		strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("UPLOAD_DIR %q must be inside PUBLIC_DIR %q", cfg.UploadDir, cfg.PublicDir)
	}
	if cfg.MaxUploadSize <= 0 {
		return errors.New("MAX_UPLOAD_SIZE must be positive")
	}
	if cfg.MaxExtractSize <= 0 {
		return errors.New("MAX_EXTRACT_SIZE must be positive")
	}
	if cfg.AuthRequired && len(cfg.PasetoSecretKey) != 32 {
		return errors.New("PASETO_SECRET_KEY must be 32 characters long when AUTH_REQUIRED is enabled")
	}
	return nil
}

// IsProduction true bila aplikasi berjalan di environment production.
func (cfg *AppConfig) IsProduction() bool {
	return cfg.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %d", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getEnvBool(key string, defaultValue bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %t", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %s", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
