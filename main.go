package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"image-upload-backend/config"
	"image-upload-backend/controllers"
	"image-upload-backend/jobs"
	"image-upload-backend/libs"
	"image-upload-backend/repositories"
	"image-upload-backend/routes"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	client, err := config.ConnectDB(cfg.MongoURI, cfg.MongoMode)
	if err != nil {
		log.Printf("❌ Failed to connect to MongoDB: %v", err)
		log.Fatal("Exiting due to MongoDB connection failure")
	}
	defer config.DisconnectDB(client)
	db := client.Database(cfg.MongoDB)

	if err := os.MkdirAll(cfg.UploadDir, os.ModePerm); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	var mirror libs.ImageMirror
	if cfg.CloudinaryURL != "" {
		cld, err := libs.NewCloudinaryMirror(cfg.CloudinaryURL, "products")
		if err != nil {
			log.Fatalf("Failed to init Cloudinary: %v", err)
		}
		mirror = cld
		log.Println("☁️  Cloudinary mirror enabled")
	}

	ctrl := controllers.New(
		cfg,
		repositories.NewProductRepository(db),
		repositories.NewAdminRepository(db),
		config.NewPinger(client),
		mirror,
	)
	r := routes.Setup(ctrl)

	sweeper, err := jobs.NewSweeper(cfg.UploadDir, cfg.TempSweepInterval, cfg.TempMaxAge)
	if err != nil {
		log.Fatalf("Failed to create sweeper: %v", err)
	}
	sweeper.Start()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("🚀 Server started on PORT %s", cfg.Port)
		log.Printf("📁 Upload folder: %s", cfg.UploadDir)
		if cfg.AuthRequired {
			log.Println("🔐 Admin token required for write endpoints")
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if err := sweeper.Stop(); err != nil {
		log.Printf("Sweeper shutdown error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
