package controllers

import (
	"net/http"
	"time"

	"image-upload-backend/models"

	"github.com/gin-gonic/gin"
)

// HealthCheck memeriksa status koneksi database.
func (ctrl *Controller) HealthCheck(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	dbStatus := "connected"
	if ctrl.DB == nil || ctrl.DB.Ping(ctx) != nil {
		dbStatus = "disconnected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"database":  dbStatus,
		"timestamp": time.Now().Unix(),
	})
}

// GetStats mengambil data statistik dari aplikasi.
func (ctrl *Controller) GetStats(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	var stats models.Stats
	var err error
	if stats.TotalProducts, err = ctrl.Products.Count(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if stats.TotalAdmins, err = ctrl.Admins.Count(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
