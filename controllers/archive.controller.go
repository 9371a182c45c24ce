// File: controllers/archive.controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"path/filepath"

	"image-upload-backend/libs"
	"image-upload-backend/models"

	"github.com/gin-gonic/gin"
)

const (
	zipField = "zipfile"
	// UploadsRoute adalah prefix URL tempat folder uploads disajikan.
	UploadsRoute = "/uploads"
)

// ExtractZip menangani upload ZIP lalu membongkarnya ke folder per produk.
// Tidak ada record produk yang dibuat di sini.
func (ctrl *Controller) ExtractZip(c *gin.Context) {
	var req models.ExtractRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Malformed form data.", "success": false})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error(), "success": false})
		return
	}

	header, err := c.FormFile(zipField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "A zip file is required in the 'zipfile' field.", "success": false})
		return
	}

	stored, err := ctrl.Uploads.Save(c, zipField, header)
	if errors.Is(err, libs.ErrFileTooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": err.Error(), "success": false})
		return
	}
	if err != nil {
		log.Println("Zip upload error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to store the uploaded file.", "success": false})
		return
	}

	dest := filepath.Join(ctrl.Uploads.Dir(), req.ProductName)
	if _, err := libs.ExtractAndRemove(stored.Path, dest, ctrl.Config.MaxExtractSize); err != nil {
		if errors.Is(err, libs.ErrInvalidArchive) || errors.Is(err, libs.ErrUnsafeEntry) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error(), "success": false})
			return
		}
		log.Println("Zip extract error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to extract the zip file.", "success": false})
		return
	}

	files, err := libs.ListImages(dest, UploadsRoute+"/"+url.PathEscape(req.ProductName))
	if err != nil {
		log.Println("Read extracted folder error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to read the extracted files.", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": files, "message": "File uploaded successfully"})
}
