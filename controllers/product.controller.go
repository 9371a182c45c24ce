// File: controllers/product.controller.go
package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"image-upload-backend/libs"
	"image-upload-backend/models"

	"github.com/gin-gonic/gin"
)

const imageField = "image"

// AddProduct menangani pembuatan produk baru beserta gambar opsional.
func (ctrl *Controller) AddProduct(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	var input models.ProductInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"msg": "Unable to add the product.", "success": false})
		return
	}
	product := input.ToProduct(ctrl.Config.DefaultProductImage)
	if err := product.Validate(); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"msg": "Unable to add the product.", "success": false})
		return
	}

	var stored *libs.UploadedFile
	header, err := c.FormFile(imageField)
	switch {
	case err == nil:
		stored, err = ctrl.Uploads.Save(c, imageField, header)
		if errors.Is(err, libs.ErrFileTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"msg": err.Error(), "success": false})
			return
		}
		if err != nil {
			log.Println("Image upload error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Unable to store the product image.", "success": false})
			return
		}

		publicPath, err := libs.PublicPath(ctrl.Config.PublicDir, stored.Path)
		if err != nil {
			log.Println("Image path error:", err)
			ctrl.discard(stored)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Unable to store the product image.", "success": false})
			return
		}
		product.ProductImage = publicPath
		ctrl.mirrorImage(ctx, product, stored.Path)
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// tanpa gambar, productImage tetap default
	default:
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Malformed multipart request.", "success": false})
		return
	}

	if err := ctrl.Products.Insert(ctx, product); err != nil {
		log.Println("Insert product error:", err)
		ctrl.discard(stored)
		c.JSON(http.StatusForbidden, gin.H{"msg": "Unable to add the product.", "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "Product added successfully", "product": product, "success": true})
}

// GetProducts menangani pengambilan semua produk.
func (ctrl *Controller) GetProducts(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	products, err := ctrl.Products.FindAll(ctx)
	if err != nil {
		log.Println("Find products error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"msg":     "Unable to get the products please try again later.",
			"success": false,
		})
		return
	}
	c.JSON(http.StatusOK, products)
}

// mirrorImage mengunggah salinan gambar ke Cloudinary bila dikonfigurasi.
// Gagal mirror tidak menggagalkan request; path lokal tetap dipakai.
func (ctrl *Controller) mirrorImage(ctx context.Context, product *models.Product, path string) {
	if ctrl.Mirror == nil {
		return
	}
	url, err := ctrl.Mirror.Mirror(ctx, path)
	if err != nil {
		log.Println("Cloudinary upload error:", err)
		return
	}
	product.ImageURL = url
}

func (ctrl *Controller) discard(file *libs.UploadedFile) {
	if file == nil {
		return
	}
	if err := os.Remove(file.Path); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️  Failed to remove %s: %v", file.Path, err)
	}
}
