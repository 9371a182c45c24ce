package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"image-upload-backend/middleware"
	"image-upload-backend/models"
	"image-upload-backend/repositories"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Login menangani proses login admin.
func (ctrl *Controller) Login(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if len(ctrl.Config.PasetoSecretKey) != 32 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin login is not configured"})
		return
	}

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, err := ctrl.Admins.FindByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, repositories.ErrAdminNotFound) {
			log.Println("Find admin error:", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := middleware.IssueToken(ctrl.Config.PasetoSecretKey, admin.ID.Hex(), time.Now())
	if err != nil {
		log.Println("Issue token error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	admin.Password = ""
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "admin": admin, "token": token})
}

// Register menangani registrasi admin baru.
// Saat AUTH_REQUIRED aktif, hanya admin pertama yang boleh mendaftar tanpa token.
func (ctrl *Controller) Register(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if ctrl.Config.AuthRequired {
		if _, ok := middleware.AdminID(c); !ok {
			n, err := ctrl.Admins.Count(ctx)
			if err != nil {
				log.Println("Count admins error:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to register admin"})
				return
			}
			if n > 0 {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
				return
			}
		}
	}

	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	admin := &models.Admin{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := ctrl.Admins.Create(ctx, admin); err != nil {
		if errors.Is(err, repositories.ErrAdminExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
			return
		}
		log.Println("Create admin error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to register admin"})
		return
	}

	admin.Password = ""
	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful", "admin": admin})
}

// GetAdmins menangani pengambilan semua data admin.
func (ctrl *Controller) GetAdmins(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	admins, err := ctrl.Admins.FindAll(ctx)
	if err != nil {
		log.Println("Find admins error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to get admins"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"admins": admins})
}
