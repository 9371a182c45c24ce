package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/o1egl/paseto"
)

const (
	// TokenFooter ditempel pada setiap token admin.
	TokenFooter = "image-upload-admin"
	// TokenTTL adalah masa berlaku token admin.
	TokenTTL = 24 * time.Hour

	adminIDKey = "adminID"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// IssueToken membuat token PASETO v2 untuk admin dengan id tertentu.
func IssueToken(key []byte, adminID string, now time.Time) (string, error) {
	jsonToken := paseto.JSONToken{
		Subject:    adminID,
		IssuedAt:   now,
		NotBefore:  now,
		Expiration: now.Add(TokenTTL),
	}
	return paseto.NewV2().Encrypt(key, jsonToken, TokenFooter)
}

// VerifyToken mendekripsi token dan mengembalikan subject (id admin).
func VerifyToken(key []byte, token string, now time.Time) (string, error) {
	var jsonToken paseto.JSONToken
	var footer string
	if err := paseto.NewV2().Decrypt(token, key, &jsonToken, &footer); err != nil {
		return "", ErrInvalidToken
	}
	if footer != TokenFooter {
		return "", ErrInvalidToken
	}
	if err := jsonToken.Validate(paseto.ValidAt(now)); err != nil {
		return "", ErrInvalidToken
	}
	if jsonToken.Subject == "" {
		return "", ErrInvalidToken
	}
	return jsonToken.Subject, nil
}

// ParseAdmin membaca header Authorization bila ada dan menyimpan id admin
// ke context. Request tanpa token tetap diteruskan. Token yang tidak valid
// hanya ditolak bila strict; selain itu request diteruskan tanpa admin.
func ParseAdmin(key []byte, strict bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || len(key) == 0 {
			c.Next()
			return
		}

		adminID, err := VerifyToken(key, strings.TrimSpace(token), time.Now())
		if err != nil {
			if strict {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
				return
			}
			c.Next()
			return
		}
		c.Set(adminIDKey, adminID)
		c.Next()
	}
}

// RequireAdmin menolak request yang tidak membawa token admin valid.
// Harus dipasang setelah ParseAdmin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := AdminID(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Next()
	}
}

// AdminID mengembalikan id admin yang sudah diverifikasi ParseAdmin.
func AdminID(c *gin.Context) (string, bool) {
	id := c.GetString(adminIDKey)
	return id, id != ""
}
