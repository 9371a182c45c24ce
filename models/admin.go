package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin adalah pengelola katalog yang boleh menambah produk dan mengunggah
// ZIP saat AUTH_REQUIRED aktif. Password disimpan sebagai hash bcrypt dan
// tidak pernah ikut di response (repository membuangnya lewat projection).
type Admin struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Username  string             `json:"username" bson:"username"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"password,omitempty" bson:"password"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// LoginRequest adalah body JSON POST /api/login; hasilnya token PASETO.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest adalah body JSON POST /api/register. Saat AUTH_REQUIRED
// aktif hanya admin pertama yang boleh mendaftar tanpa token.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}
