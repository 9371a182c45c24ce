package models

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrMissingField dikembalikan bila field wajib Product kosong.
var ErrMissingField = errors.New("product name and description are required")

// ErrInvalidProductName dikembalikan bila productName tidak aman dipakai sebagai nama folder.
var ErrInvalidProductName = errors.New("productName must be a non-empty folder name without path separators or '..'")

// Product mendefinisikan struktur untuk produk.
type Product struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Description  string             `json:"description" bson:"description"`
	ProductImage string             `json:"productImage" bson:"productImage"`
	ImageURL     string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}

// Validate memastikan name dan description terisi sebelum disimpan.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Description) == "" {
		return ErrMissingField
	}
	return nil
}

// ProductInput adalah field form yang diterima saat membuat produk.
// Field lain pada request diabaikan.
type ProductInput struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description" binding:"required"`
}

// ToProduct membangun Product baru dengan gambar default.
func (in ProductInput) ToProduct(defaultImage string) *Product {
	return &Product{
		Name:         strings.TrimSpace(in.Name),
		Description:  strings.TrimSpace(in.Description),
		ProductImage: defaultImage,
	}
}

// ExtractRequest adalah field form untuk ekstraksi ZIP.
type ExtractRequest struct {
	ProductName string `form:"productName"`
}

// Validate menolak nama kosong dan nama yang bisa keluar dari folder uploads.
func (r ExtractRequest) Validate() error {
	name := r.ProductName
	switch {
	case strings.TrimSpace(name) == "":
		return ErrInvalidProductName
	case name == "." || strings.Contains(name, ".."):
		return ErrInvalidProductName
	case strings.ContainsAny(name, `/\`+"\x00"):
		return ErrInvalidProductName
	}
	return nil
}

// Stats mendefinisikan struktur untuk statistik aplikasi.
type Stats struct {
	TotalProducts int64 `json:"total_products"`
	TotalAdmins   int64 `json:"total_admins"`
}
