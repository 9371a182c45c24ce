package repositories

import (
	"context"
	"fmt"
	"time"

	"image-upload-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const productsCollection = "products"

// ProductRepository adalah penyimpanan dokumen produk.
type ProductRepository interface {
	Insert(ctx context.Context, product *models.Product) error
	FindAll(ctx context.Context) ([]models.Product, error)
	Count(ctx context.Context) (int64, error)
}

type mongoProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepository{coll: db.Collection(productsCollection)}
}

// Insert memvalidasi field wajib lalu menyimpan produk dengan ID baru.
func (r *mongoProductRepository) Insert(ctx context.Context, product *models.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		product.ID = primitive.NilObjectID
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *mongoProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func (r *mongoProductRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}
