package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"image-upload-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const adminsCollection = "admins"

var (
	ErrAdminNotFound = errors.New("admin not found")
	ErrAdminExists   = errors.New("username already exists")
)

type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	FindByUsername(ctx context.Context, username string) (*models.Admin, error)
	FindAll(ctx context.Context) ([]models.Admin, error)
	Count(ctx context.Context) (int64, error)
}

type mongoAdminRepository struct {
	coll *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) AdminRepository {
	return &mongoAdminRepository{coll: db.Collection(adminsCollection)}
}

// Create menyimpan admin baru; username harus unik.
func (r *mongoAdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	if _, err := r.FindByUsername(ctx, admin.Username); err == nil {
		return ErrAdminExists
	} else if !errors.Is(err, ErrAdminNotFound) {
		return err
	}

	admin.ID = primitive.NewObjectID()
	admin.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := r.coll.InsertOne(ctx, admin); err != nil {
		admin.ID = primitive.NilObjectID
		if mongo.IsDuplicateKeyError(err) {
			return ErrAdminExists
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

func (r *mongoAdminRepository) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return &admin, nil
}

// FindAll mengembalikan semua admin tanpa field password.
func (r *mongoAdminRepository) FindAll(ctx context.Context) ([]models.Admin, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"password": 0}))
	if err != nil {
		return nil, fmt.Errorf("find admins: %w", err)
	}
	defer cursor.Close(ctx)

	admins := []models.Admin{}
	if err := cursor.All(ctx, &admins); err != nil {
		return nil, fmt.Errorf("decode admins: %w", err)
	}
	return admins, nil
}

func (r *mongoAdminRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return n, nil
}
