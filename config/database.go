package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ConnectDB menginisialisasi koneksi ke MongoDB.
func ConnectDB(uri string, mode string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("error connecting to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("error pinging MongoDB: %w", err)
	}

	if mode == "atlas" {
		log.Println("🌐 Successfully connected to MongoDB Atlas")
	} else {
		log.Println("🏠 Successfully connected to Local MongoDB")
	}

	return client, nil
}

// DisconnectDB menutup koneksi MongoDB saat shutdown.
func DisconnectDB(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		log.Printf("❌ Failed to disconnect MongoDB: %v", err)
		return
	}
	log.Println("MongoDB connection closed")
}

// DBPinger membungkus *mongo.Client untuk health check.
type DBPinger struct {
	client *mongo.Client
}

func NewPinger(client *mongo.Client) *DBPinger {
	return &DBPinger{client: client}
}

func (p *DBPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}
