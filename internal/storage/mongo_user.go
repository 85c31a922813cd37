package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"sketch/internal/config"
	"sketch/internal/domain"
)

const usersCollection = "users"

// MongoUserStore implements domain.UserStore on a MongoDB collection.
type MongoUserStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoUser struct {
	ID           string    `bson:"_id"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"password_hash"`
	Role         string    `bson:"role"`
	CreatedAt    time.Time `bson:"created_at"`
}

// OpenMongoUserStore connects, pings, and ensures a unique username index.
func OpenMongoUserStore(ctx context.Context, cfg config.UserStore) (*MongoUserStore, error) {
	uri := buildMongoURI(cfg)
	logURI := uri
	if cfg.Password != "" {
		logURI = strings.ReplaceAll(logURI, cfg.Password, "***")
	}
	log.Printf("[MONGO] Connecting with URI: %s", logURI)

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	dbName := cfg.Database
	if dbName == "" {
		dbName = "sketch"
	}
	coll := client.Database(dbName).Collection(usersCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("create username index: %w", err)
	}
	return &MongoUserStore{client: client, coll: coll}, nil
}

// buildMongoURI prefers an explicit URI and fills in a <password>
// placeholder, the way Atlas connection strings are handed out.
func buildMongoURI(cfg config.UserStore) string {
	if cfg.URI != "" {
		uri := cfg.URI
		if cfg.Password != "" {
			uri = strings.ReplaceAll(uri, "<password>", cfg.Password)
			uri = strings.ReplaceAll(uri, "<db_password>", cfg.Password)
		}
		return uri
	}
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 27017
	}
	if cfg.Username != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%d", cfg.Username, cfg.Password, host, port)
	}
	return fmt.Sprintf("mongodb://%s:%d", host, port)
}

var _ domain.UserStore = (*MongoUserStore)(nil)

func (s *MongoUserStore) FindUser(ctx context.Context, username string) (*domain.User, error) {
	var doc mongoUser
	err := s.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &domain.User{
		ID:           doc.ID,
		Username:     doc.Username,
		PasswordHash: doc.PasswordHash,
		Role:         domain.Role(doc.Role),
		CreatedAt:    doc.CreatedAt,
	}, nil
}

func (s *MongoUserStore) InsertUser(ctx context.Context, username, passwordHash string, role domain.Role) (bool, error) {
	_, err := s.coll.InsertOne(ctx, mongoUser{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         string(role),
		CreatedAt:    time.Now().UTC(),
	})
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("insert user: %w", err)
	}
	return true, nil
}

func (s *MongoUserStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
