package providerRepo

import (
	"context"
	"fmt"
	"log"
	"time"

	"freshnest/database"
	"freshnest/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo creates a new instance of ProviderRepository using MongoDB.
func NewMongoProviderRepo() ProviderRepository {
	coll := database.MongoClient.Database("freshnest").Collection("providers")
	repo := &MongoProviderRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		// Queries still work without indexes, just slower.
		log.Printf("provider repo: ensureIndexes: %v", err)
	}
	return repo
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func (r *MongoProviderRepo) GetByID(id string) (*models.Provider, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	var provider models.Provider
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&provider); err != nil {
		return nil, fmt.Errorf("failed to fetch provider with id %s: %w", id, err)
	}
	return &provider, nil
}

func (r *MongoProviderRepo) GetAll() ([]models.Provider, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve providers: %w", err)
	}
	defer cursor.Close(ctx)
	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, nil
}

// Create inserts a new provider document.
func (r *MongoProviderRepo) Create(provider *models.Provider) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	provider.CreatedAt = time.Now()
	provider.UpdatedAt = provider.CreatedAt
	if _, err := r.coll.InsertOne(ctx, provider); err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

// Update modifies an existing provider document.
func (r *MongoProviderRepo) Update(provider *models.Provider) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	provider.UpdatedAt = time.Now()
	filter := bson.M{"id": provider.ID}
	update := bson.M{"$set": provider}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update provider with id %s: %w", provider.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("provider with id %s not found", provider.ID)
	}
	return nil
}
