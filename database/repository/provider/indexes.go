package providerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ensureIndexes creates indexes for frequently used fields in queries.
func (r *MongoProviderRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	geoIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "locationGeo", Value: "2dsphere"}},
	}
	serviceIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "serviceTypes", Value: 1},
			{Key: "status", Value: 1},
			{Key: "rating", Value: -1},
		},
	}
	idIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{geoIdx, serviceIdx, idIdx}); err != nil {
		return fmt.Errorf("failed to create provider indexes: %w", err)
	}
	return nil
}
