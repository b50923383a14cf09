package providerRepo

import (
	"fmt"
	"time"

	"freshnest/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Search runs a geo-bounded directory query. $geoNear must be the first pipeline
// stage; the remaining stages filter on service type, status and preferences.
func (r *MongoProviderRepo) Search(criteria SearchCriteria) ([]models.Provider, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, searchPipeline(criteria))
	if err != nil {
		return nil, fmt.Errorf("directory search failed: %w", err)
	}
	defer cursor.Close(ctx)

	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, nil
}

func searchPipeline(criteria SearchCriteria) mongo.Pipeline {
	var pipeline mongo.Pipeline

	if criteria.MaxDistanceKm > 0 && len(criteria.LocationGeo.Coordinates) == 2 {
		pipeline = append(pipeline, bson.D{
			{Key: "$geoNear", Value: bson.D{
				{Key: "near", Value: bson.D{
					{Key: "type", Value: "Point"},
					{Key: "coordinates", Value: criteria.LocationGeo.Coordinates},
				}},
				{Key: "distanceField", Value: "distance"},
				{Key: "spherical", Value: true},
				{Key: "maxDistance", Value: criteria.MaxDistanceKm * 1000},
			}},
		})
	}

	matchFilter := bson.M{
		"status": models.ProviderActive,
	}
	if criteria.ServiceType != "" {
		matchFilter["serviceTypes"] = criteria.ServiceType
	}
	if criteria.MinRating > 0 {
		matchFilter["rating"] = bson.M{"$gte": criteria.MinRating}
	}
	if criteria.VeteranOwned != nil {
		matchFilter["veteranOwned"] = *criteria.VeteranOwned
	}
	pipeline = append(pipeline, bson.D{{Key: "$match", Value: matchFilter}})

	// Nearest first; scoring downstream re-ranks, this just bounds the candidate set.
	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{
		{Key: "distance", Value: 1},
		{Key: "rating", Value: -1},
	}}})

	return pipeline
}
