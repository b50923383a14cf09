package providerRepo

import (
	"testing"

	"freshnest/models"

	"go.mongodb.org/mongo-driver/bson"
)

func stageName(stage bson.D) string {
	if len(stage) == 0 {
		return ""
	}
	return stage[0].Key
}

func matchFilter(t *testing.T, stage bson.D) bson.M {
	t.Helper()
	if stageName(stage) != "$match" {
		t.Fatalf("stage = %s, want $match", stageName(stage))
	}
	filter, ok := stage[0].Value.(bson.M)
	if !ok {
		t.Fatalf("$match value is %T, want bson.M", stage[0].Value)
	}
	return filter
}

func TestSearchPipelineGeoNearFirst(t *testing.T) {
	pipeline := searchPipeline(SearchCriteria{
		ServiceType:   models.ServiceHouseCleaning,
		LocationGeo:   models.NewGeoPoint(30.27, -97.74),
		MaxDistanceKm: 25,
	})
	if len(pipeline) != 3 {
		t.Fatalf("got %d stages, want geoNear+match+sort", len(pipeline))
	}
	if stageName(pipeline[0]) != "$geoNear" {
		t.Fatalf("first stage = %s, $geoNear must lead the pipeline", stageName(pipeline[0]))
	}

	filter := matchFilter(t, pipeline[1])
	if filter["status"] != models.ProviderActive {
		t.Errorf("status filter = %v, want active", filter["status"])
	}
	if filter["serviceTypes"] != models.ServiceHouseCleaning {
		t.Errorf("serviceTypes filter = %v", filter["serviceTypes"])
	}

	if stageName(pipeline[2]) != "$sort" {
		t.Errorf("last stage = %s, want $sort", stageName(pipeline[2]))
	}
}

func TestSearchPipelineWithoutLocation(t *testing.T) {
	pipeline := searchPipeline(SearchCriteria{ServiceType: models.ServiceLawnCare})
	if len(pipeline) != 2 {
		t.Fatalf("got %d stages, want match+sort without a geo bound", len(pipeline))
	}
	if stageName(pipeline[0]) != "$match" {
		t.Errorf("first stage = %s, want $match", stageName(pipeline[0]))
	}
}

func TestSearchPipelinePreferenceFilters(t *testing.T) {
	veteran := true
	pipeline := searchPipeline(SearchCriteria{
		ServiceType:   models.ServicePlumbing,
		LocationGeo:   models.NewGeoPoint(30.27, -97.74),
		MaxDistanceKm: 10,
		MinRating:     4.5,
		VeteranOwned:  &veteran,
	})

	filter := matchFilter(t, pipeline[1])
	rating, ok := filter["rating"].(bson.M)
	if !ok || rating["$gte"] != 4.5 {
		t.Errorf("rating filter = %v, want $gte 4.5", filter["rating"])
	}
	if filter["veteranOwned"] != true {
		t.Errorf("veteranOwned filter = %v, want true", filter["veteranOwned"])
	}
}

func TestSearchPipelineOmitsUnsetPreferences(t *testing.T) {
	pipeline := searchPipeline(SearchCriteria{
		ServiceType:   models.ServiceHVAC,
		LocationGeo:   models.NewGeoPoint(30.27, -97.74),
		MaxDistanceKm: 10,
	})

	filter := matchFilter(t, pipeline[1])
	if _, present := filter["rating"]; present {
		t.Error("zero MinRating must not add a rating filter")
	}
	if _, present := filter["veteranOwned"]; present {
		t.Error("nil VeteranOwned must not add a veteran filter")
	}
}
