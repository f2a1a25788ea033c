package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func createIndexes() {
	createIndexesForCollection("vehicle_positions", []mongo.IndexModel{
		{Keys: bson.D{{Key: "vehiclenumber", Value: 1}}},
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
	})

	createIndexesForCollection("speeding_events", []mongo.IndexModel{
		{Keys: bson.D{{Key: "vehiclenumber", Value: 1}}},
		{Keys: bson.D{{Key: "streetname", Value: 1}}},
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
	})
}

func createIndexesForCollection(collectionName string, indexes []mongo.IndexModel) {
	collection := GetCollection(collectionName)

	_, err := collection.Indexes().CreateMany(context.Background(), indexes)
	if err != nil {
		log.Error().Err(err).Str("collection", collectionName).Msg("Failed to create indexes")
	}
}
