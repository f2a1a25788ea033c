package archiver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/rs/zerolog/log"
	"github.com/velotrace/velotrace/pkg/analyser"
	"github.com/velotrace/velotrace/pkg/btd"
	"github.com/velotrace/velotrace/pkg/database"
	"github.com/velotrace/velotrace/pkg/elastic_client"
	"github.com/velotrace/velotrace/pkg/redis_client"
	"github.com/velotrace/velotrace/pkg/snapshots"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const numConsumers = 2
const batchSize = 20

const speedingEventsIndexName = "velotrace-speeding-1"

var lastPositionCache *cache.Cache[string]

// lastPosition is the per-vehicle state kept between captures so a freshly
// consumed position can be turned into a motion segment.
type lastPosition struct {
	Lat       float64
	Lon       float64
	Timestamp string
}

func createLastPositionCache() {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(90*time.Minute))

	lastPositionCache = cache.New[string](redisStore)
}

// StartConsumers runs the background consumers that drain the positions
// queue into MongoDB and flag speeding vehicles as captures arrive.
func StartConsumers(matcher *analyser.NearestReferenceMatcher, options analyser.Options) {
	createLastPositionCache()

	log.Info().Msg("Starting position archive consumers")

	queue, err := redis_client.QueueConnection.OpenQueue("positions-queue")
	if err != nil {
		panic(err)
	}
	if err := queue.StartConsuming(numConsumers*batchSize, 1*time.Second); err != nil {
		panic(err)
	}

	for i := 0; i < numConsumers; i++ {
		consumerName := fmt.Sprintf("positions-queue-%d", i)
		if _, err := queue.AddBatchConsumer(consumerName, batchSize, 2*time.Second, NewBatchConsumer(i, matcher, options)); err != nil {
			panic(err)
		}
	}
}

type BatchConsumer struct {
	id int

	matcher *analyser.NearestReferenceMatcher
	options analyser.Options
}

func NewBatchConsumer(id int, matcher *analyser.NearestReferenceMatcher, options analyser.Options) *BatchConsumer {
	return &BatchConsumer{id: id, matcher: matcher, options: options}
}

func (consumer *BatchConsumer) Consume(batch rmq.Deliveries) {
	var positionOperations []mongo.WriteModel

	for _, payload := range batch.Payloads() {
		snapshot, err := snapshots.DecodeSnapshot([]byte(payload))
		if err != nil {
			log.Error().Err(err).Msg("Failed to decode queued capture")
			continue
		}

		for _, position := range snapshot.Positions {
			if !position.HasVehicleNumber() {
				continue
			}

			document := positionDocument{
				VehicleNumber: position.VehicleNumber,
				Lines:         position.Lines,
				Brigade:       position.Brigade,
				Timestamp:     position.Timestamp,
				Location:      btd.NewPointLocation(position.Lat, position.Lon),
				ReceivedAt:    time.Now(),
			}
			positionOperations = append(positionOperations,
				mongo.NewInsertOneModel().SetDocument(document))

			consumer.checkSpeeding(position)
		}
	}

	if len(positionOperations) > 0 {
		positionsCollection := database.GetCollection("vehicle_positions")

		startTime := time.Now()
		_, err := positionsCollection.BulkWrite(context.Background(), positionOperations, &options.BulkWriteOptions{})
		if err != nil {
			log.Error().Err(err).Msg("Failed to bulk write vehicle positions")
		} else {
			log.Info().
				Int("Length", len(positionOperations)).
				Str("Time", time.Since(startTime).String()).
				Msg("Bulk write")
		}
	}

	if ackErrors := batch.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Error().Err(err).Msg("Failed to ack archived capture")
		}
	}
}

type positionDocument struct {
	VehicleNumber string
	Lines         []string
	Brigade       string
	Timestamp     string
	Location      btd.Location
	ReceivedAt    time.Time
}

// checkSpeeding joins the position against the vehicle's cached previous
// position and records a speeding event when the segment speed reaches the
// comparison threshold.
func (consumer *BatchConsumer) checkSpeeding(position btd.VehiclePosition) {
	cacheKey := fmt.Sprintf("lastposition/%s", position.VehicleNumber)

	defer func() {
		updated, _ := json.Marshal(lastPosition{
			Lat:       position.Lat,
			Lon:       position.Lon,
			Timestamp: position.Timestamp,
		})
		if err := lastPositionCache.Set(context.Background(), cacheKey, string(updated)); err != nil {
			log.Debug().Err(err).Msg("Failed to cache vehicle position")
		}
	}()

	cached, err := lastPositionCache.Get(context.Background(), cacheKey)
	if err != nil {
		return // first sighting of this vehicle
	}

	var previous lastPosition
	if err := json.Unmarshal([]byte(cached), &previous); err != nil {
		return
	}

	elapsedHours, err := btd.HoursBetween(previous.Timestamp, position.Timestamp)
	if err != nil || elapsedHours <= 0 {
		return
	}

	speedKmh := btd.HaversineDistance(previous.Lat, previous.Lon, position.Lat, position.Lon) / elapsedHours
	if speedKmh < consumer.options.ComparisonSpeedKmh {
		return
	}

	event := btd.SpeedingEvent{
		VehicleNumber: position.VehicleNumber,
		Lines:         position.Lines,
		Brigade:       position.Brigade,
		Timestamp:     position.Timestamp,
		Location:      btd.NewPointLocation(position.Lat, position.Lon),
		SpeedKmh:      speedKmh,
	}

	if consumer.matcher != nil {
		resolved, err := consumer.matcher.Match([]btd.SpeedingEvent{event})
		if err == nil {
			event = resolved[0]
		}
	}

	eventsCollection := database.GetCollection("speeding_events")
	if _, err := eventsCollection.InsertOne(context.Background(), event); err != nil {
		log.Error().Err(err).Msg("Failed to insert speeding event")
	}

	eventJSON, _ := json.Marshal(event)
	elastic_client.IndexRequest(speedingEventsIndexName, bytes.NewReader(eventJSON))

	log.Info().
		Str("vehicle", position.VehicleNumber).
		Float64("speed", speedKmh).
		Str("street", event.StreetName).
		Msg("Speeding vehicle observed")
}
