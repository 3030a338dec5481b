package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tarcanfarm/farm-backend/internal/models"
)

// MongoWeather keeps the weather audit log in a Mongo collection. The
// payload is an opaque JSON blob that is only ever written once and read
// back by the history listing, which is what a document store is for here;
// the relational entities stay in Postgres.
type MongoWeather struct {
	coll *mongo.Collection
}

func NewMongoWeather(coll *mongo.Collection) *MongoWeather {
	return &MongoWeather{coll: coll}
}

type weatherDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Location  string    `bson:"location"`
	Data      string    `bson:"data"`
	Timestamp time.Time `bson:"timestamp"`
}

func (d weatherDoc) model() (models.WeatherHistory, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return models.WeatherHistory{}, err
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return models.WeatherHistory{}, err
	}
	return models.WeatherHistory{
		ID:        id,
		UserID:    userID,
		Location:  d.Location,
		Data:      json.RawMessage(d.Data),
		Timestamp: d.Timestamp,
	}, nil
}

func (s *MongoWeather) AppendWeather(ctx context.Context, n NewWeather) (*models.WeatherHistory, error) {
	w := models.WeatherHistory{
		ID:        uuid.New(),
		UserID:    n.UserID,
		Timestamp: time.Now().UTC(),
		Location:  n.Location,
		Data:      n.Data,
	}
	_, err := s.coll.InsertOne(ctx, weatherDoc{
		ID:        w.ID.String(),
		UserID:    w.UserID.String(),
		Location:  w.Location,
		Data:      string(w.Data),
		Timestamp: w.Timestamp,
	})
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *MongoWeather) WeatherByUser(ctx context.Context, userID uuid.UUID) ([]models.WeatherHistory, error) {
	findOptions := options.Find().SetSort(bson.M{"timestamp": 1})
	cursor, err := s.coll.Find(ctx, bson.M{"user_id": userID.String()}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []weatherDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.WeatherHistory, 0, len(docs))
	for _, d := range docs {
		w, err := d.model()
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}
