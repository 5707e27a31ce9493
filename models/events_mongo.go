package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoTimeout = 5 * time.Second

type eventDoc struct {
	ID          string    `bson:"_id"`
	Title       string    `bson:"title"`
	Date        time.Time `bson:"date"`
	Venue       string    `bson:"venue"`
	Capacity    int       `bson:"capacity"`
	OrganizerID string    `bson:"organizer_id"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (d eventDoc) event() Event {
	return Event{
		ID:          d.ID,
		Title:       d.Title,
		Date:        d.Date.UTC(),
		Venue:       d.Venue,
		Capacity:    d.Capacity,
		OrganizerID: d.OrganizerID,
	}
}

type mongoEventRepo struct {
	col *mongo.Collection
}

func NewMongoEventRepository(col *mongo.Collection) EventRepository {
	return &mongoEventRepo{col: col}
}

func (r *mongoEventRepo) GetAll(ctx context.Context) ([]Event, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoEventRepo) ListByOrganizer(ctx context.Context, organizerID string) ([]Event, error) {
	return r.find(ctx, bson.M{"organizer_id": organizerID})
}

func (r *mongoEventRepo) find(ctx context.Context, filter bson.M) ([]Event, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Event{}
	for cur.Next(ctx) {
		var d eventDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.event())
	}
	return out, cur.Err()
}

func (r *mongoEventRepo) GetByID(ctx context.Context, id string) (Event, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	var d eventDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Event{}, ErrNotFound
		}
		return Event{}, err
	}
	return d.event(), nil
}

func (r *mongoEventRepo) Create(ctx context.Context, e *Event) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, eventDoc{
		ID:          e.ID,
		Title:       e.Title,
		Date:        e.Date,
		Venue:       e.Venue,
		Capacity:    e.Capacity,
		OrganizerID: e.OrganizerID,
		CreatedAt:   time.Now().UTC(),
	})
	return err
}

func (r *mongoEventRepo) Update(ctx context.Context, e *Event) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": e.ID}, bson.M{"$set": bson.M{
		"title":        e.Title,
		"date":         e.Date,
		"venue":        e.Venue,
		"capacity":     e.Capacity,
		"organizer_id": e.OrganizerID,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoEventRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
