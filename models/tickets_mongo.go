package models

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// price 存成字串，避免 float 誤差
type ticketDoc struct {
	ID         string    `bson:"_id"`
	SeatNumber string    `bson:"seat_number"`
	Price      string    `bson:"price"`
	Status     string    `bson:"status"`
	EventID    string    `bson:"event_id"`
	CreatedAt  time.Time `bson:"created_at"`
}

func (d ticketDoc) ticket() (Ticket, error) {
	price, err := decimal.NewFromString(d.Price)
	if err != nil {
		return Ticket{}, err
	}
	return Ticket{
		ID:         d.ID,
		SeatNumber: d.SeatNumber,
		Price:      price,
		Status:     TicketStatus(d.Status),
		EventID:    d.EventID,
	}, nil
}

type mongoTicketRepo struct {
	col *mongo.Collection
}

func NewMongoTicketRepository(col *mongo.Collection) TicketRepository {
	return &mongoTicketRepo{col: col}
}

func (r *mongoTicketRepo) GetAll(ctx context.Context) ([]Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Ticket{}
	for cur.Next(ctx) {
		var d ticketDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		t, err := d.ticket()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, cur.Err()
}

func (r *mongoTicketRepo) GetByID(ctx context.Context, id string) (Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	var d ticketDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Ticket{}, ErrNotFound
		}
		return Ticket{}, err
	}
	return d.ticket()
}

func (r *mongoTicketRepo) Create(ctx context.Context, t *Ticket) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, ticketDoc{
		ID:         t.ID,
		SeatNumber: t.SeatNumber,
		Price:      t.Price.String(),
		Status:     string(t.Status),
		EventID:    t.EventID,
		CreatedAt:  time.Now().UTC(),
	})
	return err
}

func (r *mongoTicketRepo) Update(ctx context.Context, t *Ticket) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": t.ID}, bson.M{"$set": bson.M{
		"seat_number": t.SeatNumber,
		"price":       t.Price.String(),
		"status":      string(t.Status),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoTicketRepo) Delete(ctx context.Context, id string) error {
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

func (r *mongoTicketRepo) DeleteByEvent(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"event_id": eventID})
	return err
}
