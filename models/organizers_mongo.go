package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type organizerDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Phone     string    `bson:"phone"`
	Password  string    `bson:"password"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d organizerDoc) organizer() Organizer {
	return Organizer{ID: d.ID, Name: d.Name, Email: d.Email, Phone: d.Phone, Password: d.Password}
}

type mongoOrganizerRepo struct {
	col *mongo.Collection
}

// email 的唯一性靠 db.EnsureMongoIndexes 建的 unique index
func NewMongoOrganizerRepository(col *mongo.Collection) OrganizerRepository {
	return &mongoOrganizerRepo{col: col}
}

func (r *mongoOrganizerRepo) GetAll(ctx context.Context) ([]Organizer, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Organizer{}
	for cur.Next(ctx) {
		var d organizerDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.organizer())
	}
	return out, cur.Err()
}

func (r *mongoOrganizerRepo) GetByID(ctx context.Context, id string) (Organizer, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoOrganizerRepo) GetByEmail(ctx context.Context, email string) (Organizer, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoOrganizerRepo) findOne(ctx context.Context, filter bson.M) (Organizer, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	var d organizerDoc
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Organizer{}, ErrNotFound
		}
		return Organizer{}, err
	}
	return d.organizer(), nil
}

func (r *mongoOrganizerRepo) Create(ctx context.Context, o *Organizer) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, organizerDoc{
		ID:        o.ID,
		Name:      o.Name,
		Email:     o.Email,
		Phone:     o.Phone,
		Password:  o.Password,
		CreatedAt: time.Now().UTC(),
	})
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *mongoOrganizerRepo) Update(ctx context.Context, o *Organizer) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": o.ID}, bson.M{"$set": bson.M{
		"name":     o.Name,
		"email":    o.Email,
		"phone":    o.Phone,
		"password": o.Password,
	}})
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoOrganizerRepo) Delete(ctx context.Context, id string) error {
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
