package db

import (
	"context"
	"database/sql"
	"fmt"

	// Postgres driver
	_ "github.com/lib/pq"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OpenPostgres 連線、ping，並建好三張表
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)

	if err := CreateTables(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// CreateTables 建 organizers → events → tickets，外鍵都是 ON DELETE CASCADE
func CreateTables(ctx context.Context, db *sql.DB) error {
	stmts := []struct{ name, sql string }{
		{"organizers", `
	CREATE TABLE IF NOT EXISTS organizers (
		id TEXT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		phone VARCHAR(20) NOT NULL,
		password TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`},
		{"events", `
	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		organizer_id TEXT NOT NULL REFERENCES organizers(id) ON DELETE CASCADE,
		title VARCHAR(255) NOT NULL,
		date TIMESTAMPTZ NOT NULL,
		venue VARCHAR(255) NOT NULL,
		capacity INTEGER NOT NULL CHECK (capacity > 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_events_organizer_id ON events(organizer_id);`},
		{"tickets", `
	CREATE TABLE IF NOT EXISTS tickets (
		id TEXT PRIMARY KEY,
		event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		seat_number VARCHAR(10) NOT NULL,
		price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
		status VARCHAR(16) NOT NULL CHECK (status IN ('available','sold','reserved')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_tickets_event_id ON tickets(event_id);`},
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s.sql); err != nil {
			return fmt.Errorf("create %s table: %w", s.name, err)
		}
	}
	return nil
}

// OpenMongo 連線並 ping；呼叫端負責 Disconnect
func OpenMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	mg, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect: %w", err)
	}
	if err := mg.Ping(ctx, nil); err != nil {
		_ = mg.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return mg, nil
}

// EnsureMongoIndexes 補上 Postgres 那邊由 schema 提供的約束
func EnsureMongoIndexes(ctx context.Context, database *mongo.Database) error {
	if _, err := database.Collection("organizers").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("organizers email index: %w", err)
	}
	if _, err := database.Collection("events").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "organizer_id", Value: 1}},
	}); err != nil {
		return fmt.Errorf("events organizer index: %w", err)
	}
	if _, err := database.Collection("tickets").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "event_id", Value: 1}},
	}); err != nil {
		return fmt.Errorf("tickets event index: %w", err)
	}
	return nil
}
