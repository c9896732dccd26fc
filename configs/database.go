package configs

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Database wraps the Mongo client with an explicit lifecycle: opened once at
// startup, handed to the stores, closed at shutdown.
type Database struct {
	client *mongo.Client
	name   string
}

// ConnectDB opens a client, verifies the connection with a ping and returns
// the handle.
func ConnectDB(ctx context.Context, cfg *Config) (*Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, errors.Wrap(err, "connect to MongoDB")
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "ping MongoDB")
	}

	return &Database{client: client, name: cfg.DatabaseName}, nil
}

// Collection returns a handle scoped to the configured database.
func (d *Database) Collection(name string) *mongo.Collection {
	return d.client.Database(d.name).Collection(name)
}

// Disconnect closes the underlying client.
func (d *Database) Disconnect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return d.client.Disconnect(ctx)
}
