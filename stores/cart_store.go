package stores

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/RKPROGRAMMING10K/ecommerce-backend/configs"
	"github.com/RKPROGRAMMING10K/ecommerce-backend/models"
)

// CartStore wraps the carts collection. Writes replace the whole record;
// there is no item-level locking or versioning, so concurrent mutations of
// the same cart follow last-write-wins.
type CartStore struct {
	coll *mongo.Collection
}

func NewCartStore(db *configs.Database) *CartStore {
	return &CartStore{coll: db.Collection("carts")}
}

// FindByUser returns the user's cart or (nil, nil) when none exists yet.
func (s *CartStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := s.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find cart by user")
	}
	return &cart, nil
}

// Upsert writes the whole cart record, creating it when new.
func (s *CartStore) Upsert(ctx context.Context, cart models.Cart) (models.Cart, error) {
	now := time.Now().UTC()
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": cart.ID}, cart,
		options.Replace().SetUpsert(true))
	if err != nil {
		return models.Cart{}, errors.Wrap(err, "upsert cart")
	}
	return cart, nil
}
