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

// OrderStore wraps the orders collection. Orders are insert-only.
type OrderStore struct {
	coll *mongo.Collection
}

func NewOrderStore(db *configs.Database) *OrderStore {
	return &OrderStore{coll: db.Collection("orders")}
}

// Insert stores a new order, stamping id and creation time.
func (s *OrderStore) Insert(ctx context.Context, order models.Order) (models.Order, error) {
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now().UTC()

	if _, err := s.coll.InsertOne(ctx, order); err != nil {
		return models.Order{}, errors.Wrap(err, "insert order")
	}
	return order, nil
}

// FindByUser returns the user's orders, newest first.
func (s *OrderStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "find orders by user")
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, errors.Wrap(err, "decode orders")
	}
	return orders, nil
}

// FindByOrderID looks up an order by its display id, scoped to the owner.
// Returns (nil, nil) when absent or owned by someone else.
func (s *OrderStore) FindByOrderID(ctx context.Context, userID primitive.ObjectID, orderID string) (*models.Order, error) {
	var order models.Order
	err := s.coll.FindOne(ctx, bson.M{"orderId": orderID, "userId": userID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find order by order id")
	}
	return &order, nil
}
