package stores

import (
	"context"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/RKPROGRAMMING10K/ecommerce-backend/configs"
	"github.com/RKPROGRAMMING10K/ecommerce-backend/models"
)

// ProductFilter narrows a listing. Category and Search are case-insensitive
// substring matches; Search applies to name or description.
type ProductFilter struct {
	Category string
	Search   string
	Skip     int64
	Limit    int64
}

// CatalogStats is the aggregate view served by the admin stats endpoint.
// AveragePrice is the raw mean; rounding is left to the caller.
type CatalogStats struct {
	TotalProducts      int64
	Categories         []string
	ProductsWithImages int64
	AveragePrice       float64
}

// ProductStore wraps the products collection.
type ProductStore struct {
	coll *mongo.Collection
}

func NewProductStore(db *configs.Database) *ProductStore {
	return &ProductStore{coll: db.Collection("products")}
}

// EnsureIndexes creates the text index backing name/description search.
func (s *ProductStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "name", Value: "text"},
			{Key: "description", Value: "text"},
		},
	})
	return errors.Wrap(err, "create product text index")
}

func substringMatch(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}

func (f ProductFilter) query() bson.M {
	query := bson.M{}
	if f.Category != "" {
		query["category"] = substringMatch(f.Category)
	}
	if f.Search != "" {
		re := substringMatch(f.Search)
		query["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
		}
	}
	return query
}

// Find returns one page of matching products, newest first, along with the
// total match count.
func (s *ProductStore) Find(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	query := f.query()

	total, err := s.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count products")
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(f.Skip).
		SetLimit(f.Limit)

	cursor, err := s.coll.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, errors.Wrap(err, "find products")
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, errors.Wrap(err, "decode products")
	}
	return products, total, nil
}

// FindByID returns the product or (nil, nil) when absent.
func (s *ProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find product by id")
	}
	return &product, nil
}

// FindByIDs returns the products matching any of the given ids.
func (s *ProductStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, errors.Wrap(err, "find products by ids")
	}
	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return products, nil
}

// FindByName looks up a product by exact name, optionally excluding one id
// (pass primitive.NilObjectID for no exclusion). Returns (nil, nil) when
// absent.
func (s *ProductStore) FindByName(ctx context.Context, name string, exclude primitive.ObjectID) (*models.Product, error) {
	query := bson.M{"name": name}
	if exclude != primitive.NilObjectID {
		query["_id"] = bson.M{"$ne": exclude}
	}

	var product models.Product
	err := s.coll.FindOne(ctx, query).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find product by name")
	}
	return &product, nil
}

// FindByNames returns every product whose name is in the given set.
func (s *ProductStore) FindByNames(ctx context.Context, names []string) ([]models.Product, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"name": bson.M{"$in": names}})
	if err != nil {
		return nil, errors.Wrap(err, "find products by names")
	}
	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return products, nil
}

// Insert stores a new product, stamping id and timestamps.
func (s *ProductStore) Insert(ctx context.Context, product models.Product) (models.Product, error) {
	now := time.Now().UTC()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := s.coll.InsertOne(ctx, product); err != nil {
		return models.Product{}, errors.Wrap(err, "insert product")
	}
	return product, nil
}

// InsertMany stores a batch of new products, stamping each one.
func (s *ProductStore) InsertMany(ctx context.Context, products []models.Product) ([]models.Product, error) {
	now := time.Now().UTC()
	docs := make([]interface{}, len(products))
	for i := range products {
		products[i].ID = primitive.NewObjectID()
		products[i].CreatedAt = now
		products[i].UpdatedAt = now
		docs[i] = products[i]
	}

	if _, err := s.coll.InsertMany(ctx, docs); err != nil {
		return nil, errors.Wrap(err, "insert products")
	}
	return products, nil
}

// Replace overwrites the stored record with the given one, bumping
// updatedAt.
func (s *ProductStore) Replace(ctx context.Context, product models.Product) (models.Product, error) {
	product.UpdatedAt = time.Now().UTC()
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return models.Product{}, errors.Wrap(err, "replace product")
	}
	return product, nil
}

// Delete removes the product by id.
func (s *ProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return errors.Wrap(err, "delete product")
}

// DeleteAll wipes the collection and reports how many records went away.
func (s *ProductStore) DeleteAll(ctx context.Context) (int64, error) {
	result, err := s.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, errors.Wrap(err, "delete all products")
	}
	return result.DeletedCount, nil
}

// Categories returns the distinct category values, unsorted.
func (s *ProductStore) Categories(ctx context.Context) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "distinct categories")
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

// Stats computes the aggregate catalog view.
func (s *ProductStore) Stats(ctx context.Context) (CatalogStats, error) {
	var stats CatalogStats

	total, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return stats, errors.Wrap(err, "count products")
	}
	stats.TotalProducts = total

	categories, err := s.Categories(ctx)
	if err != nil {
		return stats, err
	}
	stats.Categories = categories

	withImages, err := s.coll.CountDocuments(ctx, bson.M{"image": bson.M{"$ne": nil}})
	if err != nil {
		return stats, errors.Wrap(err, "count products with images")
	}
	stats.ProductsWithImages = withImages

	cursor, err := s.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":      nil,
			"avgPrice": bson.M{"$avg": "$price"},
		}}},
	})
	if err != nil {
		return stats, errors.Wrap(err, "aggregate average price")
	}

	var result []struct {
		AvgPrice float64 `bson:"avgPrice"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return stats, errors.Wrap(err, "decode average price")
	}
	if len(result) > 0 {
		stats.AveragePrice = result[0].AvgPrice
	}
	return stats, nil
}
