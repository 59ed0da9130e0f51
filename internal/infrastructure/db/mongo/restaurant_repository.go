package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dinebook/reservation-system/internal/core/domain"
)

const collectionRestaurants = "restaurants"

type RestaurantRepository struct {
	col *mongo.Collection
}

func NewRestaurantRepository(db *mongo.Database) *RestaurantRepository {
	return &RestaurantRepository{col: db.Collection(collectionRestaurants)}
}

// Create inserts a new restaurant document with a generated id.
func (r *RestaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	restaurant.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var restaurant domain.Restaurant
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&restaurant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

func (r *RestaurantRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.Restaurant, error) {
	return r.findAll(ctx, bson.M{"owner_id": ownerID})
}

func (r *RestaurantRepository) List(ctx context.Context) ([]domain.Restaurant, error) {
	return r.findAll(ctx, bson.M{})
}

// SearchByLocation matches the location field case-insensitively as a
// substring. An empty query returns the full collection.
func (r *RestaurantRepository) SearchByLocation(ctx context.Context, q string) ([]domain.Restaurant, error) {
	return r.findAll(ctx, containsFilter("location", q))
}

// SearchByCuisine matches the cuisine field case-insensitively as a
// substring. An empty query returns the full collection.
func (r *RestaurantRepository) SearchByCuisine(ctx context.Context, q string) ([]domain.Restaurant, error) {
	return r.findAll(ctx, containsFilter("cuisine", q))
}

func containsFilter(field, q string) bson.M {
	if q == "" {
		return bson.M{}
	}
	return bson.M{field: bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"}}
}

// findAll returns matches in insertion order (the collection's natural
// order); no sort stage is applied.
func (r *RestaurantRepository) findAll(ctx context.Context, filter bson.M) ([]domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	restaurants := []domain.Restaurant{}
	if err := cur.All(ctx, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *RestaurantRepository) Update(ctx context.Context, restaurant *domain.Restaurant) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": restaurant.ID}, restaurant)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}

func (r *RestaurantRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"available":  available,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}

func (r *RestaurantRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the restaurants collection.
func (r *RestaurantRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "location", Value: 1}}},
		{Keys: bson.D{{Key: "cuisine", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
