package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dinebook/reservation-system/internal/core/domain"
)

const (
	collectionReservations = "reservations"
	collectionEvents       = "reservation_events"
)

type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection(collectionReservations)}
}

// Create inserts a new reservation document with a generated id.
func (r *ReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	reservation.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var reservation domain.Reservation
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&reservation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *ReservationRepository) FindByCustomer(ctx context.Context, customerID string) ([]domain.Reservation, error) {
	return r.findAll(ctx, bson.M{"customer_id": customerID})
}

func (r *ReservationRepository) FindByRestaurant(ctx context.Context, restaurantID string) ([]domain.Reservation, error) {
	return r.findAll(ctx, bson.M{"restaurant_id": restaurantID})
}

// FindBySlot returns every reservation at the exact restaurant/date/time
// slot, cancelled ones included.
func (r *ReservationRepository) FindBySlot(ctx context.Context, restaurantID, date, timeSlot string) ([]domain.Reservation, error) {
	return r.findAll(ctx, bson.M{
		"restaurant_id": restaurantID,
		"date":          date,
		"time":          timeSlot,
	})
}

func (r *ReservationRepository) findAll(ctx context.Context, filter bson.M) ([]domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	reservations := []domain.Reservation{}
	if err := cur.All(ctx, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// UpdateStatus sets the reservation status. Reservations are never deleted;
// CANCELLED is the terminal state and the record remains for history.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the reservations collection.
func (r *ReservationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		{Keys: bson.D{{Key: "restaurant_id", Value: 1}}},
		{Keys: bson.D{
			{Key: "restaurant_id", Value: 1},
			{Key: "date", Value: 1},
			{Key: "time", Value: 1},
		}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// EventRepository persists the reservation audit trail.
type EventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionEvents)}
}

// InsertEvent appends a lifecycle event to the audit trail.
func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.ReservationEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, event)
	return err
}
