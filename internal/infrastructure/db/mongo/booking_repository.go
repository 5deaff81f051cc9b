package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shomvob/travels-api/internal/core/domain"
)

// BookingRepository implements ports.BookingRepository over the bookings
// collection.
type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection(CollectionBookings)}
}

type mongoBooking struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty"`
	UserEmail  string               `bson:"user_email"`
	GuideEmail string               `bson:"guide_email,omitempty"`
	PackageID  string               `bson:"package_id"`
	TourDate   string               `bson:"tour_date"`
	Price      float64              `bson:"price"`
	Status     domain.BookingStatus `bson:"status"`
	CreatedAt  time.Time            `bson:"created_at"`
}

func (mb mongoBooking) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:         mb.ID.Hex(),
		UserEmail:  mb.UserEmail,
		GuideEmail: mb.GuideEmail,
		PackageID:  mb.PackageID,
		TourDate:   mb.TourDate,
		Price:      mb.Price,
		Status:     mb.Status,
		CreatedAt:  mb.CreatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoBooking{
		UserEmail:  b.UserEmail,
		GuideEmail: b.GuideEmail,
		PackageID:  b.PackageID,
		TourDate:   b.TourDate,
		Price:      b.Price,
		Status:     b.Status,
		CreatedAt:  b.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	created := *b
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBooking
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *BookingRepository) List(ctx context.Context) ([]*domain.Booking, error) {
	return r.list(ctx, bson.M{})
}

func (r *BookingRepository) ListByUserEmail(ctx context.Context, email string) ([]*domain.Booking, error) {
	return r.list(ctx, bson.M{"user_email": email})
}

func (r *BookingRepository) ListByGuideEmail(ctx context.Context, email string) ([]*domain.Booking, error) {
	return r.list(ctx, bson.M{"guide_email": email})
}

func (r *BookingRepository) list(ctx context.Context, filter bson.M) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer cur.Close(ctx)

	var bookings []*domain.Booking
	for cur.Next(ctx) {
		var mb mongoBooking
		if err := cur.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode booking: %w", err)
		}
		bookings = append(bookings, mb.toDomain())
	}
	return bookings, cur.Err()
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("delete booking: %w", err)
	}
	return res.DeletedCount, nil
}

// CountByTourDate groups bookings by tour date for the analytics chart,
// ascending by date.
func (r *BookingRepository) CountByTourDate(ctx context.Context) ([]domain.DateCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$tour_date"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate bookings by date: %w", err)
	}
	defer cur.Close(ctx)

	var buckets []domain.DateCount
	if err := cur.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("decode date buckets: %w", err)
	}
	return buckets, nil
}

func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the owner-lookup and chart indexes.
func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_email", Value: 1}}},
		{Keys: bson.D{{Key: "guide_email", Value: 1}}},
		{Keys: bson.D{{Key: "tour_date", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
