package store

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bensefia-clinic/clinic-api/internal/models"
)

// MongoStore is the production store. Bookings are insert-only documents with
// independent ids, so concurrent submissions never overwrite each other; the
// unique email index makes duplicate registration a single atomic check.
type MongoStore struct {
	client   *mongo.Client
	users    *mongo.Collection
	bookings *mongo.Collection
}

func OpenMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	db := client.Database(database)
	s := &MongoStore{
		client:   client,
		users:    db.Collection("users"),
		bookings: db.Collection("bookings"),
	}

	_, err = s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("create email index: %w", err)
	}
	return s, nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user models.User) error {
	user.Email = strings.ToLower(user.Email)
	_, err := s.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *MongoStore) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	return user, err
}

func (s *MongoStore) UpdateUser(ctx context.Context, user models.User) error {
	result, err := s.users.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) AddBooking(ctx context.Context, booking models.Booking) error {
	_, err := s.bookings.InsertOne(ctx, booking)
	return err
}

func (s *MongoStore) BookingByID(ctx context.Context, id string) (models.Booking, error) {
	var booking models.Booking
	err := s.bookings.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return models.Booking{}, ErrNotFound
	}
	return booking, err
}

func (s *MongoStore) AttachPreviewLinks(ctx context.Context, bookingID, previewURL, adminPreviewURL string) error {
	set := bson.M{}
	if previewURL != "" {
		set["previewUrl"] = previewURL
	}
	if adminPreviewURL != "" {
		set["adminPreviewUrl"] = adminPreviewURL
	}
	if len(set) == 0 {
		return nil
	}
	result, err := s.bookings.UpdateOne(ctx, bson.M{"_id": bookingID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
