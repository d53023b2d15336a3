package profilestore

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"solarmarket/internal/models"
)

// MongoStore keeps profiles in the "profiles" collection, keyed by the
// account's ObjectID.
type MongoStore struct {
	db          *mongo.Database
	callTimeout time.Duration
}

func NewMongoStore(db *mongo.Database, callTimeout time.Duration) *MongoStore {
	return &MongoStore{db: db, callTimeout: callTimeout}
}

func (s *MongoStore) Get(ctx context.Context, accountID string) (*models.Profile, error) {
	id, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	var profile models.Profile
	if err := s.db.Collection("profiles").FindOne(ctx, bson.M{"_id": id}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &profile, nil
}

func (s *MongoStore) Put(ctx context.Context, accountID string, profile models.Profile) error {
	id, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return err
	}
	profile.ID = id

	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	_, err = s.db.Collection("profiles").ReplaceOne(
		ctx,
		bson.M{"_id": id},
		profile,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) MarkEmailVerified(ctx context.Context, accountID string) error {
	id, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	_, err = s.db.Collection("profiles").UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"emailVerified": true},
	})
	return err
}

// SearchProviders lists approved provider profiles for the public directory,
// optionally filtered by a case-insensitive match on company name or address.
func (s *MongoStore) SearchProviders(ctx context.Context, query string, page, limit int64) ([]models.Profile, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	filter := bson.M{
		"role":   models.RoleProvider,
		"status": models.StatusApproved,
	}

	if q := strings.TrimSpace(query); q != "" {
		pattern := primitive.Regex{Pattern: regexEscape(q), Options: "i"}
		filter["$or"] = []bson.M{
			{"company_name": pattern},
			{"company_address": pattern},
		}
	}

	collection := s.db.Collection("profiles")

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "company_name", Value: 1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var providers []models.Profile
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, 0, err
	}

	return providers, total, nil
}

func regexEscape(s string) string {
	specials := `\.+*?()|[]{}^$`
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(specials, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
