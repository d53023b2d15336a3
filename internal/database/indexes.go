package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureAccountIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("accounts").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureAccountIndexes: creating email_unique index")
	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureAccountIndexes: email index error:", err)
		return err
	}
	log.Println("EnsureAccountIndexes: email_unique index created")
	return nil
}

func EnsureProfileIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("profiles").Indexes()

	roleStatusIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "role", Value: 1},
			{Key: "status", Value: 1},
		},
		Options: options.Index().SetName("role_status_index"),
	}

	log.Println("EnsureProfileIndexes: creating role_status_index index")
	_, err := indexes.CreateOne(ctx, roleStatusIndex)
	if err != nil {
		log.Println("EnsureProfileIndexes: role_status index error:", err)
		return err
	}
	log.Println("EnsureProfileIndexes: role_status_index index created")
	return nil
}

func EnsureVerificationTokenIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("verification_tokens").Indexes()

	tokenIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "token", Value: 1}},
		Options: options.Index().
			SetName("token_unique").
			SetUnique(true),
	}

	expiryIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetName("expiresAt_ttl").SetExpireAfterSeconds(0),
	}

	log.Println("EnsureVerificationTokenIndexes: creating token indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{tokenIndex, expiryIndex})
	if err != nil {
		log.Println("EnsureVerificationTokenIndexes: index error:", err)
		return err
	}
	log.Println("EnsureVerificationTokenIndexes: token indexes created")
	return nil
}
