package credstore

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"solarmarket/internal/email"
	"solarmarket/internal/models"
)

const verificationTokenTTL = 24 * time.Hour

// MongoStore keeps accounts in the "accounts" collection and issues HS256
// session tokens. Verification links are mailed through the SMTP sender.
type MongoStore struct {
	db          *mongo.Database
	jwtSecret   string
	accessTTL   time.Duration
	callTimeout time.Duration
	mailer      *email.Sender
	baseURL     string
}

func NewMongoStore(db *mongo.Database, jwtSecret string, accessTTL, callTimeout time.Duration, mailer *email.Sender, baseURL string) *MongoStore {
	return &MongoStore{
		db:          db,
		jwtSecret:   jwtSecret,
		accessTTL:   accessTTL,
		callTimeout: callTimeout,
		mailer:      mailer,
		baseURL:     baseURL,
	}
}

func (s *MongoStore) CreateAccount(ctx context.Context, emailAddr, password string) (string, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	count, err := s.db.Collection("accounts").CountDocuments(ctx, bson.M{"email": emailAddr})
	if err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	account := models.Account{
		Email:         emailAddr,
		PasswordHash:  string(hash),
		EmailVerified: false,
		CreatedAt:     time.Now(),
	}

	res, err := s.db.Collection("accounts").InsertOne(ctx, account)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	log.Println("[CREDSTORE] [INFO] account created:", emailAddr)
	return id.Hex(), nil
}

func (s *MongoStore) Authenticate(ctx context.Context, emailAddr, password string) (*Session, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	var account models.Account
	if err := s.db.Collection("accounts").FindOne(ctx, bson.M{"email": emailAddr}).Decode(&account); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueSessionToken(account.ID, account.Email)
	if err != nil {
		return nil, err
	}

	return &Session{
		AccountID:     account.ID.Hex(),
		Email:         account.Email,
		Token:         token,
		EmailVerified: account.EmailVerified,
	}, nil
}

func (s *MongoStore) IsVerified(ctx context.Context, accountID string) (bool, error) {
	id, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return false, ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	var account models.Account
	if err := s.db.Collection("accounts").FindOne(ctx, bson.M{"_id": id}).Decode(&account); err != nil {
		if err == mongo.ErrNoDocuments {
			return false, ErrAccountNotFound
		}
		return false, err
	}

	return account.EmailVerified, nil
}

func (s *MongoStore) SendVerificationEmail(ctx context.Context, accountID string) error {
	id, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	var account models.Account
	if err := s.db.Collection("accounts").FindOne(ctx, bson.M{"_id": id}).Decode(&account); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrAccountNotFound
		}
		return err
	}

	now := time.Now()
	token := models.VerificationToken{
		Token:     uuid.NewString(),
		AccountID: id,
		ExpiresAt: now.Add(verificationTokenTTL),
		CreatedAt: now,
	}

	if _, err := s.db.Collection("verification_tokens").InsertOne(ctx, token); err != nil {
		return err
	}

	verifyURL := s.baseURL + "/auth/verify?token=" + token.Token
	if err := s.mailer.SendVerification(account.Email, verifyURL); err != nil {
		log.Println("[CREDSTORE] [ERROR] verification mail failed:", err)
		return err
	}

	log.Println("[CREDSTORE] [INFO] verification mail sent:", account.Email)
	return nil
}

// MarkVerified consumes a verification token from a followed email link and
// flips the account's flag. The token is deleted once used.
func (s *MongoStore) MarkVerified(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	var record models.VerificationToken
	if err := s.db.Collection("verification_tokens").FindOne(ctx, bson.M{"token": token}).Decode(&record); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrTokenNotFound
		}
		return err
	}

	if time.Now().After(record.ExpiresAt) {
		_, _ = s.db.Collection("verification_tokens").DeleteOne(ctx, bson.M{"_id": record.ID})
		return ErrTokenNotFound
	}

	if _, err := s.db.Collection("accounts").UpdateByID(ctx, record.AccountID, bson.M{
		"$set": bson.M{"emailVerified": true},
	}); err != nil {
		return err
	}

	_, _ = s.db.Collection("verification_tokens").DeleteOne(ctx, bson.M{"_id": record.ID})
	log.Println("[CREDSTORE] [INFO] account verified:", record.AccountID.Hex())
	return nil
}

func (s *MongoStore) DeleteAccount(ctx context.Context, accountID string) error {
	id, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	res, err := s.db.Collection("accounts").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (s *MongoStore) FindByEmail(ctx context.Context, emailAddr string) (string, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	var account models.Account
	if err := s.db.Collection("accounts").FindOne(ctx, bson.M{"email": emailAddr}).Decode(&account); err != nil {
		if err == mongo.ErrNoDocuments {
			return "", ErrAccountNotFound
		}
		return "", err
	}

	return account.ID.Hex(), nil
}

func (s *MongoStore) issueSessionToken(accountID primitive.ObjectID, emailAddr string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   accountID.Hex(),
		"email": emailAddr,
		"exp":   time.Now().Add(s.accessTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
