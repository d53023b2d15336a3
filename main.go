package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"solarmarket/internal/config"
	"solarmarket/internal/credstore"
	"solarmarket/internal/database"
	"solarmarket/internal/email"
	"solarmarket/internal/handlers"
	"solarmarket/internal/llm"
	"solarmarket/internal/middleware"
	"solarmarket/internal/profilestore"
	"solarmarket/internal/ratelimit"
	"solarmarket/internal/recommend"
	"solarmarket/internal/workflow"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureAccountIndexes(db); err != nil {
		log.Printf("⚠️ account index warning: %v", err)
	}
	if err := database.EnsureProfileIndexes(db); err != nil {
		log.Printf("⚠️ profile index warning: %v", err)
	}
	if err := database.EnsureVerificationTokenIndexes(db); err != nil {
		log.Printf("⚠️ verification token index warning: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.AppEnv.RedisAddr,
		Password: config.AppEnv.RedisPassword,
	})

	mailer := email.NewSender(
		config.AppEnv.SMTPHost,
		config.AppEnv.SMTPPort,
		config.AppEnv.SMTPUser,
		config.AppEnv.SMTPPass,
	)

	accounts := credstore.NewMongoStore(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.ExternalCallTimeout,
		mailer,
		config.AppEnv.BaseURL,
	)
	profiles := profilestore.NewMongoStore(db, config.AppEnv.ExternalCallTimeout)
	verifier := credstore.NewGoogleVerifier(config.AppEnv.GoogleClientID)

	signup := workflow.NewSignup(accounts, profiles)
	signin := workflow.NewSignin(
		accounts,
		profiles,
		verifier,
		config.AppEnv.AdminEmail,
		config.AppEnv.AdminPassword,
	)

	limiter := ratelimit.NewSigninLimiter(
		redisClient,
		config.AppEnv.SigninMaxAttempts,
		config.AppEnv.SigninWindow,
	)

	llmClient := llm.NewClient(
		config.AppEnv.LLMAPIKey,
		config.AppEnv.LLMBaseURL,
		config.AppEnv.LLMModel,
	)
	solarClient := recommend.NewSolarClient(config.AppEnv.ExternalCallTimeout)
	engine := recommend.NewEngine(solarClient, llmClient, redisClient, config.AppEnv.RecommendCacheTTL)

	r := gin.Default()

	r.POST("/api/auth/signup", handlers.Signup(signup))
	r.POST("/api/auth/signin/password", handlers.SigninPassword(signin, limiter))
	r.POST("/api/auth/signin/federated", handlers.SigninFederated(signin))
	r.POST("/api/auth/verification",
		middleware.SessionAuth(config.AppEnv.JWTSecret),
		handlers.VerificationCheck(signin),
	)
	r.GET("/auth/verify", handlers.VerifyEmail(accounts))

	r.GET("/api/providers", handlers.GetProviders(profiles))
	r.POST("/api/chatbot", handlers.Chatbot(llmClient))
	r.POST("/api/recommendation", handlers.Recommendation(engine))
	r.POST("/api/spreadsheet", handlers.ExportSpreadsheet())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
