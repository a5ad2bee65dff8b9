package main

import (
	"log"
	"net/http"
	"time"

	"graphlit-chat/internal/config"
	"graphlit-chat/internal/graphql"
	apihttp "graphlit-chat/internal/http"
	"graphlit-chat/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	if cfg.LogDevelopment {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	client := graphql.NewClient(cfg.GraphQLURL, &http.Client{Timeout: cfg.HTTPTimeout}, logger)
	credentialSvc := service.NewCredentialService(logger)
	conversationSvc := service.NewConversationService(client, logger)
	feedSvc := service.NewFeedService(client, logger)
	orchestrator := service.NewChatOrchestrator(logger, credentialSvc, conversationSvc, feedSvc)

	if cfg.HasCredentialInputs() {
		out := orchestrator.GenerateCredential(cfg.JWTSecret, cfg.EnvironmentID, cfg.OrganizationID)
		if !out.OK() {
			logger.Warn("credential from environment rejected", zap.String("notice", out.Notice))
		}
	}

	chatHandler := apihttp.NewChatHandler(logger, orchestrator)
	router := apihttp.NewRouter(logger, chatHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("graphql_endpoint", client.Endpoint()),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
