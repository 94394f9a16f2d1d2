// Command seed bootstraps a fresh deployment with the first admin account
// and a sample quiz.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"quiz-admin/internal/authprovider"
	"quiz-admin/internal/config"
	"quiz-admin/internal/docstore"
	"quiz-admin/internal/domain"
	"quiz-admin/internal/dto"
	"quiz-admin/internal/logger"
	"quiz-admin/internal/repository"
	"quiz-admin/internal/service"
)

func main() {
	email := flag.String("email", "admin@example.com", "email of the initial admin account")
	password := flag.String("password", "", "password of the initial admin account (required)")
	name := flag.String("name", "Administrator", "display name of the initial admin")
	withQuiz := flag.Bool("with-quiz", true, "also create a sample quiz")
	flag.Parse()

	if *password == "" {
		log.Fatal("missing required -password flag")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	redisClient, err := docstore.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	store := docstore.NewRedisDocumentStore(redisClient)
	provider := authprovider.NewLocalProvider(store)
	userRepository := repository.NewUserRepository(store)

	ctx := context.Background()

	uid, err := provider.CreateAccount(ctx, *email, *password)
	if err != nil {
		if errors.Is(err, authprovider.ErrEmailAlreadyInUse) {
			log.Fatalf("Account %s already exists; nothing to do", *email)
		}
		log.Fatalf("Failed to create admin account: %v", err)
	}

	isActive := true
	admin := &domain.User{
		UID:       uid,
		Email:     *email,
		Name:      *name,
		Role:      domain.RoleAdmin,
		CreatedAt: time.Now().UnixMilli(),
		CreatedBy: "seed",
		IsActive:  &isActive,
	}
	if err := admin.Validate(); err != nil {
		log.Fatalf("Invalid admin profile: %v", err)
	}
	if err := userRepository.Save(ctx, admin); err != nil {
		log.Fatalf("Failed to save admin profile: %v", err)
	}
	fmt.Printf("Created admin %s (uid %s)\n", *email, uid)

	if *withQuiz {
		quizService := service.NewQuizService(repository.NewQuizRepository(store))
		quiz, err := quizService.CreateQuiz(ctx, dto.SaveQuizRequest{
			Title:       "Getting Started",
			Description: "A short sample quiz to verify the installation.",
			Questions: []dto.QuestionInput{
				{
					Question:      "Which HTTP status code means Not Found?",
					Options:       []string{"200", "301", "404", "500"},
					CorrectAnswer: 2,
				},
				{
					Question:      "Which of these stores documents by key?",
					Options:       []string{"A message queue", "A document store", "A load balancer", "A DNS resolver"},
					CorrectAnswer: 1,
				},
			},
		})
		if err != nil {
			log.Fatalf("Failed to create sample quiz: %v", err)
		}
		fmt.Printf("Created sample quiz %s\n", quiz.ID)
	}
}
