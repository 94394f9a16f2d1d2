// Command migrate-users scans the users collection for documents whose
// storage key does not match their uid field and, with -apply, re-keys them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"quiz-admin/internal/config"
	"quiz-admin/internal/docstore"
	"quiz-admin/internal/logger"
	"quiz-admin/internal/repository"
	"quiz-admin/internal/service"
)

func main() {
	apply := flag.Bool("apply", false, "perform the repair instead of only reporting mismatches")
	flag.Parse()

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
	userRepository := repository.NewUserRepository(store)
	migrationService := service.NewMigrationService(userRepository)

	ctx := context.Background()

	check := migrationService.CheckMigrationNeeded(ctx)
	if !check.Needed {
		fmt.Println("No mismatched user documents found.")
		return
	}

	fmt.Printf("Found %d user document(s) that need migration:\n", check.Count)
	for _, u := range check.Users {
		fmt.Printf("  doc %s -> uid %s (%s)\n", u.DocID, u.UID, u.Email)
	}

	if !*apply {
		fmt.Println("Re-run with -apply to repair them.")
		return
	}

	result := migrationService.MigrateUsers(ctx)
	fmt.Printf("Migrated %d user(s).\n", result.MigratedCount)
	for _, e := range result.Errors {
		fmt.Fprintln(os.Stderr, e)
	}
	if !result.Success {
		os.Exit(1)
	}
}
