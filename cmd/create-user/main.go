package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/guidanceoffice/discipline-backend/internal/config"
	"github.com/guidanceoffice/discipline-backend/internal/database"
	"github.com/guidanceoffice/discipline-backend/internal/logger"
	"github.com/guidanceoffice/discipline-backend/internal/repository"
	"github.com/guidanceoffice/discipline-backend/internal/service"
	"golang.org/x/term"
)

// create-user registers a staff account from the terminal, for bootstrapping
// a deployment before anyone can sign in through the API.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.PostgresPool(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	// Registration never touches Redis, so no client is needed here.
	authService := service.NewAuthService(cfg, userRepo, nil)

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create Staff Account ===")

	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println()
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	user, err := authService.Register(ctx, email, password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			fmt.Printf("Error: %s is already registered\n", email)
			return
		}
		log.Fatal().Err(err).Msg("Failed to create user")
	}

	fmt.Printf("\nSuccess! Staff account %s created with ID: %d\n", user.Email, user.ID)
}
