package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-ClinicService/internal/config"
	adminRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/admin"
	authService "github.com/m04kA/SMC-ClinicService/internal/service/auth"
	"github.com/m04kA/SMC-ClinicService/pkg/jwtauth"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
)

const operationTimeout = 10 * time.Second

// createadmin создает администратора или обновляет пароль существующего.
// Пароль можно передать через ADMIN_PASSWORD, чтобы он не попал в историю shell.
func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "admin email")
	name := flag.String("name", os.Getenv("ADMIN_NAME"), "admin display name")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("Usage: createadmin -email admin@example.com -password secret [-name Admin]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("", cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	tokens := jwtauth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	svc := authService.NewService(adminRepo.NewRepository(db), tokens, log)

	admin, err := svc.EnsureAdmin(ctx, *email, *name, *password)
	if err != nil {
		log.Fatal("Failed to create admin: %v", err)
	}

	log.Info("Admin ready: id=%d email=%s", admin.ID, admin.Email)
}
