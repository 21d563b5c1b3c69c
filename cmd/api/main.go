package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/octobees/outreach-tracker/internal/auth"
	"github.com/octobees/outreach-tracker/internal/config"
	"github.com/octobees/outreach-tracker/internal/database"
	"github.com/octobees/outreach-tracker/internal/handler"
	middlewarepkg "github.com/octobees/outreach-tracker/internal/middleware"
	"github.com/octobees/outreach-tracker/internal/repository"
	"github.com/octobees/outreach-tracker/internal/router"
	"github.com/octobees/outreach-tracker/internal/seed"
	"github.com/octobees/outreach-tracker/internal/service"
	"github.com/octobees/outreach-tracker/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		usersRepo    repository.UsersRepository
		outreachRepo service.Persistence
		snapshot     store.Snapshot
	)

	if cfg.DatabaseURL != "" {
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect database: %v", err)
		}
		defer pool.Close()

		repo := repository.NewPGXOutreachRepository(pool)
		snapshot, err = repo.LoadSnapshot(ctx)
		if err != nil {
			log.Fatalf("failed to load state: %v", err)
		}
		outreachRepo = repo
		usersRepo = repository.NewPGXUsersRepository(pool)
		log.Printf("mode=postgres companies=%d communications=%d methods=%d",
			len(snapshot.Companies), len(snapshot.Communications), len(snapshot.Methods))
	} else {
		snapshot = seed.Snapshot()
		memUsers := repository.NewMemoryUsersRepository()
		seedAdminUser(ctx, memUsers)
		usersRepo = memUsers
		log.Printf("mode=memory companies=%d methods=%d", len(snapshot.Companies), len(snapshot.Methods))
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	validator := service.NewCompanyValidator(cfg.PhoneRegion)
	outreachService := service.NewOutreachService(snapshot, outreachRepo, validator)
	authService := service.NewAuthService(usersRepo, jwtManager)
	userService := service.NewUserService(usersRepo)

	handlers := router.Handlers{
		Auth:           handler.NewAuthHandler(authService),
		Users:          handler.NewUserAdminHandler(userService),
		Companies:      handler.NewCompaniesHandler(outreachService),
		Communications: handler.NewCommunicationsHandler(outreachService),
		Methods:        handler.NewMethodsHandler(outreachService),
		Dashboard:      handler.NewDashboardHandler(outreachService),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

// seedAdminUser provisions a default admin account for memory mode so the
// secured endpoints are reachable out of the box.
func seedAdminUser(ctx context.Context, users *repository.MemoryUsersRepository) {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "change-me-now"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}
	if _, err := users.Create(ctx, email, string(hash), "admin"); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	log.Printf("seeded admin user email=%s", email)
}
