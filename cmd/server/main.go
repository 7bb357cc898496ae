package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"libraryapi/internal/api/controller"
	"libraryapi/internal/api/repository"
	"libraryapi/internal/api/service"
	"libraryapi/internal/config"
	"libraryapi/internal/db"
	"libraryapi/internal/logger"
	"libraryapi/internal/server"
	"libraryapi/internal/telemetry"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize telemetry
	shutdown, err := telemetry.Init(cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	logger.Init()

	// Initialize MySQL
	pool, err := db.Connect(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.InitializeSchema(pool); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}

	gateway := db.NewGateway(pool)

	// Create repositories
	bookRepo := repository.NewBookRepository(gateway)
	studentRepo := repository.NewStudentRepository(gateway)
	userRepo := repository.NewUserRepository(gateway)

	// Create services
	authService := service.NewAuthService(userRepo, []byte(cfg.JWT.Secret), cfg.JWT.ExpiresIn)

	// Create controllers
	bookController := controller.NewBookController(bookRepo)
	studentController := controller.NewStudentController(studentRepo)
	userController := controller.NewUserController(userRepo)
	authController := controller.NewAuthController(authService)

	srv := server.NewServer(cfg, bookController, studentController, userController, authController)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: srv.Engine(),
	}

	go func() {
		log.Printf("http server started on :%d", cfg.HTTP.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
