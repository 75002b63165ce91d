package main

import (
	"os"
	"os/signal"
	"schoolmatch/config"
	"schoolmatch/services/matching/delivery"
	"schoolmatch/services/matching/repository"
	"schoolmatch/services/matching/usecase"
	"sync"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var log *logrus.Logger
var wg sync.WaitGroup

func main() {
	log = config.GetLogrusInstance()

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file loaded, using process environment")
	}

	startHTTP()
}

func startHTTP() {
	log.Info("Starting HTTP")
	app := fiber.New(config.GetFiberConfig())

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	db, err := config.BootDB()
	if err != nil {
		log.Fatalf("Failed to boot DB: %v", err)
		return
	}

	timeout := config.GetContextTimeout()
	resolver := repository.NewAddressResolver(config.GetAddressLookupURL())

	schoolRepo := repository.NewSchoolRepository(db)
	parentRepo := repository.NewParentRepository(db)

	schoolUC := usecase.NewSchoolUseCase(schoolRepo, resolver, timeout)
	parentUC := usecase.NewParentUseCase(parentRepo, resolver, timeout)

	api := app.Group("/api")
	delivery.NewSchoolDelivery(api, schoolUC)
	delivery.NewParentDelivery(api, parentUC)

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infof("Starting HTTP server on port %s", config.GetFiberHttpPort())
		if err := app.Listen(config.GetFiberListenAddress()); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	<-signalChan

	log.Info("Shutting down the server...")

	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
	}

	wg.Wait()

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("Server shut down gracefully")
}
