package main

import (
	"agenda/internal/resources/handler"
	"agenda/internal/resources/repository"
	"agenda/internal/resources/service"
	"agenda/internal/resources/validator"
	"agenda/pkg/app"
	"agenda/pkg/config"
	"agenda/pkg/events"
)

const ServiceName = "resources"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Resources service")
	resourceService := initServices(cfg)
	serverApp := app.NewApplication(cfg, handler.NewResourceHandler(resourceService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ResourceService {
	publisher, err := events.NewPublisher(cfg, ServiceName)
	if err != nil {
		cfg.Log.Warn("Event publisher unavailable, continuing without events", "error", err)
		publisher = events.NewNoop()
	}

	resourceValidator := validator.NewResourceValidator(cfg.Log)
	resourceRepo := repository.NewMongoResourceRepository(cfg)
	resourceService := service.NewResourceService(
		resourceRepo,
		resourceValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Resources service initialized", "database", cfg.MongoDatabaseName)
	return resourceService
}
