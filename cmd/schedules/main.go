package main

import (
	"agenda/internal/schedules/handler"
	"agenda/internal/schedules/repository"
	"agenda/internal/schedules/service"
	"agenda/internal/schedules/validator"
	"agenda/pkg/app"
	"agenda/pkg/config"
	"agenda/pkg/events"
)

const ServiceName = "schedules"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Schedules service")
	scheduleService := initServices(cfg)
	serverApp := app.NewApplication(cfg, handler.NewScheduleHandler(scheduleService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ScheduleService {
	publisher, err := events.NewPublisher(cfg, ServiceName)
	if err != nil {
		cfg.Log.Warn("Event publisher unavailable, continuing without events", "error", err)
		publisher = events.NewNoop()
	}

	scheduleValidator := validator.NewScheduleValidator(cfg.Log)
	scheduleRepo := repository.NewMongoScheduleEntryRepository(cfg)
	scheduleService := service.NewScheduleService(
		scheduleRepo,
		scheduleValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Schedules service initialized", "database", cfg.MongoDatabaseName)
	return scheduleService
}
