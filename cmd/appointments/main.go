package main

import (
	"agenda/internal/appointments/handler"
	"agenda/internal/appointments/repository"
	"agenda/internal/appointments/service"
	"agenda/internal/appointments/validator"
	"agenda/pkg/app"
	"agenda/pkg/client"
	"agenda/pkg/config"
	"agenda/pkg/events"
)

const ServiceName = "appointments"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Appointments service")
	appointmentService := initServices(cfg)
	serverApp := app.NewApplication(cfg, handler.NewAppointmentHandler(appointmentService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.AppointmentService {
	publisher, err := events.NewPublisher(cfg, ServiceName)
	if err != nil {
		cfg.Log.Warn("Event publisher unavailable, continuing without events", "error", err)
		publisher = events.NewNoop()
	}

	var availability service.AvailabilityChecker
	if cfg.SchedulesServiceURL != "" {
		availability = service.NewScheduleAvailabilityChecker(client.NewScheduleClient(cfg.SchedulesServiceURL))
	} else {
		cfg.Log.Warn("Schedules service URL not set, skipping availability pre-checks")
	}

	appointmentValidator := validator.NewAppointmentValidator(cfg.Log)
	appointmentRepo := repository.NewMongoAppointmentRepository(cfg)
	lockRepo := repository.NewSlotLockRepository(cfg)
	appointmentService := service.NewAppointmentService(
		appointmentRepo,
		lockRepo,
		appointmentValidator,
		availability,
		publisher,
		cfg,
	)

	cfg.Log.Info("Appointments service initialized", "database", cfg.MongoDatabaseName)
	return appointmentService
}
