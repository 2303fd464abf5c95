package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"agenda/internal/notifier/service"
	"agenda/pkg/config"
	"agenda/pkg/events"
)

const ServiceName = "notifier"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Notifier worker")

	dispatcher := service.NewDispatcher(cfg.Log)
	consumer, err := events.NewConsumer(cfg, ServiceName, dispatcher.Handle)
	if err != nil {
		cfg.Log.Fatal("Failed to create event consumer", "error", err)
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		cfg.Log.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	cfg.Log.Info("Notifier worker initialized, consuming events")
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	cfg.Log.Info("Notifier worker stopped")
}
