package service

import (
	"context"

	"agenda/pkg/events"
	"agenda/pkg/kafka"
	"agenda/pkg/logger"
	"agenda/pkg/model"
)

// Dispatcher routes domain events to notification channels. The current
// channel is the structured log; delivery integrations plug in behind it.
type Dispatcher struct {
	log *logger.Logger
}

func NewDispatcher(log *logger.Logger) *Dispatcher {
	return &Dispatcher{log: log}
}

// Handle processes a single event message. Unknown event types are
// acknowledged without action so new producers never poison the group.
func (d *Dispatcher) Handle(ctx context.Context, msg kafka.Message) error {
	eventType := msg.GetEventType()

	switch eventType {
	case events.TypeAppointmentCreated:
		return d.handleAppointmentCreated(msg)
	case events.TypeAppointmentStatusChanged:
		return d.handleAppointmentStatusChanged(msg)
	case events.TypeScheduleDeleted, events.TypeExceptionSet, events.TypeRecurringApplied:
		d.log.Info("Schedule change observed",
			"event_type", eventType,
			"resource_id", msg.Key,
			"event_id", msg.GetEventID(),
		)
		return nil
	default:
		d.log.Debug("Ignoring event", "event_type", eventType, "key", msg.Key)
		return nil
	}
}

func (d *Dispatcher) handleAppointmentCreated(msg kafka.Message) error {
	var appt model.Appointment
	if err := msg.DecodeValue(&appt); err != nil {
		return kafka.NewKafkaError("decode", msg.Topic, err, false)
	}

	d.log.Info("Dispatching booking confirmation",
		"appointment_id", appt.ID,
		"customer_id", appt.CustomerID,
		"resource_id", appt.ResourceID,
		"start_time", appt.StartTime,
	)
	return nil
}

func (d *Dispatcher) handleAppointmentStatusChanged(msg kafka.Message) error {
	var change struct {
		ID        string `json:"id"`
		OldStatus string `json:"old_status"`
		NewStatus string `json:"new_status"`
	}
	if err := msg.DecodeValue(&change); err != nil {
		return kafka.NewKafkaError("decode", msg.Topic, err, false)
	}

	d.log.Info("Dispatching status update",
		"appointment_id", change.ID,
		"old_status", change.OldStatus,
		"new_status", change.NewStatus,
	)
	return nil
}
