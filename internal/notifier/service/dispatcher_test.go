package service

import (
	"context"
	"testing"
	"time"

	"agenda/pkg/events"
	"agenda/pkg/kafka"
	"agenda/pkg/logger"
	"agenda/pkg/model"
)

func testDispatcher() *Dispatcher {
	return NewDispatcher(logger.New(logger.Config{Level: logger.ERROR}))
}

func eventMessage(eventType, key string, payload interface{}) kafka.Message {
	return kafka.NewMessage().
		WithKey(key).
		WithValue(payload).
		WithEventType(eventType).
		WithSource("test").
		Build()
}

func TestHandleAppointmentCreated(t *testing.T) {
	d := testDispatcher()

	appt := model.Appointment{
		ID:         "507f1f77bcf86cd799439041",
		ResourceID: "507f1f77bcf86cd799439011",
		CustomerID: "507f1f77bcf86cd799439031",
		StartTime:  time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC),
		Status:     model.AppointmentStatusScheduled,
	}
	msg := eventMessage(events.TypeAppointmentCreated, appt.ID, appt)

	if err := d.Handle(context.Background(), msg); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestHandleAppointmentCreatedMalformedPayload(t *testing.T) {
	d := testDispatcher()

	msg := kafka.NewMessage().
		WithKey("507f1f77bcf86cd799439041").
		WithRawValue([]byte("not json")).
		WithEventType(events.TypeAppointmentCreated).
		Build()

	err := d.Handle(context.Background(), msg)
	if err == nil {
		t.Fatal("expected decode error, got nil")
	}
	if kafka.IsRetriable(err) {
		t.Errorf("decode failures must not be retried, got retriable error: %v", err)
	}
}

func TestHandleStatusChanged(t *testing.T) {
	d := testDispatcher()

	msg := eventMessage(events.TypeAppointmentStatusChanged, "507f1f77bcf86cd799439041", map[string]any{
		"id":         "507f1f77bcf86cd799439041",
		"old_status": model.AppointmentStatusScheduled,
		"new_status": model.AppointmentStatusCancelled,
	})

	if err := d.Handle(context.Background(), msg); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestHandleUnknownEventTypeAcknowledged(t *testing.T) {
	d := testDispatcher()

	msg := eventMessage("billing.invoice_issued", "inv-1", map[string]any{"amount": 100})

	if err := d.Handle(context.Background(), msg); err != nil {
		t.Fatalf("unknown event types must be acknowledged, got %v", err)
	}
}

func TestHandleScheduleEvents(t *testing.T) {
	d := testDispatcher()

	for _, eventType := range []string{
		events.TypeRecurringApplied,
		events.TypeExceptionSet,
		events.TypeScheduleDeleted,
	} {
		msg := eventMessage(eventType, "507f1f77bcf86cd799439011", map[string]any{"resource_id": "507f1f77bcf86cd799439011"})
		if err := d.Handle(context.Background(), msg); err != nil {
			t.Errorf("Handle(%s) returned error: %v", eventType, err)
		}
	}
}
