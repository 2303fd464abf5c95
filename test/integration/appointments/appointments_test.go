package appointments_test

import (
	"math/rand"
	"testing"
	"time"

	"agenda/pkg/client"
	"agenda/pkg/model"
	"agenda/test/integration/testutil"
)

func newObjectIDHex() string {
	const hexDigits = "0123456789abcdef"
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, 24)
	for i := range b {
		b[i] = hexDigits[r.Intn(len(hexDigits))]
	}
	return string(b)
}

func appointmentRequest(resourceID, customerID, start, end string) map[string]any {
	return map[string]any{
		"company_id":    newObjectIDHex(),
		"subsidiary_id": newObjectIDHex(),
		"resource_id":   resourceID,
		"customer_id":   customerID,
		"start_time":    start,
		"end_time":      end,
	}
}

func TestAppointmentsLifecycle(t *testing.T) {
	serverURL := testutil.ServerURL(t)
	appointmentsClient := client.NewAppointmentClient(serverURL)
	httpClient := client.NewHttpClient(serverURL)
	testutil.WaitForHealthy(t, httpClient)

	resourceID := newObjectIDHex()
	customerID := newObjectIDHex()
	var createdID string

	t.Run("create appointment", func(t *testing.T) {
		resp, err := appointmentsClient.Create(appointmentRequest(
			resourceID, customerID,
			"2030-06-03T09:00:00Z", "2030-06-03T09:30:00Z",
		))
		if err != nil {
			t.Fatalf("HTTP request failed: %v", err)
		}
		testutil.AssertStatusCode(t, resp, 201)

		appt, err := appointmentsClient.DecodeAppointment(resp)
		if err != nil {
			t.Fatalf("failed to decode appointment: %v", err)
		}
		if appt.ID == "" {
			t.Fatal("expected an assigned appointment ID")
		}
		if appt.Status != model.AppointmentStatusScheduled {
			t.Errorf("expected status scheduled, got %q", appt.Status)
		}
		createdID = appt.ID
	})

	t.Run("overlapping appointment is rejected", func(t *testing.T) {
		resp, err := appointmentsClient.Create(appointmentRequest(
			resourceID, newObjectIDHex(),
			"2030-06-03T09:15:00Z", "2030-06-03T09:45:00Z",
		))
		if err != nil {
			t.Fatalf("HTTP request failed: %v", err)
		}
		testutil.AssertStatusCode(t, resp, 409)
	})

	t.Run("back-to-back appointment is accepted", func(t *testing.T) {
		resp, err := appointmentsClient.Create(appointmentRequest(
			resourceID, newObjectIDHex(),
			"2030-06-03T09:30:00Z", "2030-06-03T10:00:00Z",
		))
		if err != nil {
			t.Fatalf("HTTP request failed: %v", err)
		}
		testutil.AssertStatusCode(t, resp, 201)
	})

	t.Run("status endpoint confirms the appointment", func(t *testing.T) {
		resp, err := appointmentsClient.UpdateStatus(createdID, "confirmed")
		if err != nil {
			t.Fatalf("HTTP request failed: %v", err)
		}
		testutil.AssertStatusCode(t, resp, 200)

		appt, err := appointmentsClient.DecodeAppointment(resp)
		if err != nil {
			t.Fatalf("failed to decode appointment: %v", err)
		}
		if appt.Status != model.AppointmentStatusConfirmed {
			t.Errorf("expected status confirmed, got %q", appt.Status)
		}
	})

	t.Run("cancelled appointment releases the slot", func(t *testing.T) {
		resp, err := appointmentsClient.Update(createdID, map[string]any{"status": "cancelled"})
		if err != nil {
			t.Fatalf("HTTP request failed: %v", err)
		}
		testutil.AssertStatusCode(t, resp, 200)

		rebookResp, err := appointmentsClient.Create(appointmentRequest(
			resourceID, newObjectIDHex(),
			"2030-06-03T09:00:00Z", "2030-06-03T09:30:00Z",
		))
		if err != nil {
			t.Fatalf("HTTP request failed: %v", err)
		}
		testutil.AssertStatusCode(t, rebookResp, 201)
	})

	t.Run("terminal appointment cannot change", func(t *testing.T) {
		resp, err := appointmentsClient.Update(createdID, map[string]any{"status": "confirmed"})
		if err != nil {
			t.Fatalf("HTTP request failed: %v", err)
		}
		testutil.AssertStatusCode(t, resp, 409)
	})

	t.Run("search by resource", func(t *testing.T) {
		resp, err := appointmentsClient.Search(resourceID, "", "", "", "", 10, 0)
		if err != nil {
			t.Fatalf("HTTP request failed: %v", err)
		}
		testutil.AssertStatusCode(t, resp, 200)

		appts, metadata, err := appointmentsClient.DecodeAppointments(resp)
		if err != nil {
			t.Fatalf("failed to decode appointments: %v", err)
		}
		if metadata.TotalCount != 3 {
			t.Errorf("expected 3 appointments for resource, got %d", metadata.TotalCount)
		}
		if len(appts) != 3 {
			t.Errorf("expected 3 appointments in page, got %d", len(appts))
		}
	})

	t.Run("search within a time window", func(t *testing.T) {
		resp, err := appointmentsClient.Search(
			resourceID, "", "",
			"2030-06-03T09:20:00Z", "2030-06-03T10:00:00Z",
			10, 0,
		)
		if err != nil {
			t.Fatalf("HTTP request failed: %v", err)
		}
		testutil.AssertStatusCode(t, resp, 200)

		_, metadata, err := appointmentsClient.DecodeAppointments(resp)
		if err != nil {
			t.Fatalf("failed to decode appointments: %v", err)
		}
		if metadata.TotalCount < 1 {
			t.Errorf("expected at least 1 appointment in window, got %d", metadata.TotalCount)
		}
	})

	t.Run("delete appointment", func(t *testing.T) {
		resp, err := appointmentsClient.Delete(createdID)
		if err != nil {
			t.Fatalf("HTTP request failed: %v", err)
		}
		testutil.AssertStatusCode(t, resp, 204)

		getResp, err := appointmentsClient.GetByID(createdID)
		if err != nil {
			t.Fatalf("HTTP request failed: %v", err)
		}
		testutil.AssertStatusCode(t, getResp, 404)
	})
}

func TestAppointmentsValidation(t *testing.T) {
	serverURL := testutil.ServerURL(t)
	appointmentsClient := client.NewAppointmentClient(serverURL)

	t.Run("rejects end before start", func(t *testing.T) {
		resp, err := appointmentsClient.Create(appointmentRequest(
			newObjectIDHex(), newObjectIDHex(),
			"2030-06-03T10:00:00Z", "2030-06-03T09:00:00Z",
		))
		if err != nil {
			t.Fatalf("HTTP request failed: %v", err)
		}
		testutil.AssertStatusCode(t, resp, 422)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		resp, err := appointmentsClient.CreateRaw([]byte(`{"resource_id": `))
		if err != nil {
			t.Fatalf("HTTP request failed: %v", err)
		}
		testutil.AssertStatusCode(t, resp, 400)
	})

	t.Run("search requires a filter", func(t *testing.T) {
		resp, err := appointmentsClient.Search("", "", "", "", "", 10, 0)
		if err != nil {
			t.Fatalf("HTTP request failed: %v", err)
		}
		testutil.AssertStatusCode(t, resp, 400)
	})
}
