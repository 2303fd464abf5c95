package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"agenda/pkg/client"
	"agenda/pkg/model"
	"agenda/pkg/scheduling"
)

// scheduleAvailabilityChecker consults the schedules service before a booking
// is accepted. An appointment fits when its whole window lies inside the open
// window of the resource's entry for that date.
type scheduleAvailabilityChecker struct {
	scheduleClient *client.ScheduleClient
}

func NewScheduleAvailabilityChecker(scheduleClient *client.ScheduleClient) AvailabilityChecker {
	return &scheduleAvailabilityChecker{scheduleClient: scheduleClient}
}

func (c *scheduleAvailabilityChecker) Bookable(ctx context.Context, resourceID string, startTime, endTime time.Time) (bool, error) {
	date := startTime.Format(scheduling.DateLayout)

	resp, err := c.scheduleClient.GetAvailability(resourceID, date)
	if err != nil {
		return false, fmt.Errorf("availability lookup for resource %s on %s: %w", resourceID, date, err)
	}

	// A resource without a schedule entry for the date is unconstrained;
	// the overlap check is still the booking authority.
	if resp.StatusCode == http.StatusNotFound {
		return true, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("availability lookup for resource %s on %s: unexpected response %s", resourceID, date, resp.ToString())
	}

	var wrapper struct {
		Data struct {
			Bookable bool                 `json:"bookable"`
			Entry    *model.ScheduleEntry `json:"entry"`
		} `json:"data"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return false, fmt.Errorf("could not decode availability response: %w", err)
	}

	if !wrapper.Data.Bookable || wrapper.Data.Entry == nil {
		return false, nil
	}

	entry := wrapper.Data.Entry
	if entry.Closed {
		return false, nil
	}

	// An open window never crosses midnight, so neither can the appointment.
	if endTime.Format(scheduling.DateLayout) != date {
		return false, nil
	}

	startClock := startTime.Format("15:04")
	if !scheduling.IsBookableAt(*entry, startClock) {
		return false, nil
	}

	// The end bound is inclusive of the close time since the interval is
	// half-open on both sides.
	endClock := endTime.Format("15:04")
	return endClock <= entry.CloseTime, nil
}
