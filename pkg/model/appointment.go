package model

import "time"

const (
	AppointmentStatusScheduled  = "scheduled"
	AppointmentStatusConfirmed  = "confirmed"
	AppointmentStatusInProgress = "in_progress"
	AppointmentStatusCompleted  = "completed"
	AppointmentStatusCancelled  = "cancelled"
	AppointmentStatusNoShow     = "no_show"
)

// ActiveAppointmentStatuses are the statuses that still occupy their time
// slot. Terminal appointments release the slot and are excluded from overlap
// checks.
var ActiveAppointmentStatuses = []string{
	AppointmentStatusScheduled,
	AppointmentStatusConfirmed,
	AppointmentStatusInProgress,
	AppointmentStatusCompleted,
}

func IsTerminalAppointmentStatus(status string) bool {
	return status == AppointmentStatusCancelled || status == AppointmentStatusNoShow
}

type Appointment struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CompanyID      string    `json:"company_id" bson:"company_id" validate:"required,mongodb"`
	SubsidiaryID   string    `json:"subsidiary_id" bson:"subsidiary_id" validate:"required,mongodb"`
	ResourceID     string    `json:"resource_id" bson:"resource_id" validate:"required,mongodb"`
	ProfessionalID string    `json:"professional_id,omitempty" bson:"professional_id,omitempty" validate:"omitempty,mongodb"`
	CustomerID     string    `json:"customer_id" bson:"customer_id" validate:"required,mongodb"`
	ServiceID      string    `json:"service_id,omitempty" bson:"service_id,omitempty" validate:"omitempty,mongodb"`
	StartTime      time.Time `json:"start_time" bson:"start_time" validate:"required"`
	EndTime        time.Time `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	Status         string    `json:"status" bson:"status" validate:"required,oneof=scheduled confirmed in_progress completed cancelled no_show"`
	Notes          string    `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=500"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

func (a *Appointment) IsTerminal() bool {
	return IsTerminalAppointmentStatus(a.Status)
}

// AppointmentUpdate carries a partial update. Nil fields are left untouched.
type AppointmentUpdate struct {
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Status    *string    `json:"status,omitempty" validate:"omitempty,oneof=scheduled confirmed in_progress completed cancelled no_show"`
	Notes     *string    `json:"notes,omitempty" validate:"omitempty,max=500"`
}
