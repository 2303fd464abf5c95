package model

import "time"

const (
	ResourceKindChair = "chair"
	ResourceKindRoom  = "room"
)

// Resource is a bookable unit of a subsidiary: a chair, a room, or any
// physical slot a customer can occupy for an appointment.
type Resource struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CompanyID    string    `json:"company_id" bson:"company_id" validate:"required,mongodb"`
	SubsidiaryID string    `json:"subsidiary_id" bson:"subsidiary_id" validate:"required,mongodb"`
	Name         string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Kind         string    `json:"kind" bson:"kind" validate:"required,oneof=chair room"`
	Labels       []string  `json:"labels,omitempty" bson:"labels,omitempty" validate:"omitempty,max=10,dive,min=1,max=40"`
	Capacity     int       `json:"capacity,omitempty" bson:"capacity,omitempty" validate:"omitempty,min=1,max=50"`
	AdminPhone   string    `json:"admin_phone,omitempty" bson:"admin_phone,omitempty" validate:"omitempty,e164"`
	TimeZone     string    `json:"time_zone,omitempty" bson:"time_zone,omitempty" validate:"omitempty,timezone"`
	Active       bool      `json:"active" bson:"active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// ResourceUpdate carries a partial update. Nil fields are left untouched.
type ResourceUpdate struct {
	Name       *string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Labels     *[]string `json:"labels,omitempty" validate:"omitempty,max=10,dive,min=1,max=40"`
	Capacity   *int      `json:"capacity,omitempty" validate:"omitempty,min=1,max=50"`
	AdminPhone *string   `json:"admin_phone,omitempty" validate:"omitempty,e164"`
	TimeZone   *string   `json:"time_zone,omitempty" validate:"omitempty,timezone"`
	Active     *bool     `json:"active,omitempty"`
}
