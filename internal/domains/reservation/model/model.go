package model

import (
	"slices"

	"bayleaf/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID             = "id"
	FieldIdempotencyKey = "idempotency_key"
	FieldName           = "name"
	FieldEmail          = "email"
	FieldDate           = "date"
	FieldTime           = "time"
	FieldGuests         = "guests"
	FieldStatus         = "status"
	FieldCreatedAt      = "created_at"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

const (
	MinGuests = 1
	MaxGuests = 8
)

// TimeSlots are the bookable half-hour slots across lunch and dinner service.
var TimeSlots = []string{
	"12:00", "12:30", "13:00", "13:30", "14:00",
	"18:00", "18:30", "19:00", "19:30", "20:00", "20:30", "21:00",
}

type Reservation struct {
	ID             string     `db:"id"`
	IdempotencyKey string     `db:"idempotency_key"`
	Name           string     `db:"name"`
	Email          string     `db:"email"`
	Phone          *string    `db:"phone"`
	Date           model.Date `db:"date"`
	Time           string     `db:"time"`
	Guests         int        `db:"guests"`
	Message        *string    `db:"message"`
	Status         string     `db:"status"`
	model.Timestamps
}

func (r Reservation) Cancelled() bool {
	return r.Status == StatusCancelled
}

func IsTimeSlot(value string) bool {
	return slices.Contains(TimeSlots, value)
}
