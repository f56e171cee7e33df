package dto

import (
	contactMessageDto "bayleaf/internal/domains/contactmessage/model/dto"
	reservationModel "bayleaf/internal/domains/reservation/model"
	reservationDto "bayleaf/internal/domains/reservation/model/dto"
)

type (
	SubmitReservationRequest    = reservationDto.CreateReservationRequest
	SubmitContactMessageRequest = contactMessageDto.CreateContactMessageRequest
)

// SubmissionResponse is what the public form sees. ID is empty in demo mode.
type SubmissionResponse struct {
	ID        string `json:"id,omitempty"`
	Demo      bool   `json:"demo"`
	Duplicate bool   `json:"duplicate"`
}

// ReservationEvent is published for staff tooling once a reservation is stored.
type ReservationEvent struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Guests    int     `json:"guests"`
	Message   *string `json:"message"`
	CreatedAt string  `json:"created_at"`
}

func (e *ReservationEvent) FromModel(model reservationModel.Reservation) {
	var res reservationDto.ReservationResponse
	res.FromModel(model)

	e.ID = res.ID
	e.Name = res.Name
	e.Email = res.Email
	e.Phone = res.Phone
	e.Date = res.Date
	e.Time = res.Time
	e.Guests = res.Guests
	e.Message = res.Message
	e.CreatedAt = res.CreatedAt
}

type TimeSlotOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type GuestOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionsResponse lists what the form accepts.
type OptionsResponse struct {
	TimeSlots    []TimeSlotOption  `json:"time_slots"`
	Guests       []GuestOption     `json:"guests"`
	Defaults     map[string]string `json:"defaults"`
	ContactPhone string            `json:"contact_phone"`
	ContactEmail string            `json:"contact_email"`
	MinDate      string            `json:"min_date"`
	Language     string            `json:"language"`
}
