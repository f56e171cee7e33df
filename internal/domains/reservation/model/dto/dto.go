package dto

import (
	"bayleaf/internal/domains/reservation/model"
	"bayleaf/shared"
	gDto "bayleaf/shared/dto"
	gModel "bayleaf/shared/model"
	"bayleaf/shared/timezone"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	IdempotencyKey string  `json:"idempotency_key" validate:"omitempty,uuid"`
	Name           string  `json:"name"            validate:"required,max=100"`
	Email          string  `json:"email"           validate:"required,email,max=254"`
	Phone          *string `json:"phone"           validate:"omitempty,max=40"`
	Date           string  `json:"date"            validate:"required,isodate,notpast"`
	Time           string  `json:"time"            validate:"required,oneof=12:00 12:30 13:00 13:30 14:00 18:00 18:30 19:00 19:30 20:00 20:30 21:00"`
	Guests         int     `json:"guests"          validate:"required,gte=1,lte=8"`
	Message        *string `json:"message"         validate:"omitempty,max=2000"`
}

// ToModel builds a pending reservation. A missing idempotency key gets a fresh one.
func (c *CreateReservationRequest) ToModel() model.Reservation {
	now := timezone.Now()

	key := c.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	return model.Reservation{
		ID:             uuid.NewString(),
		IdempotencyKey: key,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          nonEmpty(c.Phone),
		Date:           gModel.Date(c.Date),
		Time:           c.Time,
		Guests:         c.Guests,
		Message:        nonEmpty(c.Message),
		Status:         model.StatusPending,
		Timestamps: gModel.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func nonEmpty(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}

	return value
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type ReservationResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Date    string  `json:"date"`
	Time    string  `json:"time"`
	Guests  int     `json:"guests"`
	Message *string `json:"message"`
	Status  string  `json:"status"`
	gDto.Timestamps
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Date = model.Date.String()
	r.Time = model.Time
	r.Guests = model.Guests
	r.Message = model.Message
	r.Status = model.Status
	r.Timestamps.FromModel(model.Timestamps)
}

// CreateReservationResponse reports whether the idempotency key had been used already.
type CreateReservationResponse struct {
	Reservation ReservationResponse `json:"reservation"`
	Duplicate   bool                `json:"duplicate"`
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}
