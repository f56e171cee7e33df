package dto

import (
	"bayleaf/internal/domains/contactmessage/model"
	"bayleaf/shared"
	"bayleaf/shared/constant"
	"bayleaf/shared/timezone"

	"github.com/google/uuid"
)

type CreateContactMessageRequest struct {
	Name    string  `json:"name"    validate:"required,max=100"`
	Email   string  `json:"email"   validate:"required,email,max=254"`
	Subject *string `json:"subject" validate:"omitempty,max=200"`
	Message string  `json:"message" validate:"required,max=5000"`
}

func (c *CreateContactMessageRequest) ToModel() model.ContactMessage {
	subject := c.Subject
	if subject != nil && *subject == "" {
		subject = nil
	}

	return model.ContactMessage{
		ID:        uuid.NewString(),
		Name:      c.Name,
		Email:     c.Email,
		Subject:   subject,
		Message:   c.Message,
		Status:    model.StatusUnread,
		CreatedAt: timezone.Now(),
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=unread read replied"`
}

type ContactMessageResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Subject   *string `json:"subject"`
	Message   string  `json:"message"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

func (r *ContactMessageResponse) FromModel(model model.ContactMessage) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Subject = model.Subject
	r.Message = model.Message
	r.Status = model.Status
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

type GetContactMessagesResponse struct {
	Messages  []ContactMessageResponse `json:"messages"`
	TotalPage int                      `json:"total_page"`
	TotalData int                      `json:"total_data"`
}

func (r *GetContactMessagesResponse) FromModels(models []model.ContactMessage, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Messages = make([]ContactMessageResponse, len(models))
	for i, mod := range models {
		r.Messages[i].FromModel(mod)
	}
}
