package dto

import (
	"mime/multipart"

	"bayleaf/internal/domains/menuitem/model"
	gDto "bayleaf/shared/dto"
	gModel "bayleaf/shared/model"
	"bayleaf/shared/timezone"

	"github.com/google/uuid"
)

type CreateMenuItemRequest struct {
	Name         string  `json:"name"          validate:"required,max=120"`
	Description  string  `json:"description"   validate:"max=1000"`
	Price        float64 `json:"price"         validate:"gte=0,lt=100000000"`
	Category     string  `json:"category"      validate:"required,max=60"`
	ImageURL     *string `json:"image_url"     validate:"omitempty,url"`
	IsVegetarian bool    `json:"is_vegetarian"`
	IsSpecial    bool    `json:"is_special"`
	SpiceLevel   int     `json:"spice_level"   validate:"gte=0,lte=5"`
	IsAvailable  *bool   `json:"is_available"`
}

// ToModel treats a missing is_available as available.
func (c *CreateMenuItemRequest) ToModel() model.MenuItem {
	now := timezone.Now()

	available := true
	if c.IsAvailable != nil {
		available = *c.IsAvailable
	}

	return model.MenuItem{
		ID:           uuid.NewString(),
		Name:         c.Name,
		Description:  c.Description,
		Price:        c.Price,
		Category:     c.Category,
		ImageURL:     c.ImageURL,
		IsVegetarian: c.IsVegetarian,
		IsSpecial:    c.IsSpecial,
		SpiceLevel:   c.SpiceLevel,
		IsAvailable:  available,
		Timestamps: gModel.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// UpdateMenuItemRequest is a partial update; nil fields are left unchanged.
type UpdateMenuItemRequest struct {
	Name         *string  `json:"name"          db:"name"          validate:"omitempty,min=1,max=120"`
	Description  *string  `json:"description"   db:"description"   validate:"omitempty,max=1000"`
	Price        *float64 `json:"price"         db:"price"         validate:"omitempty,gte=0,lt=100000000"`
	Category     *string  `json:"category"      db:"category"      validate:"omitempty,min=1,max=60"`
	IsVegetarian *bool    `json:"is_vegetarian" db:"is_vegetarian"`
	IsSpecial    *bool    `json:"is_special"    db:"is_special"`
	SpiceLevel   *int     `json:"spice_level"   db:"spice_level"   validate:"omitempty,gte=0,lte=5"`
	IsAvailable  *bool    `json:"is_available"  db:"is_available"`
}

type UploadImageRequest struct {
	File *multipart.FileHeader `form:"file" validate:"required,mimetypes=image/jpeg image/png image/webp,maxfilesize=5"`
}

type MenuItemResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
	ImageURL     *string `json:"image_url"`
	IsVegetarian bool    `json:"is_vegetarian"`
	IsSpecial    bool    `json:"is_special"`
	SpiceLevel   int     `json:"spice_level"`
	IsAvailable  bool    `json:"is_available"`
	gDto.Timestamps
}

func (r *MenuItemResponse) FromModel(model model.MenuItem) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Price = model.Price
	r.Category = model.Category
	r.ImageURL = model.ImageURL
	r.IsVegetarian = model.IsVegetarian
	r.IsSpecial = model.IsSpecial
	r.SpiceLevel = model.SpiceLevel
	r.IsAvailable = model.IsAvailable
	r.Timestamps.FromModel(model.Timestamps)
}

// MenuItemChangeResponse carries the changed item and the menu as reloaded after the change.
type MenuItemChangeResponse struct {
	Item  *MenuItemResponse  `json:"item,omitempty"`
	Items []MenuItemResponse `json:"items"`
}

func FromModels(models []model.MenuItem) []MenuItemResponse {
	res := make([]MenuItemResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
