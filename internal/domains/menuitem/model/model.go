package model

import "bayleaf/shared/model"

const (
	TableName  = "menu_items"
	EntityName = "menu_item"

	FieldID          = "id"
	FieldCategory    = "category"
	FieldImageURL    = "image_url"
	FieldIsAvailable = "is_available"
)

const ImageDirectory = "menu-items"

type MenuItem struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	Description  string  `db:"description"`
	Price        float64 `db:"price"`
	Category     string  `db:"category"`
	ImageURL     *string `db:"image_url"`
	IsVegetarian bool    `db:"is_vegetarian"`
	IsSpecial    bool    `db:"is_special"`
	SpiceLevel   int     `db:"spice_level"`
	IsAvailable  bool    `db:"is_available"`
	model.Timestamps
}
