package dto

import (
	"transaction-analytics/internal/models"
)

// SeedRecord is one entry of the product transaction snapshot. The
// snapshot's own id is ignored; the store assigns identifiers.
type SeedRecord struct {
	ID          int     `json:"id"`
	Title       string  `json:"title" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Sold        bool    `json:"sold"`
	DateOfSale  string  `json:"dateOfSale" validate:"required,month_token"`
}

// ToModel maps the snapshot entry onto a store record
func (r SeedRecord) ToModel() models.Transaction {
	return models.Transaction{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Image:       r.Image,
		Sold:        r.Sold,
		DateOfSale:  r.DateOfSale,
	}
}

// SeedRecordsToModels maps a whole snapshot preserving order
func SeedRecordsToModels(records []SeedRecord) []models.Transaction {
	result := make([]models.Transaction, 0, len(records))
	for _, r := range records {
		result = append(result, r.ToModel())
	}
	return result
}
