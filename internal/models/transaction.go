package models

import (
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNegativePrice     = errors.New("price must not be negative")
	ErrMissingMonthToken = errors.New("date of sale must contain a month token")
)

// Transaction represents a single product sale record
type Transaction struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"not null;default:0" json:"price"`
	PriceText   string    `gorm:"type:varchar(64);not null;default:''" json:"-"`
	Category    string    `gorm:"type:varchar(100);index" json:"category"`
	Image       string    `gorm:"type:text" json:"image,omitempty"`
	Sold        bool      `gorm:"not null;default:false" json:"sold"`
	DateOfSale  string    `gorm:"column:date_of_sale;type:varchar(64);not null;index" json:"dateOfSale"`
	CreatedAt   time.Time `json:"-"`
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// BeforeSave keeps the searchable price text in step with Price
func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.PriceText = FormatPrice(t.Price)
	return nil
}

// Validate checks the record invariants
func (t *Transaction) Validate() error {
	if t.Price < 0 {
		return ErrNegativePrice
	}
	if !HasMonthToken(t.DateOfSale) {
		return ErrMissingMonthToken
	}
	return nil
}

// Month returns the two-digit month token of the sale date, or "" when none is present
func (t *Transaction) Month() string {
	return ExtractMonth(t.DateOfSale)
}

// FormatPrice renders a price the way a JSON number is written: shortest
// decimal form, no trailing zeros, no exponent.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
