package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrSweetNotFound = errors.New("sweet does not exist")
var ErrInvalidID = errors.New("invalid sweet id")
var ErrOutOfStock = errors.New("sweet is out of stock")

// ErrStockConflict is returned by the repository when a conditional stock
// decrement matched the document but not the quantity guard, i.e. a
// concurrent purchase drained the stock between read and write.
var ErrStockConflict = errors.New("stock changed concurrently")

// ValidationError carries a user-visible message for a 400 response.
// The message text is part of the API contract, so it is stored verbatim.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// InsufficientStockError is returned when a purchase asks for more units
// than are available; the available count is embedded in the message.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock. Only %d items available", e.Available)
}

// Sweet is the inventory item sold by the shop.
//
// Invariants: quantity is a non-negative integer, price is positive at
// creation time, category is stored lowercase.
type Sweet struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
