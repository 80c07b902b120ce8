package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of a submitted order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderForm holds the contact details collected at checkout.
type OrderForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Comment string `json:"comment,omitempty"`
}

// Order is a snapshot of the cart taken at checkout. Items and Total are
// frozen at submission time; later catalog changes do not affect them.
type Order struct {
	ID       uuid.UUID   `json:"id"`
	Date     time.Time   `json:"date"`
	Items    []CartItem  `json:"items"`
	Total    int         `json:"total"`
	Status   OrderStatus `json:"status"`
	Customer OrderForm   `json:"customer"`
}
