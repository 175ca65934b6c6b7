package model

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order records a dispatched handoff so the operator keeps a trace beyond
// the chat thread. Items is the cart snapshot serialized as JSON.
type Order struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	Service     string      `gorm:"index" json:"service"`
	Channel     string      `json:"channel"`
	Contact     string      `json:"contact"`
	Items       string      `gorm:"not null" json:"items"`
	TotalAmount float64     `gorm:"not null;default:0" json:"total_amount"`
	Status      OrderStatus `gorm:"default:'pending';index" json:"status"`
	Notes       string      `json:"notes"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}
