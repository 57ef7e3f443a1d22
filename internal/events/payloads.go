package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Notification statuses.
const (
	StatusSuccess   = "success"
	StatusFailed    = "failed"
	StatusCompleted = "completed"
)

// OrderCreated is published on OrderExchange with QueueKey once payment succeeds.
type OrderCreated struct {
	OrderID      string            `json:"orderId"`
	HawkerCenter string            `json:"hawkerCenter"`
	UserID       string            `json:"userId"`
	Contact      string            `json:"contact"`
	Stalls       map[string][]Dish `json:"stalls"`
}

// Dish is one ordered dish. WaitTime is minutes per unit; Price is the unit price.
type Dish struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	WaitTime int             `json:"waitTime"`
	Price    decimal.Decimal `json:"price"`
}

// Notification is sent to the customer after payment and after completion.
type Notification struct {
	OrderID      string `json:"orderId"`
	UserID       string `json:"userId"`
	Contact      string `json:"contact"`
	Status       string `json:"status"`
	HawkerCenter string `json:"hawkerCenter,omitempty"`
	StallName    string `json:"stallName,omitempty"`
}

// Activity is keyed by dish name and describes one completed stall sub-order.
type Activity map[string]ActivityDish

type ActivityDish struct {
	HawkerCenter   string    `json:"hawkerCenter"`
	StallName      string    `json:"stallName"`
	Quantity       int       `json:"quantity"`
	OrderStartTime time.Time `json:"orderStartTime"`
	OrderEndTime   time.Time `json:"orderEndTime"`
}
