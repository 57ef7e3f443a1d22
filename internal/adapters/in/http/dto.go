package http

import (
	"encoding/json"
	"sort"
	"time"

	"hawkerflow/internal/core/application/usecases/commands"
	"hawkerflow/internal/core/application/usecases/queries"
	"hawkerflow/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SubmitOrderRequest groups dishes by stall, matching the shape the
// fulfillment consumer receives.
type SubmitOrderRequest struct {
	OrderID      string                   `json:"orderId,omitempty"`
	UserID       string                   `json:"userId"`
	Contact      string                   `json:"contact"`
	HawkerCenter string                   `json:"hawkerCenter"`
	Token        string                   `json:"token"`
	Amount       *decimal.Decimal         `json:"amount,omitempty"`
	Stalls       map[string][]DishRequest `json:"stalls"`
}

type DishRequest struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	WaitTime int             `json:"waitTime"`
	Price    decimal.Decimal `json:"price"`
}

// items flattens the stall map in stall-name order so dish positions are stable.
func (r SubmitOrderRequest) items() []commands.SubmitOrderItem {
	names := make([]string, 0, len(r.Stalls))
	for name := range r.Stalls {
		names = append(names, name)
	}
	sort.Strings(names)

	var items []commands.SubmitOrderItem
	for _, stall := range names {
		for _, dish := range r.Stalls[stall] {
			items = append(items, commands.SubmitOrderItem{
				StallName: stall,
				DishName:  dish.Name,
				Quantity:  dish.Quantity,
				WaitTime:  dish.WaitTime,
				Price:     dish.Price,
			})
		}
	}
	return items
}

type SubmitOrderResponse struct {
	OrderID       string `json:"orderId"`
	PaymentStatus string `json:"paymentStatus"`
}

type OrderStatusResponse struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type WaitTimeResponse struct {
	HawkerCenter string `json:"hawkerCenter"`
	HawkerStall  string `json:"hawkerStall"`
	WaitTime     int    `json:"waitTime"`
}

type TotalEarnedResponse struct {
	HawkerCenter string      `json:"hawkerCenter"`
	HawkerStall  string      `json:"hawkerStall"`
	TotalEarned  json.Number `json:"totalEarned"`
}

type StallOrdersResponse struct {
	HawkerCenter string             `json:"hawkerCenter"`
	HawkerStall  string             `json:"hawkerStall"`
	Orders       []StallOrderResult `json:"orders"`
}

type StallOrderResult struct {
	OrderID   string           `json:"orderId"`
	UserID    string           `json:"userId"`
	Contact   string           `json:"contact"`
	CreatedAt time.Time        `json:"createdAt"`
	Dishes    []StallDishState `json:"dishes"`
}

type StallDishState struct {
	Name          string      `json:"name"`
	Quantity      int         `json:"quantity"`
	WaitTime      int         `json:"waitTime"`
	Price         json.Number `json:"price"`
	Completed     bool        `json:"completed"`
	TimeStarted   time.Time   `json:"timeStarted"`
	TimeCompleted *time.Time  `json:"timeCompleted"`
}

type CompleteDishResponse struct {
	OrderID        string `json:"orderId"`
	DishName       string `json:"dishName"`
	DishCompleted  bool   `json:"dishCompleted"`
	OrderCompleted bool   `json:"orderCompleted"`
	Message        string `json:"message"`
}

type ActivityLogsResponse struct {
	WeekID string             `json:"weekId"`
	Logs   []ActivityLogEntry `json:"logs"`
}

type ActivityLogEntry struct {
	OrderID         string    `json:"orderId"`
	HawkerCenter    string    `json:"hawkerCenter"`
	StallName       string    `json:"stallName"`
	DishName        string    `json:"dishName"`
	Quantity        int       `json:"quantity"`
	OrderStartTime  time.Time `json:"orderStartTime"`
	OrderEndTime    time.Time `json:"orderEndTime"`
	DurationSeconds float64   `json:"durationSeconds"`
}

// amount renders money as a JSON number with two decimal places.
func amount(m kernel.Money) json.Number {
	return json.Number(m.String())
}

func newStallOrdersResponse(query queries.GetStallOrdersQuery, open []queries.GetStallOrdersQueryResponse) StallOrdersResponse {
	resp := StallOrdersResponse{
		HawkerCenter: query.Stall().HawkerCenter(),
		HawkerStall:  query.Stall().StallName(),
		Orders:       make([]StallOrderResult, 0, len(open)),
	}
	for _, o := range open {
		dishes := make([]StallDishState, 0, len(o.Dishes))
		for _, d := range o.Dishes {
			dishes = append(dishes, StallDishState{
				Name:          d.Name,
				Quantity:      d.Quantity,
				WaitTime:      d.WaitTime,
				Price:         amount(d.Price),
				Completed:     d.Completed,
				TimeStarted:   d.TimeStarted,
				TimeCompleted: d.TimeCompleted,
			})
		}
		resp.Orders = append(resp.Orders, StallOrderResult{
			OrderID:   o.OrderID,
			UserID:    o.UserID,
			Contact:   o.Contact,
			CreatedAt: o.CreatedAt,
			Dishes:    dishes,
		})
	}
	return resp
}

func newCompleteDishResponse(orderID, dishName string, result commands.CompleteDishResult) CompleteDishResponse {
	resp := CompleteDishResponse{
		OrderID:        orderID,
		DishName:       dishName,
		DishCompleted:  result.DishCompleted,
		OrderCompleted: result.OrderCompleted,
	}
	switch {
	case result.OrderCompleted:
		resp.Message = "Order completed"
	case result.DishCompleted:
		resp.Message = "Dish completed"
	default:
		resp.Message = "Dish was already completed"
	}
	return resp
}

func newActivityLogsResponse(result queries.GetActivityLogsQueryResponse) ActivityLogsResponse {
	resp := ActivityLogsResponse{WeekID: result.WeekID, Logs: make([]ActivityLogEntry, 0, len(result.Logs))}
	for _, l := range result.Logs {
		resp.Logs = append(resp.Logs, ActivityLogEntry{
			OrderID:         l.OrderID,
			HawkerCenter:    l.HawkerCenter,
			StallName:       l.StallName,
			DishName:        l.DishName,
			Quantity:        l.Quantity,
			OrderStartTime:  l.OrderStartTime,
			OrderEndTime:    l.OrderEndTime,
			DurationSeconds: l.Duration().Seconds(),
		})
	}
	return resp
}
