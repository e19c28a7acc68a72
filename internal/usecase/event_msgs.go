package usecase

import "time"

// Published on RabbitMQ after an order is persisted.
type OrderPlacedMsg struct {
	EventID    string    `json:"eventId"`
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId"`
	TotalPrice string    `json:"totalPrice"`
	Items      int       `json:"items"`
	PlacedAt   time.Time `json:"placedAt"`
}

// Published on RabbitMQ after a status update.
type OrderStatusChangedMsg struct {
	EventID   string    `json:"eventId"`
	OrderID   string    `json:"orderId"`
	UserID    string    `json:"userId"`
	Status    string    `json:"status"`
	ChangedBy string    `json:"changedBy"`
	ChangedAt time.Time `json:"changedAt"`
}

// Sent by the fulfillment service on Kafka.
type FulfillmentStatusMsg struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"` // Shipped | Delivered | Cancelled
}
