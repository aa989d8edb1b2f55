package entities

import (
	"time"

	"gameZoid/models"
)

// CartLineItem is a CartReference resolved against the live catalog.
type CartLineItem struct {
	Id       models.RecordID `json:"id"`
	Type     string          `json:"type"`
	Name     string          `json:"name"`
	Category string          `json:"category,omitempty"`
	Price    float64         `json:"price"`
	Image    string          `json:"image,omitempty"`
	Quantity int             `json:"quantity"`
	SumPrice float64         `json:"sumPrice"`
	AddedAt  time.Time       `json:"addedAt"`
}

type CartResponse struct {
	Items    []CartLineItem `json:"items"`
	Subtotal float64        `json:"subtotal"`
	Total    float64        `json:"total"`
}

type CheckoutSnapshot struct {
	Billing   models.BillingInfo `json:"billing"`
	Items     []CartLineItem     `json:"items"`
	Total     float64            `json:"total"`
	CreatedAt time.Time          `json:"createdAt"`
}

type PaymentResult struct {
	OrderId     string    `json:"orderId"`
	Total       float64   `json:"total"`
	CompletedAt time.Time `json:"completedAt"`
}

type StoreStats struct {
	GameCount    int `json:"gameCount"`
	ProductCount int `json:"productCount"`
	SizeKB       int `json:"sizeKB"`
}

type ExportDocument struct {
	Games      []models.CatalogItem `json:"games"`
	Products   []models.CatalogItem `json:"products"`
	ExportDate string               `json:"exportDate"`
	Version    string               `json:"version"`
}

type BootstrapResult struct {
	GamesAdded    int `json:"gamesAdded"`
	ProductsAdded int `json:"productsAdded"`
	Skipped       int `json:"skipped"`
}

type Session struct {
	SessionId string    `json:"sessionId"`
	UserEmail string    `json:"userEmail"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}
