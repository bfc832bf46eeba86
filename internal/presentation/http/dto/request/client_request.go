package request

import "github.com/shopspring/decimal"

// CreateClientRequest represents a client creation request
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"max=20"`
	Company string `json:"company" binding:"max=200"`
	Address string `json:"address"`
}

// UpdateClientRequest represents a partial client update
type UpdateClientRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=200"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
	Company *string `json:"company" binding:"omitempty,max=200"`
	Address *string `json:"address"`
	Active  *bool   `json:"active"`
}

// CreateServiceRequest represents a catalog service creation request.
// Category defaults to development.
type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"required,max=200"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
}

// UpdateServiceRequest represents a partial catalog service update
type UpdateServiceRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=200"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate"`
	Active      *bool            `json:"active"`
}
