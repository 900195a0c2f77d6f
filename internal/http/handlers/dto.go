package handlers

import "github.com/rogerio-castellano/warehouse-inventory/internal/models"

// Response is the envelope of every JSON answer.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	// Errors lists field level validation failures.
	Errors []ValidationError `json:"errors,omitempty"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type RefreshResult struct {
	Token string `json:"token"`
}

type HealthResult struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// The typed envelopes below document the responses for swag and decode them in tests.

type ProductResponse struct {
	Success bool           `json:"success"`
	Data    models.Product `json:"data"`
}

type ProductsResponse struct {
	Success bool             `json:"success"`
	Data    []models.Product `json:"data"`
	Meta    Meta             `json:"meta"`
}

type AdjustmentResponse struct {
	Success bool                    `json:"success"`
	Data    models.AdjustmentResult `json:"data"`
	Message string                  `json:"message,omitempty"`
}

type AdjustmentsResponse struct {
	Success bool                     `json:"success"`
	Data    []models.StockAdjustment `json:"data"`
	Meta    Meta                     `json:"meta"`
}

type LoginResponse struct {
	Success bool        `json:"success"`
	Data    LoginResult `json:"data"`
}

type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Errors  []ValidationError `json:"errors,omitempty"`
}
