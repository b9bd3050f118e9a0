package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse métricas agregadas del tenant para el dashboard.
type DashboardStatsResponse struct {
	RevenueInvoiced    decimal.Decimal      `json:"revenueInvoiced"`
	RevenueCollected   decimal.Decimal      `json:"revenueCollected"`
	OutstandingBalance decimal.Decimal      `json:"outstandingBalance"`
	JobsByStatus       map[string]int       `json:"jobsByStatus"`
	TopCustomers       []TopCustomerDTO     `json:"topCustomers"`
}

// TopCustomerDTO cliente con mayor facturación en el período.
type TopCustomerDTO struct {
	CustomerID string          `json:"customerId"`
	Name       string          `json:"name"`
	Revenue    decimal.Decimal `json:"revenue"`
	JobCount   int             `json:"jobCount"`
}

// AIInsightsRequest pregunta opcional para enfocar el análisis.
type AIInsightsRequest struct {
	Question string `json:"question" validate:"omitempty,max=500"`
}

// AIInsightsResponse análisis de negocio generado por el LLM.
type AIInsightsResponse struct {
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
	GeneratedAt     string   `json:"generatedAt"`
}
