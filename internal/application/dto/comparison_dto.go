package dto

import "github.com/shopspring/decimal"

// ComparisonRequest parámetros comunes de /api/comparisons.
type ComparisonRequest struct {
	Current  string `query:"current"`
	Previous string `query:"previous"`
}

// RankingRequest parámetros de GET /api/comparisons/rankings.
type RankingRequest struct {
	Current  string `query:"current"`
	Previous string `query:"previous"`
	View     string `query:"view"` // most_sold, gross_profit, least_sold_categories, top_increases, stagnated
	N        int    `query:"n"`    // se acota a [1, tamaño del grupo]
}

// DiffLineDTO un producto del snapshot actual frente al anterior.
type DiffLineDTO struct {
	ProductCode      string            `json:"product_code"`
	Name             string            `json:"name"`
	Category         string            `json:"category"`
	AverageCost      decimal.Decimal   `json:"average_cost"`
	PriceTiers       []decimal.Decimal `json:"price_tiers"`
	CurrentQuantity  decimal.Decimal   `json:"current_quantity"`
	PreviousQuantity decimal.Decimal   `json:"previous_quantity"`
	QuantityChange   decimal.Decimal   `json:"quantity_change"`
	InPrevious       bool              `json:"in_previous"`
}

// CategoryChangeDTO variación por categoría.
type CategoryChangeDTO struct {
	Category         string          `json:"category"`
	CurrentQuantity  decimal.Decimal `json:"current_quantity"`
	PreviousQuantity decimal.Decimal `json:"previous_quantity"`
	QuantityChange   decimal.Decimal `json:"quantity_change"`
	CurrentValue     decimal.Decimal `json:"current_value"`
	PreviousValue    decimal.Decimal `json:"previous_value"`
	ValueChange      decimal.Decimal `json:"value_change"`
}

// ComparisonResponse GET /api/comparisons.
type ComparisonResponse struct {
	CurrentID   string              `json:"current_id"`
	PreviousID  string              `json:"previous_id"`
	PersistedAs string              `json:"persisted_as,omitempty"` // merged_data_<fecha> si se guardó
	Lines       []DiffLineDTO       `json:"lines"`
	Categories  []CategoryChangeDTO `json:"categories"`
}

// RankedLineDTO línea con la métrica que la ordenó.
type RankedLineDTO struct {
	DiffLineDTO
	Metric decimal.Decimal `json:"metric"`
}

// RankedCategoryDTO categoría con la métrica que la ordenó.
type RankedCategoryDTO struct {
	CategoryChangeDTO
	Metric decimal.Decimal `json:"metric"`
}

// RankingResponse una vista de ranking. Solo uno de Lines/Categories viene poblado.
type RankingResponse struct {
	CurrentID  string              `json:"current_id"`
	PreviousID string              `json:"previous_id"`
	View       string              `json:"view"`
	N          int                 `json:"n"`         // N efectivo tras acotar
	GroupSize  int                 `json:"group_size"` // productos o categorías disponibles
	Lines      []RankedLineDTO     `json:"lines,omitempty"`
	Categories []RankedCategoryDTO `json:"categories,omitempty"`
}
