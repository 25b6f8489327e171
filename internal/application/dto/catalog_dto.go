package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcisistemas/estoque-api/internal/domain/entity"
)

// CatalogRow uma linha da planilha de importação de catálogo.
type CatalogRow struct {
	SKU         string
	Description string
	Unit        string
	Type        string
	Location    string
	SafetyStock *decimal.Decimal
}

// ImportSummary resultado de uma importação full-replace bem-sucedida.
type ImportSummary struct {
	BatchID  string `json:"batch_id"`
	Products int    `json:"products"`
}

// ProductResponse projeção de produto para a API.
type ProductResponse struct {
	ID          int64            `json:"id"`
	SKU         string           `json:"sku"`
	Description string           `json:"description"`
	Unit        string           `json:"unit"`
	Type        string           `json:"type,omitempty"`
	Location    string           `json:"location,omitempty"`
	SafetyStock *decimal.Decimal `json:"safety_stock,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// ToProductResponse converte a entidade para a projeção da API.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Description: p.Description,
		Unit:        p.Unit,
		Type:        p.Type,
		Location:    p.Location,
		SafetyStock: p.SafetyStock,
		CreatedAt:   p.CreatedAt,
	}
}
