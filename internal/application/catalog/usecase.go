package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mcisistemas/estoque-api/internal/application/dto"
	"github.com/mcisistemas/estoque-api/internal/domain"
	"github.com/mcisistemas/estoque-api/internal/domain/entity"
	"github.com/mcisistemas/estoque-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD.
// A importação full-replace precisa de delete + insert atômicos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error) error
}

// UseCase consultas de catálogo e importação full-replace.
type UseCase struct {
	txRunner TxRunner
	products repository.ProductRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(txRunner TxRunner, products repository.ProductRepository) *UseCase {
	return &UseCase{txRunner: txRunner, products: products}
}

// List todos os produtos do catálogo.
func (uc *UseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ToProductResponse(p))
	}
	return out, nil
}

// Get produto por ID. IDs emitidos antes de uma reimportação deixam de
// existir e caem em ErrUnknownProduct.
func (uc *UseCase) Get(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrUnknownProduct
	}
	resp := dto.ToProductResponse(p)
	return &resp, nil
}

// Search busca por descrição ou SKU, ignorando caixa e acentos. A descrição
// é só rótulo de seleção; quem lança movimento usa o ID devolvido aqui.
func (uc *UseCase) Search(ctx context.Context, query string) ([]dto.ProductResponse, error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []dto.ProductResponse
	for _, p := range products {
		if p.Matches(query) {
			out = append(out, dto.ToProductResponse(p))
		}
	}
	return out, nil
}

// Import substitui o catálogo inteiro pelas linhas recebidas, em uma única
// transação: qualquer linha inválida aborta tudo e o catálogo anterior fica
// intacto. Não existe modo de sucesso parcial nem merge. Todos os IDs de
// produto emitidos antes da importação ficam inválidos.
func (uc *UseCase) Import(ctx context.Context, rows []dto.CatalogRow) (*dto.ImportSummary, error) {
	for i, row := range rows {
		// +2: linha 1 da planilha é o cabeçalho
		if strings.TrimSpace(row.Description) == "" {
			return nil, &domain.ImportFormatError{Row: i + 2, Column: "Descricao", Reason: "descrição vazia"}
		}
		if strings.TrimSpace(row.Unit) == "" {
			return nil, &domain.ImportFormatError{Row: i + 2, Column: "Unidade", Reason: "unidade vazia"}
		}
		if row.SafetyStock != nil && row.SafetyStock.IsNegative() {
			return nil, &domain.ImportFormatError{Row: i + 2, Column: "EstSeguranca", Reason: "estoque de segurança negativo"}
		}
	}

	now := time.Now()
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		_ repository.MovementRepository,
	) error {
		if err := products.DeleteAll(ctx); err != nil {
			return err
		}
		for _, row := range rows {
			p := &entity.Product{
				SKU:         strings.TrimSpace(row.SKU),
				Description: strings.TrimSpace(row.Description),
				Unit:        strings.TrimSpace(row.Unit),
				Type:        strings.TrimSpace(row.Type),
				Location:    strings.TrimSpace(row.Location),
				SafetyStock: row.SafetyStock,
				CreatedAt:   now,
			}
			if err := products.Create(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.ImportSummary{BatchID: uuid.New().String(), Products: len(rows)}, nil
}
