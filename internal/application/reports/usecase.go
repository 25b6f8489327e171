package reports

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcisistemas/estoque-api/internal/application/dto"
	"github.com/mcisistemas/estoque-api/internal/domain/entity"
	"github.com/mcisistemas/estoque-api/internal/domain/repository"
)

// Quantos itens aparecem nas visões de atividade, como na ferramenta original.
const (
	recentLimit     = 20
	mostActiveLimit = 10
)

// UseCase compõe ledger e catálogo nas duas formas de relatório:
// listas filtradas de movimentos e ranking de produtos mais movimentados.
type UseCase struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(products repository.ProductRepository, movements repository.MovementRepository) *UseCase {
	return &UseCase{products: products, movements: movements}
}

// MovementQuery filtros da listagem; todos opcionais, compostos com AND.
type MovementQuery struct {
	ProductID *int64
	Kind      *string
	Location  *string
	From      *time.Time
	To        *time.Time
	Ascending bool
	Limit     int
}

// Movements lista movimentos filtrados, anotados com o produto.
func (uc *UseCase) Movements(ctx context.Context, q MovementQuery) ([]dto.MovementRow, error) {
	movements, err := uc.movements.List(ctx, repository.MovementFilter{
		ProductID: q.ProductID,
		Kind:      q.Kind,
		Location:  q.Location,
		From:      q.From,
		To:        q.To,
		Ascending: q.Ascending,
		Limit:     q.Limit,
	})
	if err != nil {
		return nil, err
	}
	return uc.annotate(ctx, movements)
}

// RecentActivity últimas entradas e últimas saídas, mais recentes primeiro.
func (uc *UseCase) RecentActivity(ctx context.Context) (*dto.RecentActivity, error) {
	entradaKind := entity.MovementEntrada
	saidaKind := entity.MovementSaida

	entradas, err := uc.Movements(ctx, MovementQuery{Kind: &entradaKind, Limit: recentLimit})
	if err != nil {
		return nil, err
	}
	saidas, err := uc.Movements(ctx, MovementQuery{Kind: &saidaKind, Limit: recentLimit})
	if err != nil {
		return nil, err
	}
	return &dto.RecentActivity{Entradas: entradas, Saidas: saidas}, nil
}

// MostActive top 10 por soma de entradas + saídas, decrescente; empate
// desfeito por ID crescente para ordem determinística.
func (uc *UseCase) MostActive(ctx context.Context) ([]dto.ActiveProduct, error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := uc.movements.TotalsByProduct(ctx)
	if err != nil {
		return nil, err
	}
	moved := make(map[int64]decimal.Decimal, len(totals))
	for _, t := range totals {
		moved[t.ProductID] = t.Entradas.Add(t.Saidas)
	}

	ranking := make([]dto.ActiveProduct, 0, len(products))
	for _, p := range products {
		ranking = append(ranking, dto.ActiveProduct{
			ProductID:   p.ID,
			SKU:         p.SKU,
			Description: p.Description,
			TotalMoved:  moved[p.ID],
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if !ranking[i].TotalMoved.Equal(ranking[j].TotalMoved) {
			return ranking[i].TotalMoved.GreaterThan(ranking[j].TotalMoved)
		}
		return ranking[i].ProductID < ranking[j].ProductID
	})
	if len(ranking) > mostActiveLimit {
		ranking = ranking[:mostActiveLimit]
	}
	return ranking, nil
}

func (uc *UseCase) annotate(ctx context.Context, movements []*entity.Movement) ([]dto.MovementRow, error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	rows := make([]dto.MovementRow, 0, len(movements))
	for _, m := range movements {
		row := dto.MovementRow{
			ID:           m.ID,
			ProductID:    m.ProductID,
			Kind:         m.Kind,
			Quantity:     m.Quantity,
			Counterparty: m.Counterparty,
			Note:         m.Note,
			Date:         m.Date,
		}
		if p, ok := byID[m.ProductID]; ok {
			row.SKU = p.SKU
			row.Description = p.Description
		}
		rows = append(rows, row)
	}
	return rows, nil
}
