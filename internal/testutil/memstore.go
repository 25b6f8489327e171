// Package testutil fornece implementações em memória das portas de
// persistência, para testes de casos de uso sem banco.
package testutil

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mcisistemas/estoque-api/internal/domain/entity"
	"github.com/mcisistemas/estoque-api/internal/domain/repository"
)

// MemStore catálogo + ledger em memória. As semânticas espelham os
// adaptadores PostgreSQL: IDs sequenciais, (nil, nil) para produto ausente,
// filtros AND, ordenação por (data, id).
type MemStore struct {
	Products  []*entity.Product
	Movements []*entity.Movement

	nextProductID  int64
	nextMovementID int64
}

// NewMemStore constrói o store vazio.
func NewMemStore() *MemStore {
	return &MemStore{nextProductID: 1, nextMovementID: 1}
}

// SeedProduct insere um produto e devolve o ID atribuído.
func (s *MemStore) SeedProduct(p *entity.Product) int64 {
	_ = (&memProductRepo{s}).Create(context.Background(), p)
	return p.ID
}

// ProductRepo devolve a porta de catálogo.
func (s *MemStore) ProductRepo() repository.ProductRepository { return &memProductRepo{s} }

// MovementRepo devolve a porta do ledger.
func (s *MemStore) MovementRepo() repository.MovementRepository { return &memMovementRepo{s} }

// TxRunner devolve um runner com semântica de rollback: se fn falha, o
// estado volta ao snapshot anterior.
func (s *MemStore) TxRunner() *MemTxRunner { return &MemTxRunner{store: s} }

// MemTxRunner transação simulada sobre o MemStore.
type MemTxRunner struct {
	store *MemStore
}

// Run executa fn e desfaz qualquer mutação se fn devolver erro.
func (r *MemTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
) error) error {
	snapshot := *r.store
	snapshot.Products = append([]*entity.Product(nil), r.store.Products...)
	snapshot.Movements = append([]*entity.Movement(nil), r.store.Movements...)

	if err := fn(&memProductRepo{r.store}, &memMovementRepo{r.store}); err != nil {
		*r.store = snapshot
		return err
	}
	return nil
}

type memProductRepo struct{ s *MemStore }

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	p.ID = r.s.nextProductID
	r.s.nextProductID++
	r.s.Products = append(r.s.Products, p)
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	for _, p := range r.s.Products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	out := append([]*entity.Product(nil), r.s.Products...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Description != out[j].Description {
			return out[i].Description < out[j].Description
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memProductRepo) DeleteAll(_ context.Context) error {
	// CASCADE: o histórico dos produtos apagados vai junto.
	r.s.Products = nil
	r.s.Movements = nil
	return nil
}

type memMovementRepo struct{ s *MemStore }

func (r *memMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	m.ID = r.s.nextMovementID
	r.s.nextMovementID++
	r.s.Movements = append(r.s.Movements, m)
	return nil
}

func (r *memMovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.Movements {
		if f.ProductID != nil && m.ProductID != *f.ProductID {
			continue
		}
		if f.Kind != nil && m.Kind != *f.Kind {
			continue
		}
		if f.Location != nil && !r.matchesLocation(m.ProductID, *f.Location) {
			continue
		}
		if f.From != nil && m.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && m.Date.After(*f.To) {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			if f.Ascending {
				return out[i].Date.Before(out[j].Date)
			}
			return out[i].Date.After(out[j].Date)
		}
		if f.Ascending {
			return out[i].ID < out[j].ID
		}
		return out[i].ID > out[j].ID
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *memMovementRepo) SumByProduct(_ context.Context, productID int64) (decimal.Decimal, decimal.Decimal, error) {
	entradas, saidas := decimal.Zero, decimal.Zero
	for _, m := range r.s.Movements {
		if m.ProductID != productID {
			continue
		}
		if m.Kind == entity.MovementEntrada {
			entradas = entradas.Add(m.Quantity)
		} else {
			saidas = saidas.Add(m.Quantity)
		}
	}
	return entradas, saidas, nil
}

func (r *memMovementRepo) TotalsByProduct(_ context.Context) ([]repository.ProductTotals, error) {
	byProduct := make(map[int64]*repository.ProductTotals)
	var order []int64
	for _, m := range r.s.Movements {
		t, ok := byProduct[m.ProductID]
		if !ok {
			t = &repository.ProductTotals{ProductID: m.ProductID}
			byProduct[m.ProductID] = t
			order = append(order, m.ProductID)
		}
		if m.Kind == entity.MovementEntrada {
			t.Entradas = t.Entradas.Add(m.Quantity)
		} else {
			t.Saidas = t.Saidas.Add(m.Quantity)
		}
	}
	out := make([]repository.ProductTotals, 0, len(order))
	for _, id := range order {
		out = append(out, *byProduct[id])
	}
	return out, nil
}

func (r *memMovementRepo) matchesLocation(productID int64, location string) bool {
	for _, p := range r.s.Products {
		if p.ID == productID {
			return p.Location == location
		}
	}
	return false
}
