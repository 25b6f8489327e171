package repository

import (
	"context"

	"github.com/mcisistemas/estoque-api/internal/domain/entity"
)

// ProductRepository define a porta de persistência do catálogo (DIP).
// GetByID devolve (nil, nil) quando o produto não existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetByIDForUpdate bloqueia a linha do produto (SELECT FOR UPDATE); é a
	// âncora de serialização da verificação de suficiência dentro da transação.
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	// DeleteAll apaga o catálogo inteiro; usado pela importação full-replace.
	DeleteAll(ctx context.Context) error
}
