package ledger

import (
	"context"

	"github.com/mcisistemas/estoque-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. É o que torna atômica a sequência
// "verificar suficiência + gravar movimento".
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error) error
}
