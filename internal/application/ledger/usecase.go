package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcisistemas/estoque-api/internal/domain"
	"github.com/mcisistemas/estoque-api/internal/domain/entity"
	"github.com/mcisistemas/estoque-api/internal/domain/repository"
)

// UseCase registra entradas e saídas no ledger. Toda gravação passa por aqui:
// é o único caminho de append e, portanto, o que garante saldo nunca negativo.
type UseCase struct {
	txRunner TxRunner
}

// NewUseCase constrói o caso de uso.
func NewUseCase(txRunner TxRunner) *UseCase {
	return &UseCase{txRunner: txRunner}
}

// EntradaInput dados para lançar uma entrada.
type EntradaInput struct {
	ProductID int64
	Quantity  decimal.Decimal
	Supplier  string
	Note      string
	Date      time.Time // zero = hoje
}

// SaidaInput dados para lançar uma saída.
type SaidaInput struct {
	ProductID   int64
	Quantity    decimal.Decimal
	Destination string
	Note        string
	Date        time.Time
}

// RegisterEntrada valida e grava uma entrada. Rejeita quantidade <= 0
// (ErrInvalidQuantity) e produto inexistente (ErrUnknownProduct), sem
// efeito colateral algum na rejeição.
func (uc *UseCase) RegisterEntrada(ctx context.Context, in EntradaInput) (int64, error) {
	if !in.Quantity.IsPositive() {
		return 0, domain.ErrInvalidQuantity
	}

	mov := &entity.Movement{
		ProductID:    in.ProductID,
		Kind:         entity.MovementEntrada,
		Quantity:     in.Quantity,
		Counterparty: in.Supplier,
		Note:         in.Note,
		Date:         occurrenceDate(in.Date),
		CreatedAt:    time.Now(),
	}

	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		movements repository.MovementRepository,
	) error {
		product, err := products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrUnknownProduct
		}
		return movements.Create(ctx, mov)
	})
	if err != nil {
		return 0, err
	}
	return mov.ID, nil
}

// RegisterSaida valida e grava uma saída. A verificação de suficiência e o
// append acontecem na mesma transação, com a linha do produto bloqueada
// (SELECT FOR UPDATE): duas saídas concorrentes não conseguem estourar o
// saldo juntas. Devolve o saldo resultante para exibição imediata.
func (uc *UseCase) RegisterSaida(ctx context.Context, in SaidaInput) (int64, decimal.Decimal, error) {
	if !in.Quantity.IsPositive() {
		return 0, decimal.Zero, domain.ErrInvalidQuantity
	}

	mov := &entity.Movement{
		ProductID:    in.ProductID,
		Kind:         entity.MovementSaida,
		Quantity:     in.Quantity,
		Counterparty: in.Destination,
		Note:         in.Note,
		Date:         occurrenceDate(in.Date),
		CreatedAt:    time.Now(),
	}

	var newBalance decimal.Decimal
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		movements repository.MovementRepository,
	) error {
		// Bloqueia a linha do produto: serializa as saídas deste produto.
		product, err := products.GetByIDForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrUnknownProduct
		}
		entradas, saidas, err := movements.SumByProduct(ctx, in.ProductID)
		if err != nil {
			return err
		}
		available := entradas.Sub(saidas)
		if available.LessThan(in.Quantity) {
			return &domain.InsufficientBalanceError{
				ProductID: in.ProductID,
				Available: available,
				Requested: in.Quantity,
			}
		}
		if err := movements.Create(ctx, mov); err != nil {
			return err
		}
		newBalance = available.Sub(in.Quantity)
		return nil
	})
	if err != nil {
		return 0, decimal.Zero, err
	}
	return mov.ID, newBalance, nil
}

func occurrenceDate(d time.Time) time.Time {
	if d.IsZero() {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	return d
}
