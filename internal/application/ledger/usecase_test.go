package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcisistemas/estoque-api/internal/application/ledger"
	"github.com/mcisistemas/estoque-api/internal/domain"
	"github.com/mcisistemas/estoque-api/internal/domain/entity"
	"github.com/mcisistemas/estoque-api/internal/testutil"
)

func newFixture(t *testing.T) (*ledger.UseCase, *testutil.MemStore, int64) {
	t.Helper()
	store := testutil.NewMemStore()
	productID := store.SeedProduct(&entity.Product{
		SKU:         "PAR-001",
		Description: "Parafuso M6",
		Unit:        "UN",
		Location:    "Almoxarifado A",
	})
	return ledger.NewUseCase(store.TxRunner()), store, productID
}

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestRegisterEntrada(t *testing.T) {
	uc, store, productID := newFixture(t)

	movementID, err := uc.RegisterEntrada(context.Background(), ledger.EntradaInput{
		ProductID: productID,
		Quantity:  decimal.NewFromInt(10),
		Supplier:  "Fornecedor X",
		Date:      day(1),
	})
	require.NoError(t, err)
	assert.NotZero(t, movementID)

	require.Len(t, store.Movements, 1)
	mov := store.Movements[0]
	assert.Equal(t, entity.MovementEntrada, mov.Kind)
	assert.True(t, mov.Quantity.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "Fornecedor X", mov.Counterparty)
	assert.Equal(t, day(1), mov.Date)
}

func TestRegisterEntrada_DefaultsDateToToday(t *testing.T) {
	uc, store, productID := newFixture(t)

	_, err := uc.RegisterEntrada(context.Background(), ledger.EntradaInput{
		ProductID: productID,
		Quantity:  decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	require.Len(t, store.Movements, 1)
	assert.False(t, store.Movements[0].Date.IsZero())
}

func TestRegisterEntrada_RejectsNonPositiveQuantity(t *testing.T) {
	uc, store, productID := newFixture(t)

	for _, qty := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-3)} {
		_, err := uc.RegisterEntrada(context.Background(), ledger.EntradaInput{
			ProductID: productID,
			Quantity:  qty,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
	assert.Empty(t, store.Movements, "rejeição não pode ter efeito colateral")
}

func TestRegisterEntrada_UnknownProduct(t *testing.T) {
	uc, store, _ := newFixture(t)

	_, err := uc.RegisterEntrada(context.Background(), ledger.EntradaInput{
		ProductID: 999,
		Quantity:  decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)
	assert.Empty(t, store.Movements)
}

func TestRegisterSaida_ReturnsNewBalance(t *testing.T) {
	uc, _, productID := newFixture(t)
	ctx := context.Background()

	_, err := uc.RegisterEntrada(ctx, ledger.EntradaInput{ProductID: productID, Quantity: decimal.NewFromInt(10), Date: day(1)})
	require.NoError(t, err)

	movementID, newBalance, err := uc.RegisterSaida(ctx, ledger.SaidaInput{
		ProductID:   productID,
		Quantity:    decimal.NewFromInt(4),
		Destination: "Obra Centro",
		Date:        day(2),
	})
	require.NoError(t, err)
	assert.NotZero(t, movementID)
	assert.True(t, newBalance.Equal(decimal.NewFromInt(6)), "saldo resultante deve ser 6, veio %s", newBalance)
}

func TestRegisterSaida_InsufficientBalance(t *testing.T) {
	uc, store, productID := newFixture(t)
	ctx := context.Background()

	_, err := uc.RegisterEntrada(ctx, ledger.EntradaInput{ProductID: productID, Quantity: decimal.NewFromInt(5), Date: day(1)})
	require.NoError(t, err)

	_, _, err = uc.RegisterSaida(ctx, ledger.SaidaInput{ProductID: productID, Quantity: decimal.NewFromInt(6)})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	var insufficient *domain.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Available.Equal(decimal.NewFromInt(5)), "disponível deve ser 5, veio %s", insufficient.Available)
	assert.True(t, insufficient.Requested.Equal(decimal.NewFromInt(6)))

	// Ledger intacto: só a entrada, saldo ainda 5.
	require.Len(t, store.Movements, 1)
	entradas, saidas, err := store.MovementRepo().SumByProduct(ctx, productID)
	require.NoError(t, err)
	assert.True(t, entradas.Sub(saidas).Equal(decimal.NewFromInt(5)))
}

func TestRegisterSaida_AllowsExactBalance(t *testing.T) {
	uc, _, productID := newFixture(t)
	ctx := context.Background()

	_, err := uc.RegisterEntrada(ctx, ledger.EntradaInput{ProductID: productID, Quantity: decimal.NewFromInt(7)})
	require.NoError(t, err)

	_, newBalance, err := uc.RegisterSaida(ctx, ledger.SaidaInput{ProductID: productID, Quantity: decimal.NewFromInt(7)})
	require.NoError(t, err)
	assert.True(t, newBalance.IsZero())

	// Com saldo zerado, qualquer saída é rejeitada.
	_, _, err = uc.RegisterSaida(ctx, ledger.SaidaInput{ProductID: productID, Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestRegisterSaida_RejectsNonPositiveQuantity(t *testing.T) {
	uc, store, productID := newFixture(t)

	for _, qty := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1)} {
		_, _, err := uc.RegisterSaida(context.Background(), ledger.SaidaInput{ProductID: productID, Quantity: qty})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
	assert.Empty(t, store.Movements)
}

func TestRegisterSaida_UnknownProduct(t *testing.T) {
	uc, _, _ := newFixture(t)

	_, _, err := uc.RegisterSaida(context.Background(), ledger.SaidaInput{ProductID: 42, Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)
}

// O gate é o único caminho de append, portanto o saldo nunca fica negativo
// para qualquer sequência de lançamentos válidos e inválidos.
func TestBalanceNeverNegative(t *testing.T) {
	uc, store, productID := newFixture(t)
	ctx := context.Background()

	script := []struct {
		kind string
		qty  int64
	}{
		{"entrada", 3}, {"saida", 5}, {"entrada", 4}, {"saida", 6},
		{"saida", 1}, {"entrada", 2}, {"saida", 8}, {"saida", 4},
	}
	for _, step := range script {
		if step.kind == "entrada" {
			_, _ = uc.RegisterEntrada(ctx, ledger.EntradaInput{ProductID: productID, Quantity: decimal.NewFromInt(step.qty)})
		} else {
			_, _, _ = uc.RegisterSaida(ctx, ledger.SaidaInput{ProductID: productID, Quantity: decimal.NewFromInt(step.qty)})
		}
		entradas, saidas, err := store.MovementRepo().SumByProduct(ctx, productID)
		require.NoError(t, err)
		balance := entradas.Sub(saidas)
		require.False(t, balance.IsNegative(), "saldo negativo após %+v: %s", step, balance)
	}
}

func TestRejectionIsLocallyRecoverable(t *testing.T) {
	uc, _, productID := newFixture(t)
	ctx := context.Background()

	_, _, err := uc.RegisterSaida(ctx, ledger.SaidaInput{ProductID: productID, Quantity: decimal.NewFromInt(1)})
	require.Error(t, err)
	require.False(t, errors.Is(err, context.Canceled))

	// A mesma operação com entrada corrigida passa.
	_, err = uc.RegisterEntrada(ctx, ledger.EntradaInput{ProductID: productID, Quantity: decimal.NewFromInt(1)})
	require.NoError(t, err)
	_, _, err = uc.RegisterSaida(ctx, ledger.SaidaInput{ProductID: productID, Quantity: decimal.NewFromInt(1)})
	require.NoError(t, err)
}
