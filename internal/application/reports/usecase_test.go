package reports_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcisistemas/estoque-api/internal/application/reports"
	"github.com/mcisistemas/estoque-api/internal/domain/entity"
	"github.com/mcisistemas/estoque-api/internal/testutil"
)

func day(d int) time.Time {
	return time.Date(2026, time.May, d, 0, 0, 0, 0, time.UTC)
}

func seedMovement(store *testutil.MemStore, productID int64, kind string, qty int64, date time.Time) {
	_ = store.MovementRepo().Create(context.Background(), &entity.Movement{
		ProductID: productID,
		Kind:      kind,
		Quantity:  decimal.NewFromInt(qty),
		Date:      date,
	})
}

func TestMostActive_RanksByTotalMoved(t *testing.T) {
	store := testutil.NewMemStore()
	a := store.SeedProduct(&entity.Product{Description: "Produto A", Unit: "UN"})
	b := store.SeedProduct(&entity.Product{Description: "Produto B", Unit: "UN"})

	// A: entrada 5 + saída 3 = 8; B: entrada 10 = 10.
	seedMovement(store, a, entity.MovementEntrada, 5, day(1))
	seedMovement(store, a, entity.MovementSaida, 3, day(2))
	seedMovement(store, b, entity.MovementEntrada, 10, day(1))

	uc := reports.NewUseCase(store.ProductRepo(), store.MovementRepo())
	ranking, err := uc.MostActive(context.Background())
	require.NoError(t, err)

	require.Len(t, ranking, 2)
	assert.Equal(t, b, ranking[0].ProductID, "B (10) vem antes de A (8)")
	assert.Equal(t, a, ranking[1].ProductID)
	assert.True(t, ranking[0].TotalMoved.Equal(decimal.NewFromInt(10)))
	assert.True(t, ranking[1].TotalMoved.Equal(decimal.NewFromInt(8)))
}

func TestMostActive_TieBreaksByAscendingID(t *testing.T) {
	store := testutil.NewMemStore()
	first := store.SeedProduct(&entity.Product{Description: "Empate 1", Unit: "UN"})
	second := store.SeedProduct(&entity.Product{Description: "Empate 2", Unit: "UN"})

	seedMovement(store, second, entity.MovementEntrada, 6, day(1))
	seedMovement(store, first, entity.MovementEntrada, 6, day(2))

	uc := reports.NewUseCase(store.ProductRepo(), store.MovementRepo())
	ranking, err := uc.MostActive(context.Background())
	require.NoError(t, err)

	require.Len(t, ranking, 2)
	assert.Equal(t, first, ranking[0].ProductID, "empate resolve por ID crescente")
	assert.Equal(t, second, ranking[1].ProductID)
}

func TestMostActive_TruncatesToTopTen(t *testing.T) {
	store := testutil.NewMemStore()
	for i := 1; i <= 12; i++ {
		id := store.SeedProduct(&entity.Product{Description: fmt.Sprintf("Produto %02d", i), Unit: "UN"})
		seedMovement(store, id, entity.MovementEntrada, int64(i), day(1))
	}

	uc := reports.NewUseCase(store.ProductRepo(), store.MovementRepo())
	ranking, err := uc.MostActive(context.Background())
	require.NoError(t, err)

	require.Len(t, ranking, 10)
	assert.True(t, ranking[0].TotalMoved.Equal(decimal.NewFromInt(12)))
	assert.True(t, ranking[9].TotalMoved.Equal(decimal.NewFromInt(3)))
}

func TestMovements_FiltersComposeWithAnd(t *testing.T) {
	store := testutil.NewMemStore()
	p1 := store.SeedProduct(&entity.Product{SKU: "S1", Description: "Filtro 1", Unit: "UN", Location: "A"})
	p2 := store.SeedProduct(&entity.Product{SKU: "S2", Description: "Filtro 2", Unit: "UN", Location: "B"})

	seedMovement(store, p1, entity.MovementEntrada, 1, day(1))
	seedMovement(store, p1, entity.MovementSaida, 1, day(5))
	seedMovement(store, p2, entity.MovementEntrada, 1, day(5))
	seedMovement(store, p1, entity.MovementEntrada, 1, day(9))

	uc := reports.NewUseCase(store.ProductRepo(), store.MovementRepo())
	ctx := context.Background()

	entradaKind := entity.MovementEntrada
	from, to := day(2), day(8)
	rows, err := uc.Movements(ctx, reports.MovementQuery{
		ProductID: &p1,
		Kind:      &entradaKind,
		From:      &from,
		To:        &to,
	})
	require.NoError(t, err)
	assert.Empty(t, rows, "nenhuma entrada de p1 dentro do intervalo")

	rows, err = uc.Movements(ctx, reports.MovementQuery{ProductID: &p1, From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, entity.MovementSaida, rows[0].Kind)

	location := "B"
	rows, err = uc.Movements(ctx, reports.MovementQuery{Location: &location})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, p2, rows[0].ProductID)
	assert.Equal(t, "Filtro 2", rows[0].Description, "linha anotada com o produto")
}

func TestMovements_Ordering(t *testing.T) {
	store := testutil.NewMemStore()
	id := store.SeedProduct(&entity.Product{Description: "Ordenado", Unit: "UN"})
	seedMovement(store, id, entity.MovementEntrada, 1, day(3))
	seedMovement(store, id, entity.MovementEntrada, 2, day(1))
	seedMovement(store, id, entity.MovementEntrada, 3, day(2))

	uc := reports.NewUseCase(store.ProductRepo(), store.MovementRepo())
	ctx := context.Background()

	recent, err := uc.Movements(ctx, reports.MovementQuery{})
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, day(3), recent[0].Date, "default: mais recentes primeiro")

	chrono, err := uc.Movements(ctx, reports.MovementQuery{Ascending: true})
	require.NoError(t, err)
	assert.Equal(t, day(1), chrono[0].Date, "ascendente para reconstrução de série")
	assert.Equal(t, day(3), chrono[2].Date)
}

func TestRecentActivity_LimitsAndSplitsByKind(t *testing.T) {
	store := testutil.NewMemStore()
	id := store.SeedProduct(&entity.Product{Description: "Movimentado", Unit: "UN"})
	for d := 1; d <= 25; d++ {
		seedMovement(store, id, entity.MovementEntrada, 1, day(d))
	}
	seedMovement(store, id, entity.MovementSaida, 1, day(26))

	uc := reports.NewUseCase(store.ProductRepo(), store.MovementRepo())
	activity, err := uc.RecentActivity(context.Background())
	require.NoError(t, err)

	assert.Len(t, activity.Entradas, 20, "últimas 20 entradas")
	require.Len(t, activity.Saidas, 1)
	assert.Equal(t, day(25), activity.Entradas[0].Date, "mais recente primeiro")
}
