package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mcisistemas/estoque-api/internal/domain/entity"
	"github.com/mcisistemas/estoque-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementação do ledger sobre PostgreSQL (pool ou tx).
// Só existem INSERT e SELECT: o ledger é append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste um movimento e preenche o ID gerado.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movimentos (produto_id, tipo, quantidade, contraparte, observacao, data, criado_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.ProductID, m.Kind, m.Quantity, m.Counterparty, m.Note, m.Date, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// List movimentos com filtros opcionais compostos com AND. O filtro de
// local passa pelo join com produtos (o produto carrega o local).
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	query := `
		SELECT m.id, m.produto_id, m.tipo, m.quantidade, m.contraparte, m.observacao, m.data, m.criado_em
		FROM movimentos m`
	if f.Location != nil {
		query += ` JOIN produtos p ON p.id = m.produto_id`
	}
	query += ` WHERE 1=1`

	var args []any
	pos := 1
	if f.ProductID != nil {
		query += fmt.Sprintf(" AND m.produto_id = $%d", pos)
		args = append(args, *f.ProductID)
		pos++
	}
	if f.Kind != nil {
		query += fmt.Sprintf(" AND m.tipo = $%d", pos)
		args = append(args, *f.Kind)
		pos++
	}
	if f.Location != nil {
		query += fmt.Sprintf(" AND p.local = $%d", pos)
		args = append(args, *f.Location)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND m.data >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND m.data <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	if f.Ascending {
		query += " ORDER BY m.data ASC, m.id ASC"
	} else {
		query += " ORDER BY m.data DESC, m.id DESC"
	}
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", pos)
		args = append(args, f.Limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Kind, &m.Quantity,
			&m.Counterparty, &m.Note, &m.Date, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SumByProduct somas de entradas e saídas de um produto; (0, 0) sem movimentos.
func (r *MovementRepo) SumByProduct(ctx context.Context, productID int64) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(quantidade) FILTER (WHERE tipo = 'entrada'), 0),
			COALESCE(SUM(quantidade) FILTER (WHERE tipo = 'saida'), 0)
		FROM movimentos WHERE produto_id = $1`
	var entradas, saidas decimal.Decimal
	if err := r.q.QueryRow(ctx, query, productID).Scan(&entradas, &saidas); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sum by product: %w", err)
	}
	return entradas, saidas, nil
}

// TotalsByProduct somas agrupadas por produto em uma única consulta.
func (r *MovementRepo) TotalsByProduct(ctx context.Context) ([]repository.ProductTotals, error) {
	query := `
		SELECT produto_id,
			COALESCE(SUM(quantidade) FILTER (WHERE tipo = 'entrada'), 0),
			COALESCE(SUM(quantidade) FILTER (WHERE tipo = 'saida'), 0)
		FROM movimentos
		GROUP BY produto_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("totals by product: %w", err)
	}
	defer rows.Close()

	var totals []repository.ProductTotals
	for rows.Next() {
		var t repository.ProductTotals
		if err := rows.Scan(&t.ProductID, &t.Entradas, &t.Saidas); err != nil {
			return nil, fmt.Errorf("scan totals: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
