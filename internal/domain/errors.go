package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound            = errors.New("recurso não encontrado")
	ErrUnknownProduct      = errors.New("produto não encontrado")
	ErrInvalidQuantity     = errors.New("quantidade inválida")
	ErrInsufficientBalance = errors.New("saldo insuficiente")
	ErrImportFormat        = errors.New("formato de importação inválido")
	ErrInvalidInput        = errors.New("entrada inválida")
)

// InsufficientBalanceError rejeição de saída com o saldo disponível anexado,
// para que a interface mostre quanto ainda há em estoque sem uma segunda consulta.
type InsufficientBalanceError struct {
	ProductID int64
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("saldo insuficiente para o produto %d: disponível %s, solicitado %s",
		e.ProductID, e.Available.String(), e.Requested.String())
}

// Unwrap permite errors.Is(err, ErrInsufficientBalance).
func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

// ImportFormatError erro de importação de catálogo com linha e coluna ofensoras.
// Row é 1-based na planilha (linha 1 = cabeçalho).
type ImportFormatError struct {
	Row    int
	Column string
	Reason string
}

func (e *ImportFormatError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("importação: linha %d, coluna %q: %s", e.Row, e.Column, e.Reason)
	}
	return fmt.Sprintf("importação: coluna %q: %s", e.Column, e.Reason)
}

// Unwrap permite errors.Is(err, ErrImportFormat).
func (e *ImportFormatError) Unwrap() error { return ErrImportFormat }
