package entity

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Product representa um item do catálogo. O saldo nunca é armazenado aqui:
// é sempre derivado do ledger de movimentos.
// Um produto pertence a no máximo um local por linha de catálogo.
type Product struct {
	ID          int64
	SKU         string
	Description string
	Unit        string
	Type        string
	Location    string
	SafetyStock *decimal.Decimal // nulo = sem estoque de segurança definido
	CreatedAt   time.Time
}

// SafetyStockOrZero devolve o estoque de segurança tratando nulo como zero.
func (p *Product) SafetyStockOrZero() decimal.Decimal {
	if p.SafetyStock == nil {
		return decimal.Zero
	}
	return *p.SafetyStock
}

// Matches verifica se a consulta casa com descrição ou SKU,
// ignorando caixa e acentos ("cafe" encontra "Café").
func (p *Product) Matches(query string) bool {
	q := NormalizeText(query)
	if q == "" {
		return true
	}
	return strings.Contains(NormalizeText(p.Description), q) ||
		strings.Contains(NormalizeText(p.SKU), q)
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeText remove diacríticos e baixa a caixa para comparação.
// A descrição é rótulo de apresentação; a chave real é sempre o ID.
func NormalizeText(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
