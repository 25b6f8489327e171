// Package excel lê a planilha de catálogo e escreve a pasta de relatórios.
package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/mcisistemas/estoque-api/internal/application/dto"
	"github.com/mcisistemas/estoque-api/internal/domain"
	"github.com/mcisistemas/estoque-api/internal/domain/entity"
)

// Colunas obrigatórias da planilha de catálogo (cabeçalho na linha 1).
// SKU é opcional. O casamento de nomes ignora caixa, acentos e pontuação:
// "Est. Segurança" e "EstSeguranca" são a mesma coluna.
var requiredColumns = []string{"Descricao", "Unidade", "Tipo", "Local", "EstSeguranca"}

// ReadCatalog lê a primeira aba da planilha e devolve as linhas do catálogo.
// Qualquer defeito de formato aborta a leitura inteira com ImportFormatError
// apontando linha e coluna; nada é devolvido parcialmente.
func ReadCatalog(r io.Reader) ([]dto.CatalogRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir planilha: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("ler aba %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, &domain.ImportFormatError{Row: 1, Column: "Descricao", Reason: "planilha vazia"}
	}

	index := make(map[string]int)
	for i, name := range rows[0] {
		index[columnKey(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[columnKey(col)]; !ok {
			return nil, &domain.ImportFormatError{Row: 1, Column: col, Reason: "coluna obrigatória ausente"}
		}
	}

	var out []dto.CatalogRow
	for i, row := range rows[1:] {
		line := i + 2 // 1-based, linha 1 é o cabeçalho
		if blankRow(row) {
			continue
		}
		cr := dto.CatalogRow{
			SKU:         cell(row, index, "SKU"),
			Description: cell(row, index, "Descricao"),
			Unit:        cell(row, index, "Unidade"),
			Type:        cell(row, index, "Tipo"),
			Location:    cell(row, index, "Local"),
		}
		if raw := cell(row, index, "EstSeguranca"); raw != "" {
			d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
			if err != nil {
				return nil, &domain.ImportFormatError{Row: line, Column: "EstSeguranca",
					Reason: fmt.Sprintf("valor não numérico %q", raw)}
			}
			cr.SafetyStock = &d
		}
		if strings.TrimSpace(cr.Description) == "" {
			return nil, &domain.ImportFormatError{Row: line, Column: "Descricao", Reason: "descrição vazia"}
		}
		if strings.TrimSpace(cr.Unit) == "" {
			return nil, &domain.ImportFormatError{Row: line, Column: "Unidade", Reason: "unidade vazia"}
		}
		out = append(out, cr)
	}
	return out, nil
}

// columnKey normaliza o nome da coluna: sem acentos, caixa baixa, só letras.
func columnKey(name string) string {
	norm := entity.NormalizeText(name)
	var b strings.Builder
	for _, r := range norm {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func cell(row []string, index map[string]int, column string) string {
	i, ok := index[columnKey(column)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
