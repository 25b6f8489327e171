package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mcisistemas/estoque-api/internal/application/dto"
	"github.com/mcisistemas/estoque-api/internal/application/ledger"
	"github.com/mcisistemas/estoque-api/internal/domain"
)

// MovementHandler lança entradas e saídas no ledger.
type MovementHandler struct {
	uc *ledger.UseCase
}

// NewMovementHandler constrói o handler.
func NewMovementHandler(uc *ledger.UseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// RegisterEntrada POST /api/movements/entrada.
func (h *MovementHandler) RegisterEntrada(c *fiber.Ctx) error {
	var in dto.EntradaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return respondError(c, err)
	}
	movementID, err := h.uc.RegisterEntrada(c.Context(), ledger.EntradaInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Supplier:  in.Supplier,
		Note:      in.Note,
		Date:      date,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementCreated{MovementID: movementID})
}

// RegisterSaida POST /api/movements/saida. A resposta inclui o saldo
// resultante calculado na mesma transação do append.
func (h *MovementHandler) RegisterSaida(c *fiber.Ctx) error {
	var in dto.SaidaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return respondError(c, err)
	}
	movementID, newBalance, err := h.uc.RegisterSaida(c.Context(), ledger.SaidaInput{
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		Destination: in.Destination,
		Note:        in.Note,
		Date:        date,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementCreated{MovementID: movementID, NewBalance: &newBalance})
}

// parseDate AAAA-MM-DD; vazio devolve zero (caso de uso usa hoje).
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return d, nil
}
