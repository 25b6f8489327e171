package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mcisistemas/estoque-api/internal/application/dto"
	"github.com/mcisistemas/estoque-api/internal/domain"
)

// respondError traduz erros de domínio para status HTTP. Toda rejeição
// carrega o porquê; insuficiência carrega também o saldo disponível.
func respondError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientBalanceError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:      "INSUFFICIENT_BALANCE",
			Message:   "saldo insuficiente para a saída solicitada",
			Available: insufficient.Available.String(),
		})
	}
	var importErr *domain.ImportFormatError
	if errors.As(err, &importErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "IMPORT_FORMAT",
			Message: importErr.Error(),
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_QUANTITY", Message: "a quantidade deve ser maior que zero",
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "dados inválidos",
		})
	case errors.Is(err, domain.ErrUnknownProduct), errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "UNKNOWN_PRODUCT", Message: "produto não encontrado",
		})
	case errors.Is(err, domain.ErrImportFormat):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "IMPORT_FORMAT", Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
}
