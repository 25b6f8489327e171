package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/mcisistemas/estoque-api/internal/application/catalog"
	"github.com/mcisistemas/estoque-api/internal/application/dto"
	"github.com/mcisistemas/estoque-api/internal/domain"
	"github.com/mcisistemas/estoque-api/internal/infrastructure/excel"
)

// CatalogHandler consultas de catálogo e importação full-replace.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler constrói o handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// List GET /api/catalog.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	products, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(products), "products": products})
}

// Search GET /api/products?search= — busca por descrição/SKU sem acentos.
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	products, err := h.uc.Search(c.Context(), c.Query("search"))
	if err != nil {
		return respondError(c, err)
	}
	if products == nil {
		products = []dto.ProductResponse{}
	}
	return c.JSON(fiber.Map{"total": len(products), "products": products})
}

// Get GET /api/products/:id.
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	product, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// Import POST /api/catalog/import — multipart com o arquivo .xlsx no campo
// "file". Substitui o catálogo inteiro; qualquer linha inválida aborta tudo.
func (h *CatalogHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "arquivo .xlsx ausente no campo 'file'",
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer file.Close()

	rows, err := excel.ReadCatalog(file)
	if err != nil {
		return respondError(c, err)
	}
	summary, err := h.uc.Import(c.Context(), rows)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(summary)
}
