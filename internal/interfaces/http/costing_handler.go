package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/betonpro/beton-api/internal/application/costing"
	"github.com/betonpro/beton-api/internal/application/dto"
	"github.com/betonpro/beton-api/internal/domain"
)

// CostingHandler simulación de costos, compras con precio y tarifas (protegido).
type CostingHandler struct {
	costs     *costing.CostingUseCase
	purchases *costing.PurchaseUseCase
	rates     *costing.RateUseCase
}

// NewCostingHandler construye el handler.
func NewCostingHandler(costs *costing.CostingUseCase, purchases *costing.PurchaseUseCase, rates *costing.RateUseCase) *CostingHandler {
	return &CostingHandler{costs: costs, purchases: purchases, rates: rates}
}

// Simulate godoc
// @Summary      Simular costo de revient de una fórmula
// @Description  Materias vía precio medio de compras, mano de obra, frais generales y transporte; estimated marca cualquier uso de valores por defecto.
// @Tags         costing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CostSimulationRequest  true  "formula_id, quantity, defaults (overrides opcionales)"
// @Success      200   {object}  dto.CostSimulation
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/costing/simulate [post]
func (h *CostingHandler) Simulate(c *fiber.Ctx) error {
	var in dto.CostSimulationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sim, err := h.costs.CostFormula(c.Context(), in.FormulaID, in.Quantity, in.Defaults)
	if err != nil {
		return mapProductionError(c, err)
	}
	return c.JSON(sim)
}

// RegisterPurchase godoc
// @Summary      Registrar compra con precio
// @Description  Alimenta el histórico de precios del motor de costos; no toca el libro de stock.
// @Tags         costing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PurchaseEntryRequest  true  "resource_id, supplier, quantity, unit_price_ht, tax_rate_pct, invoice_date"
// @Success      201   {object}  entity.PurchaseEntry
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/costing/purchases [post]
func (h *CostingHandler) RegisterPurchase(c *fiber.Ctx) error {
	var in dto.PurchaseEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.purchases.Register(c.Context(), in)
	if err != nil {
		return mapStockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// CreateRate godoc
// @Summary      Crear tarifa de costo
// @Tags         costing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CostRateRequest  true  "category, name, value, unit, date_from, date_to"
// @Success      201   {object}  entity.CostRate
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/costing/rates [post]
func (h *CostingHandler) CreateRate(c *fiber.Ctx) error {
	var in dto.CostRateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rate, err := h.rates.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "categoría, unidad o período inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(rate)
}

// ListRates godoc
// @Summary      Listar tarifas de costo
// @Tags         costing
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Filtrar por categoría (labor|overhead|transport)"
// @Success      200  {array}  entity.CostRate
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/costing/rates [get]
func (h *CostingHandler) ListRates(c *fiber.Ctx) error {
	rates, err := h.rates.List(c.Context(), c.Query("category"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "categoría desconocida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(rates)
}
