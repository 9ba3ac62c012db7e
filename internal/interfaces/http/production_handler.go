package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/betonpro/beton-api/internal/application/dto"
	"github.com/betonpro/beton-api/internal/application/stock"
	"github.com/betonpro/beton-api/internal/domain"
	"github.com/betonpro/beton-api/internal/domain/entity"
)

// ProductionHandler maneja fórmulas y consumos de producción (protegido).
type ProductionHandler struct {
	formulas    *stock.FormulaUseCase
	consumption *stock.ConsumptionUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(formulas *stock.FormulaUseCase, consumption *stock.ConsumptionUseCase) *ProductionHandler {
	return &ProductionHandler{formulas: formulas, consumption: consumption}
}

func toFormulaResponse(f *entity.Formula) dto.FormulaResponse {
	components := make([]dto.FormulaComponentResponse, 0, len(f.Components))
	for _, comp := range f.Components {
		components = append(components, dto.FormulaComponentResponse{
			ResourceID:   comp.ResourceID,
			ResourceName: comp.ResourceName,
			Quantity:     comp.Quantity,
		})
	}
	return dto.FormulaResponse{
		ID:             f.ID,
		Name:           f.Name,
		Description:    f.Description,
		StrengthClass:  f.StrengthClass,
		ReferenceYield: f.ReferenceYield,
		Components:     components,
		CreatedAt:      f.CreatedAt,
	}
}

// CreateFormula godoc
// @Summary      Crear fórmula de hormigón
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FormulaRequest  true  "name, strength_class, reference_yield, components"
// @Success      201   {object}  dto.FormulaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production/formulas [post]
func (h *ProductionHandler) CreateFormula(c *fiber.Ctx) error {
	var in dto.FormulaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	f, err := h.formulas.Create(c.Context(), in)
	if err != nil {
		return mapProductionError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toFormulaResponse(f))
}

// GetFormula godoc
// @Summary      Obtener fórmula con su composición
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la fórmula"
// @Success      200  {object}  dto.FormulaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/formulas/{id} [get]
func (h *ProductionHandler) GetFormula(c *fiber.Ctx) error {
	f, err := h.formulas.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapProductionError(c, err)
	}
	return c.JSON(toFormulaResponse(f))
}

// ListFormulas godoc
// @Summary      Listar fórmulas
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.FormulaResponse
// @Router       /api/production/formulas [get]
func (h *ProductionHandler) ListFormulas(c *fiber.Ctx) error {
	items, err := h.formulas.List(c.Context())
	if err != nil {
		return mapProductionError(c, err)
	}
	out := make([]dto.FormulaResponse, 0, len(items))
	for _, f := range items {
		out = append(out, toFormulaResponse(f))
	}
	return c.JSON(out)
}

// VerifyAvailability godoc
// @Summary      Verificar disponibilidad de materias para una orden
// @Description  Dry run sin efectos: compara cantidades requeridas por la fórmula con los saldos actuales.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la orden de producción"
// @Param        body  body  dto.ApplyConsumptionRequest  true  "formula_id, quantity"
// @Success      200   {object}  dto.AvailabilityResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production/orders/{id}/availability [post]
func (h *ProductionHandler) VerifyAvailability(c *fiber.Ctx) error {
	var in dto.ApplyConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.consumption.VerifyAvailability(c.Context(), in.FormulaID, in.Quantity)
	if err != nil {
		return mapProductionError(c, err)
	}
	return c.JSON(result)
}

// ApplyConsumption godoc
// @Summary      Aplicar consumos de materias de una orden
// @Description  Registra una salida por componente de la fórmula, de forma atómica e idempotente. force=true revierte los movimientos previos de la orden y recomputa.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id     path   string                       true   "ID de la orden de producción"
// @Param        force  query  bool                         false  "Recomputación forzada"
// @Param        body   body   dto.ApplyConsumptionRequest  true   "formula_id, quantity"
// @Success      201    {object}  dto.ConsumptionResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/production/orders/{id}/consume [post]
func (h *ProductionHandler) ApplyConsumption(c *fiber.Ctx) error {
	var in dto.ApplyConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cons, err := h.consumption.ApplyConsumption(c.Context(), stock.ApplyConsumptionInput{
		OrderID:   c.Params("id"),
		FormulaID: in.FormulaID,
		Quantity:  in.Quantity,
		Force:     c.QueryBool("force"),
		UserID:    GetUserID(c),
	})
	if err != nil {
		var shortage *stock.ShortageError
		if errors.As(err, &shortage) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"code":      "INSUFFICIENT_STOCK",
				"message":   "stock insuficiente para la orden",
				"shortages": shortage.Shortages,
			})
		}
		return mapProductionError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ConsumptionResponse{
		OrderID:     cons.OrderID,
		FormulaID:   cons.FormulaID,
		Computed:    cons.Computed,
		MovementIDs: cons.MovementIDs,
		ComputedAt:  cons.ComputedAt,
	})
}

func mapProductionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidFormula):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FORMULA", Message: "fórmula sin composición o con rendimiento no positivo"})
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad debe ser positiva"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrFormulaNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "FORMULA_NOT_FOUND", Message: "fórmula no encontrada"})
	case errors.Is(err, domain.ErrResourceNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "RESOURCE_NOT_FOUND", Message: "materia no encontrada"})
	case errors.Is(err, domain.ErrAlreadyComputed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_COMPUTED", Message: "la orden ya tiene consumos aplicados; use force para recomputar"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el registro ya existe"})
	case errors.Is(err, domain.ErrStaleConfiguration):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STALE_CONFIGURATION", Message: "sin tarifa ni precio por defecto utilizable para la materia"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
