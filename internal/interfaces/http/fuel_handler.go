package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/betonpro/beton-api/internal/application/dto"
	"github.com/betonpro/beton-api/internal/application/stock"
)

// FuelHandler módulo de combustible: aprovisionamientos, consumos por engin y
// administración de engins (protegido).
type FuelHandler struct {
	fuel *stock.FuelUseCase
}

// NewFuelHandler construye el handler.
func NewFuelHandler(fuel *stock.FuelUseCase) *FuelHandler {
	return &FuelHandler{fuel: fuel}
}

// RecordRefuel godoc
// @Summary      Registrar aprovisionamiento de combustible
// @Description  Entrada de stock y compra con precio en una sola transacción, con evaluación de umbrales.
// @Tags         fuel
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordRefuelRequest  true  "resource_id, supplier, quantity, unit_price_ht, tax_rate_pct"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/fuel/refuels [post]
func (h *FuelHandler) RecordRefuel(c *fiber.Ctx) error {
	var in dto.RecordRefuelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.fuel.RecordRefuel(c.Context(), in, GetUserID(c))
	if err != nil {
		return mapStockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// RecordConsumption godoc
// @Summary      Registrar consumo de combustible de un engin
// @Tags         fuel
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordFuelConsumptionRequest  true  "resource_id, equipment_id, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/fuel/consumptions [post]
func (h *FuelHandler) RecordConsumption(c *fiber.Ctx) error {
	var in dto.RecordFuelConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.fuel.RecordEquipmentConsumption(c.Context(), in, GetUserID(c))
	if err != nil {
		return mapStockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// CreateEquipment godoc
// @Summary      Dar de alta un engin
// @Tags         fuel
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EquipmentRequest  true  "name, category, registration, avg_consumption_per_hour"
// @Success      201   {object}  entity.Equipment
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/fuel/equipment [post]
func (h *FuelHandler) CreateEquipment(c *fiber.Ctx) error {
	var in dto.EquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	eq, err := h.fuel.CreateEquipment(c.Context(), in)
	if err != nil {
		return mapStockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(eq)
}

// ListEquipment godoc
// @Summary      Listar engins
// @Tags         fuel
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Solo activos"
// @Success      200  {array}  entity.Equipment
// @Router       /api/fuel/equipment [get]
func (h *FuelHandler) ListEquipment(c *fiber.Ctx) error {
	items, err := h.fuel.ListEquipment(c.Context(), c.QueryBool("active"))
	if err != nil {
		return mapStockError(c, err)
	}
	return c.JSON(items)
}

// EquipmentConsumption godoc
// @Summary      Total consumido por un engin en un rango
// @Tags         fuel
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del engin"
// @Param        from  query  string  false  "Desde (RFC3339)"
// @Param        to    query  string  false  "Hasta (RFC3339)"
// @Success      200  {object}  dto.EquipmentConsumptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fuel/equipment/{id}/consumption [get]
func (h *FuelHandler) EquipmentConsumption(c *fiber.Ctx) error {
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		to = &t
	}

	id := c.Params("id")
	total, err := h.fuel.EquipmentConsumptionTotal(c.Context(), id, from, to)
	if err != nil {
		return mapStockError(c, err)
	}
	return c.JSON(dto.EquipmentConsumptionResponse{
		EquipmentID: id,
		Total:       total,
	})
}
