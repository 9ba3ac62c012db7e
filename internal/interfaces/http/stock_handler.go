package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/betonpro/beton-api/internal/application/dto"
	"github.com/betonpro/beton-api/internal/application/stock"
	"github.com/betonpro/beton-api/internal/domain"
	"github.com/betonpro/beton-api/internal/domain/entity"
)

// StockHandler maneja las peticiones HTTP del libro de stock: movimientos,
// saldos, materias y alertas (protegido).
type StockHandler struct {
	ledger    *stock.LedgerUseCase
	resources *stock.ResourceUseCase
	alerts    *stock.AlertUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *stock.LedgerUseCase, resources *stock.ResourceUseCase, alerts *stock.AlertUseCase) *StockHandler {
	return &StockHandler{ledger: ledger, resources: resources, alerts: alerts}
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		ResourceID:  m.ResourceID,
		Kind:        m.Kind,
		Quantity:    m.Quantity,
		Description: m.Description,
		SourceRef:   m.SourceRef,
		Reversed:    m.Reversed,
		OccurredAt:  m.OccurredAt,
	}
}

func toAlertResponse(a *entity.StockAlert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:           a.ID,
		ResourceID:   a.ResourceID,
		ResourceName: a.ResourceName,
		Severity:     a.Severity,
		Balance:      a.Balance,
		Threshold:    a.Threshold,
		Message:      a.Message,
		Acknowledged: a.Acknowledged,
		CreatedAt:    a.CreatedAt,
	}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Añade una entrada inmutable al libro y evalúa los umbrales de la materia en la misma transacción.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "resource_id, kind (entry|exit), quantity, description, source_ref"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.ledger.RecordMovement(c.Context(), stock.RecordMovementInput{
		ResourceID:  in.ResourceID,
		Kind:        in.Kind,
		Quantity:    in.Quantity,
		Description: in.Description,
		SourceRef:   in.SourceRef,
		UserID:      GetUserID(c),
	})
	if err != nil {
		return mapStockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// DeleteMovement godoc
// @Summary      Eliminar movimiento (vía administrativa)
// @Description  Borra el movimiento y recalcula saldo y alertas en la misma transacción.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/movements/{id} [delete]
func (h *StockHandler) DeleteMovement(c *fiber.Ctx) error {
	if err := h.ledger.DeleteMovement(c.Context(), c.Params("id")); err != nil {
		return mapStockError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetBalance godoc
// @Summary      Saldo derivado de una materia
// @Description  SUM(entradas) - SUM(salidas) sobre movimientos no revertidos; as_of restringe al instante dado.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID de la materia"
// @Param        as_of  query  string  false  "Instante RFC3339 para saldo histórico"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/resources/{id}/balance [get]
func (h *StockHandler) GetBalance(c *fiber.Ctx) error {
	id := c.Params("id")
	res, err := h.resources.Get(c.Context(), id)
	if err != nil {
		return mapStockError(c, err)
	}

	out := dto.BalanceResponse{ResourceID: id, Unit: res.Unit}
	if raw := c.Query("as_of"); raw != "" {
		asOf, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "as_of debe ser RFC3339"})
		}
		balance, err := h.ledger.BalanceAsOf(c.Context(), id, asOf)
		if err != nil {
			return mapStockError(c, err)
		}
		out.Balance = balance
		out.AsOf = &asOf
		return c.JSON(out)
	}

	balance, err := h.ledger.CurrentBalance(c.Context(), id)
	if err != nil {
		return mapStockError(c, err)
	}
	out.Balance = balance
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Histórico de movimientos de una materia
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID de la materia"
// @Param        from   query  string  false  "Desde (RFC3339)"
// @Param        to     query  string  false  "Hasta (RFC3339)"
// @Param        limit   query  int    false  "Tamaño de página (máx 100)"
// @Param        offset  query  int    false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/resources/{id}/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
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
	page := pageParams(c)

	movs, err := h.ledger.ListMovements(c.Context(), c.Params("id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return mapStockError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		items = append(items, toMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// CreateResource godoc
// @Summary      Crear materia rastreable
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResourceRequest  true  "name, kind (material|fuel), unit, critical_threshold, low_threshold"
// @Success      201   {object}  entity.Resource
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/resources [post]
func (h *StockHandler) CreateResource(c *fiber.Ctx) error {
	var in dto.ResourceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.resources.Create(c.Context(), in)
	if err != nil {
		return mapStockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// UpdateResource godoc
// @Summary      Actualizar materia (nombre, unidad, umbrales)
// @Description  Un cambio de umbrales reevalúa las alertas de la materia sin esperar un movimiento nuevo.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la materia"
// @Param        body  body  dto.ResourceRequest  true  "campos a actualizar"
// @Success      200   {object}  entity.Resource
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/resources/{id} [put]
func (h *StockHandler) UpdateResource(c *fiber.Ctx) error {
	var in dto.ResourceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.resources.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return mapStockError(c, err)
	}
	return c.JSON(res)
}

// GetResource godoc
// @Summary      Obtener materia por ID
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la materia"
// @Success      200  {object}  entity.Resource
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/resources/{id} [get]
func (h *StockHandler) GetResource(c *fiber.Ctx) error {
	res, err := h.resources.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapStockError(c, err)
	}
	return c.JSON(res)
}

// ListResources godoc
// @Summary      Listar materias
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        kind  query  string  false  "Filtrar por tipo (material|fuel)"
// @Success      200  {array}  entity.Resource
// @Router       /api/stock/resources [get]
func (h *StockHandler) ListResources(c *fiber.Ctx) error {
	items, err := h.resources.List(c.Context(), c.Query("kind"))
	if err != nil {
		return mapStockError(c, err)
	}
	return c.JSON(items)
}

// ListAlerts godoc
// @Summary      Listar alertas de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        acknowledged  query  bool  false  "Filtrar por estado de reconocimiento"
// @Param        limit         query  int   false  "Tamaño de página (máx 100)"
// @Param        offset        query  int   false  "Desplazamiento"
// @Success      200  {object}  dto.AlertListResponse
// @Router       /api/stock/alerts [get]
func (h *StockHandler) ListAlerts(c *fiber.Ctx) error {
	var acknowledged *bool
	if raw := c.Query("acknowledged"); raw != "" {
		v := raw == "true" || raw == "1"
		acknowledged = &v
	}
	page := pageParams(c)

	alerts, err := h.alerts.List(c.Context(), acknowledged, page.Limit, page.Offset)
	if err != nil {
		return mapStockError(c, err)
	}
	items := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		items = append(items, toAlertResponse(a))
	}
	return c.JSON(dto.AlertListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// AcknowledgeAlert godoc
// @Summary      Marcar alerta como vista
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la alerta"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/alerts/{id}/ack [post]
func (h *StockHandler) AcknowledgeAlert(c *fiber.Ctx) error {
	if err := h.alerts.Acknowledge(c.Context(), c.Params("id")); err != nil {
		return mapStockError(c, err)
	}
	return c.JSON(fiber.Map{"message": "alerta reconocida"})
}

// pageParams lee limit/offset de query sobre PageRequest y aplica defaults.
func pageParams(c *fiber.Ctx) dto.PageRequest {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		page = dto.PageRequest{}
	}
	if page.Limit > 100 {
		page.Limit = 100
	}
	page.DefaultPage()
	return page
}

// mapStockError traduce errores de dominio a códigos HTTP.
func mapStockError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad debe ser positiva"})
	case errors.Is(err, domain.ErrInvalidThresholds):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_THRESHOLDS", Message: "los umbrales deben cumplir 0 <= crítico <= bajo"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrResourceNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "RESOURCE_NOT_FOUND", Message: "materia no encontrada"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el registro ya existe"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
