package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/betonpro/beton-api/internal/application/auth"
	"github.com/betonpro/beton-api/internal/application/costing"
	"github.com/betonpro/beton-api/internal/application/stock"
	"github.com/betonpro/beton-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC      *stock.LedgerUseCase
	ResourceUC    *stock.ResourceUseCase
	AlertUC       *stock.AlertUseCase
	FormulaUC     *stock.FormulaUseCase
	ConsumptionUC *stock.ConsumptionUseCase
	FuelUC        *stock.FuelUseCase
	CostingUC     *costing.CostingUseCase
	PurchaseUC    *costing.PurchaseUseCase
	RateUC        *costing.RateUseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	writer := RequireRole(entity.RoleAdmin, entity.RoleOperador)
	admin := RequireRole(entity.RoleAdmin)

	// Stock: movimientos, saldos, materias, alertas
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.LedgerUC, deps.ResourceUC, deps.AlertUC)
	stockGroup.Post("/movements", writer, stockHandler.RecordMovement)
	stockGroup.Delete("/movements/:id", admin, stockHandler.DeleteMovement)
	stockGroup.Post("/resources", admin, stockHandler.CreateResource)
	stockGroup.Get("/resources", stockHandler.ListResources)
	stockGroup.Get("/resources/:id", stockHandler.GetResource)
	stockGroup.Put("/resources/:id", admin, stockHandler.UpdateResource)
	stockGroup.Get("/resources/:id/balance", stockHandler.GetBalance)
	stockGroup.Get("/resources/:id/movements", stockHandler.ListMovements)
	stockGroup.Get("/alerts", stockHandler.ListAlerts)
	stockGroup.Post("/alerts/:id/ack", writer, stockHandler.AcknowledgeAlert)

	// Producción: fórmulas y consumos
	production := protected.Group("/production")
	productionHandler := NewProductionHandler(deps.FormulaUC, deps.ConsumptionUC)
	production.Post("/formulas", admin, productionHandler.CreateFormula)
	production.Get("/formulas", productionHandler.ListFormulas)
	production.Get("/formulas/:id", productionHandler.GetFormula)
	production.Post("/orders/:id/availability", productionHandler.VerifyAvailability)
	production.Post("/orders/:id/consume", writer, productionHandler.ApplyConsumption)

	// Costos: simulación, compras, tarifas
	costingGroup := protected.Group("/costing")
	costingHandler := NewCostingHandler(deps.CostingUC, deps.PurchaseUC, deps.RateUC)
	costingGroup.Post("/simulate", costingHandler.Simulate)
	costingGroup.Post("/purchases", writer, costingHandler.RegisterPurchase)
	costingGroup.Post("/rates", admin, costingHandler.CreateRate)
	costingGroup.Get("/rates", costingHandler.ListRates)

	// Combustible: aprovisionamientos, consumos, engins
	fuel := protected.Group("/fuel")
	fuelHandler := NewFuelHandler(deps.FuelUC)
	fuel.Post("/refuels", writer, fuelHandler.RecordRefuel)
	fuel.Post("/consumptions", writer, fuelHandler.RecordConsumption)
	fuel.Post("/equipment", admin, fuelHandler.CreateEquipment)
	fuel.Get("/equipment", fuelHandler.ListEquipment)
	fuel.Get("/equipment/:id/consumption", fuelHandler.EquipmentConsumption)
}
