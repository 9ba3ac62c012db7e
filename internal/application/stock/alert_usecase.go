package stock

import (
	"context"

	"github.com/betonpro/beton-api/internal/domain/entity"
	"github.com/betonpro/beton-api/internal/domain/repository"
)

// AlertUseCase consulta y reconocimiento manual de alertas de stock. La
// creación y la resolución automática viven en AlertEvaluator; este core solo
// persiste alertas, el envío de notificaciones es de colaboradores externos.
type AlertUseCase struct {
	alertRepo repository.AlertRepository
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(alertRepo repository.AlertRepository) *AlertUseCase {
	return &AlertUseCase{alertRepo: alertRepo}
}

// List alertas, opcionalmente filtradas por estado de reconocimiento.
func (uc *AlertUseCase) List(ctx context.Context, acknowledged *bool, limit, offset int) ([]*entity.StockAlert, error) {
	return uc.alertRepo.List(ctx, acknowledged, limit, offset)
}

// Acknowledge marca una alerta como vista.
func (uc *AlertUseCase) Acknowledge(ctx context.Context, id string) error {
	return uc.alertRepo.Acknowledge(ctx, id)
}
