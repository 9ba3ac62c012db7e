package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/betonpro/beton-api/internal/domain/entity"
	"github.com/betonpro/beton-api/internal/domain/repository"
)

// DefaultDedupWindow ventana por defecto de deduplicación de alertas.
const DefaultDedupWindow = time.Hour

// AlertEvaluator evalúa los umbrales de una materia contra su saldo derivado y
// mantiene las alertas: crea deduplicadas cuando el saldo cae bajo un umbral y
// las reconoce automáticamente cuando se recupera. Se invoca de forma
// síncrona dentro de la transacción que modificó el saldo, de modo que el
// estado de alertas nunca sea observable de forma inconsistente con el saldo.
type AlertEvaluator struct {
	dedupWindow time.Duration
	now         func() time.Time
}

// NewAlertEvaluator construye el evaluador. dedupWindow <= 0 usa el valor por defecto.
func NewAlertEvaluator(dedupWindow time.Duration) *AlertEvaluator {
	if dedupWindow <= 0 {
		dedupWindow = DefaultDedupWindow
	}
	return &AlertEvaluator{dedupWindow: dedupWindow, now: time.Now}
}

// Evaluate aplica la máquina de estados de umbrales:
//   - Normal (saldo > umbral bajo): reconoce las alertas abiertas.
//   - Bajo (crítico < saldo <= bajo): garantiza una única alerta abierta,
//     sin crear otra dentro de la ventana de deduplicación.
//   - Crítico (saldo <= crítico, incluye ruptura): misma deduplicación, pero
//     una alerta baja previa no suprime la escalada a crítico.
//
// Todo cambio de severidad (escalada o desescalada) reconoce las alertas
// abiertas anteriores antes de crear la nueva: nunca quedan dos abiertas.
func (e *AlertEvaluator) Evaluate(ctx context.Context, res *entity.Resource, balance decimal.Decimal, alertRepo repository.AlertRepository) error {
	if balance.GreaterThan(res.LowThreshold) {
		n, err := alertRepo.AcknowledgeByResource(ctx, res.ID)
		if err != nil {
			return fmt.Errorf("resolver alertas de %s: %w", res.Name, err)
		}
		if n > 0 {
			log.Info().Str("resource", res.Name).Int("resolved", n).
				Msg("alertas de stock resueltas automáticamente")
		}
		return nil
	}

	severity := entity.AlertSeverityLow
	threshold := res.LowThreshold
	if balance.LessThanOrEqual(res.CriticalThreshold) {
		severity = entity.AlertSeverityCritical
		threshold = res.CriticalThreshold
	}

	open, err := alertRepo.ListOpenByResource(ctx, res.ID)
	if err != nil {
		return fmt.Errorf("listar alertas abiertas de %s: %w", res.Name, err)
	}
	cutoff := e.now().Add(-e.dedupWindow)
	for _, a := range open {
		if a.Severity == severity && a.CreatedAt.After(cutoff) {
			// Ya existe una alerta reciente de esta severidad: no duplicar.
			return nil
		}
	}

	// Una alerta nueva reemplaza a las abiertas: queda una sola alerta
	// abierta por materia, la que refleja el estado vigente. Cubre tanto la
	// escalada a crítico como la desescalada al recuperar hacia la banda baja.
	if len(open) > 0 {
		if _, err := alertRepo.AcknowledgeByResource(ctx, res.ID); err != nil {
			return fmt.Errorf("reconocer alertas previas de %s: %w", res.Name, err)
		}
	}

	alert := &entity.StockAlert{
		ResourceID:   res.ID,
		ResourceName: res.Name,
		Severity:     severity,
		Balance:      balance,
		Threshold:    threshold,
		Message:      alertMessage(res, balance, severity),
		CreatedAt:    e.now(),
	}
	if err := alertRepo.Create(ctx, alert); err != nil {
		return fmt.Errorf("crear alerta de %s: %w", res.Name, err)
	}
	log.Warn().Str("resource", res.Name).Str("severity", severity).
		Str("balance", balance.String()).Str("threshold", threshold.String()).
		Msg("alerta de stock creada")
	return nil
}

func alertMessage(res *entity.Resource, balance decimal.Decimal, severity string) string {
	if balance.LessThanOrEqual(decimal.Zero) {
		return fmt.Sprintf("RUPTURA DE STOCK: %s en %s %s - reaprovisionamiento urgente",
			res.Name, balance.String(), res.Unit)
	}
	if severity == entity.AlertSeverityCritical {
		return fmt.Sprintf("Stock crítico de %s: %s %s (umbral crítico: %s %s)",
			res.Name, balance.String(), res.Unit, res.CriticalThreshold.String(), res.Unit)
	}
	return fmt.Sprintf("Stock bajo de %s: %s %s (umbral: %s %s)",
		res.Name, balance.String(), res.Unit, res.LowThreshold.String(), res.Unit)
}
