package usecase

import (
	"context"
	"time"

	"github.com/finzeta/identity-api/internal/domain/repository"
	"github.com/finzeta/identity-api/pkg/logger"
)

// TrialReminder es el worker que avisa de trials a punto de vencer. Cada
// pasada busca empresas en trial cuyo periodo termina dentro de la ventana de
// antelación y emite un log por cada una. No envía correo: el canal de aviso
// concreto queda fuera de este servicio.
type TrialReminder struct {
	companyRepo repository.CompanyRepository
	log         *logger.Logger
	window      time.Duration // antelación del aviso
	interval    time.Duration // tiempo entre pasadas
	now         func() time.Time
}

// NewTrialReminder construye el worker. reminderDays es la antelación en días
// e intervalH las horas entre pasadas; valores no positivos caen a los
// defaults (3 días, 24 horas): un intervalo cero haría entrar en pánico al
// ticker del bucle.
func NewTrialReminder(companyRepo repository.CompanyRepository, log *logger.Logger, reminderDays, intervalH int) *TrialReminder {
	if reminderDays <= 0 {
		reminderDays = 3
	}
	if intervalH <= 0 {
		intervalH = 24
	}
	return &TrialReminder{
		companyRepo: companyRepo,
		log:         log,
		window:      time.Duration(reminderDays) * 24 * time.Hour,
		interval:    time.Duration(intervalH) * time.Hour,
		now:         time.Now,
	}
}

// Run ejecuta el bucle del worker hasta que el contexto se cancele. Hace una
// pasada inmediata al arrancar y luego una por intervalo.
func (w *TrialReminder) Run(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("worker de recordatorio de trial iniciado")

	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("worker de recordatorio de trial detenido")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *TrialReminder) sweep(ctx context.Context) {
	cutoff := w.now().Add(w.window)
	companies, err := w.companyRepo.ListTrialsEndingBefore(ctx, cutoff)
	if err != nil {
		w.log.Error().Err(err).Msg("error buscando trials por vencer")
		return
	}

	for _, c := range companies {
		w.log.Warn().
			Str("company_id", c.ID).
			Str("company_name", c.Name).
			Time("trial_ends_at", c.TrialEndsAt).
			Msg("trial a punto de vencer")
	}

	w.log.Debug().Int("companies", len(companies)).Msg("pasada de recordatorios completada")
}
