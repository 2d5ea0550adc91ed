package usecase_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/finzeta/identity-api/internal/application/usecase"
	"github.com/finzeta/identity-api/pkg/logger"
)

// Una configuración con intervalo o antelación no positivos (p.ej. una env
// var no numérica) no debe tumbar el worker: los valores caen a los defaults
// y Run termina limpio al cancelar el contexto.
func TestTrialReminder_IntervaloNoPositivo_NoEntraEnPanico(t *testing.T) {
	companies := newMemCompanyRepo()
	w := usecase.NewTrialReminder(companies, logger.Nop(), 0, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Con intervalo cero el ticker del bucle entraría en pánico aquí.
	w.Run(ctx)
}

func TestTrialReminder_AntelacionNegativa_NoEntraEnPanico(t *testing.T) {
	companies := newMemCompanyRepo()
	w := usecase.NewTrialReminder(companies, logger.Nop(), -1, -5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w.Run(ctx)
}

// La pasada inicial avisa de las empresas en trial cuyo periodo termina
// dentro de la ventana de antelación, e ignora las que terminan después.
func TestTrialReminder_PasadaInicial_AvisaTrialsPorVencer(t *testing.T) {
	proximo := trialCompany()
	proximo.TrialEndsAt = time.Now().Add(24 * time.Hour)

	lejano := trialCompany()
	lejano.ID = "00000000-0000-0000-0000-00000000000c"
	lejano.TaxID = "800765432"
	lejano.PhoneNumber = "3009999999"
	lejano.TrialEndsAt = time.Now().AddDate(0, 1, 0)

	companies := newMemCompanyRepo(proximo, lejano)

	var buf bytes.Buffer
	log := logger.New(logger.Config{
		Env:     "production",
		Level:   "info",
		Service: "identity-api",
		Writer:  &buf,
	})

	w := usecase.NewTrialReminder(companies, log, 3, 24)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Run(ctx) // la pasada inicial corre antes de mirar el contexto

	out := buf.String()
	assert.Contains(t, out, proximo.ID, "debe avisar del trial que vence dentro de la ventana")
	assert.NotContains(t, out, lejano.ID, "no debe avisar de trials lejanos")
	assert.Contains(t, out, `"service":"identity-api"`)
}
