package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finzeta/identity-api/internal/application/dto"
	"github.com/finzeta/identity-api/internal/application/usecase"
	"github.com/finzeta/identity-api/internal/domain"
	"github.com/finzeta/identity-api/internal/domain/entity"
	"github.com/finzeta/identity-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memCompanyRepo struct {
	companies map[string]*entity.Company
}

func newMemCompanyRepo(seed ...*entity.Company) *memCompanyRepo {
	m := &memCompanyRepo{companies: map[string]*entity.Company{}}
	for _, c := range seed {
		cp := *c
		m.companies[c.ID] = &cp
	}
	return m
}

func (m *memCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	cp := *c
	m.companies[c.ID] = &cp
	return nil
}
func (m *memCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	c, ok := m.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}
func (m *memCompanyRepo) GetByTaxID(context.Context, string) (*entity.Company, error) {
	return nil, nil
}
func (m *memCompanyRepo) GetByPhone(context.Context, string) (*entity.Company, error) {
	return nil, nil
}
func (m *memCompanyRepo) Update(_ context.Context, c *entity.Company) error {
	cp := *c
	m.companies[c.ID] = &cp
	return nil
}
func (m *memCompanyRepo) List(context.Context, int, int) ([]*entity.Company, error) {
	return nil, nil
}
func (m *memCompanyRepo) Delete(_ context.Context, id string) error {
	delete(m.companies, id)
	return nil
}
func (m *memCompanyRepo) ListTrialsEndingBefore(_ context.Context, t time.Time) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range m.companies {
		if c.IsTrial && !c.TrialEndsAt.After(t) {
			out = append(out, c)
		}
	}
	return out, nil
}

type memSubsRepo struct {
	rows []*entity.SubscriptionHistory
}

func (m *memSubsRepo) AppendHistory(_ context.Context, h *entity.SubscriptionHistory) error {
	cp := *h
	m.rows = append(m.rows, &cp)
	return nil
}
func (m *memSubsRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.SubscriptionHistory, error) {
	var out []*entity.SubscriptionHistory
	for _, h := range m.rows {
		if h.CompanyID == companyID {
			out = append(out, h)
		}
	}
	return out, nil
}

type memSubTxRunner struct {
	companies *memCompanyRepo
	subs      *memSubsRepo
}

func (m *memSubTxRunner) RunSubscription(ctx context.Context, fn func(repository.CompanyRepository, repository.SubscriptionRepository) error) error {
	return fn(m.companies, m.subs)
}

type memUserRepo struct {
	users map[string]*entity.User
}

func (m *memUserRepo) Create(context.Context, *entity.User) error { return nil }
func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.users[id], nil
}
func (m *memUserRepo) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (m *memUserRepo) List(context.Context, int, int) ([]*entity.User, error)   { return nil, nil }
func (m *memUserRepo) Delete(context.Context, string) error                     { return nil }
func (m *memUserRepo) AssignRole(context.Context, string, string) error         { return nil }
func (m *memUserRepo) RolesByUser(context.Context, string) ([]*entity.Role, error) {
	return nil, nil
}

const companyID = "00000000-0000-0000-0000-00000000000a"

func trialCompany() *entity.Company {
	return &entity.Company{
		ID:          companyID,
		Name:        "Acme SA",
		PhoneNumber: "3001234567",
		TaxID:       "900123456",
		IsTrial:     true,
		TrialEndsAt: time.Now().AddDate(0, 1, 0),
	}
}

func buildSubscriptionUC(companies *memCompanyRepo, subs *memSubsRepo) *usecase.SubscriptionUseCase {
	return usecase.NewSubscriptionUseCase(companies, subs, &memSubTxRunner{companies: companies, subs: subs})
}

// ──────────────────────────────────────────────────────────────────────────────
// Start / Extend
// ──────────────────────────────────────────────────────────────────────────────

func TestStart_FijaFinYAppendeaHistorico(t *testing.T) {
	companies := newMemCompanyRepo(trialCompany())
	subs := &memSubsRepo{}
	uc := buildSubscriptionUC(companies, subs)

	endDate := time.Now().AddDate(1, 0, 0).UTC()
	price := decimal.RequireFromString("49.90")

	out, err := uc.Start(context.Background(), dto.StartSubscriptionRequest{
		CompanyID: companyID,
		EndDate:   endDate,
		Price:     price,
		IsTrial:   false,
	})
	require.NoError(t, err)

	c := companies.companies[companyID]
	require.NotNil(t, c.SubscriptionEndsAt)
	assert.True(t, c.SubscriptionEndsAt.Equal(endDate))
	assert.False(t, c.IsTrial, "iniciar de pago debe apagar la marca de trial")

	require.Len(t, subs.rows, 1)
	row := subs.rows[0]
	assert.Equal(t, companyID, row.CompanyID)
	assert.True(t, row.EndDate.Equal(endDate))
	assert.True(t, row.Price.Equal(price))
	assert.False(t, row.IsTrial)

	assert.Equal(t, row.ID, out.ID)
}

func TestStart_EmpresaInexistente_ErrNotFound(t *testing.T) {
	uc := buildSubscriptionUC(newMemCompanyRepo(), &memSubsRepo{})
	_, err := uc.Start(context.Background(), dto.StartSubscriptionRequest{
		CompanyID: companyID,
		EndDate:   time.Now().AddDate(1, 0, 0),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// La extensión solo mueve la fecha de fin; la marca de trial no cambia y el
// histórico registra precio cero copiando el trial vigente de la empresa.
func TestExtend_PrecioCeroYCopiaTrial(t *testing.T) {
	c := trialCompany()
	old := time.Now().AddDate(0, 6, 0).UTC()
	c.SubscriptionEndsAt = &old
	companies := newMemCompanyRepo(c)
	subs := &memSubsRepo{}
	uc := buildSubscriptionUC(companies, subs)

	newEnd := time.Now().AddDate(1, 0, 0).UTC()
	out, err := uc.Extend(context.Background(), dto.ExtendSubscriptionRequest{
		CompanyID:  companyID,
		NewEndDate: newEnd,
	})
	require.NoError(t, err)

	got := companies.companies[companyID]
	require.NotNil(t, got.SubscriptionEndsAt)
	assert.True(t, got.SubscriptionEndsAt.Equal(newEnd))
	assert.True(t, got.IsTrial, "extender no debe tocar la marca de trial")

	require.Len(t, subs.rows, 1)
	assert.True(t, subs.rows[0].Price.IsZero(), "la extensión se registra con precio cero")
	assert.True(t, subs.rows[0].IsTrial, "el histórico copia el trial vigente de la empresa")
	assert.True(t, out.Price.IsZero())
}

func TestExtend_EmpresaInexistente_ErrNotFound(t *testing.T) {
	uc := buildSubscriptionUC(newMemCompanyRepo(), &memSubsRepo{})
	_, err := uc.Extend(context.Background(), dto.ExtendSubscriptionRequest{
		CompanyID:  companyID,
		NewEndDate: time.Now().AddDate(1, 0, 0),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistory_DevuelveLedgerCompleto(t *testing.T) {
	companies := newMemCompanyRepo(trialCompany())
	subs := &memSubsRepo{}
	uc := buildSubscriptionUC(companies, subs)

	_, err := uc.Start(context.Background(), dto.StartSubscriptionRequest{
		CompanyID: companyID,
		EndDate:   time.Now().AddDate(0, 6, 0),
		Price:     decimal.RequireFromString("49.90"),
	})
	require.NoError(t, err)
	_, err = uc.Extend(context.Background(), dto.ExtendSubscriptionRequest{
		CompanyID:  companyID,
		NewEndDate: time.Now().AddDate(1, 0, 0),
	})
	require.NoError(t, err)

	rows, err := uc.History(context.Background(), companyID)
	require.NoError(t, err)
	assert.Len(t, rows, 2, "cada inicio y cada extensión deja su fila")
}

// ──────────────────────────────────────────────────────────────────────────────
// SubscriptionGate
// ──────────────────────────────────────────────────────────────────────────────

const gateUserID = "00000000-0000-0000-0000-00000000000b"

func buildGate(c *entity.Company) *usecase.SubscriptionGate {
	companies := newMemCompanyRepo()
	users := &memUserRepo{users: map[string]*entity.User{}}
	if c != nil {
		companies.companies[c.ID] = c
		users.users[gateUserID] = &entity.User{ID: gateUserID, CompanyID: c.ID}
	}
	return usecase.NewSubscriptionGate(users, companies)
}

func TestGate_SinFechaDeFin_NuncaBloquea(t *testing.T) {
	gate := buildGate(trialCompany())
	assert.NoError(t, gate.Check(context.Background(), gateUserID))
}

func TestGate_FechaFutura_Pasa(t *testing.T) {
	c := trialCompany()
	future := time.Now().Add(24 * time.Hour)
	c.SubscriptionEndsAt = &future
	gate := buildGate(c)
	assert.NoError(t, gate.Check(context.Background(), gateUserID))
}

func TestGate_FechaPasada_Bloquea(t *testing.T) {
	c := trialCompany()
	past := time.Now().Add(-time.Minute)
	c.SubscriptionEndsAt = &past
	gate := buildGate(c)
	err := gate.Check(context.Background(), gateUserID)
	assert.ErrorIs(t, err, domain.ErrSubscriptionExpired)
}

func TestGate_Anonimo_Pasa(t *testing.T) {
	gate := buildGate(nil)
	assert.NoError(t, gate.Check(context.Background(), ""))
}

// Usuario del token inexistente: el gate no bloquea, esa identidad la
// rechaza el resolver de permisos con 401.
func TestGate_UsuarioInexistente_Pasa(t *testing.T) {
	gate := buildGate(nil)
	assert.NoError(t, gate.Check(context.Background(), gateUserID))
}
