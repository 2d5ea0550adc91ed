package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/finzeta/identity-api/internal/application/auth"
	"github.com/finzeta/identity-api/internal/application/dto"
	"github.com/finzeta/identity-api/internal/domain"
	"github.com/finzeta/identity-api/internal/domain/entity"
	"github.com/finzeta/identity-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
	failOn    string // nombre del método que debe fallar ("" = ninguno)
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[string]*entity.Company{}}
}

func (f *fakeCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	if f.failOn == "Create" {
		return errors.New("fallo simulado en insert")
	}
	cp := *c
	f.companies[c.ID] = &cp
	return nil
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return f.companies[id], nil
}

func (f *fakeCompanyRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Company, error) {
	for _, c := range f.companies {
		if c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCompanyRepo) GetByPhone(_ context.Context, phone string) (*entity.Company, error) {
	for _, c := range f.companies {
		if c.PhoneNumber == phone {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCompanyRepo) Update(_ context.Context, c *entity.Company) error {
	cp := *c
	f.companies[c.ID] = &cp
	return nil
}

func (f *fakeCompanyRepo) List(_ context.Context, _, _ int) ([]*entity.Company, error) {
	out := make([]*entity.Company, 0, len(f.companies))
	for _, c := range f.companies {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCompanyRepo) Delete(_ context.Context, id string) error {
	delete(f.companies, id)
	return nil
}

func (f *fakeCompanyRepo) ListTrialsEndingBefore(_ context.Context, t time.Time) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range f.companies {
		if c.IsTrial && !c.TrialEndsAt.After(t) {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users  map[string]*entity.User
	failOn string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if f.failOn == "Create" {
		return errors.New("fallo simulado en insert")
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) AssignRole(_ context.Context, _, _ string) error { return nil }

func (f *fakeUserRepo) RolesByUser(_ context.Context, _ string) ([]*entity.Role, error) {
	return nil, nil
}

// fakeTxRunner ejecuta fn directo contra los fakes, sin transacción real.
type fakeTxRunner struct {
	companies *fakeCompanyRepo
	users     *fakeUserRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(repository.CompanyRepository, repository.UserRepository) error) error {
	return fn(f.companies, f.users)
}

func buildAuthUC(companies *fakeCompanyRepo, users *fakeUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(users, &fakeTxRunner{companies: companies, users: users}, auth.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		ExpMinutes: 60,
		Issuer:     "identity-api-test",
	}, 1)
}

func registerReq() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:       "admin@acme.test",
		Password:    "super-secreto",
		CompanyName: "Acme SA",
		PhoneNumber: "3001234567",
		TaxID:       "900123456",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaEmpresaYUsuario(t *testing.T) {
	companies := newFakeCompanyRepo()
	users := newFakeUserRepo()
	uc := buildAuthUC(companies, users)

	out, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, "Acme SA", out.Company.Name)
	assert.True(t, out.Company.IsTrial, "la empresa nueva debe arrancar en trial")
	assert.True(t, out.Company.TrialEndsAt.After(time.Now()),
		"el trial debe terminar en el futuro")
	assert.Nil(t, out.Company.SubscriptionEndsAt,
		"una empresa recién registrada no tiene fecha de fin de suscripción")

	assert.Equal(t, out.Company.ID, out.User.CompanyID)
	assert.Equal(t, "admin@acme.test", out.User.Email)
	assert.Equal(t, "admin@acme.test", out.User.UserName,
		"el email hace de username del primer usuario")

	// Persistido en ambos repos
	assert.Len(t, companies.companies, 1)
	assert.Len(t, users.users, 1)
}

func TestRegister_NIFDuplicado_Retorna409(t *testing.T) {
	companies := newFakeCompanyRepo()
	users := newFakeUserRepo()
	uc := buildAuthUC(companies, users)

	_, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	in := registerReq()
	in.Email = "otro@acme.test"
	in.PhoneNumber = "3009999999"
	_, err = uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrTaxIDAlreadyExists)
	assert.Len(t, companies.companies, 1, "no debe crearse una segunda empresa")
}

func TestRegister_EmailDuplicado_Retorna409(t *testing.T) {
	companies := newFakeCompanyRepo()
	users := newFakeUserRepo()
	uc := buildAuthUC(companies, users)

	_, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	in := registerReq()
	in.TaxID = "800765432"
	in.PhoneNumber = "3009999999"
	_, err = uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_TelefonoDuplicado_Retorna409(t *testing.T) {
	companies := newFakeCompanyRepo()
	users := newFakeUserRepo()
	uc := buildAuthUC(companies, users)

	_, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	in := registerReq()
	in.TaxID = "800765432"
	in.Email = "otro@acme.test"
	_, err = uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrPhoneAlreadyExists)
}

// Cuando colisionan varios campos a la vez el error identifica el primero en
// el orden de verificación: NIF, email, teléfono.
func TestRegister_ConflictoMultiple_ReportaNIFPrimero(t *testing.T) {
	companies := newFakeCompanyRepo()
	users := newFakeUserRepo()
	uc := buildAuthUC(companies, users)

	_, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	// Mismo NIF, mismo email y mismo teléfono
	_, err = uc.Register(context.Background(), registerReq())
	assert.ErrorIs(t, err, domain.ErrTaxIDAlreadyExists)
}

// Si el insert del usuario falla, la acción compensatoria borra la empresa:
// nunca queda una empresa persistida sin su primer usuario.
func TestRegister_FalloCreandoUsuario_BorraEmpresa(t *testing.T) {
	companies := newFakeCompanyRepo()
	users := newFakeUserRepo()
	users.failOn = "Create"
	uc := buildAuthUC(companies, users)

	_, err := uc.Register(context.Background(), registerReq())
	require.Error(t, err)

	assert.Empty(t, companies.companies,
		"la empresa debe borrarse si el usuario no pudo crearse")
	assert.Empty(t, users.users)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func seedUser(t *testing.T, users *fakeUserRepo, email, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		ID:           "00000000-0000-0000-0000-000000000001",
		CompanyID:    "00000000-0000-0000-0000-000000000002",
		UserName:     email,
		Email:        email,
		PasswordHash: string(hash),
	}
	users.users[u.ID] = u
	return u
}

func TestLogin_CredencialesValidas_EmiteToken(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "admin@acme.test", "super-secreto")
	uc := buildAuthUC(newFakeCompanyRepo(), users)

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@acme.test",
		Password: "super-secreto",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "admin@acme.test", out.User.Email)
}

func TestLogin_PasswordIncorrecto_Retorna401(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "admin@acme.test", "super-secreto")
	uc := buildAuthUC(newFakeCompanyRepo(), users)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@acme.test",
		Password: "equivocado",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailInexistente_MismoErrorQuePasswordMalo(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "admin@acme.test", "super-secreto")
	uc := buildAuthUC(newFakeCompanyRepo(), users)

	_, errNoUser := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "nadie@acme.test",
		Password: "super-secreto",
	})
	_, errBadPass := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@acme.test",
		Password: "equivocado",
	})

	assert.ErrorIs(t, errNoUser, domain.ErrUnauthorized)
	assert.ErrorIs(t, errBadPass, domain.ErrUnauthorized,
		"el caller no debe poder distinguir email inexistente de password malo")
}
