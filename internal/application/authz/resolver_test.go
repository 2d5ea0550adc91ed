package authz_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finzeta/identity-api/internal/application/authz"
	"github.com/finzeta/identity-api/internal/domain"
	"github.com/finzeta/identity-api/internal/domain/entity"
)

type stubUserRepo struct {
	users map[string]*entity.User
	err   error
}

func (s *stubUserRepo) Create(context.Context, *entity.User) error { return nil }
func (s *stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users[id], nil
}
func (s *stubUserRepo) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (s *stubUserRepo) List(context.Context, int, int) ([]*entity.User, error)   { return nil, nil }
func (s *stubUserRepo) Delete(context.Context, string) error                     { return nil }
func (s *stubUserRepo) AssignRole(context.Context, string, string) error         { return nil }
func (s *stubUserRepo) RolesByUser(context.Context, string) ([]*entity.Role, error) {
	return nil, nil
}

type stubPermRepo struct {
	byUser map[string][]*entity.Permission
	err    error
}

func (s *stubPermRepo) Create(context.Context, *entity.Permission) error { return nil }
func (s *stubPermRepo) GetByID(context.Context, string) (*entity.Permission, error) {
	return nil, nil
}
func (s *stubPermRepo) List(context.Context, int, int) ([]*entity.Permission, error) {
	return nil, nil
}
func (s *stubPermRepo) Update(context.Context, *entity.Permission) error         { return nil }
func (s *stubPermRepo) Delete(context.Context, string) error                     { return nil }
func (s *stubPermRepo) AssignToRole(context.Context, string, string) error       { return nil }
func (s *stubPermRepo) IsAssigned(context.Context, string, string) (bool, error) { return false, nil }
func (s *stubPermRepo) ListByRole(context.Context, string) ([]*entity.Permission, error) {
	return nil, nil
}
func (s *stubPermRepo) ListByUser(_ context.Context, userID string) ([]*entity.Permission, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byUser[userID], nil
}

const userID = "00000000-0000-0000-0000-000000000001"

func buildResolver(perms []*entity.Permission) *authz.Resolver {
	users := &stubUserRepo{users: map[string]*entity.User{
		userID: {ID: userID, CompanyID: "c1", Email: "admin@acme.test"},
	}}
	return authz.NewResolver(users, &stubPermRepo{byUser: map[string][]*entity.Permission{
		userID: perms,
	}})
}

func TestAuthorize_PermisoExacto_Permite(t *testing.T) {
	r := buildResolver([]*entity.Permission{
		{ModuleName: "/api/companies", Action: "GET"},
	})
	assert.NoError(t, r.Authorize(context.Background(), userID, "/api/companies", "GET"))
}

// La comparación normaliza: ruta a minúsculas, método a mayúsculas, tanto del
// permiso como de la petición.
func TestAuthorize_CaseInsensitive(t *testing.T) {
	r := buildResolver([]*entity.Permission{
		{ModuleName: "/API/Companies", Action: "get"},
	})
	assert.NoError(t, r.Authorize(context.Background(), userID, "/api/COMPANIES", "GeT"))
}

func TestAuthorize_MetodoDistinto_Deniega(t *testing.T) {
	r := buildResolver([]*entity.Permission{
		{ModuleName: "/api/companies", Action: "GET"},
	})
	err := r.Authorize(context.Background(), userID, "/api/companies", "POST")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Sin comodines: un permiso sobre la colección no cubre sus subrutas.
func TestAuthorize_SubrutaNoCubierta_Deniega(t *testing.T) {
	r := buildResolver([]*entity.Permission{
		{ModuleName: "/api/companies", Action: "GET"},
	})
	err := r.Authorize(context.Background(), userID, "/api/companies/123", "GET")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAuthorize_SinPermisos_Deniega(t *testing.T) {
	r := buildResolver(nil)
	err := r.Authorize(context.Background(), userID, "/api/companies", "GET")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Cualquier permiso de la unión (vía cualquier rol) basta.
func TestAuthorize_UnionDePermisos_Permite(t *testing.T) {
	r := buildResolver([]*entity.Permission{
		{ModuleName: "/api/roles", Action: "POST"},
		{ModuleName: "/api/companies", Action: "GET"},
	})
	assert.NoError(t, r.Authorize(context.Background(), userID, "/api/companies", "GET"))
}

// Petición anónima (userID vacío) pasa sin consultar nada.
func TestAuthorize_Anonimo_Pasa(t *testing.T) {
	users := &stubUserRepo{err: errors.New("no debe consultarse")}
	perms := &stubPermRepo{err: errors.New("no debe consultarse")}
	r := authz.NewResolver(users, perms)
	assert.NoError(t, r.Authorize(context.Background(), "", "/api/companies", "GET"))
}

// userID presente pero sin usuario en storage: identidad inválida, no falta
// de permiso.
func TestAuthorize_UsuarioInexistente_ErrUserNotFound(t *testing.T) {
	r := authz.NewResolver(
		&stubUserRepo{users: map[string]*entity.User{}},
		&stubPermRepo{},
	)
	err := r.Authorize(context.Background(), "11111111-1111-1111-1111-111111111111", "/api/companies", "GET")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAuthorize_FalloInfra_PropagaError(t *testing.T) {
	infraErr := errors.New("db caída")
	r := authz.NewResolver(
		&stubUserRepo{err: infraErr},
		&stubPermRepo{},
	)
	err := r.Authorize(context.Background(), userID, "/api/companies", "GET")
	assert.ErrorIs(t, err, infraErr)
	assert.NotErrorIs(t, err, domain.ErrForbidden)
}
