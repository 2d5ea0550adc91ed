package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finzeta/identity-api/internal/application/dto"
	"github.com/finzeta/identity-api/internal/application/usecase"
	"github.com/finzeta/identity-api/internal/domain"
	"github.com/finzeta/identity-api/internal/domain/entity"
)

type memRoleRepo struct {
	roles map[string]*entity.Role
}

func newMemRoleRepo() *memRoleRepo {
	return &memRoleRepo{roles: map[string]*entity.Role{}}
}

func (m *memRoleRepo) Create(_ context.Context, r *entity.Role) error {
	cp := *r
	m.roles[r.ID] = &cp
	return nil
}
func (m *memRoleRepo) GetByID(_ context.Context, id string) (*entity.Role, error) {
	return m.roles[id], nil
}
func (m *memRoleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	for _, r := range m.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, nil
}
func (m *memRoleRepo) List(context.Context, int, int) ([]*entity.Role, error) { return nil, nil }
func (m *memRoleRepo) Delete(_ context.Context, id string) error {
	delete(m.roles, id)
	return nil
}

func TestRoleCreate_NombreLibre_Crea(t *testing.T) {
	companies := newMemCompanyRepo(trialCompany())
	uc := usecase.NewRoleUseCase(newMemRoleRepo(), companies)

	out, err := uc.Create(context.Background(), dto.CreateRoleRequest{
		CompanyID: companyID,
		Name:      "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", out.Name)
	assert.Equal(t, companyID, out.CompanyID)
}

// La unicidad del nombre se comprueba sin filtrar por empresa: un rol "admin"
// en otra empresa también bloquea la creación.
func TestRoleCreate_NombreUsadoEnOtraEmpresa_Conflicto(t *testing.T) {
	otherCompany := trialCompany()
	otherCompany.ID = "00000000-0000-0000-0000-00000000000f"
	otherCompany.TaxID = "800765432"
	otherCompany.PhoneNumber = "3009999999"
	companies := newMemCompanyRepo(trialCompany(), otherCompany)

	roles := newMemRoleRepo()
	uc := usecase.NewRoleUseCase(roles, companies)

	_, err := uc.Create(context.Background(), dto.CreateRoleRequest{
		CompanyID: otherCompany.ID,
		Name:      "admin",
	})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.CreateRoleRequest{
		CompanyID: companyID,
		Name:      "admin",
	})
	assert.ErrorIs(t, err, domain.ErrRoleNameAlreadyExists)
}

func TestRoleCreate_EmpresaInexistente_ErrNotFound(t *testing.T) {
	uc := usecase.NewRoleUseCase(newMemRoleRepo(), newMemCompanyRepo())
	_, err := uc.Create(context.Background(), dto.CreateRoleRequest{
		CompanyID: companyID,
		Name:      "admin",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRoleDelete_Inexistente_ErrNotFound(t *testing.T) {
	uc := usecase.NewRoleUseCase(newMemRoleRepo(), newMemCompanyRepo())
	err := uc.Delete(context.Background(), "11111111-1111-1111-1111-111111111111")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
