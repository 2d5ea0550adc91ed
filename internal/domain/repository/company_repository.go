package repository

import (
	"context"
	"time"

	"github.com/finzeta/identity-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure. Todas las operaciones reciben el
// contexto de la petición: no hay estado ambiental compartido.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Company, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
	Delete(ctx context.Context, id string) error
	// ListTrialsEndingBefore devuelve empresas en trial cuyo periodo de prueba
	// termina antes del instante dado (worker de recordatorios).
	ListTrialsEndingBefore(ctx context.Context, t time.Time) ([]*entity.Company, error)
}
