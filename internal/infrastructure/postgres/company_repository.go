package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/finzeta/identity-api/internal/domain"
	"github.com/finzeta/identity-api/internal/domain/entity"
	"github.com/finzeta/identity-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	db DB
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
// Acepta el pool o una transacción (vía DB).
func NewCompanyRepository(db DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

const companyColumns = `id, name, phone_number, tax_id, created_at, is_trial, trial_ends_at, subscription_ends_at`

// Create persiste una nueva empresa. Los índices únicos de teléfono y NIF son
// el respaldo de las precondiciones del registro ante carreras: la colisión se
// traduce al error de dominio del campo que chocó.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, phone_number, tax_id, created_at, is_trial, trial_ends_at, subscription_ends_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		company.ID, company.Name, company.PhoneNumber, company.TaxID,
		company.CreatedAt, company.IsTrial, company.TrialEndsAt, company.SubscriptionEndsAt,
	)
	if err != nil {
		switch c := uniqueConstraint(err); {
		case strings.Contains(c, "tax_id"):
			return domain.ErrTaxIDAlreadyExists
		case strings.Contains(c, "phone"):
			return domain.ErrPhoneAlreadyExists
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID. Devuelve (nil, nil) si no existe.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.getBy(ctx, "id", id)
}

// GetByTaxID obtiene una empresa por identificador fiscal.
func (r *CompanyRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Company, error) {
	return r.getBy(ctx, "tax_id", taxID)
}

// GetByPhone obtiene una empresa por teléfono.
func (r *CompanyRepo) GetByPhone(ctx context.Context, phone string) (*entity.Company, error) {
	return r.getBy(ctx, "phone_number", phone)
}

func (r *CompanyRepo) getBy(ctx context.Context, column, value string) (*entity.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE %s = $1`, companyColumns, column)
	var c entity.Company
	err := r.db.QueryRow(ctx, query, value).Scan(
		&c.ID, &c.Name, &c.PhoneNumber, &c.TaxID,
		&c.CreatedAt, &c.IsTrial, &c.TrialEndsAt, &c.SubscriptionEndsAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by %s: %w", column, err)
	}
	return &c, nil
}

// Update actualiza una empresa existente.
func (r *CompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	query := `
		UPDATE companies
		   SET name = $2, phone_number = $3, tax_id = $4, is_trial = $5,
		       trial_ends_at = $6, subscription_ends_at = $7
		 WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query,
		company.ID, company.Name, company.PhoneNumber, company.TaxID,
		company.IsTrial, company.TrialEndsAt, company.SubscriptionEndsAt,
	)
	if err != nil {
		switch c := uniqueConstraint(err); {
		case strings.Contains(c, "tax_id"):
			return domain.ErrTaxIDAlreadyExists
		case strings.Contains(c, "phone"):
			return domain.ErrPhoneAlreadyExists
		}
		return fmt.Errorf("update company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve empresas con paginación.
func (r *CompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies ORDER BY created_at DESC LIMIT $1 OFFSET $2`, companyColumns)
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.PhoneNumber, &c.TaxID, &c.CreatedAt, &c.IsTrial, &c.TrialEndsAt, &c.SubscriptionEndsAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina una empresa por ID. También es la acción compensatoria del
// registro cuando la creación del usuario falla tras insertar la empresa.
func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}

// ListTrialsEndingBefore devuelve empresas en trial cuyo periodo termina antes de t.
func (r *CompanyRepo) ListTrialsEndingBefore(ctx context.Context, t time.Time) ([]*entity.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE is_trial = true AND trial_ends_at <= $1`, companyColumns)
	rows, err := r.db.Query(ctx, query, t)
	if err != nil {
		return nil, fmt.Errorf("list trials ending: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.PhoneNumber, &c.TaxID, &c.CreatedAt, &c.IsTrial, &c.TrialEndsAt, &c.SubscriptionEndsAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
