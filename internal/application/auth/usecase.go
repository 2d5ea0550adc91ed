package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/finzeta/identity-api/internal/application/dto"
	"github.com/finzeta/identity-api/internal/domain"
	"github.com/finzeta/identity-api/internal/domain/entity"
	"github.com/finzeta/identity-api/internal/domain/repository"
	"github.com/finzeta/identity-api/pkg/jwt"
)

// TxRunner es el contrato mínimo que necesita el registro para ejecutar sus
// escrituras dentro de una transacción. Lo implementa postgres.TxRunner; el
// uso de interfaz permite fakes en tests.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
	) error) error
}

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y registro atómico de
// empresa + primer usuario.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	txRunner    TxRunner
	jwtCfg      JWTConfig
	trialMonths int
}

// NewAuthUseCase construye el caso de uso de auth. trialMonths es la duración
// del periodo de prueba que se concede al registrar una empresa.
func NewAuthUseCase(userRepo repository.UserRepository, txRunner TxRunner, jwtCfg JWTConfig, trialMonths int) *AuthUseCase {
	if trialMonths <= 0 {
		trialMonths = 1
	}
	return &AuthUseCase{userRepo: userRepo, txRunner: txRunner, jwtCfg: jwtCfg, trialMonths: trialMonths}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email inexistente y password incorrecto devuelven el mismo
// domain.ErrUnauthorized: el caller no puede distinguir cuál falló.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Register crea una empresa y su primer usuario como unidad atómica.
//
// Precondiciones, en orden y antes de cualquier escritura: NIF libre, email
// libre, teléfono libre; cada violación devuelve el error de conflicto del
// campo concreto. La empresa se crea en trial (fin = ahora + trialMonths) y el
// usuario con el email como username. Si la creación del usuario falla, la
// empresa recién insertada se borra como acción compensatoria, además del
// rollback de la transacción externa: el borrado explícito es parte del
// contrato, no una redundancia a limpiar. Los índices únicos del storage son
// el respaldo ante dos registros concurrentes con el mismo NIF/email/teléfono.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var company entity.Company
	var user entity.User

	err = uc.txRunner.Run(ctx, func(companies repository.CompanyRepository, users repository.UserRepository) error {
		existing, err := companies.GetByTaxID(ctx, in.TaxID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrTaxIDAlreadyExists
		}

		existingUser, err := users.GetByEmail(ctx, in.Email)
		if err != nil {
			return err
		}
		if existingUser != nil {
			return domain.ErrEmailAlreadyExists
		}

		existing, err = companies.GetByPhone(ctx, in.PhoneNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrPhoneAlreadyExists
		}

		now := time.Now().UTC()
		company = entity.Company{
			ID:          uuid.New().String(),
			Name:        in.CompanyName,
			PhoneNumber: in.PhoneNumber,
			TaxID:       in.TaxID,
			CreatedAt:   now,
			IsTrial:     true,
			TrialEndsAt: now.AddDate(0, uc.trialMonths, 0),
		}
		if err := companies.Create(ctx, &company); err != nil {
			return err
		}

		user = entity.User{
			ID:           uuid.New().String(),
			CompanyID:    company.ID,
			UserName:     in.Email,
			Email:        in.Email,
			PasswordHash: string(hash),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := users.Create(ctx, &user); err != nil {
			// Acción compensatoria: la empresa no debe quedar persistida sin
			// su usuario, aunque la transacción externa también haga rollback.
			if delErr := companies.Delete(ctx, company.ID); delErr != nil {
				return fmt.Errorf("crear usuario: %w (compensación fallida: %v)", err, delErr)
			}
			return fmt.Errorf("crear usuario: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		Company: *toCompanyResponse(&company),
		User:    *toUserResponse(&user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		UserName:  u.UserName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:                 c.ID,
		Name:               c.Name,
		PhoneNumber:        c.PhoneNumber,
		TaxID:              c.TaxID,
		CreatedAt:          c.CreatedAt,
		IsTrial:            c.IsTrial,
		TrialEndsAt:        c.TrialEndsAt,
		SubscriptionEndsAt: c.SubscriptionEndsAt,
	}
}
