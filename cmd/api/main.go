package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/finzeta/identity-api/internal/application/auth"
	"github.com/finzeta/identity-api/internal/application/authz"
	"github.com/finzeta/identity-api/internal/application/usecase"
	"github.com/finzeta/identity-api/internal/infrastructure/postgres"
	httpRouter "github.com/finzeta/identity-api/internal/interfaces/http"
	"github.com/finzeta/identity-api/pkg/config"
	"github.com/finzeta/identity-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	permissionRepo := postgres.NewPermissionRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Trial.Months)
	companyUC := usecase.NewCompanyUseCase(companyRepo, cfg.Trial.Months)
	userUC := usecase.NewUserUseCase(userRepo, companyRepo, roleRepo)
	roleUC := usecase.NewRoleUseCase(roleRepo, companyRepo)
	permissionUC := usecase.NewPermissionUseCase(permissionRepo, roleRepo)
	subscriptionUC := usecase.NewSubscriptionUseCase(companyRepo, subscriptionRepo, txRunner)
	resolver := authz.NewResolver(userRepo, permissionRepo)
	gate := usecase.NewSubscriptionGate(userRepo, companyRepo)

	// Worker de recordatorio de fin de trial
	reminder := usecase.NewTrialReminder(companyRepo, log, cfg.Trial.ReminderDays, cfg.Trial.ReminderIntervalH)
	go reminder.Run(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.TimingMiddleware(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Identity API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CompanyUC:      companyUC,
		UserUC:         userUC,
		RoleUC:         roleUC,
		PermissionUC:   permissionUC,
		SubscriptionUC: subscriptionUC,
		Resolver:       resolver,
		Gate:           gate,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	cancel() // detiene el worker de recordatorios

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
