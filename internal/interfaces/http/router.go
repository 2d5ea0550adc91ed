package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/finzeta/identity-api/internal/application/auth"
	"github.com/finzeta/identity-api/internal/application/authz"
	"github.com/finzeta/identity-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	CompanyUC      *usecase.CompanyUseCase
	UserUC         *usecase.UserUseCase
	RoleUC         *usecase.RoleUseCase
	PermissionUC   *usecase.PermissionUseCase
	SubscriptionUC *usecase.SubscriptionUseCase
	Resolver       *authz.Resolver
	Gate           *usecase.SubscriptionGate
	JWTSecret      string
}

// Router registra las rutas de la API. Todo lo que cuelga de /api pasa por la
// cadena auth -> suscripción -> permisos; register y login son públicos por
// el bypass anónimo del resolver (no existe permiso cuyo module_name coincida
// con sus rutas, pero una petición sin token nunca llega a evaluarse).
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api",
		AuthMiddleware(deps.JWTSecret),
		SubscriptionMiddleware(deps.Gate),
		PermissionMiddleware(deps.Resolver),
	)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)

	// Users
	users := api.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Delete("/:id", userHandler.Delete)
	users.Post("/:id/roles", userHandler.AssignRole)
	users.Get("/:id/roles", userHandler.Roles)

	// Roles
	roles := api.Group("/roles")
	roleHandler := NewRoleHandler(deps.RoleUC)
	roles.Post("/", roleHandler.Create)
	roles.Get("/", roleHandler.List)
	roles.Get("/:id", roleHandler.GetByID)
	roles.Delete("/:id", roleHandler.Delete)

	// Permissions
	permissions := api.Group("/permissions")
	permissionHandler := NewPermissionHandler(deps.PermissionUC)
	permissions.Post("/", permissionHandler.Create)
	permissions.Get("/", permissionHandler.List)
	permissions.Post("/assign", permissionHandler.AssignToRole)
	permissions.Get("/:id", permissionHandler.GetByID)
	permissions.Put("/:id", permissionHandler.Update)
	permissions.Delete("/:id", permissionHandler.Delete)
	roles.Get("/:id/permissions", permissionHandler.ListByRole)

	// Subscriptions
	subscriptions := api.Group("/subscriptions")
	subscriptionHandler := NewSubscriptionHandler(deps.SubscriptionUC)
	subscriptions.Post("/start", subscriptionHandler.Start)
	subscriptions.Post("/extend", subscriptionHandler.Extend)
	companies.Get("/:id/subscriptions", subscriptionHandler.History)
}
