package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adoptme/service-adoption/internal/application"
	"github.com/adoptme/service-adoption/internal/platform/auth"
	"github.com/adoptme/service-adoption/internal/platform/health"
	"github.com/adoptme/service-adoption/internal/platform/middleware"
	"github.com/adoptme/service-adoption/internal/platform/response"
)

// Services bundles the application services exposed over HTTP.
type Services struct {
	Accounts  *application.AccountService
	Pets      *application.PetService
	Shelters  *application.ShelterService
	Contact   *application.ContactService
	Donations *application.DonationService
	Adoptions *application.AdoptionService
	Favorites *application.FavoriteService
	Admin     *application.AdminService
}

// NewRouter builds the gin engine with global middleware and every route.
func NewRouter(
	svc Services,
	jwtManager *auth.JWTManager,
	healthHandler *health.Handler,
	log *zap.Logger,
	allowedOrigins []string,
) *gin.Engine {
	response.UseJSONFieldNames()

	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.CORSMiddleware(allowedOrigins...))
	router.Use(middleware.SecurityHeadersMiddleware())

	healthHandler.RegisterRoutes(router)

	root := &router.RouterGroup
	NewAuthHandler(svc.Accounts).RegisterRoutes(root, jwtManager)
	NewPetHandler(svc.Pets).RegisterRoutes(root, jwtManager)
	NewFavoriteHandler(svc.Favorites).RegisterRoutes(root, jwtManager)
	NewAdoptionHandler(svc.Adoptions).RegisterRoutes(root, jwtManager)
	NewContactHandler(svc.Contact).RegisterRoutes(root)
	NewShelterHandler(svc.Shelters).RegisterRoutes(root, jwtManager)
	NewDonationHandler(svc.Donations).RegisterRoutes(root, jwtManager)
	NewAdminHandler(svc.Admin, svc.Contact, svc.Shelters, svc.Donations).RegisterRoutes(root, jwtManager)

	return router
}
