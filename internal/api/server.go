package api

import (
	"database/sql"

	"shelfcloud/internal/api/handlers"
	"shelfcloud/internal/api/middleware"
	"shelfcloud/internal/api/validation"
	"shelfcloud/internal/config"
	"shelfcloud/internal/obs"
	"shelfcloud/internal/repository"
	"shelfcloud/internal/secrets"
	"shelfcloud/internal/service"
	"shelfcloud/internal/storage"

	"github.com/gin-gonic/gin"
)

type Server struct {
	router      *gin.Engine
	db          *sql.DB
	credentials *service.CredentialService
	buckets     repository.BucketRepository
}

func NewServer(db *sql.DB, cfg *config.Config, box *secrets.Box) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &Server{
		router: gin.New(),
		db:     db,
	}

	validation.RegisterValidators()
	obs.Init()

	server.router.Use(gin.Recovery())
	server.router.Use(middleware.RequestID())
	server.router.Use(middleware.SecurityHeaders())
	server.router.Use(middleware.CORS())
	server.router.Use(middleware.RequestLogger())
	server.router.Use(obs.Instrument())
	server.router.Use(middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		RPS:   cfg.RateLimitRPS,
		Burst: cfg.RateLimitBurst,
	}))

	server.initializeRoutes(cfg, box)

	return server
}

func (s *Server) initializeRoutes(cfg *config.Config, box *secrets.Box) {
	// Repositories
	userRepo := repository.NewUserRepository(s.db)
	orgRepo := repository.NewOrganizationRepository(s.db)
	teamRepo := repository.NewTeamRepository(s.db)
	memberRepo := repository.NewMembershipRepository(s.db)
	invitationRepo := repository.NewInvitationRepository(s.db)
	bucketRepo := repository.NewBucketRepository(s.db)
	projectRepo := repository.NewProjectRepository(s.db)
	tenantRepo := repository.NewTenantRepository(s.db)
	apiKeyRepo := repository.NewAPIKeyRepository(s.db)
	s.buckets = bucketRepo

	// Services
	audit := service.NewAuditService()
	access := service.NewAccessResolver(memberRepo, bucketRepo, teamRepo, projectRepo)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.SessionTTL)
	orgService := service.NewOrganizationService(orgRepo, memberRepo, access, audit)
	teamService := service.NewTeamService(teamRepo, memberRepo, access, audit)
	invitationService := service.NewInvitationService(invitationRepo, access, audit)
	bucketService := service.NewBucketService(bucketRepo, teamRepo, memberRepo, access, box, audit)
	credentialService := service.NewCredentialService(bucketRepo, access, box, storage.NewS3Prober(), cfg.ValidateTimeout, audit)
	projectService := service.NewProjectService(projectRepo, tenantRepo, memberRepo, access, audit)
	apiKeyService := service.NewAPIKeyService(apiKeyRepo, access, audit)
	s.credentials = credentialService

	// Handlers
	healthHandler := handlers.NewHealthHandler(s.db)
	authHandler := handlers.NewAuthHandler(authService)
	orgHandler := handlers.NewOrganizationHandler(orgService)
	teamHandler := handlers.NewTeamHandler(teamService)
	invitationHandler := handlers.NewInvitationHandler(invitationService)
	bucketHandler := handlers.NewBucketHandler(bucketService, credentialService)
	projectHandler := handlers.NewProjectHandler(projectService)
	apiKeyHandler := handlers.NewAPIKeyHandler(apiKeyService)

	s.router.GET("/health", healthHandler.Check)
	s.router.GET("/metrics", gin.WrapH(obs.Handler()))

	// Public routes
	public := s.router.Group("/api/v1")
	{
		public.POST("/auth/register", authHandler.Register)
		public.POST("/auth/login", authHandler.Login)
	}

	// Session-protected routes
	protected := s.router.Group("/api/v1")
	protected.Use(middleware.RequireAuth(authService))
	{
		protected.GET("/auth/me", authHandler.Me)
		protected.GET("/auth/session", authHandler.Me)
		protected.POST("/auth/logout", authHandler.Logout)

		// Organization routes
		protected.POST("/organizations", orgHandler.Create)
		protected.GET("/organizations", orgHandler.List)
		protected.GET("/organizations/:id", orgHandler.Get)
		protected.PATCH("/organizations/:id", orgHandler.Update)
		protected.DELETE("/organizations/:id", orgHandler.Delete)
		protected.GET("/organizations/:id/members", orgHandler.ListMembers)
		protected.POST("/organizations/:id/members", orgHandler.AddMember)
		protected.PATCH("/organizations/:id/members/:userId", orgHandler.UpdateMember)
		protected.DELETE("/organizations/:id/members/:userId", orgHandler.RemoveMember)
		protected.POST("/organizations/:id/teams", teamHandler.Create)
		protected.GET("/organizations/:id/teams", teamHandler.ListByOrganization)
		protected.GET("/organizations/:id/invitations", invitationHandler.ListByOrganization)

		// Team routes
		protected.GET("/organizations/teams/:id", teamHandler.Get)
		protected.PATCH("/organizations/teams/:id", teamHandler.Update)
		protected.DELETE("/organizations/teams/:id", teamHandler.Delete)
		protected.GET("/organizations/teams/:id/members", teamHandler.ListMembers)
		protected.POST("/organizations/teams/:id/members", teamHandler.AddMember)
		protected.PATCH("/organizations/teams/:id/members/:userId", teamHandler.UpdateMember)
		protected.DELETE("/organizations/teams/:id/members/:userId", teamHandler.RemoveMember)
		protected.GET("/organizations/teams/:id/invitations", invitationHandler.ListByTeam)

		// Invitation routes
		protected.POST("/organizations/invite", invitationHandler.Create)
		protected.GET("/organizations/invitations/:id", invitationHandler.Get)
		protected.POST("/organizations/invitations/:id/accept", invitationHandler.Accept)
		protected.POST("/organizations/invitations/:id/decline", invitationHandler.Decline)
		protected.DELETE("/organizations/invitations/:id", invitationHandler.Revoke)

		// Bucket routes
		protected.POST("/buckets", bucketHandler.Create)
		protected.GET("/buckets", bucketHandler.List)
		protected.GET("/buckets/:id", bucketHandler.Get)
		protected.PATCH("/buckets/:id", bucketHandler.Update)
		protected.DELETE("/buckets/:id", bucketHandler.Delete)
		protected.POST("/buckets/:id/validate", bucketHandler.Validate)
		protected.POST("/buckets/:id/rotate-credentials", bucketHandler.RotateCredentials)
		protected.GET("/buckets/:id/access", bucketHandler.ListGrants)
		protected.POST("/buckets/:id/access", bucketHandler.Grant)
		protected.DELETE("/buckets/:id/access/:teamId", bucketHandler.RevokeGrant)
		protected.GET("/buckets/:id/available-teams", bucketHandler.ListAvailableTeams)

		// Project routes
		protected.POST("/projects", projectHandler.Create)
		protected.GET("/projects", projectHandler.List)
		protected.GET("/projects/:id", projectHandler.Get)
		protected.PUT("/projects/:id", projectHandler.Update)
		protected.DELETE("/projects/:id", projectHandler.Delete)
		protected.POST("/projects/:id/transfer", projectHandler.Transfer)
		protected.GET("/projects/:id/tenants", projectHandler.ListTenants)
		protected.POST("/projects/:id/tenants", projectHandler.CreateTenant)
		protected.PUT("/projects/:id/tenants/:tenantId", projectHandler.UpdateTenant)
		protected.DELETE("/projects/:id/tenants/:tenantId", projectHandler.DeleteTenant)

		// API key routes
		protected.POST("/projects/:id/api-keys", apiKeyHandler.Create)
		protected.GET("/projects/:id/api-keys", apiKeyHandler.List)
		protected.DELETE("/projects/:id/api-keys/:keyId", apiKeyHandler.Revoke)
		protected.POST("/projects/:id/api-keys/:keyId/regenerate", apiKeyHandler.Regenerate)
	}

	// Data-plane routes authenticated by API key
	keys := s.router.Group("/api/v1")
	keys.Use(middleware.RequireAPIKey(apiKeyService))
	{
		keys.GET("/keys/self", apiKeyHandler.Self)
	}
}

// CredentialService exposes the validation service for background tasks.
func (s *Server) CredentialService() *service.CredentialService {
	return s.credentials
}

// BucketRepository exposes the bucket store for background tasks.
func (s *Server) BucketRepository() repository.BucketRepository {
	return s.buckets
}

func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
