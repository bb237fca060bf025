package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"crimewatch/api/internal/admin"
	"crimewatch/api/internal/config"
	"crimewatch/api/internal/middleware"
	"crimewatch/api/internal/repository"
	"crimewatch/api/internal/service"
	"crimewatch/api/internal/storage"
)

type HandlerSet struct {
	log           zerolog.Logger
	cfg           *config.AppConfig
	crimeService  *service.CrimeService
	authService   *service.AuthService
	evidence      *service.EvidenceService
	adminSessions *admin.SessionStore
	users         *repository.UserRepository
	db            *pgxpool.Pool
	cache         *redis.Client
}

func NewHandlerSet(
	log zerolog.Logger,
	db *pgxpool.Pool,
	cache *redis.Client,
	store *storage.ObjectStore,
	adminSessions *admin.SessionStore,
	cfg *config.AppConfig,
) HandlerSet {
	crimeRepo := repository.NewCrimeRepository(db)
	userRepo := repository.NewUserRepository(db)
	crimes := service.NewCrimeService(crimeRepo, log)
	auth := service.NewAuthService(userRepo, cfg, log)
	evidence := service.NewEvidenceService(crimeRepo, store, log)

	return HandlerSet{
		log:           log,
		cfg:           cfg,
		crimeService:  crimes,
		authService:   auth,
		evidence:      evidence,
		adminSessions: adminSessions,
		users:         userRepo,
		db:            db,
		cache:         cache,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	users := router.Group("/users")
	{
		users.POST("/register", h.RegisterUser)
		users.POST("/login", h.LoginUser)

		me := users.Group("")
		me.Use(middleware.Auth(h.cfg, h.users))
		me.GET("/me", h.Me)
	}

	crimes := router.Group("/crimes")
	{
		crimes.GET("", h.ListCrimes)
		crimes.GET("/nearby", h.NearbyCrimes)
		crimes.GET("/user/:userId", h.CrimesByUser)
		crimes.GET("/:id", h.GetCrime)
		crimes.POST("", h.CreateCrime)
		crimes.POST("/:id/evidence", h.UploadEvidence)
	}

	adminGroup := router.Group("/admin")
	{
		adminGroup.POST("/login", h.AdminLogin)
		adminGroup.POST("/logout", h.AdminLogout)

		protected := adminGroup.Group("/crimes")
		protected.Use(middleware.RequireAdmin(h.adminSessions))
		protected.GET("", h.AdminListCrimes)
		protected.PATCH("/status", h.AdminUpdateCrimeStatus)
		protected.DELETE("/:crimeId", h.AdminDeleteCrime)
	}
}
