package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/courtable/club-booking-backend/internal/announcement"
	annHttp "github.com/courtable/club-booking-backend/internal/announcement/http"
	"github.com/courtable/club-booking-backend/internal/auth"
	"github.com/courtable/club-booking-backend/internal/availability"
	availHttp "github.com/courtable/club-booking-backend/internal/availability/http"
	"github.com/courtable/club-booking-backend/internal/booking"
	bookingHttp "github.com/courtable/club-booking-backend/internal/booking/http"
	"github.com/courtable/club-booking-backend/internal/club"
	clubHttp "github.com/courtable/club-booking-backend/internal/club/http"
	"github.com/courtable/club-booking-backend/internal/court"
	courtHttp "github.com/courtable/club-booking-backend/internal/court/http"
	"github.com/courtable/club-booking-backend/internal/file"
	fileHttp "github.com/courtable/club-booking-backend/internal/file/http"
	"github.com/courtable/club-booking-backend/internal/organization"
	orgHttp "github.com/courtable/club-booking-backend/internal/organization/http"
	"github.com/courtable/club-booking-backend/internal/schedule"
	scheduleHttp "github.com/courtable/club-booking-backend/internal/schedule/http"
	"github.com/courtable/club-booking-backend/internal/sport"
	sportHttp "github.com/courtable/club-booking-backend/internal/sport/http"
	"github.com/courtable/club-booking-backend/internal/stats"
	statsHttp "github.com/courtable/club-booking-backend/internal/stats/http"
	"github.com/courtable/club-booking-backend/internal/user"
	userHttp "github.com/courtable/club-booking-backend/internal/user/http"
)

// Deps bundles everything the router needs.
type Deps struct {
	Log        zerolog.Logger
	JWTManager *auth.JWTManager

	UserService         user.Service
	OrgService          organization.Service
	ClubService         club.Service
	SportService        sport.Service
	CourtService        court.Service
	ScheduleService     schedule.Service
	Resolver            *schedule.Resolver
	AvailabilityService availability.Service
	BookingService      booking.Service
	StatsService        stats.Service
	AnnouncementService announcement.Service
	FileService         file.Service

	AllowedOrigins []string
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, logging, metrics, auth) and registers
// the routes of every module.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()

	r.Use(RequestLogger(deps.Log), Observe(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	config := cors.DefaultConfig()
	config.AllowOrigins = deps.AllowedOrigins
	if len(config.AllowOrigins) == 0 {
		config.AllowOrigins = []string{"http://localhost:8081"}
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(deps.JWTManager)
	// sysAdminMiddleware: Further checks if the authenticated user has System Admin privileges.
	sysAdminMiddleware := RequireSystemAdmin(deps.UserService)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	fileHandler := fileHttp.NewHandler(deps.FileService)
	userHandler := userHttp.NewHandler(deps.UserService, deps.JWTManager)
	orgHandler := orgHttp.NewHandler(deps.OrgService)
	clubHandler := clubHttp.NewHandler(deps.ClubService, deps.OrgService, fileHandler)
	sportHandler := sportHttp.NewHandler(deps.SportService, deps.OrgService)
	courtHandler := courtHttp.NewHandler(deps.CourtService, deps.ClubService, deps.OrgService)
	scheduleHandler := scheduleHttp.NewHandler(deps.ScheduleService, deps.Resolver, deps.OrgService)
	availHandler := availHttp.NewHandler(deps.AvailabilityService)
	bookingHandler := bookingHttp.NewHandler(deps.BookingService, deps.UserService, deps.OrgService)
	statsHandler := statsHttp.NewHandler(deps.StatsService, deps.OrgService)
	annHandler := annHttp.NewHandler(deps.AnnouncementService, deps.UserService, deps.OrgService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, sysAdminMiddleware)
		orgHttp.RegisterRoutes(v1, orgHandler, authMiddleware, sysAdminMiddleware)
		clubHttp.RegisterRoutes(v1, clubHandler, authMiddleware)
		sportHttp.RegisterRoutes(v1, sportHandler, authMiddleware)
		courtHttp.RegisterRoutes(v1, courtHandler, authMiddleware)
		scheduleHttp.RegisterRoutes(v1, scheduleHandler, authMiddleware)
		availHttp.RegisterRoutes(v1, availHandler)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		statsHttp.RegisterRoutes(v1, statsHandler, authMiddleware)
		annHttp.RegisterRoutes(v1, annHandler, authMiddleware)
		fileHttp.RegisterRoutes(v1, fileHandler, authMiddleware)
	}

	return r
}
