package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/courtable/club-booking-backend/internal/announcement"
	"github.com/courtable/club-booking-backend/internal/api"
	"github.com/courtable/club-booking-backend/internal/auth"
	"github.com/courtable/club-booking-backend/internal/availability"
	"github.com/courtable/club-booking-backend/internal/booking"
	"github.com/courtable/club-booking-backend/internal/club"
	"github.com/courtable/club-booking-backend/internal/court"
	"github.com/courtable/club-booking-backend/internal/file"
	"github.com/courtable/club-booking-backend/internal/organization"
	"github.com/courtable/club-booking-backend/internal/pkg/cache"
	"github.com/courtable/club-booking-backend/internal/pkg/storage"
	"github.com/courtable/club-booking-backend/internal/schedule"
	"github.com/courtable/club-booking-backend/internal/sport"
	"github.com/courtable/club-booking-backend/internal/stats"
	"github.com/courtable/club-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Cache        *cache.Cache // nil disables the statistics cache
	Log          zerolog.Logger
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	DefaultOpenHour  int
	DefaultCloseHour int
	SlotGranularity  time.Duration

	FileStoragePath string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router       *gin.Engine
	JWTManager   *auth.JWTManager
	StatsUpdater *stats.Updater
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Organization Module
	orgRepo := organization.NewPgxRepository(cfg.DBPool)
	orgService := organization.NewService(orgRepo, userService)

	// Club Module
	clubRepo := club.NewPgxRepository(cfg.DBPool)
	clubService := club.NewService(clubRepo, orgService)

	// Sport Module
	sportRepo := sport.NewPgxRepository(cfg.DBPool)
	sportService := sport.NewService(sportRepo)

	// Court Module
	courtRepo := court.NewPgxRepository(cfg.DBPool)
	courtService := court.NewService(courtRepo, clubService, sportService)

	// Schedule Module
	scheduleRepo := schedule.NewPgxRepository(cfg.DBPool)
	scheduleService := schedule.NewService(scheduleRepo)
	resolver := schedule.NewResolver(scheduleRepo, clubService, courtService, schedule.Defaults{
		OpenHour:  cfg.DefaultOpenHour,
		CloseHour: cfg.DefaultCloseHour,
	})

	// Statistics Module
	statsRepo := stats.NewPgxRepository(cfg.DBPool)
	statsService := stats.NewService(statsRepo, clubService, cfg.Cache, cfg.Log)
	statsUpdater := stats.NewUpdater(statsRepo, clubService, resolver, cfg.Cache, cfg.Log)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, courtService, clubService, orgService, resolver, statsUpdater)

	// Availability Module
	availService := availability.NewService(courtService, clubService, resolver, bookingService, cfg.SlotGranularity)

	// Announcement Module
	annRepo := announcement.NewPgxRepository(cfg.DBPool)
	annService := announcement.NewService(annRepo, clubService)

	// File Module
	store, err := storage.NewLocalStorage(cfg.FileStoragePath)
	if err != nil {
		return nil, fmt.Errorf("init file storage failed: %w", err)
	}
	fileRepo := file.NewPgxRepository(cfg.DBPool)
	fileService := file.NewService(fileRepo, store)

	var origins []string
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		origins = strings.Split(cfg.ProdOrigins, ",")
	}

	// Router
	router := api.NewRouter(api.Deps{
		Log:                 cfg.Log,
		JWTManager:          jwtManager,
		UserService:         userService,
		OrgService:          orgService,
		ClubService:         clubService,
		SportService:        sportService,
		CourtService:        courtService,
		ScheduleService:     scheduleService,
		Resolver:            resolver,
		AvailabilityService: availService,
		BookingService:      bookingService,
		StatsService:        statsService,
		AnnouncementService: annService,
		FileService:         fileService,
		AllowedOrigins:      origins,
	})

	return &Container{
		Router:       router,
		JWTManager:   jwtManager,
		StatsUpdater: statsUpdater,
	}, nil
}
