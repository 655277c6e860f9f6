package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/alijimale/institute-backend/internal/app/controllers"
	appMigrations "github.com/alijimale/institute-backend/internal/app/migrations"
	appRepos "github.com/alijimale/institute-backend/internal/app/repositories"
	appRoutes "github.com/alijimale/institute-backend/internal/app/routes"
	appServices "github.com/alijimale/institute-backend/internal/app/services"
	"github.com/alijimale/institute-backend/internal/config"
	"github.com/alijimale/institute-backend/internal/db"
	appMiddleware "github.com/alijimale/institute-backend/internal/middleware"
	"github.com/alijimale/institute-backend/internal/pkg/blobstore"
	"github.com/alijimale/institute-backend/internal/pkg/genai"
	"github.com/alijimale/institute-backend/internal/pkg/helpers"
	"github.com/alijimale/institute-backend/internal/pkg/logger"
	"github.com/alijimale/institute-backend/internal/pkg/session"
	"github.com/alijimale/institute-backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       appServices.AuthService
	StudentService    appServices.StudentService
	TeacherService    appServices.TeacherService
	ClassService      appServices.ClassService
	AttendanceService appServices.AttendanceService
	ExamService       appServices.ExamService
	AssistantService  appServices.AssistantService

	AuthController       *appControllers.AuthController
	StudentController    *appControllers.StudentController
	TeacherController    *appControllers.TeacherController
	ClassController      *appControllers.ClassController
	AttendanceController *appControllers.AttendanceController
	ExamController       *appControllers.ExamController
	AssistantController  *appControllers.AssistantController
	HealthController     *appControllers.HealthController

	AuthMiddleware *appMiddleware.AuthMiddleware
	RateLimiter    *appMiddleware.RateLimiter
	Metrics        *appMiddleware.Metrics

	Repos    *appRepos.Repositories
	Sessions *session.Manager
	Redis    *redis.Client
	Blobs    *blobstore.Store
	Logger   zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the bootstrap admin.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed default data, proceeding anyway...")
	}

	return dbPool, nil
}

// SetupRedis connects the Redis client used for rate limiting.
func SetupRedis(cfg *config.Config, lgr zerolog.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		// The limiter fails open, so a cold Redis only disables throttling.
		lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable at startup")
	}
	return client
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, redisClient *redis.Client, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Redis: redisClient}

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.Blobs = blobstore.NewStore(dbPool)

	deps.Sessions = session.NewManager(session.Config{
		Secret:     cfg.Session.Secret,
		CookieName: cfg.Session.CookieName,
		MaxAge:     helpers.ParseDuration(cfg.Session.MaxAge, 168*time.Hour),
		Secure:     cfg.IsProduction(),
	})

	assistantClient := genai.NewClient(genai.Config{
		APIKey:  cfg.Assistant.APIKey,
		Model:   cfg.Assistant.Model,
		BaseURL: cfg.Assistant.BaseURL,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, cfg.PrivilegedEmails())
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository)
	deps.TeacherService = appServices.NewTeacherService(deps.Repos.UserRepository)
	deps.ClassService = appServices.NewClassService(deps.Repos.ClassRepository, deps.Repos.UserRepository)
	deps.AttendanceService = appServices.NewAttendanceService(deps.Repos.AttendanceRepository)
	deps.ExamService = appServices.NewExamService(dbPool, deps.Repos.ExamRepository, deps.Blobs)
	deps.AssistantService = appServices.NewAssistantService(assistantClient)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Sessions)
	deps.RateLimiter = appMiddleware.NewRateLimiter(redisClient, cfg.Redis.RateLimitPerMin, time.Minute)
	deps.Metrics = appMiddleware.NewMetrics(prometheus.DefaultRegisterer)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.Sessions)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.TeacherController = appControllers.NewTeacherController(deps.TeacherService)
	deps.ClassController = appControllers.NewClassController(deps.ClassService)
	deps.AttendanceController = appControllers.NewAttendanceController(deps.AttendanceService)
	deps.ExamController = appControllers.NewExamController(deps.ExamService)
	deps.AssistantController = appControllers.NewAssistantController(deps.AssistantService)
	deps.HealthController = appControllers.NewHealthController(dbPool, redisClient)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(deps.Metrics.Collect())
	router.Use(deps.RateLimiter.Limit())

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.TeacherController,
		deps.ClassController,
		deps.AttendanceController,
		deps.ExamController,
		deps.AssistantController,
		deps.HealthController,
		deps.AuthMiddleware,
	)

	return router
}
