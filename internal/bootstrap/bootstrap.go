// Package bootstrap wires configuration, storage, external providers, services and
// controllers into a runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	appControllers "github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/controllers"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/jobs"
	appMigrations "github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/migrations"
	appRepos "github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories/memory"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories/redisstore"
	appRoutes "github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/routes"
	appServices "github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/services"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/config"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/db"
	appMiddleware "github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/middleware"
	pkgAuth "github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/auth"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/inference"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/logger"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/media"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/metrics"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/sms"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/seed"
)

// Infrastructure holds the stores and external providers the services run on
type Infrastructure struct {
	Repos     *appRepos.Repositories
	Media     media.Storage
	SMS       sms.Sender
	Generator appServices.TextGenerator
	// LocalMedia is set when files are served from the local filesystem
	LocalMedia *media.Local
	Checks     map[string]appControllers.Pinger

	closers []func()
}

// Close releases connections in reverse order of creation
func (i *Infrastructure) Close() {
	for n := len(i.closers) - 1; n >= 0; n-- {
		i.closers[n]()
	}
	i.closers = nil
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos      *appRepos.Repositories
	Metrics    *metrics.Metrics
	JWTService *pkgAuth.JWTService

	RosterService   appServices.RosterService
	ClassService    appServices.ClassService
	StudentService  appServices.StudentService
	TeacherService  appServices.TeacherService
	SemesterService appServices.SemesterService
	NewsService     appServices.NewsService
	AccountService  appServices.AccountService
	AuthService     *appServices.AuthService
	ResetService    appServices.PasswordResetService
	MediaService    appServices.MediaService
	ChatService     appServices.ChatService
	ExportService   appServices.ExportService

	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
	LocalMedia     *media.Local
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: strings.EqualFold(cfg.Logging.Format, "text"),
	})
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupInfrastructure connects the storage driver, the optional Redis code store and the
// external providers selected in cfg.
func SetupInfrastructure(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Infrastructure, error) {
	infra := &Infrastructure{Checks: map[string]appControllers.Pinger{}}

	if err := setupStorage(ctx, cfg, infra, lgr); err != nil {
		infra.Close()
		return nil, err
	}
	if cfg.Redis.Enabled {
		if err := setupRedis(ctx, cfg, infra, lgr); err != nil {
			infra.Close()
			return nil, err
		}
	}

	storage, err := newMediaStorage(ctx, cfg, lgr)
	if err != nil {
		infra.Close()
		return nil, err
	}
	infra.Media = storage
	if local, ok := storage.(*media.Local); ok {
		infra.LocalMedia = local
	}

	if cfg.TwilioEnabled() {
		infra.SMS = sms.NewTwilioSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber, logger.Component("sms"))
		lgr.Info().Msg("SMS through Twilio")
	} else {
		infra.SMS = sms.NewConsoleSender(logger.Component("sms"))
		lgr.Warn().Msg("Twilio is not configured, verification codes are only logged")
	}

	infra.Generator = inference.New(cfg.Inference.URL, cfg.Inference.Token, config.Duration(cfg.Inference.Timeout, 30*time.Second))
	return infra, nil
}

func setupStorage(ctx context.Context, cfg *config.Config, infra *Infrastructure, lgr zerolog.Logger) error {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		lgr.Warn().Msg("Using in-memory storage, data is lost on restart")
		infra.Repos = memory.NewRepositories()
		return nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return err
	}
	infra.closers = append(infra.closers, database.Close)
	infra.Checks["database"] = database
	lgr.Info().Msg("Database connection successfully established.")

	if cfg.Database.AutoMigrate {
		lgr.Info().Str("path", cfg.Database.MigrationsPath).Msg("Running database migrations...")
		if err := appMigrations.NewMigrator(database.Pool).MigrateFromDirectory(ctx, cfg.Database.MigrationsPath); err != nil {
			lgr.Error().Err(err).Msg("Database migration error")
			return fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")
	}

	infra.Repos = appRepos.NewRepositories(database)
	return nil
}

func setupRedis(ctx context.Context, cfg *config.Config, infra *Infrastructure, lgr zerolog.Logger) error {
	client := redisstore.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	infra.closers = append(infra.closers, func() { _ = client.Close() })

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		lgr.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to redis")
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	infra.Repos.VerificationCodes = redisstore.NewVerificationCodeStore(client, cfg.Redis.Prefix)
	infra.Checks["redis"] = redisPinger(client)
	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Verification codes stored in redis")
	return nil
}

func redisPinger(client *redis.Client) appControllers.PingFunc {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

func newMediaStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (media.Storage, error) {
	lgr.Info().Str("provider", cfg.Media.Provider).Msg("Configuring media storage")
	switch cfg.Media.Provider {
	case config.MediaProviderS3:
		s3, err := media.NewS3(ctx, media.S3Config{
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			PublicBaseURL:   cfg.S3.PublicBaseURL,
			UsePathStyle:    cfg.S3.UsePathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize s3 storage: %w", err)
		}
		return s3, nil
	case config.MediaProviderLocal:
		local, err := media.NewLocal(cfg.LocalStorage.Path, cfg.LocalStorage.BaseURL, logger.Component("media"))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		return local, nil
	default:
		cld, err := media.NewCloudinary(media.CloudinaryConfig{
			CloudName: cfg.Cloudinary.CloudName,
			APIKey:    cfg.Cloudinary.APIKey,
			APISecret: cfg.Cloudinary.APISecret,
			BaseURL:   cfg.Cloudinary.BaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize cloudinary storage: %w", err)
		}
		return cld, nil
	}
}

// BuildDependencies initializes services and controllers on top of infra.
func BuildDependencies(cfg *config.Config, infra *Infrastructure, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{
		Repos:      infra.Repos,
		Metrics:    metrics.New(),
		LocalMedia: infra.LocalMedia,
		Logger:     lgr,
	}
	repos := infra.Repos

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: config.Duration(cfg.JWT.AccessTokenExpiration, 8*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.MediaService = appServices.NewMediaService(infra.Media, cfg.Media.Folder, deps.Metrics, lgr)
	deps.RosterService = appServices.NewRosterService(repos, deps.Metrics, lgr)
	deps.ClassService = appServices.NewClassService(repos, deps.RosterService, lgr)
	deps.StudentService = appServices.NewStudentService(repos, deps.RosterService, deps.MediaService, lgr)
	deps.TeacherService = appServices.NewTeacherService(repos, deps.MediaService, lgr)
	deps.SemesterService = appServices.NewSemesterService(repos, lgr)
	deps.NewsService = appServices.NewNewsService(repos, lgr)
	deps.AccountService = appServices.NewAccountService(repos, lgr)
	deps.AuthService = appServices.NewAuthService(repos, deps.JWTService, lgr)
	deps.ResetService = appServices.NewPasswordResetService(repos.Accounts, repos.VerificationCodes, infra.SMS, deps.Metrics, lgr)
	deps.ChatService = appServices.NewChatService(infra.Generator, deps.Metrics, lgr)
	deps.ExportService = appServices.NewExportService(deps.StudentService, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Auth:     appControllers.NewAuthController(deps.AuthService, logger.Component("auth")),
		Twilio:   appControllers.NewTwilioController(deps.ResetService),
		Student:  appControllers.NewStudentController(deps.StudentService, deps.ExportService),
		Teacher:  appControllers.NewTeacherController(deps.TeacherService),
		Class:    appControllers.NewClassController(deps.ClassService, deps.RosterService),
		Semester: appControllers.NewSemesterController(deps.SemesterService),
		News:     appControllers.NewNewsController(deps.NewsService),
		Account:  appControllers.NewAccountController(deps.AccountService),
		Upload:   appControllers.NewUploadController(deps.MediaService),
		Chat:     appControllers.NewChatController(deps.ChatService),
		Health:   appControllers.NewHealthController(infra.Checks),
	}
	return deps
}

// SeedData creates the bootstrap admin account
func SeedData(ctx context.Context, cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) error {
	_, err := seed.EnsureAdmin(ctx, deps.Repos.Accounts, seed.Admin{
		Username:    cfg.Admin.Username,
		Password:    cfg.Admin.Password,
		FullName:    cfg.Admin.FullName,
		PhoneNumber: cfg.Admin.PhoneNumber,
	}, lgr)
	return err
}

// SetupJobs schedules the periodic maintenance jobs. The scheduler is not started.
func SetupJobs(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*jobs.Scheduler, error) {
	scheduler := jobs.NewScheduler(logger.Component("jobs"))
	purge := jobs.PurgeExpiredCodes(deps.Repos.VerificationCodes, deps.Metrics, lgr, time.Now)
	if err := scheduler.Add("purge-verification-codes", cfg.Jobs.PurgeCodesSchedule, time.Minute, purge); err != nil {
		return nil, err
	}
	return scheduler, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestLogger(logger.Component("http")),
		appMiddleware.Metrics(deps.Metrics),
		appMiddleware.CORS(cfg.Server.AllowedOrigins),
		appMiddleware.MaxBodySize(int64(cfg.Server.MaxUploadSizeMB)<<20),
	)
	router.MaxMultipartMemory = int64(cfg.Server.MaxUploadSizeMB) << 20

	var limiter *appMiddleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = appMiddleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, limiter, deps.Metrics.Handler())

	if deps.LocalMedia != nil && strings.HasPrefix(cfg.LocalStorage.BaseURL, "/") {
		router.Static(cfg.LocalStorage.BaseURL, deps.LocalMedia.BasePath())
		lgr.Info().Str("path", deps.LocalMedia.BasePath()).Msg("Serving uploaded files")
	}

	return router
}
