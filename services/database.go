package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"github.com/vooky-app/vooky_api/model"
	"github.com/vooky-app/vooky_api/services/repositories"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

type DatabaseService struct {
	context.DefaultService
	db *gorm.DB

	driver   string
	database string

	content     *repositories.ContentRepository
	progress    *repositories.ProgressRepository
	badges      *repositories.BadgeRepository
	leaderboard *repositories.LeaderboardRepository
	users       *repositories.UserRepository
	enrollments *repositories.EnrollmentRepository
}

const DATABASE_SVC = "database_svc"

func (ds DatabaseService) Id() string {
	return DATABASE_SVC
}

func (ds DatabaseService) Db() *gorm.DB {
	return ds.db
}

func (ds *DatabaseService) Configure(ctx *context.Context) error {
	ds.driver = strings.ToLower(os.Getenv("DB_DRIVER"))
	if ds.driver == "" {
		ds.driver = DriverPostgres
	}

	switch ds.driver {
	case DriverSqlite:
		ds.database = os.Getenv("DB_DATABASE")
		if ds.database == "" {
			ds.database = "vooky.db"
		}
	case DriverPostgres:
		ds.database = postgresDSN()
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", ds.driver)
	}

	return ds.DefaultService.Configure(ctx)
}

func postgresDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "postgres"),
		envOr("DB_PASSWORD", "postgres"),
		envOr("DB_NAME", "vooky"),
		envOr("DB_PORT", "5432"),
		envOr("DB_SSLMODE", "disable"),
		envOr("DB_TIMEZONE", "UTC"))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (ds *DatabaseService) dialector() gorm.Dialector {
	if ds.driver == DriverSqlite {
		return sqlite.Open(ds.database)
	}
	return postgres.Open(ds.database)
}

// Start connects with exponential backoff and migrates the schema.
func (ds *DatabaseService) Start() (err error) {
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.WithFields(log.Fields{"driver": ds.driver, "attempt": attempt}).Info("Connecting to database")

		ds.db, err = gorm.Open(ds.dialector(), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})
		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				if err = sqlDB.Ping(); err == nil {
					break
				}
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.WithError(err).Errorf("Failed to connect to database after %d attempts", maxRetries)
			return err
		}

		log.WithError(err).Warnf("Database connection failed, retrying in %v", retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	if ds.driver == DriverSqlite {
		// single writer
		if sqlDB, err := ds.db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	if err = ds.Migrate(); err != nil {
		log.WithError(err).Error("Failed to migrate database")
		return err
	}

	ds.initRepositories()
	log.WithField("driver", ds.driver).Info("Database connected and migrated successfully")
	return nil
}

// Migrate creates or updates every table the API uses.
func (ds *DatabaseService) Migrate() error {
	return ds.db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Level{},
		&model.Category{},
		&model.Lesson{},
		&model.Image{},
		&model.LessonUser{},
		&model.Badge{},
		&model.BadgeUser{},
		&model.CourseUser{},
		&model.RateLimit{},
	)
}

func (ds *DatabaseService) initRepositories() {
	ds.content = repositories.NewContentRepository(ds.db)
	ds.progress = repositories.NewProgressRepository(ds.db)
	ds.badges = repositories.NewBadgeRepository(ds.db)
	ds.leaderboard = repositories.NewLeaderboardRepository(ds.db)
	ds.users = repositories.NewUserRepository(ds.db)
	ds.enrollments = repositories.NewEnrollmentRepository(ds.db)
}

// UseDB wires an already open connection, for the seeder and tests.
func (ds *DatabaseService) UseDB(db *gorm.DB, driver string) error {
	ds.db = db
	ds.driver = driver
	if err := ds.Migrate(); err != nil {
		return err
	}
	ds.initRepositories()
	return nil
}

func (ds *DatabaseService) Content() *repositories.ContentRepository {
	return ds.content
}

func (ds *DatabaseService) Progress() *repositories.ProgressRepository {
	return ds.progress
}

func (ds *DatabaseService) Badges() *repositories.BadgeRepository {
	return ds.badges
}

func (ds *DatabaseService) Leaderboard() *repositories.LeaderboardRepository {
	return ds.leaderboard
}

func (ds *DatabaseService) Users() *repositories.UserRepository {
	return ds.users
}

func (ds *DatabaseService) Enrollments() *repositories.EnrollmentRepository {
	return ds.enrollments
}

func (ds *DatabaseService) Shutdown() {
	if ds.db == nil {
		return
	}
	if sqlDB, err := ds.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// HandleError classifies a gorm error, logs it and wraps it with its type.
func (ds *DatabaseService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest
		errorType = "FOREIGN_KEY_VIOLATION"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError
		errorType = "TRANSACTION_ERROR"
	case strings.Contains(err.Error(), "UNIQUE constraint failed"),
		strings.Contains(err.Error(), "duplicate key value"):
		statusCode = http.StatusConflict
		errorType = "UNIQUE_CONSTRAINT"
	default:
		statusCode = http.StatusInternalServerError
		errorType = "INTERNAL_ERROR"
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return fmt.Errorf("%s: %w", errorType, err)
}

// ==================== RATE LIMIT RECORDS ====================

func (ds *DatabaseService) GetRateLimit(identifier, endpointType string) (*model.RateLimit, error) {
	var rateLimit model.RateLimit

	err := ds.db.Where("identifier = ? AND endpoint_type = ?", identifier, endpointType).First(&rateLimit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &rateLimit, nil
}

func (ds *DatabaseService) SaveRateLimit(rateLimit *model.RateLimit) error {
	now := time.Now()
	if rateLimit.CreatedAt.IsZero() {
		rateLimit.CreatedAt = now
	}
	rateLimit.UpdatedAt = now

	return ds.db.Save(rateLimit).Error
}

// CleanupOldRecords removes week-old counters that are not blocking anyone.
func (ds *DatabaseService) CleanupOldRecords() error {
	cutoff := time.Now().Add(-7 * 24 * time.Hour)
	now := time.Now()

	return ds.db.Where("created_at < ? AND (blocked_until IS NULL OR blocked_until < ?)", cutoff, now).
		Delete(&model.RateLimit{}).Error
}
