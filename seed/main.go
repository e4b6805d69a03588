package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/vooky-app/vooky_api/model"
	"github.com/vooky-app/vooky_api/seed/seeders"
	"github.com/vooky-app/vooky_api/services"
	"github.com/vooky-app/vooky_api/services/repositories"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, content, learner")
		driver   = flag.String("driver", envOr("DB_DRIVER", services.DriverSqlite), "Database driver: sqlite or postgres")
		dsn      = flag.String("db", "", "sqlite path or postgres DSN (defaults to DB_DATABASE / DATABASE_URL)")
		name     = flag.String("name", "Demo Learner", "Name of the demo learner")
		email    = flag.String("email", "", "Email of the demo learner (random when empty)")
		password = flag.String("password", "vooky-demo", "Password of the demo learner")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	db, err := openDatabase(*driver, *dsn)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	dbSvc := &services.DatabaseService{}
	if err := dbSvc.UseDB(db, *driver); err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}
	defer dbSvc.Shutdown()

	ctx := context.Background()
	mainSeeder := seeders.NewMainSeeder(dbSvc)
	opts := seeders.LearnerOptions{Name: *name, Email: *email, Password: *password}

	switch *seedType {
	case "all":
		user, err := mainSeeder.SeedAll(ctx, opts)
		if err != nil {
			log.WithError(err).Fatal("Failed to seed database")
		}
		printToken(user.ID)
		warnOnStalePassword(user, *password)
	case "content":
		if err := mainSeeder.SeedContentOnly(); err != nil {
			log.WithError(err).Fatal("Failed to seed content")
		}
	case "learner":
		user, err := mainSeeder.SeedLearnerOnly(ctx, opts)
		if err != nil {
			log.WithError(err).Fatal("Failed to seed learner")
		}
		printToken(user.ID)
		warnOnStalePassword(user, *password)
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'content' or 'learner'", *seedType)
	}
}

func openDatabase(driver, dsn string) (*gorm.DB, error) {
	config := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	switch driver {
	case services.DriverSqlite:
		if dsn == "" {
			dsn = envOr("DB_DATABASE", "vooky.db")
		}
		return gorm.Open(sqlite.Open(dsn), config)
	case services.DriverPostgres:
		if dsn == "" {
			dsn = os.Getenv("DATABASE_URL")
		}
		return gorm.Open(postgres.Open(dsn), config)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}

// printToken prints a bearer token for the learner when JWT_SECRET is set.
func printToken(userID uint) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Warn("JWT_SECRET not set, no token issued")
		return
	}

	pair, err := services.NewJWTService(secret, 24*time.Hour).GenerateToken(userID)
	if err != nil {
		log.WithError(err).Error("Failed to issue token")
		return
	}
	fmt.Printf("Bearer %s\n", pair.AccessToken)
}

func warnOnStalePassword(user *model.User, password string) {
	if !repositories.CheckPassword(user, password) {
		log.WithField("email", user.Email).Warn("Learner already existed and keeps its previous password")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
