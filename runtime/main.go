package main

import (
	"os"
	"strings"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sirupsen/logrus"
	"github.com/vooky-app/vooky_api/services"
)

// @title Vooky API
// @version 1.0
// @description Listening and matching games for young language learners.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded, using the environment")
	}

	configureLogging(os.Getenv("LOG_LEVEL"))

	ctx, err := context.NewCtx(
		&services.DatabaseService{},
		&services.RedisService{},
		&services.MinIOService{},
		&services.MonitoringService{},

		&services.JWTService{},
		&services.RateLimitService{},
		&services.LessonGameService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure services")
		return
	}

	if err = ctx.Run(); err != nil {
		log.Fatal().Err(err).Msg("Service stopped")
	}
}

func configureLogging(level string) {
	if level == "" {
		level = "info"
	}

	zlevel, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		zlevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(zlevel)

	llevel, err := logrus.ParseLevel(level)
	if err != nil {
		llevel = logrus.InfoLevel
	}
	logrus.SetLevel(llevel)
	logrus.SetFormatter(&logrus.JSONFormatter{})
}
