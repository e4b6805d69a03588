package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vooky-app/vooky_api/docs"
	"github.com/vooky-app/vooky_api/middleware"
	"github.com/vooky-app/vooky_api/services/handlers"
	"github.com/vooky-app/vooky_api/shared"
)

type HttpService struct {
	context.DefaultService

	jwtSvc        *JWTService
	rateLimitSvc  *RateLimitService
	gameSvc       *LessonGameService
	monitoringSvc *MonitoringService

	port           int
	corsOrigins    string
	trustedProxies []string
	app            *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	svc.corsOrigins = envOr("CORS_ALLOW_ORIGINS", "*")
	svc.trustedProxies = splitList(os.Getenv("TRUSTED_PROXIES"))

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.gameSvc = svc.Service(LESSON_GAME_SVC).(*LessonGameService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	svc.app = NewRouter(svc.jwtSvc, svc.rateLimitSvc, svc.gameSvc, svc.monitoringSvc, svc.corsOrigins, svc.trustedProxies)

	log.Info().Int("port", svc.port).Msg("HTTP server starting")
	return svc.app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// NewRouter assembles the API; monitoring may be nil. X-Forwarded-For is only
// honoured for requests coming from trustedProxies.
func NewRouter(verifier middleware.TokenVerifier, limiter middleware.Limiter, gameSvc *LessonGameService, monitoringSvc *MonitoringService, corsOrigins string, trustedProxies []string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:                 SERVICE_NAME,
		JSONEncoder:             shared.JSONAPI.Marshal,
		JSONDecoder:             shared.JSONAPI.Unmarshal,
		ErrorHandler:            handlers.ErrorHandler,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          trustedProxies,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableIPValidation:      true,
	})

	docs.SwaggerInfo.BasePath = "/"

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: shared.RequestID,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,OPTIONS",
	}))
	if monitoringSvc != nil {
		app.Use(MonitoringMiddleware(monitoringSvc))
	}
	if os.Getenv("LOG_LEVEL") == "TRACE" {
		app.Use(logger.New())
	}

	app.Get("/ping", ping)
	app.Get("/swagger/*", swagger.HandlerDefault)

	lessonHandler := handlers.NewLessonGameHandler(gameSvc)
	courseHandler := handlers.NewCourseHandler(gameSvc)

	v1 := app.Group("/api/v1", middleware.IPRateLimit(limiter), middleware.RequiredAuth(verifier))
	v1.Get("/ping", ping)

	lessons := v1.Group("/lessons/:lessonId")
	lessons.Get("/questions", lessonHandler.GetQuestions)
	lessons.Post("/result", middleware.UserRateLimit(limiter, shared.EndpointLessonResult), lessonHandler.SubmitResult)
	lessons.Get("/progress", lessonHandler.GetProgress)
	lessons.Get("/question-pool", lessonHandler.GetQuestionPool)

	courses := v1.Group("/courses/:courseId")
	courses.Get("/progress", courseHandler.GetCourseProgress)
	courses.Get("/badges", courseHandler.GetCourseBadges)
	courses.Get("/leaderboard", courseHandler.GetLeaderboard)
	courses.Post("/enroll", courseHandler.Enroll)
	courses.Post("/unenroll", courseHandler.Unenroll)

	v1.Get("/profile/badges", courseHandler.GetUserBadges)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})

	return app
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func ping(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "max-age=10")
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}
