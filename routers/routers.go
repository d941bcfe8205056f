package routers

import (
	"strings"

	"drivingschool/config"
	"drivingschool/middleware"
	analyticsRoutes "drivingschool/routers/analyticsRoutes"
	authRoutes "drivingschool/routers/authRoutes"
	bookingRoutes "drivingschool/routers/bookingRoutes"
	courseRoutes "drivingschool/routers/courseRoutes"
	instructorRoutes "drivingschool/routers/instructorRoutes"
	notificationRoutes "drivingschool/routers/notificationRoutes"
	paymentRoutes "drivingschool/routers/paymentRoutes"
	userRoutes "drivingschool/routers/userRoutes"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the fiber app with middleware and every /api route mounted
func NewApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "driving-school-api",
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          middleware.ErrorHandler,
		DisableStartupMessage: cfg.IsProduction(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Metrics())

	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(strings.Fields(strings.ReplaceAll(cfg.CorsOrigins, ",", " ")), ","),
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestId} ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	if cfg.RateLimitMax > 0 {
		app.Use(middleware.GlobalRateLimiter(cfg))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/metrics", middleware.MetricsHandler())

	api := app.Group("/api")

	authRoutes.SetupAuthRoutes(api)
	userRoutes.SetupUserRoutes(api)
	courseRoutes.SetupCourseRoutes(api)
	bookingRoutes.SetupBookingRoutes(api)
	paymentRoutes.SetupPaymentRoutes(api)
	analyticsRoutes.SetupAnalyticsRoutes(api)
	instructorRoutes.SetupInstructorRoutes(api)
	notificationRoutes.SetupNotificationRoutes(api)

	app.Use(func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Route not found", nil)
	})

	return app
}
