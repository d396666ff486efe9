package api

import (
	"piscopy/internal/api/handlers"
	"piscopy/pkg/auth"
	"piscopy/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	photoHandler *handlers.PhotoHandler,
	docHandler *handlers.DocumentHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 32 * 1024 * 1024, // photos travel inline as data URLs
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	// Photo routes. Pending routes must be registered before /:id so the
	// literal segment wins.
	photos := protected.Group("/photos")
	photos.Post("/upload", photoHandler.Upload)
	photos.Get("/pending", photoHandler.ListPending)
	photos.Patch("/pending/:id/note", photoHandler.UpdatePendingNote)
	photos.Delete("/pending/:id", photoHandler.DiscardPending)
	photos.Post("/pending/:id/commit", photoHandler.CommitPending)
	photos.Get("", photoHandler.ListPhotos)
	photos.Get("/:id", photoHandler.GetPhoto)
	photos.Put("/:id/note", photoHandler.SaveNote)
	photos.Delete("/:id", photoHandler.DeletePhoto)
	photos.Get("/:id/download", photoHandler.Download)

	// Document routes
	documents := protected.Group("/documents")
	documents.Post("", docHandler.Create)
	documents.Get("", docHandler.List)
	documents.Get("/:id", docHandler.Get)
	documents.Patch("/:id/fields", docHandler.UpdateFields)
	documents.Post("/:id/items", docHandler.AddItem)
	documents.Patch("/:id/items/:index", docHandler.EditItem)
	documents.Delete("/:id/items/:index", docHandler.RemoveItem)
	documents.Post("/:id/save", docHandler.Save)
	documents.Post("/:id/complete", docHandler.Complete)
	documents.Delete("/:id", docHandler.Discard)
	documents.Get("/:id/print", docHandler.Print)

	return app
}
