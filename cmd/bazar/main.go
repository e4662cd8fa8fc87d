package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"bazar/internal/config"
	"bazar/internal/http/handlers"
	"bazar/internal/imgbb"
	applog "bazar/internal/log"
	"bazar/internal/repos"
	"bazar/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repos.NewUserRepo(db)
	authSvc := services.NewAuthService(userRepo)
	imageHost := imgbb.New(cfg.ImgbbEndpoint, cfg.ImgbbKey, nil)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Something went wrong. Please try again.",
			})
		},
	})
	// Uploaded images dominate request size; cap well above the compressed target.
	app.Server().MaxRequestBodySize = 8 << 20

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	deps := handlers.NewDeps(db, authSvc, imageHost)
	requireUser := handlers.RequireUser(authSvc)
	requireSeller := handlers.RequireSeller(authSvc)

	api := app.Group("/api/v1")

	// Auth (sign-in throttled)
	auth := api.Group("/auth")
	auth.Post("/signup", deps.AuthHandler.SignUp)
	auth.Post("/signin", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.signin.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many attempts, please try again later",
			})
		},
	}), deps.AuthHandler.SignIn)
	auth.Post("/signout", deps.AuthHandler.SignOut)
	auth.Get("/me", requireUser, deps.AuthHandler.Me)
	auth.Post("/reset", deps.AuthHandler.SendPasswordReset)

	// Catalog
	api.Get("/products/recommended", deps.ProductHandler.Recommended)
	api.Get("/products/search", limiter.New(limiter.Config{Max: 30, Expiration: time.Minute}), deps.ProductHandler.Search)
	api.Get("/products/:id", deps.ProductHandler.Detail)
	api.Post("/products", requireSeller, deps.ProductHandler.Add)
	api.Put("/products/:id", requireSeller, deps.ProductHandler.Update)
	api.Delete("/products/:id", requireSeller, deps.ProductHandler.Delete)

	// Stores
	api.Get("/stores", deps.StoreHandler.List)
	api.Get("/stores/search", deps.StoreHandler.Search)
	api.Get("/stores/:id", deps.StoreHandler.Detail)
	api.Get("/stores/:id/products", deps.ProductHandler.ByStore)
	api.Post("/stores", requireSeller, deps.StoreHandler.Create)
	api.Put("/stores/:id", requireSeller, deps.StoreHandler.Update)
	api.Get("/seller/store", requireSeller, deps.StoreHandler.Mine)
	api.Get("/seller/orders", requireSeller, deps.OrderHandler.StoreOrders)

	// Cart
	api.Get("/cart", deps.CartHandler.View)
	api.Get("/cart/count", deps.CartHandler.Count)
	api.Post("/cart", deps.CartHandler.Add)
	api.Post("/cart/increment", deps.CartHandler.Increment)
	api.Post("/cart/decrement", deps.CartHandler.Decrement)
	api.Post("/cart/remove", deps.CartHandler.Remove)
	api.Post("/cart/clear", deps.CartHandler.Clear)

	// Checkout & orders
	api.Post("/checkout", requireUser, deps.OrderHandler.Place)
	api.Get("/orders", requireUser, deps.OrderHandler.History)
	api.Get("/orders/:id", requireUser, deps.OrderHandler.View)
	api.Post("/orders/:id/status", requireSeller, deps.OrderHandler.UpdateStatus)

	// Uploads
	api.Post("/uploads/image", requireUser, deps.UploadHandler.Image)
	api.Post("/uploads/profile-image", requireUser, deps.UploadHandler.ProfileImage)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
