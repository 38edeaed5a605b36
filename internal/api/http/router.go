package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/donation-service/internal/api/http/handlers"
	"github.com/spec-kit/donation-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Donor    *handlers.DonorHandler
	Receiver *handlers.ReceiverHandler
	Gate     *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Root, health, login and registration
// stay public; everything else sits behind the gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/login", cfg.Auth.Login)
	app.Post("/cadastrate", cfg.Auth.Register)

	donor := app.Group("/donator", cfg.Gate.Handle, auth.RequireRole())
	donor.Post("/list_receivers", cfg.Donor.ListReceivers)
	donor.Post("/favorite/:causeID", cfg.Donor.Favorite)
	donor.Delete("/favorite/:causeID", cfg.Donor.Unfavorite)
	donor.Get("/favorites", cfg.Donor.ListFavorites)
	donor.Get("/causes/:causeID/products", cfg.Donor.ListCauseProducts)
	donor.Post("/deactivate", cfg.Donor.Deactivate)

	receiver := app.Group("/receiver", cfg.Gate.Handle, auth.RequireRole())
	receiver.Post("/pix_keys", cfg.Receiver.AddPixKey)
	receiver.Delete("/pix_keys", cfg.Receiver.DeletePixKey)
	receiver.Get("/pix_keys", cfg.Receiver.ListPixKeys)
	receiver.Post("/products", cfg.Receiver.CreateProduct)
	receiver.Put("/products/:productID", cfg.Receiver.UpdateProduct)
	receiver.Delete("/products/:productID", cfg.Receiver.DeleteProduct)
	receiver.Post("/deactivate", cfg.Receiver.Deactivate)
}
