// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"ratehub/internal/delivery/http/middleware"
	"ratehub/internal/delivery/http/router/handler"
	"ratehub/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	ProfileHandler *handler.ProfileHandler
	StoreHandler   *handler.StoreHandler
	RatingHandler  *handler.RatingHandler
	OwnerHandler   *handler.OwnerHandler
	AdminHandler   *handler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	storeHandler   *handler.StoreHandler
	ratingHandler  *handler.RatingHandler
	ownerHandler   *handler.OwnerHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		profileHandler: params.ProfileHandler,
		storeHandler:   params.StoreHandler,
		ratingHandler:  params.RatingHandler,
		ownerHandler:   params.OwnerHandler,
		adminHandler:   params.AdminHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Public auth routes. Logout works with or without a valid token.
	api.POST("/signup", r.authHandler.Signup)
	api.POST("/login", r.authHandler.Login)
	api.POST("/logout", r.authHandler.Logout)

	// Current identity, re-checked against the live account. Profile and
	// password are self-service for every role, so no role gate here.
	api.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
	api.PATCH("/me", r.profileHandler.UpdateProfile, r.authMiddleware.Authenticate)
	api.PUT("/me/password", r.profileHandler.ChangePassword, r.authMiddleware.Authenticate)

	// Public store catalog. A valid token enriches results with the
	// caller's own ratings; anonymous requests pass through untouched.
	api.GET("/stores", r.storeHandler.Browse, r.authMiddleware.OptionalAuthenticate)

	// Regular user routes: rating a store and managing own ratings.
	userGroup := api.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	userGroup.Use(r.authMiddleware.RequireRole(entity.RoleUser))
	{
		userGroup.POST("/ratings", r.ratingHandler.Submit)
		userGroup.GET("/ratings", r.ratingHandler.ListOwn)
		userGroup.PATCH("/ratings/:id", r.ratingHandler.Update)
		userGroup.DELETE("/ratings/:id", r.ratingHandler.Delete)
	}

	// Store owner routes, scoped to the caller's own stores.
	ownerGroup := api.Group("/owner")
	ownerGroup.Use(r.authMiddleware.Authenticate)
	ownerGroup.Use(r.authMiddleware.RequireRole(entity.RoleOwner))
	{
		ownerGroup.POST("/stores", r.ownerHandler.CreateStore)
		ownerGroup.GET("/stores", r.ownerHandler.ListStores)
		ownerGroup.PATCH("/stores/:id", r.ownerHandler.UpdateStore)
		ownerGroup.DELETE("/stores/:id", r.ownerHandler.DeleteStore)
		ownerGroup.GET("/stores/:id/dashboard", r.ownerHandler.Dashboard)
		ownerGroup.GET("/stores/:id/ratings", r.ownerHandler.ListStoreRatings)
		ownerGroup.POST("/ratings/:id/reply", r.ownerHandler.Reply)
	}

	// Administrator routes.
	adminGroup := api.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/dashboard", r.adminHandler.Dashboard)

		adminGroup.GET("/users", r.adminHandler.ListAccounts)
		adminGroup.POST("/users", r.adminHandler.CreateAccount)
		adminGroup.GET("/users/:id", r.adminHandler.GetAccount)
		adminGroup.PATCH("/users/:id", r.adminHandler.UpdateAccount)
		adminGroup.DELETE("/users/:id", r.adminHandler.DeleteAccount)

		adminGroup.GET("/stores", r.adminHandler.ListStores)
		adminGroup.POST("/stores", r.adminHandler.CreateStore)
		adminGroup.PATCH("/stores/:id", r.adminHandler.UpdateStore)
		adminGroup.DELETE("/stores/:id", r.adminHandler.DeleteStore)

		adminGroup.GET("/ratings", r.adminHandler.ListRatings)
		adminGroup.DELETE("/ratings/:id", r.adminHandler.DeleteRating)
	}
}
