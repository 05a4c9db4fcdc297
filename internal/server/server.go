// Package server contains the HTTP handlers and routing for the blog API.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"inkwell/internal/apperr"
	"inkwell/internal/auth"
	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// adminKey is the Locals key the bearer middleware stores the resolved admin under.
const adminKey = "admin"

// Server holds all dependencies and provides handlers
type Server struct {
	config      *config.Config
	db          *gorm.DB
	redis       *redis.Client
	adminRepo   repository.AdminRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	strategies  *auth.Strategies
}

// New wires a server from an already-open database and Redis client. Tests
// use it to run against in-memory stores.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	adminRepo := repository.NewAdminRepository(db)

	return &Server{
		config:      cfg,
		db:          db,
		redis:       redisClient,
		adminRepo:   adminRepo,
		postRepo:    repository.NewPostRepository(db),
		commentRepo: repository.NewCommentRepository(db),
		strategies:  auth.NewStrategies(adminRepo, cfg.TokenSecret),
	}
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return New(cfg, db, cache.GetClient()), nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Request ID for tracing
	app.Use(requestid.New())

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware
	app.Use(middleware.StructuredLogger())

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"errors": "Too many requests, please try again later.",
			})
		},
	}))

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       86400, // 24 hours
	}))

	// Resolve bearer credentials for every request; protected handlers
	// reject when no admin was resolved.
	app.Use(s.ResolveBearer())
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health check
	app.Get("/", s.HealthCheck)

	// Metrics page
	app.Get("/metrics", monitor.New(monitor.Config{
		Title: "Inkwell Backend Metrics",
	}))

	// Admin routes
	admins := app.Group("/admins")
	admins.Post("/signup", middleware.RateLimit(s.redis, s.config.Env, 3, 10*time.Minute, "signup"), s.Signup)
	admins.Post("/login", middleware.RateLimit(s.redis, s.config.Env, 10, 5*time.Minute, "login"), s.Login)
	admins.Get("/me", s.Me)

	// Post routes; specific /:postId/:resource routes are registered before
	// the generic /:postId routes.
	posts := app.Group("/posts")
	posts.Get("/", s.ListPosts)
	posts.Post("/", s.CreatePost)
	posts.Get("/:postId/likes", s.GetPostLikes)
	posts.Put("/:postId/likes", s.UpdatePostLikes)
	posts.Get("/:postId/comments/:commentId/likes", s.GetCommentLikes)
	posts.Put("/:postId/comments/:commentId/likes", s.UpdateCommentLikes)
	posts.Get("/:postId/comments/:commentId", s.GetComment)
	posts.Delete("/:postId/comments/:commentId", s.DeleteComment)
	posts.Get("/:postId/comments", s.ListComments)
	posts.Post("/:postId/comments", s.CreateComment)
	posts.Get("/:postId", s.GetPost)
	posts.Put("/:postId", s.UpdatePost)
	posts.Delete("/:postId", s.DeletePost)
}

// HealthCheck handles health check requests
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "Inkwell API",
		"version": "1.0.0",
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// ResolveBearer attempts to resolve the Authorization header to an admin
// record. Resolution failure is not a hard stop; the request proceeds
// unauthenticated and protected handlers reject it themselves.
func (s *Server) ResolveBearer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := auth.ExtractToken(c.Get("Authorization"))
		if !ok {
			return c.Next()
		}

		admin, ok := s.strategies.Bearer.Authenticate(c.Context(), tokenString)
		if !ok {
			return c.Next()
		}

		c.Locals(adminKey, admin)
		c.Locals("adminID", admin.ID)
		return c.Next()
	}
}

// currentAdmin returns the admin resolved by the bearer middleware, or nil.
func (s *Server) currentAdmin(c *fiber.Ctx) *models.Admin {
	if admin, ok := c.Locals(adminKey).(*models.Admin); ok {
		return admin
	}
	return nil
}

// requireAdmin rejects with Unauthorized when no admin was resolved.
func (s *Server) requireAdmin(c *fiber.Ctx) (*models.Admin, error) {
	admin := s.currentAdmin(c)
	if admin == nil {
		return nil, apperr.Unauthorized("Authorization required")
	}
	return admin, nil
}

// NewApp builds the Fiber app with middleware and routes configured.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Inkwell API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return apperr.Respond(c, err)
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Shutdown gracefully releases server resources
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
