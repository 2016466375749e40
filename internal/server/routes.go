package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"mindful/internal/sessions"
	"mindful/internal/users"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := gin.New()

	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware(s.logger))
	r.Use(gin.Recovery())
	if s.metrics != nil {
		r.Use(s.metrics.Middleware())
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:  s.cfg.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:  []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
	}))

	r.GET("/health", s.healthHandler)
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	api := r.Group("/api")
	users.NewHandler(s.users, s.sessions).RegisterRoutes(api)
	sessions.NewHandler(s.sessions).RegisterRoutes(api)

	return r
}

func (s *Server) healthHandler(c *gin.Context) {
	database := s.db.Health(c.Request.Context())

	status := http.StatusOK
	if database["status"] != "up" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{"database": database})
}
