// Package server exposes the ledger's command/query surface over HTTP.
package server

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/poyulin/tally/internal/models"
	"github.com/poyulin/tally/internal/service"
)

// New builds the HTTP router for the given service.
func New(svc *service.ProjectService, corsOrigins []string) *gin.Engine {
	registerValidations()

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.Use(cors.New(corsConfig(corsOrigins)))

	h := &handlers{svc: svc}

	r.GET("/healthz", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/projects", h.createProject)
		api.GET("/projects", h.listProjects)
		api.GET("/projects/:projectID", h.getProject)
		api.PATCH("/projects/:projectID", h.updateProject)
		api.PATCH("/projects/:projectID/status", h.setProjectStatus)
		api.DELETE("/projects/:projectID", h.deleteProject)

		api.POST("/projects/:projectID/categories", h.addCategory)
		api.GET("/projects/:projectID/categories/totals", h.categoryTotals)

		api.POST("/projects/:projectID/members", h.createMember)
		api.PATCH("/projects/:projectID/members/:memberID", h.updateMember)
		api.DELETE("/projects/:projectID/members/:memberID", h.removeMember)

		api.POST("/projects/:projectID/transactions", h.addTransaction)
		api.PATCH("/projects/:projectID/transactions/:transactionID", h.updateTransaction)
		api.DELETE("/projects/:projectID/transactions/:transactionID", h.removeTransaction)
		api.POST("/projects/:projectID/transactions/:transactionID/confirmations/:memberID", h.toggleConfirmation)

		api.GET("/projects/:projectID/stats", h.allMemberStats)
		api.GET("/projects/:projectID/stats/:memberID", h.memberStats)
		api.GET("/projects/:projectID/settlements", h.settlementPlan)
		api.GET("/projects/:projectID/obligations", h.obligations)
	}

	return r
}

// registerValidations wires custom binding validations into gin's
// validator engine.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("projectstatus", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == models.StatusActive || s == models.StatusClosed
		})
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type"}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

// requestLogger logs every request with its duration.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
