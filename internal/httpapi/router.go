// Package httpapi exposes the company repository over HTTP with gin.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-company-repository/internal/logger"
	"github.com/goliatone/go-company-repository/internal/metrics"
)

const basePath = "/api/company"

type RouterConfig struct {
	CompanyHandler *CompanyHandler
	Logger         *logger.Logger
	// Metrics is optional. When set, requests are instrumented and
	// /metrics is served.
	Metrics *metrics.Metrics
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(log))
	if cfg.Metrics != nil {
		router.Use(Instrument(cfg.Metrics))
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := cfg.CompanyHandler
	api := router.Group(basePath)
	{
		api.GET("", h.GetCompanies)
		api.POST("", h.CreateCompany)
		api.GET("/MultipleMapping", h.MultipleMapping)
		api.POST("/Multiple", h.CreateMultipleCompanies)
		api.GET("/ByEmployeeId/:id", h.GetCompanyByEmployeeID)
		api.GET("/:id", h.GetCompany)
		api.PUT("/:id", h.UpdateCompany)
		api.DELETE("/:id", h.DeleteCompany)
		api.GET("/:id/MultipleResult", h.GetMultipleResults)
	}

	return router
}
