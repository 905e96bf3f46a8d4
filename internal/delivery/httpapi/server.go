package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yourusername/groupbuy-backend/internal/usecase"
)

// Server wires the storefront and leader endpoints onto a gin router.
type Server struct {
	catalog *usecase.CatalogUseCase
	orders  *usecase.OrderUseCase
	leader  *usecase.LeaderUseCase
	ai      *usecase.AIUseCase
	sync    *usecase.SyncUseCase

	adminToken string
}

func NewServer(catalog *usecase.CatalogUseCase, orders *usecase.OrderUseCase, leader *usecase.LeaderUseCase, ai *usecase.AIUseCase, sync *usecase.SyncUseCase, adminToken string) *Server {
	return &Server{
		catalog:    catalog,
		orders:     orders,
		leader:     leader,
		ai:         ai,
		sync:       sync,
		adminToken: adminToken,
	}
}

// Router builds the full route table. allowedOrigins empty means any origin,
// which suits a storefront that is public anyway.
func (s *Server) Router(allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Admin-Token"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		corsCfg.AllowOrigins = allowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/groups", s.handleGroups)
		api.GET("/products", s.handleProducts)
		api.GET("/orders", s.handleTicker)
		api.GET("/trends", s.handleTrends)
		api.POST("/orders", s.handleSubmitOrder)
		api.POST("/sync", s.handleResync)
		api.POST("/ai/recommendations", s.handleRecommendations)

		admin := api.Group("/admin")
		admin.Use(s.adminAuth())
		{
			admin.GET("/orders", s.handleAdminOrders)
			admin.GET("/summary", s.handleAdminSummary)
			admin.GET("/export", s.handleAdminExport)
			admin.POST("/groups", s.handleSaveGroup)
			admin.POST("/products", s.handleSaveProducts)
			admin.POST("/ai/description", s.handleDescription)
		}
	}

	return r
}
