package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/groupbuy-backend/internal/domain/entity"
	"github.com/yourusername/groupbuy-backend/internal/domain/repository"
	"github.com/yourusername/groupbuy-backend/internal/usecase"
	"github.com/yourusername/groupbuy-backend/pkg/logger"
)

func (s *Server) handleGroups(c *gin.Context) {
	listing, err := s.catalog.GroupList(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (s *Server) handleProducts(c *gin.Context) {
	products, err := s.catalog.ProductsForGroup(c.Request.Context(), c.Query("groupId"))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (s *Server) handleTicker(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	orders, err := s.catalog.Ticker(c.Request.Context(), limit)
	if err != nil {
		internalError(c, err)
		return
	}
	// A rotation offset lets the frontend page through the ticker
	// window without re-slicing on its side.
	if raw, ok := c.GetQuery("offset"); ok {
		offset, _ := strconv.Atoi(raw)
		orders = usecase.TickerWindow(orders, offset)
	}
	// The public ticker never leaks contact details.
	for i := range orders {
		orders[i].RealName = ""
		orders[i].Email = ""
		orders[i].Address = ""
		orders[i].Notes = ""
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (s *Server) handleTrends(c *gin.Context) {
	trends, err := s.catalog.Trends(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trends": trends})
}

type submitOrderRequest struct {
	Name    string            `json:"name"`
	Email   string            `json:"email"`
	Address string            `json:"address"`
	Notes   string            `json:"notes"`
	Items   []entity.CartItem `json:"items"`
}

func (s *Server) handleSubmitOrder(c *gin.Context) {
	var req submitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無法解析訂單內容"})
		return
	}

	draft := entity.OrderDraft{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Notes:   req.Notes,
	}
	cart := usecase.CartFromItems(req.Items)

	result, err := s.orders.Submit(c.Request.Context(), draft, cart)
	if err != nil {
		var vErr *usecase.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
			return
		}
		var backendErr *repository.BackendError
		if errors.As(err, &backendErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": backendErr.Message})
			return
		}
		logger.ErrorLogger.Printf("Order submission error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "提交失敗，請檢查網路連線。"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": result.Order, "tip": result.Tip})
}

func (s *Server) handleResync(c *gin.Context) {
	s.sync.RequestResync()
	c.JSON(http.StatusAccepted, gin.H{"status": "sync requested"})
}

type recommendationRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleRecommendations(c *gin.Context) {
	var req recommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無法解析搜尋內容"})
		return
	}

	suggestions, err := s.ai.Recommend(c.Request.Context(), req.Query)
	if err != nil {
		var vErr *usecase.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions, "enabled": s.ai.Enabled()})
}

func internalError(c *gin.Context, err error) {
	logger.ErrorLogger.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "伺服器發生錯誤，請稍後再試"})
}
