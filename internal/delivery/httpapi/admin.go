package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/groupbuy-backend/internal/domain/entity"
	"github.com/yourusername/groupbuy-backend/internal/domain/repository"
	"github.com/yourusername/groupbuy-backend/internal/usecase"
)

func (s *Server) handleAdminOrders(c *gin.Context) {
	groupID := c.Query("groupId")
	if groupID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 groupId 參數"})
		return
	}
	orders, err := s.leader.OrdersForGroup(c.Request.Context(), groupID)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (s *Server) handleAdminSummary(c *gin.Context) {
	groupID := c.Query("groupId")
	if groupID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 groupId 參數"})
		return
	}
	summary, err := s.leader.PurchasingSummary(c.Request.Context(), groupID)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func (s *Server) handleAdminExport(c *gin.Context) {
	groupID := c.Query("groupId")
	if groupID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 groupId 參數"})
		return
	}
	view := c.DefaultQuery("view", usecase.ExportViewOrders)
	format := c.DefaultQuery("format", usecase.ExportFormatCSV)

	filename, data, err := s.leader.Export(c.Request.Context(), groupID, view, format)
	if err != nil {
		var vErr *usecase.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
			return
		}
		internalError(c, err)
		return
	}

	contentType := "text/csv; charset=utf-8"
	if format == usecase.ExportFormatXLSX {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
	c.Data(http.StatusOK, contentType, data)
}

func (s *Server) handleSaveGroup(c *gin.Context) {
	var group entity.GroupSession
	if err := c.ShouldBindJSON(&group); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無法解析團購內容"})
		return
	}
	if err := s.leader.SaveGroup(c.Request.Context(), group); err != nil {
		s.writeSaveError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

type saveProductsRequest struct {
	GroupID  string           `json:"groupId"`
	Products []entity.Product `json:"products"`
}

func (s *Server) handleSaveProducts(c *gin.Context) {
	var req saveProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無法解析商品內容"})
		return
	}
	if err := s.leader.SaveGroupProducts(c.Request.Context(), req.GroupID, req.Products); err != nil {
		s.writeSaveError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

type descriptionRequest struct {
	Name          string `json:"name"`
	PriceEstimate string `json:"priceEstimate"`
}

func (s *Server) handleDescription(c *gin.Context) {
	var req descriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無法解析商品內容"})
		return
	}
	description, err := s.ai.DescribeProduct(c.Request.Context(), req.Name, req.PriceEstimate)
	if err != nil {
		var vErr *usecase.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"description": description, "enabled": s.ai.Enabled()})
}

func (s *Server) writeSaveError(c *gin.Context, err error) {
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
	internalError(c, err)
}
