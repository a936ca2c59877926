package handler

import (
	"context"
	"net/http"
	"time"

	"watchlog/internal/http-api/dto"
	"watchlog/internal/http-api/models"
	"watchlog/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// LookupHandler exposes the reference tables (statuses, media types,
// rating tiers) as read-mostly list endpoints with create routes for
// seeding.
type LookupHandler struct {
	svc service.LookupService
}

func NewLookupHandler(svc service.LookupService) *LookupHandler {
	return &LookupHandler{svc: svc}
}

func (h *LookupHandler) RegisterStatusRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.ListStatuses)
	rg.POST("/", h.CreateStatus)
}

func (h *LookupHandler) RegisterTypeRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.ListTypes)
	rg.POST("/", h.CreateType)
}

func (h *LookupHandler) RegisterRatingRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.ListRatings)
	rg.POST("/", h.CreateRating)
}

func (h *LookupHandler) ListStatuses(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.GetStatuses(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	resp := make([]dto.LookupResponse, 0, len(list))
	for _, s := range list {
		resp = append(resp, dto.LookupResponse{ID: s.ID, Name: s.Name})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LookupHandler) CreateStatus(c *gin.Context) {
	var in dto.CreateLookupDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	model := models.Status{Name: in.Name}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.CreateStatus(ctx, &model); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.LookupResponse{ID: model.ID, Name: model.Name})
}

func (h *LookupHandler) ListTypes(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.GetTypes(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	resp := make([]dto.LookupResponse, 0, len(list))
	for _, t := range list {
		resp = append(resp, dto.LookupResponse{ID: t.ID, Name: t.Name})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LookupHandler) CreateType(c *gin.Context) {
	var in dto.CreateLookupDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	model := models.MediaType{Name: in.Name}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.CreateType(ctx, &model); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.LookupResponse{ID: model.ID, Name: model.Name})
}

func (h *LookupHandler) ListRatings(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.GetRatings(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	resp := make([]dto.LookupResponse, 0, len(list))
	for _, r := range list {
		resp = append(resp, dto.LookupResponse{ID: r.ID, Name: r.Name})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LookupHandler) CreateRating(c *gin.Context) {
	var in dto.CreateLookupDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	model := models.Rating{Name: in.Name}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.CreateRating(ctx, &model); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.LookupResponse{ID: model.ID, Name: model.Name})
}
