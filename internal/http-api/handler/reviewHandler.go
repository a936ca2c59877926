package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"watchlog/internal/http-api/dto"
	"watchlog/internal/http-api/middleware"
	"watchlog/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.List)
	rg.GET("/:review_id", h.Get)
	rg.POST("/", h.Create)
	rg.PUT("/:review_id", h.Update)
	rg.PATCH("/:review_id", h.Update)
	rg.DELETE("/:review_id", h.Delete)

	rg.POST("/:review_id/genres/:genre_id", h.LinkGenre)
	rg.DELETE("/:review_id/genres/:genre_id", h.UnlinkGenre)
}

// List returns every review, sorted by title ascending. No pagination,
// no filtering, not scoped to the caller.
func (h *ReviewHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	resp := make([]dto.ReviewResponse, 0, len(list))
	for _, r := range list {
		resp = append(resp, dto.FromModelToResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one review. A miss answers 200 with an in-body error
// payload, not a 404; that asymmetry with the other routes is part of
// the API contract.
func (h *ReviewHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rev, err := h.svc.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusOK, gin.H{"error": fmt.Sprintf("Review %d does not exist", id)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToResponse(*rev))
}

func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var in dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rev, err := h.svc.Create(ctx, userID, in)
	if err != nil {
		if errors.Is(err, dto.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToResponse(*rev))
}

func (h *ReviewHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var in dto.UpdateReviewDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rev, err := h.svc.Update(ctx, id, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"Error": fmt.Sprintf("Review %d not found", id)})
		case errors.Is(err, dto.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToResponse(*rev))
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rev, err := h.svc.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"Error": fmt.Sprintf("Review %d not found", id)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"Message": fmt.Sprintf("Review %s was deleted", rev.Title)})
}

// LinkGenre appends a genre to the review's genre set. The 404 body
// names the genre even though it is the review that was not found;
// kept for compatibility with existing clients. A genre id that does
// not resolve is a data error, not a no-op.
func (h *ReviewHandler) LinkGenre(c *gin.Context) {
	reviewID, genreID, ok := parseLinkIDs(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rev, err := h.svc.LinkGenre(ctx, reviewID, genreID)
	if err != nil {
		respondLinkError(c, err, reviewID, genreID)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToResponse(*rev))
}

// UnlinkGenre removes one genre link. Unlinking a genre that is not
// attached fails with a data error; removal is not idempotent.
func (h *ReviewHandler) UnlinkGenre(c *gin.Context) {
	reviewID, genreID, ok := parseLinkIDs(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rev, err := h.svc.UnlinkGenre(ctx, reviewID, genreID)
	if err != nil {
		respondLinkError(c, err, reviewID, genreID)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToResponse(*rev))
}

func parseLinkIDs(c *gin.Context) (reviewID, genreID int64, ok bool) {
	reviewID, err := strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return 0, 0, false
	}
	genreID, err = strconv.ParseInt(c.Param("genre_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid genre id"})
		return 0, 0, false
	}
	return reviewID, genreID, true
}

func respondLinkError(c *gin.Context, err error, reviewID, genreID int64) {
	if errors.Is(err, service.ErrReviewNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"Error": fmt.Sprintf("Genre %d could not connect to %d", genreID, reviewID)})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
