package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"libraryhub/internal/httpapi/dto"
	"libraryhub/internal/httpapi/models"
	"libraryhub/internal/httpapi/service"
)

// AdminRequestHandler serves the admin adjudication endpoints.
type AdminRequestHandler struct {
	svc service.RequestService
}

func NewAdminRequestHandler(svc service.RequestService) *AdminRequestHandler {
	return &AdminRequestHandler{svc: svc}
}

func (h *AdminRequestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/book-requests", h.List)
	rg.PUT("/book-requests", h.Act)
	rg.DELETE("/book-requests", h.Delete)
}

// List returns all requests plus dashboard stats. Query failures degrade to
// an empty payload with a diagnostic message so the admin page still renders.
func (h *AdminRequestHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	requests, stats, err := h.svc.List(ctx)
	if err != nil {
		c.JSON(http.StatusOK, dto.RequestListResponse{
			Requests: []dto.RequestResponse{},
			Stats:    dto.StatsResponse{},
			Message:  "failed to load requests: " + err.Error(),
		})
		return
	}

	items := make([]dto.RequestResponse, 0, len(requests))
	for _, request := range requests {
		items = append(items, dto.FromRequestModel(request))
	}

	c.JSON(http.StatusOK, dto.RequestListResponse{
		Requests: items,
		Stats: dto.StatsResponse{
			TotalRequests:    stats.Total,
			PendingRequests:  stats.Pending,
			ApprovedRequests: stats.Approved,
			DeclinedRequests: stats.Declined,
		},
	})
}

// Act applies an admin action (approve, decline, collect) to a request
func (h *AdminRequestHandler) Act(c *gin.Context) {
	var body dto.AdminActionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var (
		request *models.BookRequest
		message string
		err     error
	)

	switch body.Action {
	case "approve":
		request, err = h.svc.Approve(ctx, body.RequestID)
		message = "request approved"
	case "decline":
		request, err = h.svc.Decline(ctx, body.RequestID)
		message = "request declined"
	case "collect":
		request, err = h.svc.Collect(ctx, body.RequestID)
		message = "pickup confirmed"
	}

	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"request": dto.FromRequestModel(*request),
	})
}

// Delete removes a request and its dependent rows
func (h *AdminRequestHandler) Delete(c *gin.Context) {
	var body dto.DeleteRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, body.RequestID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "request deleted",
	})
}
