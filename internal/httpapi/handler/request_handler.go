package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"libraryhub/internal/httpapi/dto"
	"libraryhub/internal/httpapi/service"
)

// RequestHandler serves the member-facing submission endpoint.
type RequestHandler struct {
	svc service.RequestService
}

func NewRequestHandler(svc service.RequestService) *RequestHandler {
	return &RequestHandler{svc: svc}
}

func (h *RequestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/request-book", h.Submit)
}

// Submit creates a pending borrow request for a member
func (h *RequestHandler) Submit(c *gin.Context) {
	var body dto.SubmitRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	request, err := h.svc.Submit(ctx, service.SubmitInput{
		BookID:        body.BookID,
		BorrowingDays: body.BorrowingDays,
		MemberID:      body.MemberID,
		Email:         body.Email,
		Name:          body.Name,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"request": dto.FromRequestModel(*request),
	})
}
