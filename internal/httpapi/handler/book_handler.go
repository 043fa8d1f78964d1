package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"libraryhub/internal/httpapi/dto"
	"libraryhub/internal/httpapi/models"
	"libraryhub/internal/httpapi/service"
)

type BookHandler struct {
	svc service.BookService
}

func NewBookHandler(svc service.BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

func (h *BookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
}

func (h *BookHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/books", h.Create)
}

// List returns the catalog
func (h *BookHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	books, err := h.svc.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]dto.BookResponse, 0, len(books))
	for _, book := range books {
		items = append(items, dto.FromBookModel(book))
	}

	c.JSON(http.StatusOK, dto.BookListResponse{
		Books: items,
		Total: len(items),
	})
}

// Get returns a single book
func (h *BookHandler) Get(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	book, err := h.svc.GetByID(ctx, bookID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromBookModel(*book))
}

// Create adds a book to the catalog
func (h *BookHandler) Create(c *gin.Context) {
	var body dto.CreateBookBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	book := &models.Book{
		Title:    body.Title,
		Author:   body.Author,
		Subject:  body.Subject,
		Quantity: body.Quantity,
	}
	if err := h.svc.Create(ctx, book); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.FromBookModel(*book))
}
