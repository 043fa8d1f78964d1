package dto

import "libraryhub/internal/httpapi/models"

type CreateBookBody struct {
	Title    string `json:"title" binding:"required"`
	Author   string `json:"author" binding:"required"`
	Subject  string `json:"subject"`
	Quantity int    `json:"quantity" binding:"min=0"`
}

type BookResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Subject   string `json:"subject"`
	Quantity  int    `json:"quantity"`
	Available bool   `json:"available"`
}

type BookListResponse struct {
	Books []BookResponse `json:"books"`
	Total int            `json:"total"`
}

func FromBookModel(book models.Book) BookResponse {
	return BookResponse{
		ID:        book.ID,
		Title:     book.Title,
		Author:    book.Author,
		Subject:   book.Subject,
		Quantity:  book.Quantity,
		Available: book.Available,
	}
}
