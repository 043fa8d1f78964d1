package dto

import (
	"time"

	"libraryhub/internal/httpapi/models"
)

type SubmitRequestBody struct {
	BookID        int64  `json:"book_id" binding:"required"`
	BorrowingDays int    `json:"borrowing_days" binding:"required"`
	MemberID      int64  `json:"user_id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
}

type AdminActionBody struct {
	RequestID string `json:"request_id" binding:"required"`
	Action    string `json:"action" binding:"required,oneof=approve decline collect"`
}

type DeleteRequestBody struct {
	RequestID string `json:"request_id" binding:"required"`
}

type RequestResponse struct {
	ID            string     `json:"id"`
	MemberID      int64      `json:"member_id"`
	BookID        int64      `json:"book_id"`
	RequestedDays int        `json:"requested_days"`
	RequestDate   time.Time  `json:"request_date"`
	DueDate       time.Time  `json:"due_date"`
	ProcessedDate *time.Time `json:"processed_date,omitempty"`
	Status        string     `json:"status"`
	BookTitle     string     `json:"book_title"`
	BookAuthor    string     `json:"book_author"`
	BookSubject   string     `json:"book_subject"`
	MemberName    string     `json:"member_name"`
	MemberEmail   string     `json:"member_email"`
}

type StatsResponse struct {
	TotalRequests    int `json:"total_requests"`
	PendingRequests  int `json:"pending_requests"`
	ApprovedRequests int `json:"approved_requests"`
	DeclinedRequests int `json:"declined_requests"`
}

type RequestListResponse struct {
	Requests []RequestResponse `json:"requests"`
	Stats    StatsResponse     `json:"stats"`
	Message  string            `json:"message,omitempty"`
}

func FromRequestModel(request models.BookRequest) RequestResponse {
	return RequestResponse{
		ID:            request.ID,
		MemberID:      request.MemberID,
		BookID:        request.BookID,
		RequestedDays: request.RequestedDays,
		RequestDate:   request.RequestDate,
		DueDate:       request.DueDate,
		ProcessedDate: request.ProcessedDate,
		Status:        request.Status,
		BookTitle:     request.BookTitle,
		BookAuthor:    request.BookAuthor,
		BookSubject:   request.BookSubject,
		MemberName:    request.MemberName,
		MemberEmail:   request.MemberEmail,
	}
}
