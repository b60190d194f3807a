package dto

import "time"

// APIResponse is the standard success envelope returned by every handler.
type APIResponse struct {
	Success   bool        `json:"success" example:"true"`
	Message   string      `json:"message,omitempty" example:"Operation completed successfully"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewSuccessResponse wraps data in the standard success envelope.
func NewSuccessResponse(data interface{}, message string) *APIResponse {
	return &APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// PaginationInfo describes one page of a paginated listing.
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"5"`
	PageSize    int   `json:"pageSize" example:"10"`
	TotalItems  int64 `json:"totalItems" example:"42"`
}

// PaginatedResponse is the envelope for page-based listings. The flat counters mirror the
// pagination block for clients that read them directly.
type PaginatedResponse struct {
	Success      bool           `json:"success" example:"true"`
	Data         interface{}    `json:"data"`
	TotalCount   int64          `json:"totalCount" example:"42"`
	CurrentPage  int            `json:"currentPage" example:"1"`
	ItemsPerPage int            `json:"itemsPerPage" example:"10"`
	Pagination   PaginationInfo `json:"pagination"`
	Timestamp    time.Time      `json:"timestamp"`
}

// NewPaginatedResponse builds a PaginatedResponse from a page of data.
func NewPaginatedResponse(data interface{}, info PaginationInfo) *PaginatedResponse {
	return &PaginatedResponse{
		Success:      true,
		Data:         data,
		TotalCount:   info.TotalItems,
		CurrentPage:  info.CurrentPage,
		ItemsPerPage: info.PageSize,
		Pagination:   info,
		Timestamp:    time.Now(),
	}
}

// MessageResponse is a bare message payload, used by the root endpoint.
type MessageResponse struct {
	Message string `json:"message" example:"Mentorium Server is Cooking!"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"up"`
}
