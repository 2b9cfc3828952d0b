package response

import (
	"github.com/classroom-hub/classroom-backend/internal/listing"
	"github.com/gin-gonic/gin"
)

// Response is the success envelope.
type Response struct {
	Data any `json:"data"`
}

// ListResponse is the envelope of a listing: rows plus pagination, always both.
type ListResponse[T any] struct {
	Data       []T                `json:"data"`
	Pagination listing.Pagination `json:"pagination"`
}

// ErrorResponse is the only shape an error ever takes on the wire.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Created is the payload of a successful insert.
type Created struct {
	ID int `json:"id"`
}

// ────────────────────────────────────────────────────────────────────────────
// Helper builders
// ────────────────────────────────────────────────────────────────────────────

// Success sends a successful JSON response with the given status code and data.
func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, Response{Data: data})
}

// List sends a page of rows with its pagination block.
func List[T any](c *gin.Context, statusCode int, page *listing.Page[T]) {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	c.JSON(statusCode, ListResponse[T]{Data: items, Pagination: page.Pagination})
}

// Fail sends an error response carrying the code's message.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	FailMessage(c, statusCode, GetMessage(code))
}

// FailMessage sends an error response with a specific message.
func FailMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{Error: GetMessage(code)})
}
