package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/classroom-hub/classroom-backend/internal/database"
	"github.com/classroom-hub/classroom-backend/internal/listing"
	"github.com/classroom-hub/classroom-backend/internal/repository"
	"github.com/classroom-hub/classroom-backend/internal/response"
	"github.com/classroom-hub/classroom-backend/internal/service"
	"github.com/classroom-hub/classroom-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// op tells failStore whether a foreign key violation came from a write that
// referenced a missing row or from a delete that other rows still need.
type op int

const (
	opRead op = iota
	opWrite
	opDelete
)

// failStore maps a service error to its status and envelope. Anything it
// does not recognize is logged and reported as a generic 500.
func failStore(c *gin.Context, log zerolog.Logger, entity string, o op, err error) {
	switch {
	case errors.Is(err, listing.ErrInvalidPagination):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPagination)
	case errors.Is(err, listing.ErrNotFound):
		response.FailMessage(c, http.StatusNotFound, response.NotFoundMessage(entity))
	case errors.Is(err, repository.ErrDuplicateEnrollment):
		response.Fail(c, http.StatusConflict, response.ErrAlreadyEnrolled)
	case errors.Is(err, repository.ErrEmailTaken):
		response.Fail(c, http.StatusConflict, response.ErrEmailTaken)
	case errors.Is(err, database.ErrUniqueViolation):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, database.ErrForeignKeyViolation) && o == opDelete:
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
	case errors.Is(err, database.ErrForeignKeyViolation):
		response.Fail(c, http.StatusConflict, response.ErrInvalidReference)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, service.ErrInvalidSession):
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized)
	default:
		log.Error().Err(err).
			Str("request_id", response.RequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// parseID reads a positive integer path parameter. Values outside the
// integer column range can never match a row and are rejected up front.
func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 || id > math.MaxInt32 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// bind decodes and validates a JSON body, writing a 400 on failure.
func bind(c *gin.Context, dst any) bool {
	if fields := validator.Bind(c, dst); fields != nil {
		response.FailMessage(c, http.StatusBadRequest, validator.Message(fields))
		return false
	}
	return true
}
