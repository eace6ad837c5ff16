package helpers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"nft-auction/internal/auctionerrors"
	"nft-auction/utils"

	"github.com/gin-gonic/gin"
)

// BindOptionalJSON binds the request body into dest; an empty body leaves dest untouched
func BindOptionalJSON(c *gin.Context, dest any) error {
	if err := c.ShouldBindJSON(dest); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps runtime errors to an HTTP status: rule violations are
// reported with 200 and success=false, anything else is a server failure
func MapErrorToHTTP(err error) int {
	switch {
	case errors.Is(err, auctionerrors.ErrValidation),
		errors.Is(err, auctionerrors.ErrInsufficientBalance),
		errors.Is(err, auctionerrors.ErrNotFound),
		errors.Is(err, auctionerrors.ErrForbidden),
		errors.Is(err, auctionerrors.ErrInvalidState):
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

// HandleCallError reports a failed contract call
func HandleCallError(c *gin.Context, handlerName, message string, err error) {
	status := MapErrorToHTTP(err)
	utils.JSONError(c, status, err, message)
	fields := map[string]any{"handler": handlerName, "error": err.Error()}
	if status == http.StatusInternalServerError {
		utils.Error(handlerName+": "+message, fields)
		return
	}
	utils.Warn(handlerName+": "+message, fields)
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
