// Package controllers handles HTTP request handling
package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/mentorium/internal/middleware"
	"github.com/yigit/mentorium/internal/pkg/apperrors"
)

// callerEmail returns the email TokenAuth stored for the request. It writes a 401 and
// returns false when the route was mounted without TokenAuth.
func callerEmail(ctx *gin.Context) (string, bool) {
	email, ok := middleware.GetUserEmail(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return "", false
	}
	return email, true
}
