// Package controllers holds the HTTP handlers. Handlers bind and validate
// input, call a service or repository, and translate errors into the JSON
// envelope via respondError — no business logic lives here.
package controllers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/fennwick/brasserie/pkg/apperr"
	"github.com/fennwick/brasserie/pkg/ctx"
	"github.com/fennwick/brasserie/pkg/logger"
)

// respondError maps service errors onto the response envelope.
func respondError(c *ctx.Context, err error) {
	var vErr *apperr.ValidationError
	if errors.As(err, &vErr) {
		if len(vErr.Fields) > 0 {
			c.ValidationError(vErr.Fields)
			return
		}
		c.Error(http.StatusBadRequest, vErr.Message)
		return
	}

	var nfErr *apperr.NotFoundError
	if errors.As(err, &nfErr) {
		c.NotFound(nfErr.Error())
		return
	}

	var authErr *apperr.AuthenticationError
	if errors.As(err, &authErr) {
		c.Unauthorized(authErr.Message)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.NotFound()
		return
	}

	logger.WithCtx(c.Context()).Error("request failed", "error", err)
	c.Error(http.StatusInternalServerError, "Internal Server Error")
}
