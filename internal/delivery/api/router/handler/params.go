package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"bookreview/internal/domain/entity"
	domainerrors "bookreview/internal/domain/errors"
)

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.ErrValidationFailed.WithDetails(name + ": must be a positive integer")
	}

	return id, nil
}

// pageRequest reads the zero-based `page` and `size` query parameters.
// Missing or unparsable values fall back to the defaults applied by Normalize.
func pageRequest(c echo.Context) entity.PageRequest {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	return entity.PageRequest{Page: page, Size: size}
}

// bind decodes the body into req and validates it.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}

	return c.Validate(req)
}
