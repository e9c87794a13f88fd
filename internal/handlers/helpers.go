package handlers

import (
	"net/http"

	"github.com/kumarharsh-connect/talehaven/internal/apperrors"
	"github.com/kumarharsh-connect/talehaven/internal/middleware"
	"github.com/kumarharsh-connect/talehaven/internal/models"
	"github.com/labstack/echo/v4"
)

// currentUser returns the authenticated user loaded by the auth middleware.
func currentUser(c echo.Context) (*models.User, error) {
	user := middleware.UserFromContext(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return user, nil
}

// httpError maps engine error codes onto HTTP statuses.
func httpError(err error) error {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeNotFound:
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case apperrors.CodeForbidden:
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case apperrors.CodeInvalidArgument, apperrors.CodeInvalidOperation:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case apperrors.CodeConflict:
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case apperrors.CodeDependency:
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
