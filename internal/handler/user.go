package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bookery/library-service/internal/errs"
	"github.com/bookery/library-service/internal/model"
)

func (h *Handler) Register(c echo.Context) error {
	var req model.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.authSvc.Register(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, errs.ErrUserExists) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(storageCode(err, http.StatusInternalServerError), err.Error())
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *Handler) Authorize(c echo.Context) error {
	var credentials model.AuthRequest
	if err := c.Bind(&credentials); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(credentials); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.authSvc.Login(c.Request().Context(), credentials)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidCreds) {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		return echo.NewHTTPError(storageCode(err, http.StatusInternalServerError), err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetUsers(c echo.Context) error {
	users, err := h.authSvc.ListUsers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(storageCode(err, http.StatusInternalServerError), err.Error())
	}
	return c.JSON(http.StatusOK, users)
}
