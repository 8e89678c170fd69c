package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookery/library-service/internal/model"
	"github.com/bookery/library-service/pkg/auth"
)

// Dashboard returns a tagged view selected by the caller's role: admins see
// system-wide stats, users see their borrowed books.
func (h *Handler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	ident, ok := auth.FromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no identity")
	}

	if ident.IsAdmin() {
		dash, err := h.statsSvc.AdminDashboard(ctx)
		if err != nil {
			return echo.NewHTTPError(storageCode(err, http.StatusInternalServerError), err.Error())
		}
		return c.JSON(http.StatusOK, model.DashboardResponse{Role: ident.Role, Admin: &dash})
	}

	dash, err := h.statsSvc.UserDashboard(ctx, ident.Username)
	if err != nil {
		return echo.NewHTTPError(storageCode(err, http.StatusInternalServerError), err.Error())
	}
	return c.JSON(http.StatusOK, model.DashboardResponse{Role: ident.Role, User: &dash})
}

func (h *Handler) Report(c echo.Context) error {
	report, err := h.statsSvc.Report(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(storageCode(err, http.StatusInternalServerError), err.Error())
	}
	return c.JSON(http.StatusOK, report)
}

func (h *Handler) Notifications(c echo.Context) error {
	ctx := c.Request().Context()
	ident, ok := auth.FromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no identity")
	}

	notices, err := h.statsSvc.Notifications(ctx, ident.Username)
	if err != nil {
		return echo.NewHTTPError(storageCode(err, http.StatusInternalServerError), err.Error())
	}
	return c.JSON(http.StatusOK, notices)
}

func (h *Handler) Recommendations(c echo.Context) error {
	ctx := c.Request().Context()
	ident, ok := auth.FromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no identity")
	}

	books, err := h.statsSvc.Recommendations(ctx, ident.Username)
	if err != nil {
		return echo.NewHTTPError(storageCode(err, http.StatusInternalServerError), err.Error())
	}
	return c.JSON(http.StatusOK, books)
}
