package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bookery/library-service/internal/errs"
	"github.com/bookery/library-service/pkg/auth"
)

// Borrow godoc
//
//	@Summary	borrow one copy of a book for the authenticated user
//	@Tags		loans
//	@Param		bookUid	path		string	true	"book uid"
//	@Success	201		{object}	model.Loan
//	@Failure	404		"book not found"
//	@Failure	409		"no copies left or already borrowed"
//	@Router		/books/{bookUid}/borrow [post]
func (h *Handler) Borrow(c echo.Context) error {
	ctx := c.Request().Context()
	ident, ok := auth.FromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no identity")
	}
	bookUid := c.Param("bookUid")
	if bookUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "bookUid is empty")
	}

	loan, err := h.loanSvc.Borrow(ctx, ident.Username, bookUid)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrBookNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, errs.ErrNotAvailable), errors.Is(err, errs.ErrDuplicateLoan):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(storageCode(err, http.StatusInternalServerError), err.Error())
	}
	return c.JSON(http.StatusCreated, loan)
}

// Return godoc
//
//	@Summary	return a borrowed book, computing the overdue fine
//	@Tags		loans
//	@Param		loanUid	path		string	true	"loan uid"
//	@Success	200		{object}	model.Loan
//	@Failure	404		"no active borrow record found"
//	@Router		/loans/{loanUid}/return [put]
func (h *Handler) Return(c echo.Context) error {
	ctx := c.Request().Context()
	ident, ok := auth.FromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no identity")
	}
	loanUid := c.Param("loanUid")
	if loanUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "loanUid is empty")
	}

	loan, err := h.loanSvc.Return(ctx, ident, loanUid)
	if err != nil {
		if errors.Is(err, errs.ErrLoanNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(storageCode(err, http.StatusInternalServerError), err.Error())
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) GetMyLoans(c echo.Context) error {
	ctx := c.Request().Context()
	ident, ok := auth.FromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no identity")
	}

	items, err := h.loanSvc.ListActive(ctx, ident.Username)
	if err != nil {
		return echo.NewHTTPError(storageCode(err, http.StatusInternalServerError), err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetHistory(c echo.Context) error {
	ctx := c.Request().Context()
	ident, ok := auth.FromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no identity")
	}

	items, err := h.loanSvc.ListHistory(ctx, ident.Username)
	if err != nil {
		return echo.NewHTTPError(storageCode(err, http.StatusInternalServerError), err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetAllLoans(c echo.Context) error {
	items, err := h.loanSvc.ListAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(storageCode(err, http.StatusInternalServerError), err.Error())
	}
	return c.JSON(http.StatusOK, items)
}
