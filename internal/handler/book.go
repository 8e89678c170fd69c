package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bookery/library-service/internal/errs"
	"github.com/bookery/library-service/internal/model"
	"github.com/bookery/library-service/pkg/auth"
)

// GetBooks godoc
//
//	@Summary	catalog listing with filters and computed availability status
//	@Tags		books
//	@Param		category		query	string	false	"category filter"
//	@Param		availability	query	string	false	"available | borrowed"
//	@Param		search			query	string	false	"matches title, author or isbn"
//	@Param		sortBy			query	string	false	"title | author | recent"
//	@Success	200	{object}	model.ListBooks
//	@Router		/books [get]
func (h *Handler) GetBooks(c echo.Context) error {
	filter := model.BookFilter{
		Category:     c.QueryParam("category"),
		Availability: c.QueryParam("availability"),
		Search:       c.QueryParam("search"),
		SortBy:       c.QueryParam("sortBy"),
	}

	books, err := h.catalogSvc.ListBooks(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(storageCode(err, http.StatusInternalServerError), err.Error())
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) GetBook(c echo.Context) error {
	bookUid := c.Param("bookUid")
	book, err := h.catalogSvc.GetBook(c.Request().Context(), bookUid)
	if err != nil {
		if errors.Is(err, errs.ErrBookNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(storageCode(err, http.StatusInternalServerError), err.Error())
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.catalogSvc.CreateBook(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, errs.ErrDuplicateISBN) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(storageCode(err, http.StatusInternalServerError), err.Error())
	}
	return c.JSON(http.StatusCreated, book)
}

// CreateReview godoc
//
//	@Summary	leave a rating and comment, updating the book's average rating
//	@Tags		books
//	@Param		bookUid	path		string						true	"book uid"
//	@Param		input	body		model.CreateReviewRequest	true	"review"
//	@Success	201		{object}	model.Review
//	@Failure	404		"book not found"
//	@Router		/books/{bookUid}/reviews [post]
func (h *Handler) CreateReview(c echo.Context) error {
	ctx := c.Request().Context()
	ident, ok := auth.FromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no identity")
	}
	bookUid := c.Param("bookUid")

	var req model.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.catalogSvc.AddReview(ctx, bookUid, ident.Username, req)
	if err != nil {
		if errors.Is(err, errs.ErrBookNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(storageCode(err, http.StatusInternalServerError), err.Error())
	}
	return c.JSON(http.StatusCreated, review)
}

func (h *Handler) GetReviews(c echo.Context) error {
	bookUid := c.Param("bookUid")
	reviews, err := h.catalogSvc.ListReviews(c.Request().Context(), bookUid)
	if err != nil {
		if errors.Is(err, errs.ErrBookNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(storageCode(err, http.StatusInternalServerError), err.Error())
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *Handler) UpdateBook(c echo.Context) error {
	bookUid := c.Param("bookUid")
	var req model.UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.catalogSvc.UpdateBook(c.Request().Context(), bookUid, req)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrBookNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, errs.ErrQuantityBelow):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(storageCode(err, http.StatusInternalServerError), err.Error())
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) DeleteBook(c echo.Context) error {
	bookUid := c.Param("bookUid")
	if err := h.catalogSvc.DeleteBook(c.Request().Context(), bookUid); err != nil {
		switch {
		case errors.Is(err, errs.ErrBookNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, errs.ErrBookHasLoans):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(storageCode(err, http.StatusInternalServerError), err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
