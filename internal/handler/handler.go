package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/bookery/library-service/internal/errs"
	md "github.com/bookery/library-service/pkg/middleware"
	"github.com/bookery/library-service/pkg/validate"
	_ "github.com/bookery/library-service/swagger"
)

type Handler struct {
	catalogSvc CatalogService
	loanSvc    LoanService
	authSvc    AuthService
	statsSvc   StatsService
	log        *zap.Logger
}

func New(catalogSvc CatalogService, loanSvc LoanService, authSvc AuthService, statsSvc StatsService, log *zap.Logger) *Handler {
	h := &Handler{
		catalogSvc: catalogSvc,
		loanSvc:    loanSvc,
		authSvc:    authSvc,
		statsSvc:   statsSvc,
		log:        log,
	}
	return h
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/register", h.Register)
	api.POST("/authorize", h.Authorize)

	authed := api.Group("", md.JwtAuthentication)

	authed.GET("/books", h.GetBooks)
	authed.GET("/books/:bookUid", h.GetBook)
	authed.POST("/books/:bookUid/borrow", h.Borrow)
	authed.GET("/books/:bookUid/reviews", h.GetReviews)
	authed.POST("/books/:bookUid/reviews", h.CreateReview)

	authed.PUT("/loans/:loanUid/return", h.Return)
	authed.GET("/loans/my", h.GetMyLoans)
	authed.GET("/loans/history", h.GetHistory)

	authed.GET("/dashboard", h.Dashboard)
	authed.GET("/notifications", h.Notifications)
	authed.GET("/recommendations", h.Recommendations)

	adm := authed.Group("", md.AdminOnly)
	adm.POST("/books", h.CreateBook)
	adm.PUT("/books/:bookUid", h.UpdateBook)
	adm.DELETE("/books/:bookUid", h.DeleteBook)
	adm.GET("/loans", h.GetAllLoans)
	adm.GET("/users", h.GetUsers)
	adm.GET("/reports", h.Report)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// storageCode maps persistence failures to 503 so clients know the request is
// retryable.
func storageCode(err error, fallback int) int {
	if errors.Is(err, errs.ErrStorageUnavailable) {
		return http.StatusServiceUnavailable
	}
	return fallback
}
