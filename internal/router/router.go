package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"fims/internal/config"
	"fims/internal/handler"
	"fims/internal/logging"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	itemHandler *handler.ItemHandler,
	managerHandler *handler.ManagerHandler,
	supplierHandler *handler.SupplierHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(logging.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))

	e.Validator = NewCustomValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	api.POST("/signup", authHandler.Signup)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)

	// Public catalog
	api.POST("/items", itemHandler.CreateItem)
	api.GET("/items", itemHandler.ListItems)
	api.GET("/items/:id", itemHandler.GetItem)

	// Role routes name the acting account in the request.
	manager := api.Group("/manager")
	manager.POST("/items", managerHandler.AddItem)
	manager.PUT("/items/:id", managerHandler.UpdateItem)
	manager.DELETE("/items/:id", managerHandler.DeleteItem)

	api.POST("/supplier/order", supplierHandler.Order)

	admin := api.Group("/admin")
	admin.POST("/report", adminHandler.GenerateReport)
	admin.GET("/reports", adminHandler.ListReports)
	admin.GET("/reports/:id", adminHandler.GetReport)
	admin.POST("/accounts", adminHandler.CreateAccount)
	admin.GET("/accounts", adminHandler.ListAccounts)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator creates a validator for Echo.
func NewCustomValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
