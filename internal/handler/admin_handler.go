package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"fims/internal/errors"
	"fims/internal/model"
	"fims/internal/service"
)

// AdminHandler exposes administrator reporting and account management.
type AdminHandler struct {
	accountService service.AccountService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(accountService service.AccountService) *AdminHandler {
	return &AdminHandler{accountService: accountService}
}

// ReportRequest names the acting administrator.
type ReportRequest struct {
	Username string `json:"username" validate:"required"`
}

// CreateAccountRequest represents an account created by an administrator.
type CreateAccountRequest struct {
	Username string        `json:"username" validate:"required"`
	Account  SignupRequest `json:"account"`
}

// ReportBody is a generated report with its live stock alerts.
type ReportBody struct {
	ReportID     uint     `json:"report_id"`
	Month        string   `json:"month"`
	Income       float64  `json:"income"`
	MinThreshold int      `json:"min_threshold"`
	MaxThreshold int      `json:"max_threshold"`
	Alerts       []string `json:"alerts"`
}

// ReportResponse wraps a generated report.
type ReportResponse struct {
	Report ReportBody `json:"report"`
}

// AccountView is an account without its password hash.
type AccountView struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}

// GenerateReport godoc
// @Summary Generate a monthly report
// @Description Stores an income snapshot of the catalog and returns it with the current stock alerts.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body ReportRequest true "Acting administrator"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/report [post]
func (h *AdminHandler) GenerateReport(c echo.Context) error {
	var req ReportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.accountService.GenerateReport(c.Request().Context(), req.Username)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newReportResponse(result))
}

// GetReport godoc
// @Summary Get a stored report
// @Description Returns a stored report with the stock alerts of the current catalog.
// @Tags admin
// @Produce json
// @Param id path int true "Report ID"
// @Param username query string true "Acting administrator"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/reports/{id} [get]
func (h *AdminHandler) GetReport(c echo.Context) error {
	reportID, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid report ID",
			Code:  "INVALID_REPORT_ID",
		})
	}

	result, err := h.accountService.GetReport(c.Request().Context(), c.QueryParam("username"), uint(reportID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newReportResponse(result))
}

func newReportResponse(result *service.ReportResult) ReportResponse {
	alerts := result.Alerts
	if alerts == nil {
		alerts = []string{}
	}
	return ReportResponse{Report: ReportBody{
		ReportID:     result.Report.ReportID,
		Month:        result.Report.Month,
		Income:       result.Report.Income,
		MinThreshold: result.Report.MinThreshold,
		MaxThreshold: result.Report.MaxThreshold,
		Alerts:       alerts,
	}}
}

// ListReports godoc
// @Summary List stored reports
// @Tags admin
// @Produce json
// @Param username query string true "Acting administrator"
// @Success 200 {array} model.Report
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/reports [get]
func (h *AdminHandler) ListReports(c echo.Context) error {
	reports, err := h.accountService.ListReports(c.Request().Context(), c.QueryParam("username"))
	if err != nil {
		return respondError(c, err)
	}
	if reports == nil {
		reports = []model.Report{}
	}
	return c.JSON(http.StatusOK, reports)
}

// CreateAccount godoc
// @Summary Create an account as an administrator
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CreateAccountRequest true "Acting administrator and new account"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/accounts [post]
func (h *AdminHandler) CreateAccount(c echo.Context) error {
	var req CreateAccountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	message, err := h.accountService.CreateAccount(c.Request().Context(),
		req.Username, req.Account.Role, req.Account.Username, req.Account.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: message})
}

// ListAccounts godoc
// @Summary List accounts
// @Tags admin
// @Produce json
// @Param username query string true "Acting administrator"
// @Success 200 {array} AccountView
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/accounts [get]
func (h *AdminHandler) ListAccounts(c echo.Context) error {
	users, err := h.accountService.ListAccounts(c.Request().Context(), c.QueryParam("username"))
	if err != nil {
		return respondError(c, err)
	}

	views := make([]AccountView, 0, len(users))
	for _, u := range users {
		views = append(views, AccountView{ID: u.ID, Username: u.Username, Role: u.Role, CreatedAt: u.CreatedAt})
	}
	return c.JSON(http.StatusOK, views)
}
