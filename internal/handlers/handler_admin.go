package handlers

import (
	"context"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bank_account_app/internal/core/ports/services"
	"github.com/SscSPs/bank_account_app/internal/dto"
	"github.com/SscSPs/bank_account_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adminHandler serves operator routes: account oversight, status holds and interest.
type adminHandler struct {
	accountService portssvc.AccountSvcFacade
	rateService    portssvc.InterestRateSvc
}

func newAdminHandler(as portssvc.AccountSvcFacade, rs portssvc.InterestRateSvc) *adminHandler {
	return &adminHandler{
		accountService: as,
		rateService:    rs,
	}
}

func registerAdminRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAdminHandler(services.Account, services.InterestRate)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.POST("", h.openAccount)
		accounts.GET("/:accountID", h.getAccount)
		accounts.POST("/:accountID/freeze", h.freezeAccount)
		accounts.POST("/:accountID/unfreeze", h.unfreezeAccount)
	}
	rg.GET("/interest-rate", h.getInterestRate)
	rg.PUT("/interest-rate", h.setInterestRate)
	rg.POST("/interest/run", h.runInterest)
}

// listAccounts godoc
// @Summary List all accounts
// @Tags admin
// @Produce  json
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} ErrorResponse "Missing API key"
// @Failure 403 {object} ErrorResponse "Invalid API key"
// @Security AdminKeyAuth
// @Router /admin/accounts [get]
func (h *adminHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// openAccount godoc
// @Summary Open an account
// @Description Opens an account not linked to any login.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   account body dto.OpenAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Security AdminKeyAuth
// @Router /admin/accounts [post]
func (h *adminHandler) openAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	account, err := h.accountService.OpenAccount(c.Request.Context(), req.OwnerName, req.Kind())
	if err != nil {
		respondError(c, logger, err, "Failed to open account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get any account
// @Tags admin
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security AdminKeyAuth
// @Router /admin/accounts/{accountID} [get]
func (h *adminHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	account, err := h.accountService.GetAccount(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// freezeAccount godoc
// @Summary Freeze an account
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   body body dto.StatusChangeRequest true "Reason"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 422 {object} ErrorResponse "Account closed"
// @Security AdminKeyAuth
// @Router /admin/accounts/{accountID}/freeze [post]
func (h *adminHandler) freezeAccount(c *gin.Context) {
	h.changeStatus(c, "freeze", h.accountService.FreezeAccount)
}

// unfreezeAccount godoc
// @Summary Unfreeze an account
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   body body dto.StatusChangeRequest true "Reason"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 422 {object} ErrorResponse "Account closed"
// @Security AdminKeyAuth
// @Router /admin/accounts/{accountID}/unfreeze [post]
func (h *adminHandler) unfreezeAccount(c *gin.Context) {
	h.changeStatus(c, "unfreeze", h.accountService.UnfreezeAccount)
}

func (h *adminHandler) changeStatus(c *gin.Context, op string, apply func(ctx context.Context, accountID, reason string) error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	accountID := c.Param("accountID")
	logger = logger.With(slog.String("account_id", accountID), slog.String("operation", op))
	if err := apply(c.Request.Context(), accountID, req.Reason); err != nil {
		respondError(c, logger, err, "Failed to "+op+" account")
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getInterestRate godoc
// @Summary Get the shared interest rate
// @Description The rate applied to checking accounts.
// @Tags admin
// @Produce  json
// @Success 200 {object} dto.InterestRateResponse
// @Security AdminKeyAuth
// @Router /admin/interest-rate [get]
func (h *adminHandler) getInterestRate(c *gin.Context) {
	c.JSON(http.StatusOK, dto.InterestRateResponse{Rate: h.rateService.InterestRate()})
}

// setInterestRate godoc
// @Summary Set the shared interest rate
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   body body dto.InterestRateRequest true "Rate between 0 and 1"
// @Success 200 {object} dto.InterestRateResponse
// @Failure 400 {object} ErrorResponse "Invalid rate"
// @Security AdminKeyAuth
// @Router /admin/interest-rate [put]
func (h *adminHandler) setInterestRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.InterestRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	if err := h.rateService.SetInterestRate(c.Request.Context(), *req.Rate); err != nil {
		respondError(c, logger, err, "Failed to set interest rate")
		return
	}
	c.JSON(http.StatusOK, dto.InterestRateResponse{Rate: h.rateService.InterestRate()})
}

// runInterest godoc
// @Summary Pay interest to all savings accounts
// @Tags admin
// @Produce  json
// @Success 200 {object} dto.InterestBatchResponse
// @Security AdminKeyAuth
// @Router /admin/interest/run [post]
func (h *adminHandler) runInterest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	result, err := h.accountService.PayGlobalInterest(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Interest run failed")
		return
	}
	c.JSON(http.StatusOK, dto.InterestBatchResponse{
		Applied: result.Applied,
		Skipped: result.Skipped,
		Failed:  result.Failed,
	})
}
