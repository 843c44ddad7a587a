package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/bank_account_app/internal/apperrors"
	portssvc "github.com/SscSPs/bank_account_app/internal/core/ports/services"
	"github.com/SscSPs/bank_account_app/internal/dto"
	"github.com/SscSPs/bank_account_app/internal/middleware"
	"github.com/SscSPs/bank_account_app/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to a customer's own account.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to accounts. Every route
// requires the caller to own the account in the path.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, userService portssvc.UserSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts/:accountID", requireAccountOwner(userService))
	{
		accounts.GET("", h.getAccount)
		accounts.POST("/deposit", h.deposit)
		accounts.POST("/withdraw", h.withdraw)
		accounts.POST("/transfer", h.transfer)
		accounts.POST("/close", h.closeAccount)
		accounts.POST("/interest", h.applyInterest)
		accounts.GET("/transactions", h.listTransactions)
		accounts.GET("/statement", h.getStatement)
	}
}

// requireAccountOwner rejects requests for any account other than the one
// linked to the authenticated user.
func requireAccountOwner(userService portssvc.UserSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		userID, ok := middleware.GetUserIDFromContext(c)
		if !ok {
			logger.Error("User ID not found in context")
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
			return
		}

		user, err := userService.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			if statusForError(err) == http.StatusNotFound {
				// Token for a user that no longer exists.
				c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
				return
			}
			logger.Error("Failed to load user for ownership check", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to authorize request"})
			return
		}

		accountID := c.Param("accountID")
		if user.LinkedAccountID != accountID {
			logger.Warn("User forbidden to access account",
				slog.String("account_id", accountID),
				slog.String("linked_account_id", user.LinkedAccountID))
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: apperrors.ErrForbidden.Error()})
			return
		}

		ctx := middleware.WithLogger(c.Request.Context(), logger.With(slog.String("account_id", accountID)))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// getAccount godoc
// @Summary Get an account by ID
// @Description Retrieves the caller's account
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden (accessing another user's account)"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	account, err := h.accountService.GetAccount(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deposit godoc
// @Summary Deposit into an account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   body body dto.AmountRequest true "Amount"
// @Success 200 {object} dto.MutationResponse
// @Failure 400 {object} ErrorResponse "Invalid amount"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 422 {object} ErrorResponse "Account frozen or closed"
// @Security BearerAuth
// @Router /accounts/{accountID}/deposit [post]
func (h *accountHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	accountID := c.Param("accountID")
	record, err := h.accountService.Deposit(c.Request.Context(), accountID, req.Amount)
	if err != nil {
		respondError(c, logger, err, "Failed to deposit")
		return
	}
	h.respondMutation(c, logger, accountID, dto.ToTransactionResponse(record))
}

// withdraw godoc
// @Summary Withdraw from an account
// @Description Checking accounts may go into overdraft for a flat fee.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   body body dto.AmountRequest true "Amount"
// @Success 200 {object} dto.MutationResponse
// @Failure 400 {object} ErrorResponse "Invalid amount"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 422 {object} ErrorResponse "Insufficient funds, frozen or closed"
// @Security BearerAuth
// @Router /accounts/{accountID}/withdraw [post]
func (h *accountHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	accountID := c.Param("accountID")
	records, err := h.accountService.Withdraw(c.Request.Context(), accountID, req.Amount)
	if err != nil {
		respondError(c, logger, err, "Failed to withdraw")
		return
	}
	h.respondMutation(c, logger, accountID, dto.ToTransactionResponses(records)...)
}

// transfer godoc
// @Summary Transfer to another account
// @Description Moves money from the caller's account to any active account.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Source account ID"
// @Param   body body dto.TransferRequest true "Target and amount"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse "Invalid amount or same account"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Target not found"
// @Failure 422 {object} ErrorResponse "Insufficient funds or target not active"
// @Failure 500 {object} ErrorResponse "Rollback failed"
// @Security BearerAuth
// @Router /accounts/{accountID}/transfer [post]
func (h *accountHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	sourceID := c.Param("accountID")
	logger = logger.With(slog.String("target_account_id", req.TargetAccountID))
	receipt, err := h.accountService.Transfer(c.Request.Context(), sourceID, req.TargetAccountID, req.Amount)
	if err != nil {
		respondError(c, logger, err, "Transfer failed")
		return
	}

	source, err := h.accountService.GetAccount(c.Request.Context(), sourceID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	logger.Info("Transfer completed", slog.String("amount", req.Amount.String()))
	c.JSON(http.StatusOK, dto.ToTransferResponse(receipt, source.Balance()))
}

// closeAccount godoc
// @Summary Close an account
// @Description Only an account with a zero balance can be closed.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   body body dto.StatusChangeRequest true "Reason"
// @Success 200 {object} dto.AccountResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 422 {object} ErrorResponse "Balance is not zero"
// @Security BearerAuth
// @Router /accounts/{accountID}/close [post]
func (h *accountHandler) closeAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	accountID := c.Param("accountID")
	if err := h.accountService.CloseAccount(c.Request.Context(), accountID, req.Reason); err != nil {
		respondError(c, logger, err, "Failed to close account")
		return
	}
	h.respondAccount(c, logger, accountID)
}

// applyInterest godoc
// @Summary Apply interest to an account
// @Description Credits interest at the account's rate. No record is created when nothing is earned.
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.MutationResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 422 {object} ErrorResponse "Account frozen or closed"
// @Security BearerAuth
// @Router /accounts/{accountID}/interest [post]
func (h *accountHandler) applyInterest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	record, err := h.accountService.ApplyInterest(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to apply interest")
		return
	}
	if record == nil {
		h.respondMutation(c, logger, accountID)
		return
	}
	h.respondMutation(c, logger, accountID, dto.ToTransactionResponse(*record))
}

// listTransactions godoc
// @Summary List an account's transactions
// @Description Returns the log in order, optionally filtered by kind and paginated.
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   kind query string false "Transaction kind" Enums(DEPOSIT, WITHDRAWAL, TRANSFER, FEE, INTEREST, REVERSAL)
// @Param   limit query int false "Page size (default 50, max 500)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse "Invalid filter or token"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /accounts/{accountID}/transactions [get]
func (h *accountHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	accountID := c.Param("accountID")
	offset := 0
	if params.NextToken != "" {
		var err error
		// The token is scoped to account and filter so a page cannot be resumed on another list.
		offset, err = pagination.DecodeOffsetToken(params.NextToken, accountID+":"+string(params.Kind))
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
	}

	records, err := h.accountService.TransactionsByKind(c.Request.Context(), accountID, params.Kind)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}

	end, more := pagination.Page(len(records), offset, params.Limit)
	if offset > end {
		offset = end
	}
	res := dto.ListTransactionsResponse{
		AccountID:    accountID,
		Transactions: dto.ToTransactionResponses(records[offset:end]),
	}
	if more {
		res.NextToken = pagination.EncodeOffsetToken(accountID+":"+string(params.Kind), end)
	}
	c.JSON(http.StatusOK, res)
}

// getStatement godoc
// @Summary Print an account statement
// @Tags accounts
// @Produce  plain
// @Param   accountID path string true "Account ID"
// @Success 200 {string} string "Statement"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /accounts/{accountID}/statement [get]
func (h *accountHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stmt, err := h.accountService.Statement(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondError(c, logger, err, "Failed to build statement")
		return
	}
	c.String(http.StatusOK, stmt.String())
}

func (h *accountHandler) respondAccount(c *gin.Context, logger *slog.Logger, accountID string) {
	account, err := h.accountService.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) respondMutation(c *gin.Context, logger *slog.Logger, accountID string, records ...dto.TransactionResponse) {
	account, err := h.accountService.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	if records == nil {
		records = []dto.TransactionResponse{}
	}
	c.JSON(http.StatusOK, dto.MutationResponse{
		Account:      dto.ToAccountResponse(account),
		Transactions: records,
	})
}
