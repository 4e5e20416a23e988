package api

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/WalletPulse/WalletPulse-Backend/api/apistrings"
	"github.com/WalletPulse/WalletPulse-Backend/models"
	"github.com/WalletPulse/WalletPulse-Backend/providers/wallet"
	"github.com/WalletPulse/WalletPulse-Backend/services/balance"
	"github.com/WalletPulse/WalletPulse-Backend/services/broadcast"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	CodeWalletUnreachable = "WALLET_API_UNREACHABLE"
	CodeWalletError       = "WALLET_API_ERROR"
)

type Accounts struct {
	server *Server
}

func (a Accounts) router(server *Server) {
	a.server = server

	serverGroupV1 := server.router.Group("/api/v1/accounts")
	serverGroupV1.GET(":id/balance", a.getBalance)
	serverGroupV1.GET(":id/history", a.getHistory)
	serverGroupV1.GET(":id/live", a.streamLive)
	serverGroupV1.POST(":id/check", a.checkBalance)
}

type balanceResponse struct {
	AccountID         string     `json:"account_id"`
	Balance           string     `json:"balance"`
	BalanceMinorUnits int64      `json:"balanceMinorUnits"`
	MobileNo          string     `json:"mobileNo,omitempty"`
	CheckedAt         *time.Time `json:"checkedAt,omitempty"`
	NoData            bool       `json:"noData,omitempty"`
}

func (a *Accounts) loadAccount(ctx *gin.Context) (uuid.UUID, bool) {
	accountID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidAccountID))
		return uuid.Nil, false
	}

	_, err = a.server.queries.GetWalletAccount(ctx, accountID)
	if err == sql.ErrNoRows {
		ctx.JSON(http.StatusNotFound, models.NewError(apistrings.AccountNotFound))
		return uuid.Nil, false
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewError(apistrings.ServerError))
		return uuid.Nil, false
	}

	return accountID, true
}

func (a *Accounts) getBalance(ctx *gin.Context) {
	accountID, ok := a.loadAccount(ctx)
	if !ok {
		return
	}

	snap, err := a.server.balanceService.GetLatestBalance(ctx, accountID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewError(apistrings.ServerError))
		return
	}

	if snap == nil {
		ctx.JSON(http.StatusOK, models.NewSuccess(apistrings.NoBalanceYet, balanceResponse{
			AccountID: accountID.String(),
			Balance:   "0",
			NoData:    true,
		}))
		return
	}

	checkedAt := snap.CheckedAt
	ctx.JSON(http.StatusOK, models.NewSuccess("Balance Fetched Successfully", balanceResponse{
		AccountID:         accountID.String(),
		Balance:           broadcast.MajorUnits(snap.BalanceMinor).String(),
		BalanceMinorUnits: snap.BalanceMinor,
		MobileNo:          snap.ObservedPhoneNumber,
		CheckedAt:         &checkedAt,
	}))
}

type historyQuery struct {
	From     string `form:"from"`
	To       string `form:"to"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

func (a *Accounts) getHistory(ctx *gin.Context) {
	accountID, ok := a.loadAccount(ctx)
	if !ok {
		return
	}

	var query historyQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewValidationError(apistrings.InvalidPageInput, validationFields(err)))
		return
	}

	fromTime, toTime, ok := parseTimeWindow(ctx, query)
	if !ok {
		return
	}

	history, err := a.server.balanceService.GetHistory(ctx, accountID, fromTime, toTime, query.Page, query.PageSize)
	if errors.Is(err, balance.ErrInvalidPage) {
		ctx.JSON(http.StatusBadRequest, models.NewValidationError(apistrings.InvalidPageInput, []string{"page", "page_size"}))
		return
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, models.NewSuccess("History Fetched Successfully", history))
}

type checkResponse struct {
	Balance           string    `json:"balance"`
	BalanceMinorUnits int64     `json:"balanceMinorUnits"`
	MobileNo          string    `json:"mobileNo,omitempty"`
	CheckedAt         time.Time `json:"checkedAt"`
	Changed           bool      `json:"changed"`
}

func (a *Accounts) checkBalance(ctx *gin.Context) {
	accountID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidAccountID))
		return
	}

	account, err := a.server.queries.GetWalletAccount(ctx, accountID)
	if err == sql.ErrNoRows {
		ctx.JSON(http.StatusNotFound, models.NewError(apistrings.AccountNotFound))
		return
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewError(apistrings.ServerError))
		return
	}

	res, err := a.server.poller.CheckAccount(ctx, account, balance.SourceManualCheck)
	if err != nil {
		var statusErr *wallet.StatusError
		switch {
		case errors.Is(err, wallet.ErrUnreachable):
			ctx.JSON(http.StatusBadGateway, models.NewCodedError(CodeWalletUnreachable, apistrings.WalletUnreachable))
		case errors.As(err, &statusErr):
			ctx.JSON(http.StatusBadGateway, models.NewCodedError(CodeWalletError, apistrings.WalletRejected))
		default:
			ctx.JSON(http.StatusInternalServerError, models.NewError(apistrings.ServerError))
		}
		return
	}

	ctx.JSON(http.StatusOK, models.NewSuccess("Balance Checked Successfully", checkResponse{
		Balance:           broadcast.MajorUnits(res.BalanceMinor).String(),
		BalanceMinorUnits: res.BalanceMinor,
		MobileNo:          res.MobileNumber,
		CheckedAt:         res.CheckedAt,
		Changed:           res.Changed,
	}))
}

// validationFields pulls the offending field names out of a binding error so
// the response can name them.
func validationFields(err error) []string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return nil
	}
	fields := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

func parseTimeWindow(ctx *gin.Context, query historyQuery) (*time.Time, *time.Time, bool) {
	var fromTime, toTime *time.Time

	if query.From != "" {
		parsed, err := time.Parse(time.RFC3339, query.From)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, models.NewValidationError(apistrings.InvalidTimeWindow, []string{"from"}))
			return nil, nil, false
		}
		fromTime = &parsed
	}

	if query.To != "" {
		parsed, err := time.Parse(time.RFC3339, query.To)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, models.NewValidationError(apistrings.InvalidTimeWindow, []string{"to"}))
			return nil, nil, false
		}
		toTime = &parsed
	}

	return fromTime, toTime, true
}
