package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkaplan/schoolpanel/internal/app/models/dto"
	"github.com/mkaplan/schoolpanel/internal/app/services"
	"github.com/mkaplan/schoolpanel/internal/middleware"
)

// AccountController handles account administration
type AccountController struct {
	accountService services.AccountService
}

// NewAccountController creates a new AccountController
func NewAccountController(accountService services.AccountService) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// ListAccounts lists all accounts
// @Summary List accounts
// @Description Retrieves all accounts without credential data
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AccountResponse} "Accounts retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /accounts [get]
func (c *AccountController) ListAccounts(ctx *gin.Context) {
	accounts, err := c.accountService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewAccountResponseList(accounts), ""))
}

// CreateAccount creates a new account
// @Summary Create an account
// @Description Creates a new account with the given role
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAccountRequest true "Account information"
// @Success 201 {object} dto.APIResponse{data=dto.AccountResponse} "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Username already exists"
// @Router /accounts [post]
func (c *AccountController) CreateAccount(ctx *gin.Context) {
	var req dto.CreateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid account data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	account, err := c.accountService.Create(ctx, req.Username, req.Password, req.Role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.NewAccountResponse(account), "Account created"))
}

// DeleteAccount deletes an account
// @Summary Delete an account
// @Description Removes an account. Unknown ids and the bootstrap admin are no-ops.
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Account deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid account ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /accounts/{id} [delete]
func (c *AccountController) DeleteAccount(ctx *gin.Context) {
	idStr := ctx.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid account ID")
		errorDetail = errorDetail.WithDetails("Account ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.accountService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Account deleted"))
}
