package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebank/ledger-service/internal/domain"
	"github.com/corebank/ledger-service/internal/logging"
)

type accountService interface {
	CreateAccount(ctx context.Context, customerID uuid.UUID, currency domain.Currency) (domain.Account, error)
	GetCustomerAccounts(ctx context.Context, customerID uuid.UUID) ([]domain.Account, error)
	GetAccountState(ctx context.Context, accountID int64) (domain.AccountState, error)
	GetAccountTransactions(ctx context.Context, accountID int64) ([]domain.Transaction, error)
	Deposit(ctx context.Context, accountID int64, money domain.Money) (domain.Transaction, error)
}

type AccountHandler struct {
	accounts accountService
}

func NewAccountHandler(accounts accountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type createAccountRequest struct {
	Currency string `json:"currency"`
}

func (r createAccountRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Currency == "" {
		errs = append(errs, FieldError{Field: "currency", Message: "required"})
	} else if !domain.Currency(r.Currency).IsValid() {
		errs = append(errs, FieldError{Field: "currency", Message: "must be USD, EUR, or GBP"})
	}
	return errs
}

type accountDTO struct {
	ID         int64     `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"created_at"`
}

func toAccountDTO(a domain.Account) accountDTO {
	return accountDTO{
		ID:         a.ID,
		CustomerID: a.CustomerID,
		Currency:   string(a.Currency),
		CreatedAt:  a.CreatedAt,
	}
}

type accountStateDTO struct {
	Account  accountDTO `json:"account"`
	Balance  string     `json:"balance"`
	Currency string     `json:"currency"`
}

func toAccountStateDTO(s domain.AccountState) accountStateDTO {
	return accountStateDTO{
		Account:  toAccountDTO(s.Account),
		Balance:  s.Balance.Amount.String(),
		Currency: string(s.Balance.Currency),
	}
}

type transactionDTO struct {
	ID            int64     `json:"id"`
	CounterpartID *int64    `json:"counterpart_id,omitempty"`
	AccountID     int64     `json:"account_id"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}

func toTransactionDTO(t domain.Transaction) transactionDTO {
	return transactionDTO{
		ID:            t.ID,
		CounterpartID: t.CounterpartID,
		AccountID:     t.AccountID,
		Amount:        t.Delta.Amount.String(),
		Currency:      string(t.Delta.Currency),
		CreatedAt:     t.CreatedAt,
	}
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	customerID, appErr := customerIDFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	account, err := h.accounts.CreateAccount(r.Context(), customerID, domain.Currency(req.Currency))
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to create account", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toAccountDTO(account))
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID, appErr := customerIDFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	accounts, err := h.accounts.GetCustomerAccounts(r.Context(), customerID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list accounts", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]accountDTO, len(accounts))
	for i, a := range accounts {
		dtos[i] = toAccountDTO(a)
	}

	RespondSuccess(w, http.StatusOK, dtos)
}

func (h *AccountHandler) GetState(w http.ResponseWriter, r *http.Request) {
	accountID, appErr := accountIDFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	state, err := h.accounts.GetAccountState(r.Context(), accountID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to get account state", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toAccountStateDTO(state))
}

func (h *AccountHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	accountID, appErr := accountIDFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	entries, err := h.accounts.GetAccountTransactions(r.Context(), accountID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list transactions", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]transactionDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toTransactionDTO(e)
	}

	RespondSuccess(w, http.StatusOK, dtos)
}

type depositRequest struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func (r depositRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Amount == "" {
		errs = append(errs, FieldError{Field: "amount", Message: "required"})
	} else if _, err := decimal.NewFromString(r.Amount); err != nil {
		errs = append(errs, FieldError{Field: "amount", Message: "must be a decimal number"})
	}
	if r.Currency == "" {
		errs = append(errs, FieldError{Field: "currency", Message: "required"})
	} else if !domain.Currency(r.Currency).IsValid() {
		errs = append(errs, FieldError{Field: "currency", Message: "must be USD, EUR, or GBP"})
	}
	return errs
}

func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	accountID, appErr := accountIDFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	amount, _ := decimal.NewFromString(req.Amount)
	entry, err := h.accounts.Deposit(r.Context(), accountID, domain.NewMoney(amount, domain.Currency(req.Currency)))
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to record deposit", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toTransactionDTO(entry))
}

func accountIDFromPath(r *http.Request) (int64, *AppError) {
	id, err := strconv.ParseInt(r.PathValue("accountID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrAccountNotFound
	}
	return id, nil
}
