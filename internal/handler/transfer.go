package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/corebank/ledger-service/internal/domain"
	"github.com/corebank/ledger-service/internal/ledger"
	"github.com/corebank/ledger-service/internal/logging"
)

type transferer interface {
	Transfer(ctx context.Context, money domain.Money, from, to domain.Account) (ledger.Result, error)
}

type accountGetter interface {
	GetByID(ctx context.Context, id int64) (domain.Account, error)
}

type TransferHandler struct {
	transfers transferer
	accounts  accountGetter
}

func NewTransferHandler(transfers transferer, accounts accountGetter) *TransferHandler {
	return &TransferHandler{transfers: transfers, accounts: accounts}
}

type transferRequest struct {
	FromAccountID int64  `json:"from_account_id"`
	ToAccountID   int64  `json:"to_account_id"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
}

func (r transferRequest) Validate() []FieldError {
	var errs []FieldError
	if r.FromAccountID <= 0 {
		errs = append(errs, FieldError{Field: "from_account_id", Message: "required"})
	}
	if r.ToAccountID <= 0 {
		errs = append(errs, FieldError{Field: "to_account_id", Message: "required"})
	}
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

type transferResponse struct {
	Outcome string           `json:"outcome"`
	From    *accountStateDTO `json:"from,omitempty"`
	To      *accountStateDTO `json:"to,omitempty"`
}

func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	from, err := h.accounts.GetByID(r.Context(), req.FromAccountID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	to, err := h.accounts.GetByID(r.Context(), req.ToAccountID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	amount, _ := decimal.NewFromString(req.Amount)
	money := domain.NewMoney(amount, domain.Currency(req.Currency))

	result, err := h.transfers.Transfer(r.Context(), money, from, to)
	if err != nil {
		// Store faults and ledger-integrity failures only; rejections come
		// back as result variants.
		logging.FromContext(r.Context()).Error("transfer failed", "error", err)
		RespondAppError(w, ErrInternalError, nil)
		return
	}

	switch result.Outcome {
	case ledger.OutcomeSuccess:
		fromDTO := toAccountStateDTO(*result.From)
		toDTO := toAccountStateDTO(*result.To)
		RespondSuccess(w, http.StatusCreated, transferResponse{
			Outcome: string(result.Outcome),
			From:    &fromDTO,
			To:      &toDTO,
		})
	case ledger.OutcomeSameAccount:
		RespondAppError(w, ErrSameAccount, nil)
	case ledger.OutcomeNegativeMoney:
		RespondAppError(w, ErrNegativeMoney, nil)
	case ledger.OutcomeCurrencyMismatch:
		RespondAppError(w, ErrCurrencyMismatch, nil)
	case ledger.OutcomeInsufficientFunds:
		RespondAppError(w, ErrInsufficientFunds, nil)
	default:
		logging.FromContext(r.Context()).Error("unknown transfer outcome", "outcome", result.Outcome)
		RespondAppError(w, ErrInternalError, nil)
	}
}
