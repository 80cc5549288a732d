package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrInvalidRequest   = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError    = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrCustomerNotFound  = &AppError{http.StatusNotFound, "CUSTOMER_NOT_FOUND", "Customer not found"}
	ErrAccountNotFound   = &AppError{http.StatusNotFound, "ACCOUNT_NOT_FOUND", "Account not found"}
	ErrAccountExists     = &AppError{http.StatusConflict, "ACCOUNT_EXISTS", "Account already exists for this currency"}
	ErrInvalidCurrency   = &AppError{http.StatusUnprocessableEntity, "INVALID_CURRENCY", "Currency is not supported"}
	ErrInvalidAmount     = &AppError{http.StatusUnprocessableEntity, "INVALID_AMOUNT", "Amount must be greater than zero"}
	ErrCurrencyMismatch  = &AppError{http.StatusUnprocessableEntity, "CURRENCY_MISMATCH", "Currency does not match the account"}
	ErrSameAccount       = &AppError{http.StatusUnprocessableEntity, "SAME_ACCOUNT", "Cannot transfer to the same account"}
	ErrNegativeMoney     = &AppError{http.StatusUnprocessableEntity, "NEGATIVE_AMOUNT", "Cannot transfer a negative amount"}
	ErrInsufficientFunds = &AppError{http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS", "Insufficient funds"}
)
