package response

import (
	"errors"
	"net/http"

	"github.com/venuedesk/finance-backend-go/internal/domain/refdata"
	"github.com/venuedesk/finance-backend-go/internal/domain/transaction"
	"github.com/venuedesk/finance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Reference data errors
	case errors.Is(err, refdata.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, refdata.ErrOperatorNotFound):
		NotFound(w, "Operator not found")
	case errors.Is(err, refdata.ErrSalaryRuleNotFound):
		NotFound(w, "Salary rule not found")

	// Transaction errors
	case errors.Is(err, transaction.ErrRecordNotFound):
		NotFound(w, "Transaction record not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
