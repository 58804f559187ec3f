package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	admindomain "github.com/smallbiznis/hynox/internal/admin/domain"
	authdomain "github.com/smallbiznis/hynox/internal/auth/domain"
	catalogdomain "github.com/smallbiznis/hynox/internal/catalog/domain"
	clientdomain "github.com/smallbiznis/hynox/internal/client/domain"
	companydomain "github.com/smallbiznis/hynox/internal/company/domain"
	invoicedomain "github.com/smallbiznis/hynox/internal/invoice/domain"
	quotationdomain "github.com/smallbiznis/hynox/internal/quotation/domain"
	"github.com/smallbiznis/hynox/pkg/db"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorResponse struct {
	Error  string            `json:"error"`
	Type   string            `json:"type,omitempty"`
	Errors []ValidationError `json:"errors,omitempty"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrConflict       = errors.New("conflict")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, payload)
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorResponse) {
	if vErr := asValidationErrors(err); vErr != nil {
		message := "validation error"
		if len(vErr.Errors) == 1 {
			message = vErr.Errors[0].Message
		}
		return http.StatusBadRequest, errorResponse{
			Error:  message,
			Type:   "validation_error",
			Errors: vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		message := validationErrorMessage(code)
		return http.StatusBadRequest, errorResponse{
			Error: message,
			Type:  "validation_error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: message,
				},
			},
		}
	}

	switch {
	case errors.Is(err, authdomain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "Invalid credentials", Type: "unauthorized"}
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrUnauthorized),
		errors.Is(err, authdomain.ErrMissingToken):
		return http.StatusUnauthorized, errorResponse{Error: "unauthorized", Type: "unauthorized"}
	case errors.Is(err, authdomain.ErrRateLimited):
		return http.StatusTooManyRequests, errorResponse{Error: "too many login attempts", Type: "rate_limited"}
	case errors.Is(err, admindomain.ErrEmailTaken):
		return http.StatusConflict, errorResponse{Error: "email already in use", Type: "conflict"}
	case errors.Is(err, ErrConflict), db.IsDuplicateKeyErr(err):
		return http.StatusConflict, errorResponse{Error: "conflict", Type: "conflict"}
	case isNotFoundError(err):
		return http.StatusNotFound, errorResponse{Error: notFoundMessage(err), Type: "not_found"}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "internal server error", Type: "internal_error"}
	}
}

// classifyErrorForLog feeds the request logger's error_type and error_code.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	if status == http.StatusBadRequest && len(payload.Errors) > 0 {
		return payload.Type, payload.Errors[0].Code
	}
	return payload.Type, strings.ReplaceAll(strings.ToLower(payload.Error), " ", "_")
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, authdomain.ErrMissingCredentials):
		return true
	case isClientValidationError(err),
		isServiceItemValidationError(err),
		isInvoiceValidationError(err),
		isQuotationValidationError(err),
		isAdminValidationError(err),
		errors.Is(err, companydomain.ErrInvalidName):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, clientdomain.ErrNotFound),
		errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrInvoiceNotFound),
		errors.Is(err, quotationdomain.ErrQuotationNotFound),
		errors.Is(err, admindomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, clientdomain.ErrNotFound):
		return "Client not found"
	case errors.Is(err, catalogdomain.ErrNotFound):
		return "Service not found"
	case errors.Is(err, invoicedomain.ErrInvoiceNotFound):
		return "Invoice not found"
	case errors.Is(err, quotationdomain.ErrQuotationNotFound):
		return "Quotation not found"
	case errors.Is(err, admindomain.ErrNotFound):
		return "Admin not found"
	default:
		return "not found"
	}
}

func validationErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, authdomain.ErrMissingCredentials):
		return "missing_credentials"
	default:
		return err.Error()
	}
}

func validationErrorField(code string) string {
	switch code {
	case "invalid_request":
		return "request"
	case "missing_credentials":
		return "credentials"
	case "invalid_company_name":
		return "name"
	case "invalid_invoice_id", "invalid_quotation_id":
		return "id"
	}
	return strings.TrimPrefix(code, "invalid_")
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	case "missing_credentials":
		return "email and password are required"
	default:
		return strings.ReplaceAll(code, "_", " ")
	}
}
