package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodeReturnNotFound     = "RETURN_NOT_FOUND"
	ErrCodeTrackingNotFound   = "TRACKING_NOT_FOUND"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeCustomerNotFound   = "CUSTOMER_NOT_FOUND"
	ErrCodeInvalidStatus      = "INVALID_STATUS"
	ErrCodeInvalidTransition  = "INVALID_TRANSITION"
	ErrCodeInvalidDecision    = "INVALID_DECISION"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeInvalidPromoCode   = "INVALID_PROMO_CODE"
	ErrCodeInvalidPromoLength = "INVALID_PROMO_LENGTH"
	ErrCodeInvalidReportKind  = "INVALID_REPORT_KIND"
	ErrCodeReturnNotEligible  = "RETURN_NOT_ELIGIBLE"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrOrderNotFound      = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrReturnNotFound     = NewDomainError(ErrCodeReturnNotFound, "Return request not found")
	ErrTrackingNotFound   = NewDomainError(ErrCodeTrackingNotFound, "Delivery tracking not found")
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrCustomerNotFound   = NewDomainError(ErrCodeCustomerNotFound, "Customer not found")
	ErrInvalidStatus      = NewDomainError(ErrCodeInvalidStatus, "Status is not a recognised value")
	ErrInvalidTransition  = NewDomainError(ErrCodeInvalidTransition, "Status transition is not permitted")
	ErrInvalidDecision    = NewDomainError(ErrCodeInvalidDecision, "Return decision is not a recognised value")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidPromoCode   = NewDomainError(ErrCodeInvalidPromoCode, "Promo code must appear in at least two code lists")
	ErrInvalidPromoLength = NewDomainError(ErrCodeInvalidPromoLength, "Promo code must be between 8 and 10 characters")
	ErrInvalidReportKind  = NewDomainError(ErrCodeInvalidReportKind, "Unknown report kind")
	ErrReturnNotEligible  = NewDomainError(ErrCodeReturnNotEligible, "Order is not eligible for return")
)
