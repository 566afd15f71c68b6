// Package errors provides the structured error taxonomy shared by the bot's
// handlers and stores. Errors never cross the router boundary; handlers map
// them to user-facing text and the router keeps a last-resort apology.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeCustomerLookupFailed  ErrorCode = "CUSTOMER_LOOKUP_FAILED"
	ErrCodeCustomerCreateFailed  ErrorCode = "CUSTOMER_CREATE_FAILED"
	ErrCodeOrderCreateFailed     ErrorCode = "ORDER_CREATE_FAILED"
	ErrCodeOrderValidationFailed ErrorCode = "ORDER_VALIDATION_FAILED"
	ErrCodeSessionLoadFailed     ErrorCode = "SESSION_LOAD_FAILED"
	ErrCodeSessionSaveFailed     ErrorCode = "SESSION_SAVE_FAILED"
	ErrCodeConversationLogFailed ErrorCode = "CONVERSATION_LOG_FAILED"
	ErrCodeNotifySendFailed      ErrorCode = "NOTIFICATION_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewCustomerLookupFailedError wraps a store read failure for a customer row.
func NewCustomerLookupFailedError(phone string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCustomerLookupFailed,
		Message:   "Customer lookup failed",
		Details:   fmt.Sprintf("phone: %s, error: %s", phone, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCustomerCreateFailedError wraps a store write failure for a customer row.
func NewCustomerCreateFailedError(phone string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCustomerCreateFailed,
		Message:   "Customer creation failed",
		Details:   fmt.Sprintf("phone: %s, error: %s", phone, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewOrderCreateFailedError wraps a store write failure during order creation.
func NewOrderCreateFailedError(orderID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOrderCreateFailed,
		Message:   "Order creation failed",
		Details:   fmt.Sprintf("orderId: %s, error: %s", orderID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewOrderValidationFailedError marks a detail bag that failed schema validation.
func NewOrderValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeOrderValidationFailed,
		Message:   "Order details failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionLoadFailedError wraps a session store read failure.
func NewSessionLoadFailedError(sender string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionLoadFailed,
		Message:   "Pending order session load failed",
		Details:   fmt.Sprintf("sender: %s, error: %s", sender, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionSaveFailedError wraps a session store write failure.
func NewSessionSaveFailedError(sender string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionSaveFailed,
		Message:   "Pending order session save failed",
		Details:   fmt.Sprintf("sender: %s, error: %s", sender, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewConversationLogFailedError wraps a conversation audit-trail write failure.
func NewConversationLogFailedError(phone string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeConversationLogFailed,
		Message:   "Conversation log write failed",
		Details:   fmt.Sprintf("phone: %s, error: %s", phone, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotifySendFailedError wraps a confirmation delivery failure.
func NewNotifySendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotifySendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// IsRetryable reports whether err carries a retryable StandardError code.
func IsRetryable(err error) bool {
	if se, ok := err.(*StandardError); ok {
		return se.Retryable
	}
	return false
}
