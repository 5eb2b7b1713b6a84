package models

import "fmt"

// Domain error codes surfaced by mutations.
const (
	CodeTaskStartFailed   = "TASK_START_FAILED"
	CodeUploadNoSrc       = "UPLOAD_NO_SRC"
	CodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	CodeMinimumWithdrawal = "MINIMUM_WITHDRAWAL"
	CodeKYCRequired       = "KYC_REQUIRED"
	CodeProofLocked       = "PROOF_LOCKED"
	CodeNoToken           = "NO_TOKEN"
)

// DomainError is a business-rule failure. The mutation that returned it
// was not applied.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

func NewDomainError(code, msg string) *DomainError {
	return &DomainError{Code: code, Message: msg}
}

// Sentinels for errors.Is.
var (
	ErrTaskStartFailed   = &DomainError{Code: CodeTaskStartFailed}
	ErrUploadNoSrc       = &DomainError{Code: CodeUploadNoSrc}
	ErrInsufficientFunds = &DomainError{Code: CodeInsufficientFunds}
	ErrMinimumWithdrawal = &DomainError{Code: CodeMinimumWithdrawal}
	ErrKYCRequired       = &DomainError{Code: CodeKYCRequired}
	ErrProofLocked       = &DomainError{Code: CodeProofLocked}
	ErrNoToken           = &DomainError{Code: CodeNoToken}
)
