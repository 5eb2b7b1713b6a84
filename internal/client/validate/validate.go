// Package validate holds the client-side checks that block a submission
// before any request is made.
package validate

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/dailyhustle/hustle/internal/client/models"
)

// Error is a local validation failure. Message is shown to the user as is.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

func fail(field, msg string) *Error { return &Error{Field: field, Message: msg} }

// MaxUploadSize is the largest image accepted for proofs, avatars and IDs.
const MaxUploadSize = 5 * 1024 * 1024

// MinPasswordStrength is the score registration requires.
const MinPasswordStrength = 4

var (
	upper   = regexp.MustCompile(`[A-Z]`)
	lower   = regexp.MustCompile(`[a-z]`)
	digit   = regexp.MustCompile(`\d`)
	special = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
	otp     = regexp.MustCompile(`^\d{6}$`)
)

// PasswordStrength scores pw from 0 to 5, one point per rule met.
func PasswordStrength(pw string) int {
	score := 0
	if len(pw) >= 8 {
		score++
	}
	for _, re := range []*regexp.Regexp{upper, lower, digit, special} {
		if re.MatchString(pw) {
			score++
		}
	}
	return score
}

// StrengthLabel names a score for display.
func StrengthLabel(score int) string {
	labels := []string{"Too Short", "Weak", "Fair", "Good", "Strong"}
	if score < 0 {
		score = 0
	}
	if score >= len(labels) {
		score = len(labels) - 1
	}
	return labels[score]
}

func Register(f models.RegisterForm) error {
	if strings.TrimSpace(f.Email) == "" {
		return fail("email", "Email is required")
	}
	if PasswordStrength(f.Password) < MinPasswordStrength {
		return fail("password", "Please choose a stronger password.")
	}
	return nil
}

func OTP(code string) error {
	if !otp.MatchString(code) {
		return fail("verification_code", "Please enter all 6 digits.")
	}
	return nil
}

// NormalizePhone rewrites a +234 prefix to the local 0 form.
func NormalizePhone(phone string) string {
	if strings.HasPrefix(phone, "+234") {
		return "0" + phone[len("+234"):]
	}
	return phone
}

// UsernameCheckable reports whether a username is long enough to look up.
func UsernameCheckable(username string) bool {
	return len(username) >= 3
}

// OnboardingDetails checks the first step: required fields and an
// available username.
func OnboardingDetails(f models.OnboardingForm, usernameAvailable bool) error {
	if f.FirstName == "" || f.LastName == "" || f.Username == "" || f.Phone == "" {
		return fail("", "Please fill in all required fields")
	}
	if !usernameAvailable {
		return fail("username", "Please choose an available username")
	}
	return nil
}

// OnboardingCategories checks the second step.
func OnboardingCategories(categories []string) error {
	if len(categories) == 0 {
		return fail("preferred_job_categories", "Please select at least one job category")
	}
	for _, c := range categories {
		if !slices.Contains(models.JobCategories, c) {
			return fail("preferred_job_categories", fmt.Sprintf("Unknown job category %q", c))
		}
	}
	return nil
}

// Image checks an upload's declared content type and size.
func Image(contentType string, size int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return fail("file", "Only image files allowed.")
	}
	if size > MaxUploadSize {
		return fail("file", "Image must be under 5MB.")
	}
	return nil
}

// KYC checks the identity form. The document itself is checked by Image.
func KYC(f models.KYCForm) error {
	if strings.TrimSpace(f.FullName) == "" {
		return fail("full_name", "Full name is required")
	}
	if _, err := time.Parse(time.DateOnly, f.DOB); err != nil {
		return fail("DOB", "Date of birth must be YYYY-MM-DD")
	}
	if strings.TrimSpace(f.IdentificationNumber) == "" {
		return fail("identification_number", "Identification number is required")
	}
	if strings.TrimSpace(f.ResidentialAddress) == "" {
		return fail("residential_address", "Residential address is required")
	}
	return nil
}

// MinWithdrawal is the smallest payout, in the wallet currency.
const MinWithdrawal = 1000

// Withdrawal applies the wallet rules in order: KYC, minimum, balance.
// It never touches the network.
func Withdrawal(p models.UserProfile, amount float64) error {
	if !p.KYC.Verified() {
		return models.NewDomainError(models.CodeKYCRequired, "Complete your KYC first!")
	}
	if amount < MinWithdrawal {
		return models.NewDomainError(models.CodeMinimumWithdrawal, fmt.Sprintf("Minimum withdrawal ₦%d", MinWithdrawal))
	}
	if amount > p.Balance {
		return models.NewDomainError(models.CodeInsufficientFunds, "Insufficient funds!")
	}
	return nil
}

func BankAccount(accountNumber, bankCode string) error {
	if accountNumber == "" || !digitsOnly(accountNumber) {
		return fail("account_number", "Account number must contain digits only")
	}
	if bankCode == "" {
		return fail("bank_code", "Select a bank")
	}
	return nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
