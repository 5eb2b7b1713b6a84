package models

// DefaultCountry is preselected on registration and onboarding.
const DefaultCountry = "Ghana"

// RegisterForm is the sign-up payload.
type RegisterForm struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	ReferralCode string `json:"referral_code"`
	Country      string `json:"country"`
}

// Identifier is what auto-login after verification signs in with.
func (f RegisterForm) Identifier() string {
	if f.Username != "" {
		return f.Username
	}
	return f.Email
}

// OnboardingForm completes a profile after first sign-in.
type OnboardingForm struct {
	FirstName              string   `json:"first_name"`
	LastName               string   `json:"last_name"`
	Username               string   `json:"username"`
	Phone                  string   `json:"phone"`
	Country                string   `json:"country"`
	PreferredJobCategories []string `json:"preferred_job_categories"`
	ReferralCode           string   `json:"referral_code,omitempty"`
}

// ProfileUpdate edits the basic profile fields. Empty fields are not sent.
type ProfileUpdate struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Photo     string `json:"photo,omitempty"`
}

// KYCForm is the identity submission. IDSrc is filled after the document
// upload.
type KYCForm struct {
	FullName             string `json:"full_name"`
	DOB                  string `json:"DOB"`
	IdentificationNumber string `json:"identification_number"`
	ResidentialAddress   string `json:"residential_address"`
	IDSrc                string `json:"id_src"`
}

// JobCategories are the onboarding choices the backend accepts.
var JobCategories = []string{
	"content-creation",
	"social-media",
	"data-entry",
	"customer-service",
	"graphic-design",
	"writing",
	"web-development",
	"virtual-assistant",
	"market-research",
	"testing",
	"tutoring",
	"transcription",
}

// ListQuery pages through transactions and referrals.
type ListQuery struct {
	PageNo   int
	LimitNo  int
	Order    string
	Search   string
	FromDate string
	ToDate   string
}
