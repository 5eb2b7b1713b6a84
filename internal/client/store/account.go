package store

import (
	"context"
	"strings"

	"github.com/dailyhustle/hustle/internal/client/models"
	"github.com/dailyhustle/hustle/internal/client/validate"
	"github.com/dailyhustle/hustle/internal/filex"
)

// CheckUsername reports whether username is free. Names too short to look
// up are reported as unavailable without a request. The current user's own
// name counts as available.
func (s *Store) CheckUsername(ctx context.Context, username string) (bool, error) {
	username = strings.TrimSpace(username)
	if !validate.UsernameCheckable(username) {
		return false, nil
	}
	if u := s.UserData(); u.Username != "" && strings.EqualFold(u.Username, username) {
		return true, nil
	}
	return s.gw.VerifyUsername(ctx, username)
}

func (s *Store) CompleteOnboarding(ctx context.Context, f models.OnboardingForm) error {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Username = strings.TrimSpace(f.Username)
	f.Phone = validate.NormalizePhone(strings.TrimSpace(f.Phone))
	f.ReferralCode = strings.TrimSpace(f.ReferralCode)
	if f.Country == "" {
		f.Country = models.DefaultCountry
	}

	available, err := s.CheckUsername(ctx, f.Username)
	if err != nil {
		return s.fail(ctx, err, "Could not check username")
	}
	if err := validate.OnboardingDetails(f, available); err != nil {
		return s.reject(err)
	}
	if err := validate.OnboardingCategories(f.PreferredJobCategories); err != nil {
		return s.reject(err)
	}

	if err := s.gw.CompleteOnboarding(ctx, f); err != nil {
		return s.fail(ctx, err, "Failed to complete profile")
	}
	_ = s.RefetchUserData(ctx)
	s.notify.Success("Profile completed successfully! Welcome aboard!")
	return nil
}

// UpdateProfile saves the non-empty fields of upd.
func (s *Store) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error {
	upd.FirstName = strings.TrimSpace(upd.FirstName)
	upd.LastName = strings.TrimSpace(upd.LastName)
	upd.Phone = validate.NormalizePhone(strings.TrimSpace(upd.Phone))
	if upd == (models.ProfileUpdate{}) {
		return s.invalid("", "Nothing to save")
	}
	if err := s.gw.UpdateUser(ctx, upd); err != nil {
		return s.fail(ctx, err, "Save failed")
	}
	_ = s.RefetchUserData(ctx)
	s.notify.Success("Profile saved!")
	return nil
}

// UpdateAvatar uploads file and sets it as the profile photo. A failed
// upload leaves the profile untouched.
func (s *Store) UpdateAvatar(ctx context.Context, file *filex.Upload) error {
	if file == nil {
		return s.invalid("file", "No image selected")
	}
	if err := validate.Image(file.ContentType, file.Size); err != nil {
		return s.reject(err)
	}
	src, err := s.gw.UploadFile(ctx, file.Name, file.Reader)
	if err != nil {
		return s.fail(ctx, err, "Upload failed")
	}
	if err := s.gw.UpdateUser(ctx, models.ProfileUpdate{Photo: src}); err != nil {
		return s.fail(ctx, err, "Save failed")
	}
	_ = s.RefetchUserData(ctx)
	s.notify.Success("Profile picture updated!")
	return nil
}

// SubmitKYC uploads the identity document and submits the form with its
// URL.
func (s *Store) SubmitKYC(ctx context.Context, f models.KYCForm, doc *filex.Upload) error {
	if doc == nil {
		return s.invalid("id_src", "Please upload your ID document.")
	}
	f.FullName = strings.TrimSpace(f.FullName)
	f.DOB = strings.TrimSpace(f.DOB)
	if err := validate.KYC(f); err != nil {
		return s.reject(err)
	}
	if err := validate.Image(doc.ContentType, doc.Size); err != nil {
		return s.reject(err)
	}

	src, err := s.gw.UploadFile(ctx, doc.Name, doc.Reader)
	if err != nil {
		return s.fail(ctx, err, "Failed to upload document")
	}
	f.IDSrc = src
	if err := s.gw.SubmitKYC(ctx, f); err != nil {
		return s.fail(ctx, err, "KYC submission failed")
	}
	_ = s.RefetchUserData(ctx)
	s.notify.Success("KYC submitted successfully!")
	return nil
}

// Withdraw requests a payout to accountID, or to the default account when
// it is empty. The wallet rules are checked locally first; a rejected
// request never reaches the backend. The balance is re-read afterwards.
func (s *Store) Withdraw(ctx context.Context, amount float64, accountID string) (models.Withdrawal, error) {
	user := s.UserData()
	if err := validate.Withdrawal(user, amount); err != nil {
		return models.Withdrawal{}, s.reject(err)
	}
	if accountID == "" {
		acc, ok := user.DefaultBankAccount()
		if !ok {
			return models.Withdrawal{}, s.invalid("bank_account_id", "Add a bank account first")
		}
		accountID = acc.ID
	}

	w, err := s.gw.RequestWithdrawal(ctx, amount, accountID)
	if err != nil {
		return models.Withdrawal{}, s.fail(ctx, err, "Withdrawal failed")
	}
	s.notify.Success("Withdrawal processing (within 24 hours)")
	if err := s.refreshBalance(ctx); err != nil {
		s.log.Warn(ctx, "refresh balance", "error", err)
	}
	return w, nil
}

// AddBankAccount resolves the account holder's name and saves the account.
// The first account saved becomes the default.
func (s *Store) AddBankAccount(ctx context.Context, accountNumber, bankCode string) (models.BankAccount, error) {
	accountNumber = strings.TrimSpace(accountNumber)
	if err := validate.BankAccount(accountNumber, bankCode); err != nil {
		return models.BankAccount{}, s.reject(err)
	}

	resolved, err := s.gw.VerifyBankAccount(ctx, accountNumber, bankCode)
	if err != nil {
		return models.BankAccount{}, s.fail(ctx, err, "Could not verify account")
	}
	banks, err := s.gw.ListBanks(ctx)
	if err != nil {
		return models.BankAccount{}, s.fail(ctx, err, "Failed to load banks")
	}
	var bankName string
	for _, b := range banks {
		if b.Code == bankCode {
			bankName = b.Name
			break
		}
	}
	if bankName == "" {
		return models.BankAccount{}, s.invalid("bank_code", "Unknown bank")
	}

	acc := models.BankAccount{
		BankName:      bankName,
		AccountNumber: accountNumber,
		AccountName:   resolved.AccountName,
		BankCode:      bankCode,
		IsDefault:     len(s.UserData().BankAccounts) == 0,
	}
	if err := s.gw.AddBankAccount(ctx, acc); err != nil {
		return models.BankAccount{}, s.fail(ctx, err, "Failed to add bank account")
	}
	_ = s.RefetchUserData(ctx)
	s.notify.Success("Bank account added successfully!")
	return acc, nil
}

// RemoveBankAccount deletes an account. The backend asks for the password.
func (s *Store) RemoveBankAccount(ctx context.Context, accountID, password string) error {
	if accountID == "" {
		return s.invalid("account_id", "Select an account")
	}
	if password == "" {
		return s.invalid("password", "Password is required")
	}
	if err := s.gw.RemoveBankAccount(ctx, accountID, password); err != nil {
		return s.fail(ctx, err, "Failed to remove bank account")
	}
	_ = s.RefetchUserData(ctx)
	s.notify.Success("Bank account removed")
	return nil
}

func (s *Store) SetDefaultBankAccount(ctx context.Context, accountID string) error {
	if accountID == "" {
		return s.invalid("account_id", "Select an account")
	}
	if err := s.gw.SetDefaultBankAccount(ctx, accountID); err != nil {
		return s.fail(ctx, err, "Failed to update default account")
	}
	_ = s.RefetchUserData(ctx)
	s.notify.Success("Default account updated")
	return nil
}
