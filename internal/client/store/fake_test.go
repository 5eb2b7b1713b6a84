package store

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/dailyhustle/hustle/internal/client/gateway"
	"github.com/dailyhustle/hustle/internal/client/models"
)

// fakeGateway answers from fixed fields and records every call by name.
type fakeGateway struct {
	mu    sync.Mutex
	calls []string

	user      json.RawMessage
	userErr   error
	onGetUser func()
	balance   models.Balance
	tasks     []models.Task
	proofs    []models.TaskProof
	proofErr  error

	token    string
	loginErr error

	started  models.StartedProof
	startErr error
	patches  []models.ProofPatch

	uploadSrc string
	uploadErr error

	usernameFree bool
	banks        []models.Bank
	resolved     models.ResolvedAccount
	added        []models.BankAccount
	withdrawal   models.Withdrawal
}

func (f *fakeGateway) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeGateway) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeGateway) GetUser(context.Context) (gateway.UserResponse, error) {
	f.record("GetUser")
	if f.onGetUser != nil {
		f.onGetUser()
	}
	if f.userErr != nil {
		return gateway.UserResponse{}, f.userErr
	}
	var p models.UserProfile
	_ = json.Unmarshal(f.user, &p)
	return gateway.UserResponse{Profile: p, Raw: f.user}, nil
}

func (f *fakeGateway) UpdateUser(context.Context, any) error {
	f.record("UpdateUser")
	return nil
}

func (f *fakeGateway) GetBalance(context.Context) (models.Balance, error) {
	f.record("GetBalance")
	return f.balance, nil
}

func (f *fakeGateway) ListTasks(context.Context) ([]models.Task, error) {
	f.record("ListTasks")
	return f.tasks, nil
}

func (f *fakeGateway) StartTask(context.Context, string) (models.StartedProof, error) {
	f.record("StartTask")
	return f.started, f.startErr
}

func (f *fakeGateway) ListMyTasks(context.Context) ([]models.TaskProof, error) {
	f.record("ListMyTasks")
	return f.proofs, f.proofErr
}

func (f *fakeGateway) UpdateTaskProof(_ context.Context, _ string, p models.ProofPatch) error {
	f.record("UpdateTaskProof")
	f.mu.Lock()
	f.patches = append(f.patches, p)
	f.mu.Unlock()
	return nil
}

func (f *fakeGateway) UploadFile(context.Context, string, io.Reader) (string, error) {
	f.record("UploadFile")
	return f.uploadSrc, f.uploadErr
}

func (f *fakeGateway) Login(context.Context, string, string) (gateway.AuthResult, error) {
	f.record("Login")
	if f.loginErr != nil {
		return gateway.AuthResult{}, f.loginErr
	}
	return gateway.AuthResult{Token: f.token}, nil
}

func (f *fakeGateway) OAuthLogin(context.Context, string, string) (gateway.AuthResult, error) {
	f.record("OAuthLogin")
	return gateway.AuthResult{Token: f.token}, f.loginErr
}

func (f *fakeGateway) Register(context.Context, models.RegisterForm) error {
	f.record("Register")
	return nil
}

func (f *fakeGateway) VerifyOTP(context.Context, string, string) error {
	f.record("VerifyOTP")
	return nil
}

func (f *fakeGateway) VerifyUsername(context.Context, string) (bool, error) {
	f.record("VerifyUsername")
	return f.usernameFree, nil
}

func (f *fakeGateway) CompleteOnboarding(context.Context, models.OnboardingForm) error {
	f.record("CompleteOnboarding")
	return nil
}

func (f *fakeGateway) SubmitKYC(context.Context, models.KYCForm) error {
	f.record("SubmitKYC")
	return nil
}

func (f *fakeGateway) ListBanks(context.Context) ([]models.Bank, error) {
	f.record("ListBanks")
	return f.banks, nil
}

func (f *fakeGateway) VerifyBankAccount(context.Context, string, string) (models.ResolvedAccount, error) {
	f.record("VerifyBankAccount")
	return f.resolved, nil
}

func (f *fakeGateway) AddBankAccount(_ context.Context, acc models.BankAccount) error {
	f.record("AddBankAccount")
	f.mu.Lock()
	f.added = append(f.added, acc)
	f.mu.Unlock()
	return nil
}

func (f *fakeGateway) RemoveBankAccount(context.Context, string, string) error {
	f.record("RemoveBankAccount")
	return nil
}

func (f *fakeGateway) SetDefaultBankAccount(context.Context, string) error {
	f.record("SetDefaultBankAccount")
	return nil
}

func (f *fakeGateway) RequestWithdrawal(context.Context, float64, string) (models.Withdrawal, error) {
	f.record("RequestWithdrawal")
	return f.withdrawal, nil
}
