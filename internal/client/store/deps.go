package store

import (
	"context"
	"io"

	"github.com/dailyhustle/hustle/internal/client/gateway"
	"github.com/dailyhustle/hustle/internal/client/models"
	"github.com/dailyhustle/hustle/internal/client/notify"
	"github.com/dailyhustle/hustle/internal/logging"
)

// Gateway is the part of *gateway.Gateway the store drives.
type Gateway interface {
	GetUser(ctx context.Context) (gateway.UserResponse, error)
	UpdateUser(ctx context.Context, patch any) error
	GetBalance(ctx context.Context) (models.Balance, error)
	ListTasks(ctx context.Context) ([]models.Task, error)
	StartTask(ctx context.Context, taskID string) (models.StartedProof, error)
	ListMyTasks(ctx context.Context) ([]models.TaskProof, error)
	UpdateTaskProof(ctx context.Context, proofID string, patch models.ProofPatch) error
	UploadFile(ctx context.Context, filename string, r io.Reader) (string, error)
	Login(ctx context.Context, identifier, password string) (gateway.AuthResult, error)
	OAuthLogin(ctx context.Context, firebaseToken, referralCode string) (gateway.AuthResult, error)
	Register(ctx context.Context, f models.RegisterForm) error
	VerifyOTP(ctx context.Context, email, code string) error
	VerifyUsername(ctx context.Context, username string) (bool, error)
	CompleteOnboarding(ctx context.Context, f models.OnboardingForm) error
	SubmitKYC(ctx context.Context, f models.KYCForm) error
	ListBanks(ctx context.Context) ([]models.Bank, error)
	VerifyBankAccount(ctx context.Context, accountNumber, bankCode string) (models.ResolvedAccount, error)
	AddBankAccount(ctx context.Context, acc models.BankAccount) error
	RemoveBankAccount(ctx context.Context, accountID, password string) error
	SetDefaultBankAccount(ctx context.Context, accountID string) error
	RequestWithdrawal(ctx context.Context, amount float64, accountID string) (models.Withdrawal, error)
}

// Tokens is the persisted session; *tokenstore.Store implements it.
type Tokens interface {
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
	GetToken(ctx context.Context) (string, bool, error)
	SetLoggedIn(ctx context.Context, v bool) error
	IsLoggedIn(ctx context.Context) bool
	Reconcile(ctx context.Context) (bool, error)
	SaveUser(ctx context.Context, p models.UserProfile) error
	LoadUser(ctx context.Context) (models.UserProfile, bool, error)
	SaveTasks(ctx context.Context, tasks []models.Task) error
	LoadTasks(ctx context.Context) ([]models.Task, bool, error)
	SetTab(ctx context.Context, key, tab string) error
	Tab(ctx context.Context, key string) string
}

type Deps struct {
	Gateway  Gateway
	Tokens   Tokens
	Notifier notify.Notifier
	Logger   logging.Logger
}
