package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/dailyhustle/hustle/internal/client/guard"
	"github.com/dailyhustle/hustle/internal/client/metrics"
	"github.com/dailyhustle/hustle/internal/client/models"
	"github.com/dailyhustle/hustle/internal/client/oauth"
	"github.com/dailyhustle/hustle/internal/client/poller"
	"github.com/dailyhustle/hustle/internal/client/store"
	"github.com/dailyhustle/hustle/internal/filex"
	"github.com/dailyhustle/hustle/internal/logging"
)

// Session is the store surface the commands drive; *store.Store implements it.
type Session interface {
	guard.Session

	Tasks() []models.Task
	State() store.State
	Bootstrap(ctx context.Context) error
	RefreshUserData(ctx context.Context)
	FetchAllTasks(ctx context.Context) ([]models.Task, error)
	FetchMyTasks(ctx context.Context) ([]models.MyTask, error)
	ActiveTab(ctx context.Context, key string) string
	SetActiveTab(ctx context.Context, key, tab string) error

	Login(ctx context.Context, identifier, password string) error
	OAuthLogin(ctx context.Context, firebaseToken, referralCode string) error
	Register(ctx context.Context, f models.RegisterForm) error
	VerifyOTP(ctx context.Context, f models.RegisterForm, code string) (bool, error)
	Logout(ctx context.Context) error

	CheckUsername(ctx context.Context, username string) (bool, error)
	CompleteOnboarding(ctx context.Context, f models.OnboardingForm) error
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error
	UpdateAvatar(ctx context.Context, file *filex.Upload) error
	SubmitKYC(ctx context.Context, f models.KYCForm, doc *filex.Upload) error

	OnApplyFunc(ctx context.Context, task models.Task) (models.StartedProof, error)
	SubmitTaskProof(ctx context.Context, proofID, title, src string) error
	SubmitProofWithFile(ctx context.Context, proofID, title string, file *filex.Upload) error

	Withdraw(ctx context.Context, amount float64, accountID string) (models.Withdrawal, error)
	AddBankAccount(ctx context.Context, accountNumber, bankCode string) (models.BankAccount, error)
	RemoveBankAccount(ctx context.Context, accountID, password string) error
	SetDefaultBankAccount(ctx context.Context, accountID string) error
}

// Remote covers the read-only views that never touch the store;
// *gateway.Gateway implements it.
type Remote interface {
	GetTask(ctx context.Context, taskID string) (models.Task, error)
	GetTaskStats(ctx context.Context) (models.TaskStats, error)
	GetBalance(ctx context.Context) (models.Balance, error)
	ListTransactions(ctx context.Context, q models.ListQuery) ([]models.Transaction, models.Page, error)
	ListNotifications(ctx context.Context) ([]models.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	GetReferralStats(ctx context.Context) (models.ReferralStats, error)
	ListReferrals(ctx context.Context, q models.ListQuery) ([]models.Referral, models.Page, error)
	ListBanks(ctx context.Context) ([]models.Bank, error)
	RequestBadge(ctx context.Context, kind string) error
}

type Deps struct {
	Session      Session
	Remote       Remote
	OAuth        *oauth.Receiver
	Metrics      *metrics.Metrics
	Logger       logging.Logger
	PollInterval time.Duration
	In           io.Reader
	Out          io.Writer
	ErrOut       io.Writer
}

// App holds what every command needs. It is built once per process; the
// shell re-runs the command tree against the same App.
type App struct {
	session  Session
	remote   Remote
	guard    *guard.Guard
	oauth    *oauth.Receiver
	metrics  *metrics.Metrics
	log      logging.Logger
	interval time.Duration

	reader *bufio.Reader
	out    io.Writer
	errOut io.Writer

	mounted bool
	inShell bool
}

func NewApp(d Deps) *App {
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	if d.In == nil {
		d.In = os.Stdin
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.ErrOut == nil {
		d.ErrOut = os.Stderr
	}
	if d.OAuth == nil {
		d.OAuth = oauth.NewReceiver("", d.Logger)
	}
	if d.PollInterval <= 0 {
		d.PollInterval = poller.DefaultInterval
	}
	return &App{
		session:  d.Session,
		remote:   d.Remote,
		guard:    guard.New(d.Session, d.Logger),
		oauth:    d.OAuth,
		metrics:  d.Metrics,
		log:      d.Logger,
		interval: d.PollInterval,
		reader:   bufio.NewReader(d.In),
		out:      d.Out,
		errOut:   d.ErrOut,
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.UserLoggedIn()
}

// mount runs the start-up load once per process.
func (a *App) mount(ctx context.Context) {
	if a.mounted {
		return
	}
	a.mounted = true
	if err := a.session.Bootstrap(ctx); err != nil {
		a.log.Warn(ctx, "bootstrap", "error", err)
	}
}
