package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/cropcare/internal/client/config"
	"github.com/dmitrijs2005/cropcare/internal/client/models"
	"github.com/dmitrijs2005/cropcare/internal/client/services"
	"github.com/dmitrijs2005/cropcare/internal/common"
	"github.com/dmitrijs2005/cropcare/internal/logging"
)

// ---- fake session ----

type fakeSession struct {
	current *models.Account

	regProfile models.Profile
	regPass    []byte
	regErr     error

	loginEmail string
	loginPass  []byte
	loginErr   error

	logoutCalls int
	logoutErr   error

	lastPatch models.ProfilePatch
	updateErr error
}

func (f *fakeSession) Load(context.Context) error { return nil }

func (f *fakeSession) Register(_ context.Context, p models.Profile, secret []byte) (*models.Account, error) {
	f.regProfile, f.regPass = p, append([]byte(nil), secret...)
	if f.regErr != nil {
		return nil, f.regErr
	}
	f.current = &models.Account{ID: "acc-1", Profile: p}
	return f.current.Clone(), nil
}

func (f *fakeSession) Login(_ context.Context, email string, secret []byte) (*models.Account, error) {
	f.loginEmail, f.loginPass = email, append([]byte(nil), secret...)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.current = &models.Account{ID: "acc-1", Profile: models.Profile{Email: email, Name: "Asha"}}
	return f.current.Clone(), nil
}

func (f *fakeSession) Logout(context.Context) error {
	f.logoutCalls++
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.current = nil
	return nil
}

func (f *fakeSession) UpdateProfile(_ context.Context, p models.ProfilePatch) (*models.Account, error) {
	f.lastPatch = p
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.current == nil {
		return nil, common.ErrNoActiveSession
	}
	p.Apply(f.current)
	return f.current.Clone(), nil
}

func (f *fakeSession) CurrentUser() *models.Account { return f.current.Clone() }

func (f *fakeSession) State() services.State {
	if f.current != nil {
		return services.StateLoggedIn
	}
	return services.StateLoggedOut
}

func (f *fakeSession) Flush(context.Context) error { return nil }

// ---- fake recommender ----

type fakeRecommender struct {
	mu sync.Mutex

	rec        *models.Recommendation
	recErr     error
	lastSample models.SoilSample

	pingErr   error
	pings     int
	closeCall int

	// blockPing makes Ping wait for its context; started is closed on the first call.
	blockPing      bool
	started        chan struct{}
	inFlight       int
	closedInFlight bool
}

func (f *fakeRecommender) Recommend(_ context.Context, s models.SoilSample) (*models.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSample = s
	return f.rec, f.recErr
}

func (f *fakeRecommender) Ping(ctx context.Context) error {
	f.mu.Lock()
	f.pings++
	if !f.blockPing {
		defer f.mu.Unlock()
		return f.pingErr
	}
	f.inFlight++
	if f.pings == 1 && f.started != nil {
		close(f.started)
	}
	f.mu.Unlock()

	<-ctx.Done()

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()
	return ctx.Err()
}

func (f *fakeRecommender) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

func (f *fakeRecommender) pingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pings
}

func (f *fakeRecommender) Close(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeCall++
	f.closedInFlight = f.inFlight > 0
	return nil
}

// ---- helpers ----

func newTestApp(s *fakeSession, r *fakeRecommender) *App {
	return &App{
		config: &config.Config{
			OnlineCheckInterval: 10 * time.Millisecond,
			RequestTimeout:      time.Second,
		},
		session:     s,
		recommender: r,
		logger:      logging.Discard(),
		reader:      bufio.NewReader(strings.NewReader("")),
		out:         io.Discard,
		mode:        ModeOffline,
	}
}

// captureOutput replaces printlnFn and printFn and returns the collected lines.
func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var (
		mu  sync.Mutex
		out []string
	)
	origLn, orig := printlnFn, printFn
	printlnFn = func(a ...any) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		out = append(out, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	printFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn, printFn = origLn, orig })
	return &out
}

// stubAnswers makes getSimpleText return answers in order and getPassword
// return pw.
func stubAnswers(t *testing.T, pw string, answers ...string) *[]string {
	t.Helper()
	var prompts []string
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		prompts = append(prompts, prompt)
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
	return &prompts
}
