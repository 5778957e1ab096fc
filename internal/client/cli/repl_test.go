package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/cropcare/internal/common"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	errs  map[string]error
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return f.errs[name]
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.loggedIn = true
	return f.record("register")
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(ctx context.Context) error    { return f.record("whoami") }
func (f *fakeExec) Update(ctx context.Context) error    { return f.record("update") }
func (f *fakeExec) Recommend(ctx context.Context) error { return f.record("recommend") }

func run(t *testing.T, exec *fakeExec, lines ...string) []string {
	t.Helper()
	out := captureOutput(t)
	reader := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "status" }, reader)
	return *out
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	exec := &fakeExec{}
	out := run(t, exec,
		"help",
		"login",
		"help",
		"whoami",
		"",
		"update",
		"RECOMMEND",
		"logout",
		"register",
		"foobar",
		"exit",
		"login",
	)

	assert.Equal(t, []string{"login", "whoami", "update", "recommend", "logout", "register"}, exec.calls)
	assert.Contains(t, out, "Available commands: register, login, exit")
	assert.Contains(t, out, "Available commands: whoami, update, recommend, logout, exit")
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Equal(t, "Bye!", out[len(out)-1])
}

func TestRunREPL_ReportsErrorsAndContinues(t *testing.T) {
	exec := &fakeExec{errs: map[string]error{"login": common.ErrInvalidCredentials}}
	out := run(t, exec, "login", "whoami", "quit")

	assert.Equal(t, []string{"login", "whoami"}, exec.calls)
	assert.Contains(t, out, "Invalid email or password.")
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	exec := &fakeExec{}
	run(t, exec, "login")

	assert.Equal(t, []string{"login"}, exec.calls)
}
