package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := ""
	if u := a.session.CurrentUser(); u != nil {
		s = u.Email + " "
	}
	s = s + string(a.Mode())
	return fmt.Sprintf("(%s)", s)
}

// Root greets the user, starts the connectivity watcher and runs the REPL.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to CropCare CLI (type 'help' for commands)")
	if u := a.session.CurrentUser(); u != nil {
		printlnFn(fmt.Sprintf("Welcome back, %s!", u.Name))
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()
	// the watcher must be gone before Run closes the recommender
	defer func() {
		cancel()
		<-done
	}()

	runREPL(ctx, a, a.getStatus, a.reader)
}
