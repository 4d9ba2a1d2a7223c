package tui

import (
	"sync"
	"time"

	"github.com/JaimeStill/octo/internal/dashboard"
)

// Screen ids used as creation flow redirect targets.
const (
	pathPrices = "prices"
	pathSignIn = "signin"
)

type redirect struct {
	path  string
	delay time.Duration
}

// effects collects the notices and redirects produced while a submission runs
// off the update loop; they are drained into the submission's result message.
type effects struct {
	mu       sync.Mutex
	notices  []dashboard.Notice
	redirect *redirect
}

func (e *effects) Notify(n dashboard.Notice) {
	e.mu.Lock()
	e.notices = append(e.notices, n)
	e.mu.Unlock()
}

func (e *effects) RedirectAfter(path string, delay time.Duration) {
	e.mu.Lock()
	e.redirect = &redirect{path: path, delay: delay}
	e.mu.Unlock()
}

func (e *effects) drain() ([]dashboard.Notice, *redirect) {
	e.mu.Lock()
	defer e.mu.Unlock()

	notices, r := e.notices, e.redirect
	e.notices, e.redirect = nil, nil
	return notices, r
}
