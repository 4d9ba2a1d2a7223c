package app

import (
	"time"

	"github.com/JaimeStill/octo/internal/dashboard"
)

type redirect struct {
	path  string
	delay time.Duration
}

// effects records what a creation flow asked the page to show and where to go next.
type effects struct {
	notices  []dashboard.Notice
	redirect *redirect
}

func (e *effects) Notify(n dashboard.Notice) {
	e.notices = append(e.notices, n)
}

func (e *effects) RedirectAfter(path string, delay time.Duration) {
	e.redirect = &redirect{path: path, delay: delay}
}

func (e *effects) last() *dashboard.Notice {
	if len(e.notices) == 0 {
		return nil
	}
	n := e.notices[len(e.notices)-1]
	return &n
}
