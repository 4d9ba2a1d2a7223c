package dashboard_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/octo/internal/agents"
	"github.com/JaimeStill/octo/internal/dashboard"
)

type recordingNavigator struct {
	path  string
	delay time.Duration
}

func (n *recordingNavigator) RedirectAfter(path string, delay time.Duration) {
	n.path = path
	n.delay = delay
}

type recordingNotifier struct {
	notices []dashboard.Notice
}

func (n *recordingNotifier) Notify(notice dashboard.Notice) {
	n.notices = append(n.notices, notice)
}

type countingInvalidator struct {
	owner, id uuid.UUID
	calls     int
}

func (c *countingInvalidator) Invalidate(owner, id uuid.UUID) int {
	c.owner, c.id = owner, id
	c.calls++
	return 1
}

func creatorReturning(err error) (dashboard.Creator, *[]agents.CreateCommand) {
	var got []agents.CreateCommand
	return dashboard.CreatorFunc(func(_ context.Context, cmd agents.CreateCommand) (*agents.Agent, error) {
		got = append(got, cmd)
		if err != nil {
			return nil, err
		}
		return &agents.Agent{ID: uuid.New(), OwnerID: owner, Name: cmd.Name, Instructions: cmd.Instructions}, nil
	}), &got
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name   string
		input  dashboard.CreateInput
		fields []string
	}{
		{"valid", dashboard.CreateInput{Name: "Math Tutor", Instructions: "Teach algebra"}, nil},
		{"empty", dashboard.CreateInput{}, []string{"name", "instructions"}},
		{"whitespace name", dashboard.CreateInput{Name: "   ", Instructions: "x"}, []string{"name"}},
		{"whitespace instructions", dashboard.CreateInput{Name: "x", Instructions: "\n\t"}, []string{"instructions"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dashboard.ValidateInput(tt.input)
			if len(got) != len(tt.fields) {
				t.Fatalf("ValidateInput() = %v, want fields %v", got, tt.fields)
			}
			for _, f := range tt.fields {
				if got[f] == "" {
					t.Errorf("missing message for %q", f)
				}
			}
		})
	}
}

func TestCreateFlow_Success(t *testing.T) {
	creator, calls := creatorReturning(nil)
	inv := &countingInvalidator{}
	notifier := &recordingNotifier{}
	closed := false

	flow := dashboard.NewCreateFlow(creator,
		dashboard.WithInvalidators(inv),
		dashboard.WithNotifier(notifier),
		dashboard.OnClose(func() { closed = true }),
	)

	res, err := flow.Submit(context.Background(), dashboard.CreateInput{Name: "  Math Tutor ", Instructions: "Teach"})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if !res.Closed || !closed {
		t.Error("creation surface was not closed")
	}
	if (*calls)[0].Name != "Math Tutor" {
		t.Errorf("submitted name = %q, want trimmed", (*calls)[0].Name)
	}
	if inv.calls != 1 || inv.owner != owner || inv.id != res.Agent.ID {
		t.Errorf("invalidator = %+v", inv)
	}
	if len(notifier.notices) != 1 || notifier.notices[0].Kind != dashboard.NoticeSuccess {
		t.Errorf("notices = %+v", notifier.notices)
	}
	if flow.Pending() {
		t.Error("flow still pending after completion")
	}
}

func TestCreateFlow_InvalidInputNotSent(t *testing.T) {
	creator, calls := creatorReturning(nil)
	inv := &countingInvalidator{}
	flow := dashboard.NewCreateFlow(creator, dashboard.WithInvalidators(inv))

	res, err := flow.Submit(context.Background(), dashboard.CreateInput{Name: " ", Instructions: ""})
	if !errors.Is(err, agents.ErrValidation) {
		t.Fatalf("Submit() error = %v, want ErrValidation", err)
	}
	if len(*calls) != 0 {
		t.Error("invalid input reached the creator")
	}
	if res.Closed || res.Fields["name"] == "" || res.Fields["instructions"] == "" {
		t.Errorf("Result = %+v", res)
	}
	if inv.calls != 0 {
		t.Error("cache invalidated after a rejected submission")
	}
}

func TestCreateFlow_Failures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     dashboard.NoticeKind
		message  string
		redirect string
		fields   bool
	}{
		{"forbidden", agents.ErrForbidden, dashboard.NoticeInfo, dashboard.ForbiddenMessage, dashboard.PricesPath, false},
		{"unauthorized", agents.ErrUnauthorized, dashboard.NoticeError, dashboard.SignInMessage, dashboard.SignInPath, false},
		{"network", errors.New("connection refused"), dashboard.NoticeError, dashboard.FailedMessage, "", false},
		{"duplicate", fmt.Errorf("insert agent: %w", agents.ErrDuplicate), dashboard.NoticeError, "insert agent: " + agents.ErrDuplicate.Error(), "", false},
		{"server validation", agents.NewValidationError("name", "Name must be at most 100 characters"), "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator, _ := creatorReturning(tt.err)
			nav := &recordingNavigator{}
			notifier := &recordingNotifier{}
			inv := &countingInvalidator{}
			closed := false

			flow := dashboard.NewCreateFlow(creator,
				dashboard.WithInvalidators(inv),
				dashboard.WithNavigator(nav),
				dashboard.WithNotifier(notifier),
				dashboard.OnClose(func() { closed = true }),
			)

			res, err := flow.Submit(context.Background(), dashboard.CreateInput{Name: "a", Instructions: "b"})
			if !errors.Is(err, tt.err) {
				t.Fatalf("Submit() error = %v, want %v", err, tt.err)
			}
			if closed || res.Closed {
				t.Error("surface closed on failure")
			}
			if inv.calls != 0 {
				t.Error("cache invalidated on failure")
			}
			if nav.path != tt.redirect {
				t.Errorf("redirect = %q, want %q", nav.path, tt.redirect)
			}
			if tt.redirect != "" && nav.delay != dashboard.RedirectDelay {
				t.Errorf("delay = %v, want %v", nav.delay, dashboard.RedirectDelay)
			}
			if tt.fields {
				if len(notifier.notices) != 0 || res.Fields["name"] == "" {
					t.Errorf("validation failure: notices %+v, fields %v", notifier.notices, res.Fields)
				}
				return
			}
			if len(notifier.notices) != 1 || notifier.notices[0].Kind != tt.kind {
				t.Fatalf("notices = %+v, want one %s", notifier.notices, tt.kind)
			}
			if notifier.notices[0].Message != tt.message {
				t.Errorf("Message = %q, want %q", notifier.notices[0].Message, tt.message)
			}
		})
	}
}

func TestCreateFlow_RejectsWhilePending(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	creator := dashboard.CreatorFunc(func(_ context.Context, cmd agents.CreateCommand) (*agents.Agent, error) {
		close(started)
		<-release
		return &agents.Agent{ID: uuid.New(), OwnerID: owner, Name: cmd.Name}, nil
	})
	flow := dashboard.NewCreateFlow(creator)
	in := dashboard.CreateInput{Name: "a", Instructions: "b"}

	var wg sync.WaitGroup
	wg.Go(func() {
		if _, err := flow.Submit(context.Background(), in); err != nil {
			t.Errorf("first Submit() error = %v", err)
		}
	})

	<-started
	if !flow.Pending() {
		t.Error("Pending() = false during submission")
	}
	if _, err := flow.Submit(context.Background(), in); !errors.Is(err, dashboard.ErrPending) {
		t.Errorf("second Submit() error = %v, want ErrPending", err)
	}

	close(release)
	wg.Wait()

	if flow.Pending() {
		t.Error("Pending() = true after completion")
	}
}

func TestCreateFlow_InvalidatesListController(t *testing.T) {
	f := newGatedFetcher()
	f.pages[""] = named("Old")

	list := newController(f)
	ctx := context.Background()
	list.Refresh(ctx)

	creator := dashboard.CreatorFunc(func(_ context.Context, cmd agents.CreateCommand) (*agents.Agent, error) {
		a := agents.Agent{ID: uuid.New(), OwnerID: owner, Name: cmd.Name, Instructions: cmd.Instructions}
		f.mu.Lock()
		f.pages[""] = append([]agents.Agent{a}, f.pages[""]...)
		f.mu.Unlock()
		return &a, nil
	})

	flow := dashboard.NewCreateFlow(creator, dashboard.WithInvalidators(list))
	if _, err := flow.Submit(ctx, dashboard.CreateInput{Name: "New", Instructions: "fresh"}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	view := list.Refresh(ctx)
	if len(view.List.Rows) != 2 || view.List.Rows[0].Name != "New" {
		t.Errorf("page 1 after creation = %+v, want the new agent first", view.List.Rows)
	}
}
