package dashboard

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/octo/internal/agents"
)

// ErrPending is returned when a submission is attempted while another is in flight.
var ErrPending = errors.New("a submission is already pending")

// Redirect targets and the delay before following them.
const (
	PricesPath    = "/app/prices"
	SignInPath    = "/app/signin"
	RedirectDelay = time.Second
)

// Notice messages shown by the creation flow.
const (
	CreatedMessage   = "Agent created"
	ForbiddenMessage = "You have reached the agent limit of your plan. Upgrade to create more."
	SignInMessage    = "Your session has expired. Please sign in again."
	FailedMessage    = "Something went wrong. Please try again."
)

// CreateInput is the raw form input of the creation surface.
type CreateInput struct {
	Name         string `json:"name"`
	Instructions string `json:"instructions"`
}

// Command returns the normalized create command.
func (in CreateInput) Command() agents.CreateCommand {
	return agents.CreateCommand{Name: in.Name, Instructions: in.Instructions}.Normalize()
}

// ValidateInput returns the field messages for in, or nil when it can be submitted.
func ValidateInput(in CreateInput) map[string]string {
	return agents.FieldErrors(in.Command().Validate())
}

// Creator inserts an agent for the current user.
type Creator interface {
	Create(ctx context.Context, cmd agents.CreateCommand) (*agents.Agent, error)
}

// CreatorFunc adapts a function to Creator.
type CreatorFunc func(ctx context.Context, cmd agents.CreateCommand) (*agents.Agent, error)

func (f CreatorFunc) Create(ctx context.Context, cmd agents.CreateCommand) (*agents.Agent, error) {
	return f(ctx, cmd)
}

// Invalidator drops cached data affected by a change to one of owner's agents.
type Invalidator interface {
	Invalidate(owner, id uuid.UUID) int
}

// Navigator moves the user to another surface.
type Navigator interface {
	RedirectAfter(path string, delay time.Duration)
}

// NoticeKind classifies a user notification.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeInfo    NoticeKind = "info"
	NoticeError   NoticeKind = "error"
)

// Notice is a transient message for the user. Code carries the error code, if any.
type Notice struct {
	Kind    NoticeKind
	Code    string
	Message string
}

// Notifier displays notices.
type Notifier interface {
	Notify(n Notice)
}

// Result describes how a submission ended.
// Closed reports whether the creation surface was dismissed.
type Result struct {
	Agent  *agents.Agent
	Fields map[string]string
	Closed bool
}

// CreateFlow validates and submits new agents, then invalidates cached lists.
// At most one submission runs at a time.
type CreateFlow struct {
	creator      Creator
	invalidators []Invalidator
	navigator    Navigator
	notifier     Notifier
	onClose      func()
	pricesPath   string
	signInPath   string

	mu      sync.Mutex
	pending bool
}

// CreateOption configures a CreateFlow.
type CreateOption func(*CreateFlow)

// WithInvalidators registers the caches to invalidate after a successful creation.
func WithInvalidators(inv ...Invalidator) CreateOption {
	return func(f *CreateFlow) { f.invalidators = append(f.invalidators, inv...) }
}

// WithNavigator sets where redirects are sent.
func WithNavigator(nav Navigator) CreateOption {
	return func(f *CreateFlow) { f.navigator = nav }
}

// WithNotifier sets where notices are sent.
func WithNotifier(n Notifier) CreateOption {
	return func(f *CreateFlow) { f.notifier = n }
}

// OnClose is called when the creation surface should be dismissed.
func OnClose(fn func()) CreateOption {
	return func(f *CreateFlow) { f.onClose = fn }
}

// WithPaths overrides the pricing and sign-in redirect targets.
func WithPaths(prices, signIn string) CreateOption {
	return func(f *CreateFlow) {
		f.pricesPath = prices
		f.signInPath = signIn
	}
}

// NewCreateFlow creates a flow that submits through creator.
func NewCreateFlow(creator Creator, opts ...CreateOption) *CreateFlow {
	f := &CreateFlow{
		creator:    creator,
		pricesPath: PricesPath,
		signInPath: SignInPath,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Pending reports whether a submission is in flight. The submit control is disabled while it is.
func (f *CreateFlow) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

// Submit validates in and, if valid, creates the agent.
// Invalid input never reaches the creator; its field messages are returned in Result.Fields
// together with an error matching agents.ErrValidation.
func (f *CreateFlow) Submit(ctx context.Context, in CreateInput) (Result, error) {
	cmd := in.Command()
	if err := cmd.Validate(); err != nil {
		return Result{Fields: agents.FieldErrors(err)}, err
	}

	f.mu.Lock()
	if f.pending {
		f.mu.Unlock()
		return Result{}, ErrPending
	}
	f.pending = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.pending = false
		f.mu.Unlock()
	}()

	agent, err := f.creator.Create(ctx, cmd)
	if err != nil {
		return f.fail(err)
	}

	for _, inv := range f.invalidators {
		inv.Invalidate(agent.OwnerID, agent.ID)
	}
	if f.onClose != nil {
		f.onClose()
	}
	f.notify(Notice{Kind: NoticeSuccess, Message: CreatedMessage})

	return Result{Agent: agent, Closed: true}, nil
}

func (f *CreateFlow) fail(err error) (Result, error) {
	switch {
	case errors.Is(err, agents.ErrValidation):
		return Result{Fields: agents.FieldErrors(err)}, err
	case errors.Is(err, agents.ErrForbidden):
		f.notify(Notice{Kind: NoticeInfo, Code: agents.ErrForbidden.Error(), Message: ForbiddenMessage})
		f.redirect(f.pricesPath)
	case errors.Is(err, agents.ErrUnauthorized):
		f.notify(Notice{Kind: NoticeError, Code: agents.ErrUnauthorized.Error(), Message: SignInMessage})
		f.redirect(f.signInPath)
	default:
		msg := FailedMessage
		if agents.MapHTTPStatus(err) < http.StatusInternalServerError {
			msg = err.Error()
		}
		f.notify(Notice{Kind: NoticeError, Message: msg})
	}
	return Result{}, err
}

func (f *CreateFlow) notify(n Notice) {
	if f.notifier != nil {
		f.notifier.Notify(n)
	}
}

func (f *CreateFlow) redirect(path string) {
	if f.navigator != nil {
		f.navigator.RedirectAfter(path, RedirectDelay)
	}
}
