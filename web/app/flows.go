package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/octo/internal/agents"
	"github.com/JaimeStill/octo/internal/dashboard"
	"github.com/JaimeStill/octo/internal/session"
)

type effectsKey struct{}

func withEffects(ctx context.Context, eff *effects) context.Context {
	return context.WithValue(ctx, effectsKey{}, eff)
}

// ownerFlow is the creation flow shared by every request of one owner.
// sink is replaced only inside the creator, which runs for a single submission at a time,
// so notices and redirects reach the request that holds the pending slot.
type ownerFlow struct {
	flow *dashboard.CreateFlow
	sink *effects
}

func (o *ownerFlow) Notify(n dashboard.Notice) {
	if o.sink != nil {
		o.sink.Notify(n)
	}
}

func (o *ownerFlow) RedirectAfter(path string, delay time.Duration) {
	if o.sink != nil {
		o.sink.RedirectAfter(path, delay)
	}
}

// flows holds one creation flow per owner so a second submission from the same owner
// is rejected while the first is pending.
type flows struct {
	mu      sync.Mutex
	byOwner map[uuid.UUID]*ownerFlow
	build   func(o *ownerFlow) *dashboard.CreateFlow
}

func newFlows(sys agents.System, build func(creator dashboard.Creator, o *ownerFlow) *dashboard.CreateFlow) *flows {
	return &flows{
		byOwner: make(map[uuid.UUID]*ownerFlow),
		build: func(o *ownerFlow) *dashboard.CreateFlow {
			creator := dashboard.CreatorFunc(func(ctx context.Context, cmd agents.CreateCommand) (*agents.Agent, error) {
				o.sink, _ = ctx.Value(effectsKey{}).(*effects)
				return sys.Create(ctx, session.FromContext(ctx), cmd)
			})
			return build(creator, o)
		},
	}
}

func (f *flows) get(owner uuid.UUID) *dashboard.CreateFlow {
	f.mu.Lock()
	defer f.mu.Unlock()

	o, ok := f.byOwner[owner]
	if !ok {
		o = &ownerFlow{}
		o.flow = f.build(o)
		f.byOwner[owner] = o
	}
	return o.flow
}
