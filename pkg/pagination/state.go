package pagination

import (
	"net/url"
	"strconv"
	"strings"
	"sync"
)

// Query parameter names carried by a list location.
const (
	ParamSearch = "search"
	ParamPage   = "page"
)

// State is the filter state of a list view: the search text and the 1-based page.
// The zero value is not canonical; use DefaultState.
type State struct {
	Search string
	Page   int
}

// DefaultState returns the state of a location without parameters.
func DefaultState() State {
	return State{Page: 1}
}

// ParseState reads a State from query values.
// Missing or invalid fields fall back to their defaults and unknown parameters are ignored.
func ParseState(values url.Values) State {
	s := DefaultState()
	s.Search = values.Get(ParamSearch)

	if n, err := strconv.Atoi(values.Get(ParamPage)); err == nil && n >= 1 {
		s.Page = n
	}
	return s
}

// ParseStateQuery reads a State from a raw query string. It never fails.
func ParseStateQuery(raw string) State {
	values, _ := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	return ParseState(values)
}

// Values returns the parameters that differ from their defaults.
func (s State) Values() url.Values {
	values := url.Values{}
	if s.Search != "" {
		values.Set(ParamSearch, s.Search)
	}
	if s.Page > 1 {
		values.Set(ParamPage, strconv.Itoa(s.Page))
	}
	return values
}

// Encode returns the canonical query string. The default state encodes to "".
func (s State) Encode() string {
	return s.Values().Encode()
}

// Patch is a partial State update. Nil fields are left unchanged.
type Patch struct {
	Search *string
	Page   *int
}

// SetSearch returns a patch that changes only the search text.
func SetSearch(search string) Patch {
	return Patch{Search: &search}
}

// SetPage returns a patch that changes only the page.
func SetPage(page int) Patch {
	return Patch{Page: &page}
}

// UpdateOptions controls how patches are merged.
type UpdateOptions struct {
	// ResetPageOnSearch returns to page 1 whenever the search text changes.
	ResetPageOnSearch bool
}

// Apply merges p into s. Pages below 1 become 1.
func (s State) Apply(p Patch, opts UpdateOptions) State {
	next := s

	if p.Search != nil {
		next.Search = *p.Search
		if opts.ResetPageOnSearch && next.Search != s.Search {
			next.Page = 1
		}
	}

	if p.Page != nil {
		next.Page = *p.Page
	}

	if next.Page < 1 {
		next.Page = 1
	}
	return next
}

// Replacer receives the canonical query string after every update.
// It replaces the current location; it never pushes history.
type Replacer func(rawQuery string)

// Binding is a State bound to a navigable location.
type Binding struct {
	mu      sync.Mutex
	state   State
	replace Replacer
	opts    UpdateOptions
}

// NewBinding parses raw and binds the resulting state to replace.
// A nil replace is allowed for read-only use.
func NewBinding(raw string, replace Replacer, opts UpdateOptions) *Binding {
	return &Binding{
		state:   ParseStateQuery(raw),
		replace: replace,
		opts:    opts,
	}
}

// State returns the current state.
func (b *Binding) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Location returns the canonical query string of the current state.
func (b *Binding) Location() string {
	return b.State().Encode()
}

// Update applies p and replaces the bound location with the new canonical query.
func (b *Binding) Update(p Patch) State {
	b.mu.Lock()
	b.state = b.state.Apply(p, b.opts)
	next := b.state
	b.mu.Unlock()

	if b.replace != nil {
		b.replace(next.Encode())
	}
	return next
}
