package app

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/JaimeStill/octo/internal/agents"
	"github.com/JaimeStill/octo/internal/calendar"
	"github.com/JaimeStill/octo/internal/dashboard"
	"github.com/JaimeStill/octo/internal/pricing"
	"github.com/JaimeStill/octo/internal/session"
	"github.com/JaimeStill/octo/pkg/pagination"
	"github.com/JaimeStill/octo/pkg/web"
)

// upcomingDays is the span of the meetings view.
const upcomingDays = 7

// PendingMessage is shown when a create form is posted while the owner's previous one is still running.
const PendingMessage = "Your previous agent is still being created."

type handler struct {
	cfg       Config
	templates *web.TemplateSet
	flows     *flows
	logger    *slog.Logger
}

func (h *handler) newFlow(creator dashboard.Creator, o *ownerFlow) *dashboard.CreateFlow {
	return dashboard.NewCreateFlow(creator,
		dashboard.WithInvalidators(h.cfg.Invalidators...),
		dashboard.WithNavigator(o),
		dashboard.WithNotifier(o),
		dashboard.WithPaths(h.path("/prices"), h.path("/signin")),
	)
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, s *session.Session)

// protect sends anonymous requests to the sign-in page.
func (h *handler) protect(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := session.FromContext(r.Context())
		if s == nil {
			http.Redirect(w, r, h.path("/signin"), http.StatusSeeOther)
			return
		}
		next(w, r, s)
	}
}

func (h *handler) path(p string) string {
	return h.cfg.BasePath + p
}

func (h *handler) render(w http.ResponseWriter, r *http.Request, status int, view web.PageDef, nav string, data any) {
	page := web.PageData{
		Title: view.Title,
		Nav:   nav,
		Data:  data,
	}
	if s := session.FromContext(r.Context()); s != nil {
		page.User = s
	}

	if err := h.templates.Render(w, status, layout, view.Template, page); err != nil {
		h.logger.Error("render failed", "template", view.Template, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *handler) home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views[0], "home", nil)
}

type agentsData struct {
	Search     string
	Page       int
	KeepPage   bool
	View       dashboard.ViewState
	PrevURL    string
	NextURL    string
	NewURL     string
	EmptyTitle string
	EmptyHint  string
	ErrorText  string
}

func (h *handler) listURL(s pagination.State) string {
	u := h.path("/agents")
	if q := s.Encode(); q != "" {
		u += "?" + q
	}
	return u
}

// agents lists one page of the caller's agents. Requests whose query is not in
// canonical form are redirected to the canonical location first.
func (h *handler) agents(w http.ResponseWriter, r *http.Request, s *session.Session) {
	raw := r.URL.RawQuery
	state := pagination.ParseStateQuery(raw)
	if state.Encode() != raw {
		http.Redirect(w, r, h.listURL(state), http.StatusFound)
		return
	}

	opts := pagination.UpdateOptions{ResetPageOnSearch: h.cfg.ResetPageOnSearch}
	binding := pagination.NewBinding(raw, nil, opts)
	ctrl := dashboard.NewListController(binding, dashboard.BindSession(h.cfg.Agents, s), s.UserID)

	view := ctrl.Refresh(r.Context())
	status := http.StatusOK
	data := agentsData{
		Search:     view.State.Search,
		Page:       view.State.Page,
		KeepPage:   !h.cfg.ResetPageOnSearch && view.State.Page > 1,
		View:       view,
		NewURL:     h.path("/agents/new"),
		EmptyTitle: dashboard.EmptyTitle,
		EmptyHint:  dashboard.EmptyHint,
	}

	if view.Err != nil {
		if errors.Is(view.Err, agents.ErrUnauthorized) {
			http.Redirect(w, r, h.path("/signin"), http.StatusSeeOther)
			return
		}
		status = agents.MapHTTPStatus(view.Err)
		data.ErrorText = dashboard.FailedMessage
		if status < http.StatusInternalServerError {
			data.ErrorText = view.Err.Error()
		}
	} else {
		pager := view.List.Pager
		data.PrevURL = h.listURL(view.State.Apply(pagination.SetPage(pager.PrevPage), opts))
		data.NextURL = h.listURL(view.State.Apply(pagination.SetPage(pager.NextPage), opts))
	}

	h.render(w, r, status, views[1], "agents", data)
}

type formData struct {
	Input   dashboard.CreateInput
	Fields  map[string]string
	Notice  *dashboard.Notice
	Cancel  string
	MaxName int
}

func (h *handler) newAgent(w http.ResponseWriter, r *http.Request, _ *session.Session) {
	h.render(w, r, http.StatusOK, views[2], "agents", h.form(dashboard.CreateInput{}))
}

func (h *handler) form(in dashboard.CreateInput) formData {
	return formData{
		Input:   in,
		Cancel:  h.path("/agents"),
		MaxName: agents.MaxNameLength,
	}
}

type noticeData struct {
	Notice  dashboard.Notice
	URL     string
	Seconds int
}

// createAgent submits the form through a creation flow. Successful submissions
// redirect to the list; forbidden and unauthorized ones show a notice that
// follows the flow's redirect after its delay.
func (h *handler) createAgent(w http.ResponseWriter, r *http.Request, s *session.Session) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	in := dashboard.CreateInput{
		Name:         r.PostFormValue("name"),
		Instructions: r.PostFormValue("instructions"),
	}

	eff := &effects{}
	res, err := h.flows.get(s.UserID).Submit(withEffects(r.Context(), eff), in)
	switch {
	case errors.Is(err, dashboard.ErrPending):
		data := h.form(in)
		data.Notice = &dashboard.Notice{Kind: dashboard.NoticeInfo, Message: PendingMessage}
		h.render(w, r, http.StatusConflict, views[2], "agents", data)
	case err == nil:
		h.logger.Info("agent created", "id", res.Agent.ID, "owner", s.UserID)
		http.Redirect(w, r, h.path("/agents"), http.StatusSeeOther)
	case res.Fields != nil:
		data := h.form(in)
		data.Fields = res.Fields
		h.render(w, r, http.StatusUnprocessableEntity, views[2], "agents", data)
	case eff.redirect != nil:
		data := noticeData{
			URL:     eff.redirect.path,
			Seconds: int(eff.redirect.delay / time.Second),
		}
		if n := eff.last(); n != nil {
			data.Notice = *n
		}
		h.render(w, r, agents.MapHTTPStatus(err), noticeView, "agents", data)
	default:
		status := agents.MapHTTPStatus(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("create agent failed", "error", err)
		}
		data := h.form(in)
		data.Notice = eff.last()
		h.render(w, r, status, views[2], "agents", data)
	}
}

type calendarData struct {
	Month   calendar.Month
	PrevURL string
	NextURL string
}

func (h *handler) calendar(w http.ResponseWriter, r *http.Request) {
	now := h.cfg.Now()
	month := calendar.ParseMonth(r.URL.Query().Get("month"), now)
	grid := calendar.Grid(month, now, calendar.SampleMeetings{Today: now})

	data := calendarData{
		Month:   grid,
		PrevURL: h.path("/calendar?month=" + calendar.MonthParam(grid.Prev)),
		NextURL: h.path("/calendar?month=" + calendar.MonthParam(grid.Next)),
	}
	h.render(w, r, http.StatusOK, views[3], "calendar", data)
}

func (h *handler) meetings(w http.ResponseWriter, r *http.Request) {
	now := h.cfg.Now()
	days := calendar.Upcoming(calendar.SampleMeetings{Today: now}, now, upcomingDays)
	h.render(w, r, http.StatusOK, views[4], "meetings", days)
}

type pricesData struct {
	Plans   []pricing.Plan
	Current session.Plan
}

func (h *handler) prices(w http.ResponseWriter, r *http.Request) {
	data := pricesData{Plans: pricing.Plans()}
	if s := session.FromContext(r.Context()); s != nil {
		data.Current = s.Plan
	}
	h.render(w, r, http.StatusOK, views[5], "prices", data)
}

type signInData struct {
	Error string
}

func (h *handler) signInForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views[6], "signin", signInData{})
}

// signIn verifies the submitted token and stores it in the session cookie.
func (h *handler) signIn(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.PostFormValue("token"))

	if _, err := h.cfg.Sessions.Lookup(r.Context(), token); err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			h.logger.Error("session lookup failed", "error", err)
		}
		h.render(w, r, http.StatusUnauthorized, views[6], "signin", signInData{Error: "Invalid token"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.path("/agents"), http.StatusSeeOther)
}

func (h *handler) signOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.path("/signin"), http.StatusSeeOther)
}
