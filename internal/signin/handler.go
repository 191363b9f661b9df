package signin

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prajwalgurnule/Screenify/internal/config"
	"github.com/prajwalgurnule/Screenify/internal/session"
	"github.com/prajwalgurnule/Screenify/pkg/apperror"
	"github.com/prajwalgurnule/Screenify/pkg/logger"
)

// Paths served by the handler
const (
	SignInPath   = "/auth/sign-in"
	CallbackPath = "/auth/callback"
	SignOutPath  = "/auth/sign-out"
)

// Handler exposes the sign-in flow over HTTP.
type Handler struct {
	flow    Flow
	limiter *RateLimiter
	source  *session.CookieSource
	landing string
	log     *slog.Logger
}

func NewHandler(cfg *config.Config, log *slog.Logger, flow Flow, limiter *RateLimiter, source *session.CookieSource) *Handler {
	return &Handler{
		flow:    flow,
		limiter: limiter,
		source:  source,
		landing: cfg.Site.LandingPath,
		log:     log.With(logger.Scope("signin")),
	}
}

// RegisterRoutes mounts the sign-in endpoints on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post(SignInPath, h.SignIn)
	r.Get(CallbackPath, h.flow.Callback)
	r.Post(SignOutPath, h.SignOut)
}

// Ready reports whether sign-in can currently be offered.
func (h *Handler) Ready() bool {
	return h.flow.Ready()
}

// SignIn invokes the sign-in prompt once per request.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(r) {
		h.log.Warn("sign-in rate limited", slog.String("client", clientIP(r)))
		apperror.WriteError(w, r, h.log, apperror.ErrTooManyRequests)
		return
	}
	h.flow.Prompt(w, r)
}

// SignOut drops the session cookie and returns to the landing page.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.source.ClearCookie(w)
	http.Redirect(w, r, h.landing, http.StatusSeeOther)
}
