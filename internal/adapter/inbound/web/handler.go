package web

import (
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/doistemposcafe/totem/internal/adapter/outbound/api"
	"github.com/doistemposcafe/totem/internal/domain/auth"
	"github.com/doistemposcafe/totem/internal/domain/session"
)

// Handler serves the front tier's page routes. Page bodies are minimal
// shells; the substance here is the guard chain and the session flow,
// not markup.
type Handler struct {
	sessions *session.Manager
	client   *api.Client
	logger   *slog.Logger
	metrics  *Metrics
	scrape   http.Handler
}

// NewHandler creates a Handler over the session manager and backend
// client. It subscribes to session changes to keep the session gauge
// current.
func NewHandler(sessions *session.Manager, client *api.Client, logger *slog.Logger, metrics *Metrics, gatherer prometheus.Gatherer) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		sessions: sessions,
		client:   client,
		logger:   logger,
		metrics:  metrics,
		scrape:   promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	}

	// Keep the gauge in sync with the session lifecycle instead of
	// polling. The subscription stays for the handler's lifetime.
	h.metrics.SessionValid.Set(boolToGauge(sessions.IsAuthenticated()))
	sessions.Subscribe(func(ev session.Event) {
		h.metrics.SessionValid.Set(boolToGauge(ev.Kind == session.EventLogin))
	})

	return h
}

// Routes builds the full route table with guards and middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	// Public pages.
	mux.Handle("GET /{$}", h.page("Dois Tempos Café"))
	mux.Handle("GET /sobre", h.page("Sobre"))
	mux.Handle("GET /produto", h.page("Produto"))
	mux.Handle("GET /pedido", h.page("Pedido"))
	mux.Handle("GET /pagamento", h.page("Pagamento"))
	mux.HandleFunc("GET /cardapio", h.handleCardapio)

	// Auth pages: a logged-in visitor is bounced to their dashboard.
	mux.Handle("GET /login", h.RedirectIfAuthenticated(h.page("Login")))
	mux.HandleFunc("POST /login", h.handleLogin)
	mux.HandleFunc("POST /logout", h.handleLogout)
	mux.Handle("GET /registrar", h.RedirectIfAuthenticated(h.page("Registrar")))
	mux.HandleFunc("POST /registrar", h.handleRegister)
	mux.Handle("GET /recuperar", h.RedirectIfAuthenticated(h.page("Recuperar Senha")))
	mux.HandleFunc("POST /recuperar", h.handleForgotPassword)

	// Role-gated dashboards.
	mux.Handle("GET /manager", h.RequireRoles(h.page("Manager Dashboard"), auth.RoleManager, auth.RoleAdmin))
	mux.Handle("GET /admin", h.RequireRoles(h.page("Admin Dashboard"), auth.RoleAdmin))

	mux.Handle("GET /unauthorized", h.errorPage(http.StatusUnauthorized, "401 — Não autorizado"))

	mux.Handle("GET /healthz", h.healthz())
	mux.Handle("GET /metrics", h.scrape)

	// Catch-all 404 for anything the table above does not name.
	mux.Handle("/", h.errorPage(http.StatusNotFound, "404 — Página não encontrada"))

	var handler http.Handler = mux
	handler = MetricsMiddleware(h.metrics)(handler)
	handler = RequestIDMiddleware(h.logger)(handler)
	return handler
}

// handleLogin processes the login form and sends the new session to
// its dashboard. Backend rejections surface as a message on a 401
// page; nothing is persisted on failure.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	sess, err := h.sessions.Login(r.Context(), email, password)
	if err != nil {
		h.metrics.LoginAttempts.WithLabelValues("failure").Inc()
		LoggerFromContext(r.Context()).Info("login rejected", "error", err)
		h.renderError(w, http.StatusUnauthorized, "Falha no login. Verifique suas credenciais.")
		return
	}

	h.metrics.LoginAttempts.WithLabelValues("success").Inc()
	role, _ := auth.MainRole(sess.Roles)
	http.Redirect(w, r, dashboardPath(role), http.StatusSeeOther)
}

// handleLogout clears the session and returns to the home page.
// Logging out without a session lands on the same page.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(); err != nil {
		LoggerFromContext(r.Context()).Warn("logout failed", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleRegister forwards the registration form to the backend and
// sends the new account to the login page.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	user := api.User{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if _, err := h.client.Register(r.Context(), user); err != nil {
		LoggerFromContext(r.Context()).Info("registration rejected", "error", err)
		h.renderError(w, http.StatusBadGateway, "Não foi possível concluir o cadastro.")
		return
	}
	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}

// handleForgotPassword asks the backend for a reset email. The page
// answers the same way whether or not the address exists.
func (h *Handler) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	if err := h.client.ForgotPassword(r.Context(), r.PostFormValue("email")); err != nil {
		LoggerFromContext(r.Context()).Warn("forgot-password call failed", "error", err)
	}
	h.renderPage(w, "Recuperar Senha", "Se o e-mail existir, um link de redefinição foi enviado.")
}

// handleCardapio proxies the public product list so the menu page has
// data to show.
func (h *Handler) handleCardapio(w http.ResponseWriter, r *http.Request) {
	products, err := h.client.Products.List(r.Context())
	if err != nil {
		LoggerFromContext(r.Context()).Warn("menu fetch failed", "error", err)
		h.renderError(w, http.StatusBadGateway, "Cardápio indisponível no momento.")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(products)
}

// healthz reports liveness plus whether a session is currently held.
func (h *Handler) healthz() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":        "healthy",
			"authenticated": h.sessions.IsAuthenticated(),
		})
	})
}

// page returns a handler rendering a minimal titled shell.
func (h *Handler) page(title string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.renderPage(w, title, "")
	})
}

// errorPage returns a handler rendering a titled shell with the given
// status code.
func (h *Handler) errorPage(status int, title string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.renderError(w, status, title)
	})
}

func (h *Handler) renderPage(w http.ResponseWriter, title, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageShell, html.EscapeString(title), html.EscapeString(message))
}

func (h *Handler) renderError(w http.ResponseWriter, status int, title string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, pageShell, html.EscapeString(title), "")
}

const pageShell = `<!DOCTYPE html>
<html lang="pt-BR"><head><meta charset="utf-8"><title>%s</title></head>
<body><main><h1>%[1]s</h1><p>%[2]s</p></main></body></html>
`

func boolToGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
