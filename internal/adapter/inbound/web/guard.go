package web

import (
	"net/http"

	"github.com/doistemposcafe/totem/internal/domain/auth"
)

// Guard destinations.
const (
	loginPath        = "/login"
	unauthorizedPath = "/unauthorized"
)

// RequireRoles protects a route. A visitor without a valid session is
// sent to the login page; one whose authority set misses every allowed
// role is sent to the unauthorized page. The two destinations are
// deliberately distinct: "log in first" and "you may not enter" are
// different answers.
//
// Session resolution is a synchronous storage read, so there is no
// in-flight state to wait out before deciding.
func (h *Handler) RequireRoles(next http.Handler, allowed ...auth.Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.sessions.IsAuthenticated() {
			h.metrics.GuardDecisions.WithLabelValues("redirect_login").Inc()
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}
		if !h.sessions.HasAnyRole(allowed...) {
			h.metrics.GuardDecisions.WithLabelValues("redirect_unauthorized").Inc()
			http.Redirect(w, r, unauthorizedPath, http.StatusSeeOther)
			return
		}
		h.metrics.GuardDecisions.WithLabelValues("allow").Inc()
		next.ServeHTTP(w, r)
	})
}

// RedirectIfAuthenticated keeps logged-in visitors off the auth pages:
// they are bounced to the dashboard their main role grants instead of
// seeing the login or registration form again.
func (h *Handler) RedirectIfAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.sessions.IsAuthenticated() {
			role, _ := h.sessions.MainRole()
			http.Redirect(w, r, dashboardPath(role), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// dashboardPath maps a main role to its landing page.
func dashboardPath(role auth.Role) string {
	switch role {
	case auth.RoleAdmin:
		return "/admin"
	case auth.RoleManager:
		return "/manager"
	default:
		return "/"
	}
}
