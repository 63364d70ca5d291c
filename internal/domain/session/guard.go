package session

// Route names shared between the guards and whoever owns navigation.
const (
	RouteHome  = "home"
	RouteLogin = "login"
)

// Decision is the outcome of evaluating a guard against a session snapshot.
type Decision struct {
	// Allowed is true when navigation may proceed.
	Allowed bool
	// RedirectTo names the route to go to instead when not allowed.
	RedirectTo string
	// ReturnTo carries the originally attempted route so a later login can
	// resume it. Set whenever the redirect target is the login route.
	ReturnTo string
}

var allow = Decision{Allowed: true}

// PublicOnly gates routes that only make sense logged out (the login page).
// An authenticated session is sent home; everyone else passes.
func PublicOnly(s *Session) Decision {
	if s.IsAuthenticated() {
		return Decision{RedirectTo: RouteHome}
	}
	return allow
}

// RequireAuth gates routes that need any authenticated session. The attempted
// route is preserved so login can return to it.
func RequireAuth(s *Session, attempted string) Decision {
	if !s.IsAuthenticated() {
		return Decision{RedirectTo: RouteLogin, ReturnTo: attempted}
	}
	return allow
}

// RequireRole gates routes restricted to one role. Unauthenticated sessions
// go to login; authenticated sessions with the wrong role go home.
func RequireRole(s *Session, role Role, attempted string) Decision {
	if !s.IsAuthenticated() {
		return Decision{RedirectTo: RouteLogin, ReturnTo: attempted}
	}
	if s.User.Role != role {
		return Decision{RedirectTo: RouteHome}
	}
	return allow
}
