// Package gate decides, from the session state alone, whether a navigation
// target may be shown.
package gate

import "github.com/dmitrijs2005/docspace/internal/client/models"

const (
	RouteLogin     = "/login"
	RouteRegister  = "/register"
	RouteDashboard = "/dashboard"
)

type RouteKind int

const (
	// Fallback covers "/" and every path not listed below.
	Fallback RouteKind = iota
	PublicOnly
	Protected
)

var routes = map[string]RouteKind{
	RouteLogin:     PublicOnly,
	RouteRegister:  PublicOnly,
	RouteDashboard: Protected,
}

func Classify(path string) RouteKind {
	if k, ok := routes[path]; ok {
		return k
	}
	return Fallback
}

type DecisionKind int

const (
	Loading DecisionKind = iota
	Allow
	Redirect
)

func (k DecisionKind) String() string {
	switch k {
	case Loading:
		return "loading"
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	}
	return "invalid"
}

// Decision is the outcome for one route. Target is set only for Redirect.
type Decision struct {
	Kind   DecisionKind
	Target string
}

// Decide maps (session, route) to a decision. It has no side effects.
func Decide(s models.Session, path string) Decision {
	if s.State == models.StateUnknown {
		return Decision{Kind: Loading}
	}
	authed := s.State == models.StateAuthenticated

	switch Classify(path) {
	case Protected:
		if !authed {
			return Decision{Kind: Redirect, Target: RouteLogin}
		}
	case PublicOnly:
		if authed {
			return Decision{Kind: Redirect, Target: RouteDashboard}
		}
	default:
		if authed {
			return Decision{Kind: Redirect, Target: RouteDashboard}
		}
		return Decision{Kind: Redirect, Target: RouteLogin}
	}
	return Decision{Kind: Allow}
}
