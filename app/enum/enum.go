// Package enum defines enumerated types used across the application.
// Exported types are generated from the lowercase definitions below.
package enum

//go:generate go run github.com/go-pkgz/enum@latest -type route -lower
//go:generate go run github.com/go-pkgz/enum@latest -type decision -lower
//go:generate go run github.com/go-pkgz/enum@latest -type auditAction -lower
//go:generate go run github.com/go-pkgz/enum@latest -type auditResult -lower
//go:generate go run github.com/go-pkgz/enum@latest -type mode -lower

// route classifies a request path for the session gate.
type route int

const (
	routeUnrestricted route = iota // bypasses the gate
	routeProtected                 // requires a session marker
	routeLogin                     // login entry point
)

// decision is the outcome of the session gate for a single request.
type decision int

const (
	decisionAllow             decision = iota
	decisionRedirectLogin              // protected path without marker
	decisionRedirectProtected          // login path with marker
)

// auditAction is the kind of authentication event recorded in the audit log.
type auditAction int

const (
	auditActionLogin auditAction = iota
	auditActionLogout
)

// auditResult is the outcome of an audited authentication event.
type auditResult int

const (
	auditResultSuccess auditResult = iota
	auditResultDenied
)

// mode is the deployment mode, production enables secure cookies.
type mode int

const (
	modeDevelopment mode = iota
	modeProduction
)
