package enum

// Secure reports whether cookies issued in this mode must be restricted to encrypted transport.
func (m Mode) Secure() bool {
	return m == ModeProduction
}

// Gated returns true for routes the session gate has an opinion about.
func (r Route) Gated() bool {
	return r == RouteProtected || r == RouteLogin
}

// Redirects returns true if the decision stops the request with a redirect.
func (d Decision) Redirects() bool {
	return d == DecisionRedirectLogin || d == DecisionRedirectProtected
}
