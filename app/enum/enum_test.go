package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode_Secure(t *testing.T) {
	assert.True(t, ModeProduction.Secure())
	assert.False(t, ModeDevelopment.Secure())
	assert.False(t, Mode{}.Secure())
}

func TestRoute_Gated(t *testing.T) {
	assert.True(t, RouteProtected.Gated())
	assert.True(t, RouteLogin.Gated())
	assert.False(t, RouteUnrestricted.Gated())
}

func TestDecision_Redirects(t *testing.T) {
	assert.False(t, DecisionAllow.Redirects())
	assert.True(t, DecisionRedirectLogin.Redirects())
	assert.True(t, DecisionRedirectProtected.Redirects())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("production")
	require.NoError(t, err)
	assert.Equal(t, ModeProduction, m)

	_, err = ParseMode("staging")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid mode")
}

func TestAuditResult_Scan(t *testing.T) {
	var r AuditResult
	require.NoError(t, r.Scan([]byte("denied")))
	assert.Equal(t, AuditResultDenied, r)

	require.NoError(t, r.Scan(nil))
	assert.Equal(t, AuditResultSuccess, r)

	require.Error(t, r.Scan(42))
}
