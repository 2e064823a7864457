//go:build e2e

package e2e

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_LoginValid(t *testing.T) {
	page := newPage(t)

	// root goes to map, map without marker goes to login
	_, err := page.Goto(baseURL + "/")
	require.NoError(t, err)
	assert.Equal(t, baseURL+"/login", page.URL())
	waitVisible(t, page.Locator(`h1:has-text("Thailand Province Map")`))

	submitLogin(t, page, "tester", "abc123")
	require.NoError(t, page.WaitForURL(baseURL+"/map"))
	waitVisible(t, page.GetByTestId("thailand-map"))
	waitVisible(t, page.Locator(".leaflet-container"))
	waitVisible(t, page.GetByText("Thailand Province Population"))
}

func TestAuth_LoginInvalid(t *testing.T) {
	page := newPage(t)
	submitLogin(t, page, "wrong", "wrong")

	errMsg := page.GetByTestId("error-message")
	waitVisible(t, errMsg)
	text, err := errMsg.TextContent()
	require.NoError(t, err)
	assert.Equal(t, "Invalid credentials", text)
	assert.Equal(t, baseURL+"/login", page.URL())

	cookies, err := page.Context().Cookies()
	require.NoError(t, err)
	assert.Empty(t, cookies, "failed login must not set the session marker")
}

func TestAuth_LoginRedirectsAuthenticated(t *testing.T) {
	page := newPage(t)
	login(t, page)

	_, err := page.Goto(baseURL + "/login")
	require.NoError(t, err)
	assert.Equal(t, baseURL+"/map", page.URL())
}

func TestAuth_SessionMarker(t *testing.T) {
	page := newPage(t)
	login(t, page)

	cookies, err := page.Context().Cookies()
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "thailand-map-auth", c.Name)
	assert.Equal(t, "authenticated", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure, "development mode")
}

func TestAuth_ProtectedRouteRedirect(t *testing.T) {
	page := newPage(t)

	_, err := page.Goto(baseURL + "/map")
	require.NoError(t, err)
	assert.Equal(t, baseURL+"/login", page.URL())
}

func TestAuth_MalformedMarker(t *testing.T) {
	page := newPage(t)
	require.NoError(t, page.Context().AddCookies([]playwright.OptionalCookie{
		{Name: "thailand-map-auth", Value: "admin", URL: playwright.String(baseURL)},
	}))

	_, err := page.Goto(baseURL + "/map")
	require.NoError(t, err)
	assert.Equal(t, baseURL+"/login", page.URL())
}

func TestAuth_Logout(t *testing.T) {
	page := newPage(t)
	login(t, page)

	_, err := page.ExpectResponse(baseURL+"/logout", func() error {
		return page.GetByTestId("logout-button").Click()
	}, playwright.PageExpectResponseOptions{Timeout: playwright.Float(15000)})
	require.NoError(t, err)

	waitVisible(t, page.GetByTestId("username-input"))
	assert.Equal(t, baseURL+"/login", page.URL())

	_, err = page.Goto(baseURL + "/map")
	require.NoError(t, err)
	assert.Equal(t, baseURL+"/login", page.URL())
}

func TestAuth_SessionPersists(t *testing.T) {
	page := newPage(t)
	login(t, page)

	_, err := page.Reload()
	require.NoError(t, err)
	waitVisible(t, page.GetByTestId("thailand-map"))
	assert.Equal(t, baseURL+"/map", page.URL())
}
