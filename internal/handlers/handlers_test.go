package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"globeswap/internal/app"
	"globeswap/internal/handlers/middleware"
	"globeswap/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	t     *testing.T
	fiber *fiber.App
	app   *app.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := testutil.NewDB(t)
	a, err := app.NewWithDB(testutil.Config(), db)
	require.NoError(t, err)
	a.Services.Auth.WithBcryptCost(bcrypt.MinCost)
	t.Cleanup(func() { _ = a.EventBus.Close() })

	server := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	require.NoError(t, Router(server, a))

	return &testServer{t: t, fiber: server, app: a}
}

func (s *testServer) do(
	method string,
	path string,
	body any,
	session *http.Cookie,
) (int, map[string]any, *http.Response) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != nil {
		req.AddCookie(session)
	}

	resp, err := s.fiber.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)

	result := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(s.t, json.Unmarshal(raw, &result))
	}

	return resp.StatusCode, result, resp
}

func (s *testServer) login(username string) *http.Cookie {
	s.t.Helper()

	status, _, resp := s.do(http.MethodPost, "/login", fiber.Map{
		"username": username,
		"password": testutil.Password,
	}, nil)
	require.Equal(s.t, http.StatusOK, status)

	cookie := sessionCookie(resp)
	if cookie == nil {
		s.t.Fatalf("login for %s did not set a session cookie", username)
	}
	return cookie
}

func listingBody(listingType, start, end string) fiber.Map {
	return fiber.Map{
		"destination":   "Oaxaca",
		"start_date":    start,
		"end_date":      end,
		"listing_type":  listingType,
		"offered_skill": "cooking lessons",
		"desired_skill": "web design",
	}
}

func TestHealthAndMetrics(t *testing.T) {
	server := newTestServer(t)

	status, body, resp := server.do(http.MethodGet, "/api/health", nil, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, resp.Header.Get(middleware.TraceIDHeader))

	status, _, _ = server.do(http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestRegisterAndConflict(t *testing.T) {
	server := newTestServer(t)
	registration := fiber.Map{
		"username":        "ana",
		"email":           "ana@example.com",
		"password":        "longenough",
		"confirmPassword": "longenough",
	}

	status, body, _ := server.do(http.MethodPost, "/register", registration, nil)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "ana", body["user"].(map[string]any)["username"])

	status, body, _ = server.do(http.MethodPost, "/register", registration, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "please use a different username", body["error"])

	registration["username"] = "bea"
	registration["email"] = "not-an-email"
	status, _, _ = server.do(http.MethodPost, "/register", registration, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLoginFailureAndLogout(t *testing.T) {
	server := newTestServer(t)
	testutil.CreateUser(t, server.app.Database, "ana")

	status, body, _ := server.do(http.MethodPost, "/login", fiber.Map{
		"username": "ana",
		"password": "nope",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid username or password", body["error"])

	session := server.login("ana")

	status, body, _ = server.do(http.MethodGet, "/me", nil, session)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ana@example.com", body["user"].(map[string]any)["email"])

	status, _, resp := server.do(http.MethodGet, "/logout", nil, session)
	assert.Equal(t, http.StatusOK, status)
	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			assert.Empty(t, cookie.Value)
		}
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	server := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/dashboard"},
		{http.MethodGet, "/list"},
		{http.MethodPost, "/list"},
		{http.MethodGet, "/listing/edit/1"},
		{http.MethodPost, "/listing/delete/1"},
		{http.MethodPost, "/interact/1"},
		{http.MethodGet, "/interaction/update/1/Accepted"},
		{http.MethodPost, "/account/delete"},
	} {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			status, _, _ := server.do(route.method, route.path, nil, nil)
			assert.Equal(t, http.StatusUnauthorized, status)
		})
	}

	status, _, _ := server.do(http.MethodGet, "/dashboard", nil, &http.Cookie{
		Name:  middleware.SessionCookieName,
		Value: "forged",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestListingValidationOverHTTP(t *testing.T) {
	server := newTestServer(t)
	testutil.CreateUser(t, server.app.Database, "ana")
	session := server.login("ana")

	status, body, _ := server.do(
		http.MethodPost,
		"/list",
		listingBody("seek", "2025-06-10", "2025-06-09"),
		session,
	)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "end date must be after start date", body["error"])

	status, _, _ = server.do(http.MethodGet, "/listing/edit/abc", nil, session)
	assert.Equal(t, http.StatusNotFound, status)

	status, _, _ = server.do(http.MethodGet, "/listing/edit/42", nil, session)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHostGuestInteractionFlow(t *testing.T) {
	server := newTestServer(t)
	db := server.app.Database
	testutil.CreateUser(t, db, "host")
	testutil.CreateUser(t, db, "guest")

	hostSession := server.login("host")
	guestSession := server.login("guest")

	status, body, _ := server.do(
		http.MethodPost,
		"/list",
		listingBody("offer", "2025-07-01", "2025-07-15"),
		hostSession,
	)
	require.Equal(t, http.StatusCreated, status)
	tripID := int(body["trip"].(map[string]any)["id"].(float64))

	status, body, _ = server.do(http.MethodGet, "/trips", nil, nil)
	require.Equal(t, http.StatusOK, status)
	offers := body["offers"].([]any)
	require.Len(t, offers, 1)
	swap := offers[0].(map[string]any)["skillSwap"].(map[string]any)
	assert.Equal(t, "web design", swap["skillOffered"])
	assert.Equal(t, "cooking lessons", swap["skillWanted"])
	assert.Empty(t, body["requests"])

	status, body, _ = server.do(http.MethodGet, fmt.Sprintf("/listing/edit/%d", tripID), nil, hostSession)
	require.Equal(t, http.StatusOK, status)
	form := body["form"].(map[string]any)
	assert.Equal(t, "cooking lessons", form["offered_skill"])
	assert.Equal(t, "web design", form["desired_skill"])

	status, body, _ = server.do(http.MethodPost, fmt.Sprintf("/interact/%d", tripID), nil, hostSession)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "self interaction error", body["kind"])

	status, body, _ = server.do(
		http.MethodPost,
		fmt.Sprintf("/interact/%d", tripID),
		fiber.Map{"message": "Could I stay for a week?"},
		guestSession,
	)
	require.Equal(t, http.StatusCreated, status)
	interactionID := int(body["interaction"].(map[string]any)["id"].(float64))

	status, body, _ = server.do(http.MethodGet, "/dashboard", nil, hostSession)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["received"].([]any), 1)
	assert.Len(t, body["trips"].([]any), 1)

	updatePath := func(status string) string {
		return fmt.Sprintf("/interaction/update/%d/%s", interactionID, status)
	}

	status, _, _ = server.do(http.MethodGet, updatePath("Accepted"), nil, guestSession)
	assert.Equal(t, http.StatusForbidden, status)

	status, body, _ = server.do(http.MethodGet, updatePath("Accepted"), nil, hostSession)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Accepted", body["interaction"].(map[string]any)["status"])

	status, _, _ = server.do(http.MethodGet, updatePath("Rejected"), nil, hostSession)
	assert.Equal(t, http.StatusConflict, status)

	status, _, _ = server.do(http.MethodGet, updatePath("Rejected"), nil, guestSession)
	assert.Equal(t, http.StatusForbidden, status)

	status, _, _ = server.do(http.MethodPost, fmt.Sprintf("/listing/delete/%d", tripID), nil, guestSession)
	assert.Equal(t, http.StatusForbidden, status)

	status, _, _ = server.do(http.MethodPost, fmt.Sprintf("/listing/delete/%d", tripID), nil, hostSession)
	assert.Equal(t, http.StatusOK, status)

	status, body, _ = server.do(http.MethodGet, "/trips", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["offers"])
}

func TestDeleteAccountOverHTTP(t *testing.T) {
	server := newTestServer(t)
	db := server.app.Database
	ana := testutil.CreateUser(t, db, "ana")
	testutil.CreateListing(t, db, ana, "Lisbon", false)

	session := server.login("ana")

	status, _, _ := server.do(http.MethodPost, "/account/delete", fiber.Map{"password": "nope"}, session)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _, _ = server.do(
		http.MethodPost,
		"/account/delete",
		fiber.Map{"password": testutil.Password},
		session,
	)
	require.Equal(t, http.StatusOK, status)

	status, _, _ = server.do(http.MethodGet, "/dashboard", nil, session)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body, _ := server.do(http.MethodGet, "/users", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["users"])
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			return cookie
		}
	}
	return nil
}

func TestSessionStoreFailureKeepsCookie(t *testing.T) {
	server := newTestServer(t)
	testutil.CreateUser(t, server.app.Database, "ana")
	session := server.login("ana")

	require.NoError(t, server.app.Database.SQL.Exec("ALTER TABLE users RENAME TO users_archived").Error)

	status, body, resp := server.do(http.MethodGet, "/dashboard", nil, session)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, internalErrorMessage, body["error"])
	assert.Nil(t, sessionCookie(resp))
}

func TestChangePasswordEndsOtherSessions(t *testing.T) {
	server := newTestServer(t)
	testutil.CreateUser(t, server.app.Database, "ana")
	laptop := server.login("ana")
	phone := server.login("ana")

	status, _, resp := server.do(http.MethodPost, "/account/password", fiber.Map{
		"currentPassword": testutil.Password,
		"newPassword":     "a much better pass",
		"confirmPassword": "a much better pass",
	}, laptop)
	require.Equal(t, http.StatusOK, status)

	renewed := sessionCookie(resp)
	require.NotNil(t, renewed)
	assert.NotEqual(t, laptop.Value, renewed.Value)

	status, _, _ = server.do(http.MethodGet, "/me", nil, phone)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _, _ = server.do(http.MethodGet, "/me", nil, laptop)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _, _ = server.do(http.MethodGet, "/me", nil, renewed)
	assert.Equal(t, http.StatusOK, status)

	status, _, _ = server.do(http.MethodPost, "/login", fiber.Map{
		"username": "ana",
		"password": testutil.Password,
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
