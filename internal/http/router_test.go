package http

import (
	"net/http/httptest"
	"testing"

	"travel-crm/internal/handlers"
	"travel-crm/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *mux.Router {
	log := zerolog.Nop()
	return NewRouter(
		handlers.NewAuthHandler(nil, log),
		handlers.NewUserHandler(nil, log),
		handlers.NewInquiryHandler(nil, log),
		handlers.NewReportHandler(nil, log),
		handlers.NewInvoiceHandler(nil, log),
		handlers.NewDetailHandler(nil, log),
		handlers.NewPaymentLinkHandler(nil, log),
		handlers.NewHealthHandler(nil),
		middleware.NewAuthMiddleware(nil, nil),
	)
}

// matchTemplate resolves a request against the router without invoking the
// handler chain, so auth middleware stays out of the way.
func matchTemplate(t *testing.T, r *mux.Router, method, path string) string {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	var m mux.RouteMatch
	require.True(t, r.Match(req, &m), "no route for %s %s", method, path)
	tpl, err := m.Route.GetPathTemplate()
	require.NoError(t, err)
	return tpl
}

func TestRouterSelfServiceRoutes(t *testing.T) {
	r := newTestRouter()

	assert.Equal(t, "/auth/me", matchTemplate(t, r, "GET", "/auth/me"))
	assert.Equal(t, "/auth/profile", matchTemplate(t, r, "PUT", "/auth/profile"))
	assert.Equal(t, "/auth/password", matchTemplate(t, r, "POST", "/auth/password"))
	assert.Equal(t, "/auth/refresh", matchTemplate(t, r, "POST", "/auth/refresh"))
}

func TestRouterTimelineAliasesHistory(t *testing.T) {
	r := newTestRouter()

	assert.Equal(t, "/api/inquiries/{id}/history", matchTemplate(t, r, "GET", "/api/inquiries/12/history"))
	assert.Equal(t, "/api/inquiries/{id}/timeline", matchTemplate(t, r, "GET", "/api/inquiries/12/timeline"))
}

func TestRouterFixedPathsWinOverID(t *testing.T) {
	r := newTestRouter()

	assert.Equal(t, "/api/inquiries/board", matchTemplate(t, r, "GET", "/api/inquiries/board"))
	assert.Equal(t, "/api/inquiries/export", matchTemplate(t, r, "GET", "/api/inquiries/export"))
	assert.Equal(t, "/api/inquiries/{id}", matchTemplate(t, r, "GET", "/api/inquiries/7"))
}
