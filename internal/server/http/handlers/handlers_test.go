package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/mfcarvalho/painel-pedidos/internal/domain/errors"
	"github.com/mfcarvalho/painel-pedidos/internal/domain/model"
	"github.com/mfcarvalho/painel-pedidos/internal/server/http/dto"
	"github.com/mfcarvalho/painel-pedidos/internal/server/http/middleware"
	testhelpers "github.com/mfcarvalho/painel-pedidos/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path, route string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asUser(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, id)
	}
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "ana", Password: "senha"})
	resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(testhelpers.PanelFacadeStub{}).Register, nil, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") != "Bearer token" {
		t.Fatalf("expected auth header, got %q", resp.Header().Get("Authorization"))
	}

	var session dto.SessionResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &session); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if session.Login != "ana" {
		t.Fatalf("unexpected session %+v", session)
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.PanelFacadeStub
		body   []byte
		status int
	}{
		{
			name:   "malformed body",
			facade: testhelpers.PanelFacadeStub{},
			body:   []byte("{"),
			status: http.StatusBadRequest,
		},
		{
			name: "invalid credentials",
			facade: testhelpers.PanelFacadeStub{RegisterFn: func(context.Context, string, string) (*model.User, string, error) {
				return nil, "", domainErrors.ErrInvalidCredentials
			}},
			body:   mustJSON(t, dto.AuthRequest{Login: "", Password: ""}),
			status: http.StatusBadRequest,
		},
		{
			name: "duplicate login",
			facade: testhelpers.PanelFacadeStub{RegisterFn: func(context.Context, string, string) (*model.User, string, error) {
				return nil, "", domainErrors.ErrAlreadyExists
			}},
			body:   mustJSON(t, dto.AuthRequest{Login: "ana", Password: "senha"}),
			status: http.StatusConflict,
		},
		{
			name: "storage failure",
			facade: testhelpers.PanelFacadeStub{RegisterFn: func(context.Context, string, string) (*model.User, string, error) {
				return nil, "", errors.New("boom")
			}},
			body:   mustJSON(t, dto.AuthRequest{Login: "ana", Password: "senha"}),
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(tc.facade).Register, nil, tc.body)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "ana", Password: "senha"})
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(testhelpers.PanelFacadeStub{}).Login, nil, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	foundCookie := false
	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == "painel_token" && cookie.Value == "token" {
			foundCookie = true
		}
	}
	if !foundCookie {
		t.Fatal("expected session cookie")
	}
}

func TestAuthHandlerLoginRejectsBadCredentials(t *testing.T) {
	facade := testhelpers.PanelFacadeStub{AuthenticateFn: func(context.Context, string, string) (*model.User, string, error) {
		return nil, "", domainErrors.ErrInvalidCredentials
	}}
	body, _ := json.Marshal(dto.AuthRequest{Login: "ana", Password: "errada"})
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(facade).Login, nil, body)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthHandlerLogout(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/logout", "/logout", NewAuthHandler(testhelpers.PanelFacadeStub{}).Logout, asUser(1), nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}

	cookies := resp.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got %+v", cookies)
	}
}

func TestAuthHandlerSession(t *testing.T) {
	facade := testhelpers.PanelFacadeStub{SessionFn: func(_ context.Context, userID int64) (*model.User, error) {
		return &model.User{ID: userID, Login: "ana", Admin: true}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/session", "/session", NewAuthHandler(facade).Session, asUser(9), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var session dto.SessionResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &session); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if session.UserID != 9 || !session.Admin {
		t.Fatalf("unexpected session %+v", session)
	}
}

func TestAuthHandlerSessionGoneAccount(t *testing.T) {
	facade := testhelpers.PanelFacadeStub{SessionFn: func(context.Context, int64) (*model.User, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp := performRequest(t, http.MethodGet, "/session", "/session", NewAuthHandler(facade).Session, asUser(9), nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthHandlerSessionLookupFailure(t *testing.T) {
	facade := testhelpers.PanelFacadeStub{SessionFn: func(context.Context, int64) (*model.User, error) {
		return nil, errors.New("storage down")
	}}
	resp := performRequest(t, http.MethodGet, "/session", "/session", NewAuthHandler(facade).Session, asUser(9), nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}

	cookies := resp.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got %+v", cookies)
	}
}

func sampleView() *model.DashboardView {
	created := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	return &model.DashboardView{
		Orders: []model.Order{
			{
				ID:            10,
				StatusID:      200,
				StatusLabel:   "Pendente",
				TotalValue:    55.5,
				PaymentMethod: "pix",
				CustomerID:    3,
				CreatedAt:     created,
				Items:         []model.LineItem{{Quantity: 2, UnitPrice: 27.75, ProductName: "Café Especial"}},
			},
		},
		Stats:      model.Stats{TotalOrders: 1, TotalValue: 55.5, ByStatus: map[int]int{200: 1}},
		Filters:    []model.StatusEntry{{StatusID: 200, Description: "Pendente", Category: 1}},
		Highlights: map[int64]bool{10: true},
	}
}

func TestOrderHandlerList(t *testing.T) {
	var gotSel model.Selection
	facade := testhelpers.PanelFacadeStub{OrdersFn: func(_ context.Context, sel model.Selection) (*model.DashboardView, error) {
		gotSel = sel
		return sampleView(), nil
	}}

	resp := performRequest(t, http.MethodGet, "/orders?status=200&q=cafe&sort=value_asc", "/orders", NewOrderHandler(facade).List, asUser(1), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	if gotSel.StatusID == nil || *gotSel.StatusID != 200 || gotSel.Search != "cafe" || gotSel.Sort != model.SortValueAsc {
		t.Fatalf("unexpected selection %+v", gotSel)
	}

	var body dto.OrderListResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(body.Orders) != 1 || body.Orders[0].ID != 10 || !body.Orders[0].New {
		t.Fatalf("unexpected orders %+v", body.Orders)
	}
	if body.Stats.TotalOrders != 1 || len(body.Filters) != 1 {
		t.Fatalf("unexpected aggregates %+v", body)
	}
	if body.Orders[0].Items[0].Product != "Café Especial" {
		t.Fatalf("unexpected items %+v", body.Orders[0].Items)
	}
}

func TestOrderHandlerListDefaultsSelection(t *testing.T) {
	var gotSel model.Selection
	facade := testhelpers.PanelFacadeStub{OrdersFn: func(_ context.Context, sel model.Selection) (*model.DashboardView, error) {
		gotSel = sel
		return sampleView(), nil
	}}

	resp := performRequest(t, http.MethodGet, "/orders", "/orders", NewOrderHandler(facade).List, asUser(1), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotSel.StatusID != nil || gotSel.Search != "" || gotSel.Sort != model.SortDateDesc {
		t.Fatalf("unexpected selection %+v", gotSel)
	}
}

func TestOrderHandlerListRejectsBadStatus(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/orders?status=abc", "/orders", NewOrderHandler(testhelpers.PanelFacadeStub{}).List, asUser(1), nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestOrderHandlerListFailure(t *testing.T) {
	facade := testhelpers.PanelFacadeStub{OrdersFn: func(context.Context, model.Selection) (*model.DashboardView, error) {
		return nil, errors.New("boom")
	}}
	resp := performRequest(t, http.MethodGet, "/orders", "/orders", NewOrderHandler(facade).List, asUser(1), nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestOrderHandlerUpdateStatus(t *testing.T) {
	var gotOrder int64
	var gotStatus int
	facade := testhelpers.PanelFacadeStub{ChangeStatusFn: func(_ context.Context, orderID int64, statusID int) error {
		gotOrder = orderID
		gotStatus = statusID
		return nil
	}}

	body := mustJSON(t, dto.UpdateStatusRequest{StatusID: 201})
	resp := performRequest(t, http.MethodPatch, "/orders/10/status", "/orders/:id/status", NewOrderHandler(facade).UpdateStatus, asUser(1), body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotOrder != 10 || gotStatus != 201 {
		t.Fatalf("unexpected call order=%d status=%d", gotOrder, gotStatus)
	}
}

func TestOrderHandlerUpdateStatusFailures(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   []byte
		err    error
		status int
	}{
		{name: "bad id", path: "/orders/abc/status", body: mustJSON(t, dto.UpdateStatusRequest{StatusID: 201}), status: http.StatusBadRequest},
		{name: "missing status", path: "/orders/10/status", body: []byte(`{}`), status: http.StatusBadRequest},
		{name: "status outside selector", path: "/orders/10/status", body: mustJSON(t, dto.UpdateStatusRequest{StatusID: 999}), err: domainErrors.ErrInvalidStatus, status: http.StatusUnprocessableEntity},
		{name: "unknown order", path: "/orders/10/status", body: mustJSON(t, dto.UpdateStatusRequest{StatusID: 201}), err: domainErrors.ErrNotFound, status: http.StatusNotFound},
		{name: "storage failure", path: "/orders/10/status", body: mustJSON(t, dto.UpdateStatusRequest{StatusID: 201}), err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			facade := testhelpers.PanelFacadeStub{ChangeStatusFn: func(context.Context, int64, int) error {
				return tc.err
			}}
			resp := performRequest(t, http.MethodPatch, tc.path, "/orders/:id/status", NewOrderHandler(facade).UpdateStatus, asUser(1), tc.body)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestOrderHandlerRefresh(t *testing.T) {
	called := false
	facade := testhelpers.PanelFacadeStub{RefreshFn: func(context.Context) error {
		called = true
		return nil
	}}
	resp := performRequest(t, http.MethodPost, "/orders/refresh", "/orders/refresh", NewOrderHandler(facade).Refresh, asUser(1), nil)
	if resp.Code != http.StatusOK || !called {
		t.Fatalf("expected refresh call with 200, got %d called=%v", resp.Code, called)
	}
}

func TestOrderHandlerRefreshFailure(t *testing.T) {
	facade := testhelpers.PanelFacadeStub{RefreshFn: func(context.Context) error {
		return errors.New("boom")
	}}
	resp := performRequest(t, http.MethodPost, "/orders/refresh", "/orders/refresh", NewOrderHandler(facade).Refresh, asUser(1), nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestOrderHandlerStatuses(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/statuses", "/statuses", NewOrderHandler(testhelpers.PanelFacadeStub{}).Statuses, asUser(1), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var options []dto.StatusOptionResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &options); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(options) != 1 || options[0].StatusID != 200 {
		t.Fatalf("unexpected options %+v", options)
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	return body
}
