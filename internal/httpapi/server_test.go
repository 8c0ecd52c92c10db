package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yiqiao-yin/aws-deploy-bedrock-on-lambda/pkg/types"
)

type mockService struct {
	resp  types.Response
	err   error
	ready bool

	gotEvent types.Event
	calls    int
}

func (m *mockService) Handle(ctx context.Context, ev types.Event) (types.Response, error) {
	m.calls++
	m.gotEvent = ev
	if m.err != nil {
		return types.Response{}, m.err
	}
	return m.resp, nil
}

func (m *mockService) Ready() bool { return m.ready }

func TestInvokeRelaysEnvelope(t *testing.T) {
	svc := &mockService{resp: types.Response{StatusCode: 200, Body: `{"message":"Amazon Titan Response"}`}}
	r := NewMux(svc)
	req := httptest.NewRequest(http.MethodPost, "/invoke", strings.NewReader(`{"prompt":"Hello"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("content-type=%s", ct)
	}
	if w.Body.String() != `{"message":"Amazon Titan Response"}` {
		t.Fatalf("body=%q", w.Body.String())
	}
	if string(svc.gotEvent.Body) != `{"prompt":"Hello"}` {
		t.Fatalf("event body=%q", svc.gotEvent.Body)
	}
}

func TestInvokeRelaysErrorStatus(t *testing.T) {
	svc := &mockService{resp: types.Response{StatusCode: 500, Body: `{"error":"boom"}`}}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/invoke", strings.NewReader(`{}`)))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	if w.Body.String() != `{"error":"boom"}` {
		t.Fatalf("body=%q", w.Body.String())
	}
}

func TestInvokeEmptyBody(t *testing.T) {
	svc := &mockService{resp: types.Response{StatusCode: 200, Body: `{}`}}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/invoke", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if svc.gotEvent.Body != nil {
		t.Fatalf("event body=%q", svc.gotEvent.Body)
	}
}

func TestInvokeOversizedBodyFallsBackToDefaults(t *testing.T) {
	SetMaxBodyBytes(8)
	defer SetMaxBodyBytes(0)

	svc := &mockService{resp: types.Response{StatusCode: 200, Body: `{}`}}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/invoke", strings.NewReader(`{"prompt":"this body is way past eight bytes"}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if svc.calls != 1 {
		t.Fatalf("calls=%d", svc.calls)
	}
	if svc.gotEvent.Body != nil {
		t.Fatalf("event body=%q", svc.gotEvent.Body)
	}
}

func TestHealthz(t *testing.T) {
	r := NewMux(&mockService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestReadyz(t *testing.T) {
	r := NewMux(&mockService{ready: true})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestReadyz_NotReady(t *testing.T) {
	r := NewMux(&mockService{ready: false})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "starting") {
		t.Fatalf("body=%q", w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := NewMux(&mockService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}
