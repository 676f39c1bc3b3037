package dispatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gysosin/hwinfo/internal/collectors"
)

type fakeQuerier struct {
	cpu    collectors.CPUSnapshot
	gpu    collectors.GPUSnapshot
	gpuErr error
}

func (f fakeQuerier) CPU() collectors.CPUSnapshot { return f.cpu }

func (f fakeQuerier) GPU() (collectors.GPUSnapshot, error) { return f.gpu, f.gpuErr }

func buildRouter(t *testing.T, q Querier) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return New(q).Router(io.Discard)
}

func doRequest(r http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestInvokeUnknownCommand(t *testing.T) {
	d := New(fakeQuerier{})
	if _, err := d.Invoke("get_ram_info"); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if got := d.Commands(); len(got) != 2 || got[0] != CmdCPUInfo || got[1] != CmdGPUInfo {
		t.Fatalf("unexpected command list %v", got)
	}
}

func TestInvokeCPU(t *testing.T) {
	q := fakeQuerier{cpu: collectors.CPUSnapshot{Brand: "AMD Ryzen 9 7950X", Cores: 16, PerCoreUsage: []float64{}}}
	r := buildRouter(t, q)

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		w := doRequest(r, method, "/invoke/get_cpu_info")
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", method, w.Code)
		}
		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("%s: bad JSON: %v", method, err)
		}
		if got["brand"] != "AMD Ryzen 9 7950X" || got["cores"] != float64(16) {
			t.Fatalf("%s: unexpected body %v", method, got)
		}
	}
}

func TestInvokeGPUFailure(t *testing.T) {
	r := buildRouter(t, fakeQuerier{gpuErr: collectors.ErrRegistryUnavailable})

	w := doRequest(r, http.MethodPost, "/invoke/get_gpu_info")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var got map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if got["error"] != collectors.ErrRegistryUnavailable.Error() {
		t.Fatalf("unexpected error body %v", got)
	}
}

func TestInvokeGPUFailureHidesWrappedCause(t *testing.T) {
	wrapped := fmt.Errorf("%w: access is denied", collectors.ErrRegistryUnavailable)
	r := buildRouter(t, fakeQuerier{gpuErr: wrapped})

	w := doRequest(r, http.MethodGet, "/invoke/get_gpu_info")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"error":"cannot access GPU hardware registry"}` {
		t.Fatalf("unexpected error body %s", body)
	}
}

func TestInvokeGPUSuccess(t *testing.T) {
	r := buildRouter(t, fakeQuerier{gpu: collectors.GPUSnapshot{Name: "NVIDIA GeForce RTX 4090", Vendor: "NVIDIA"}})

	w := doRequest(r, http.MethodGet, "/invoke/get_gpu_info")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"name":"NVIDIA GeForce RTX 4090"`) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestInvokeUnknownRoute(t *testing.T) {
	r := buildRouter(t, fakeQuerier{})
	w := doRequest(r, http.MethodGet, "/invoke/reboot")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestMetrics(t *testing.T) {
	r := buildRouter(t, fakeQuerier{
		cpu:    collectors.CPUSnapshot{Brand: "x", Usage: 50},
		gpuErr: errors.New("no registry"),
	})

	w := doRequest(r, http.MethodGet, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("unexpected content type %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "hwinfo_cpu_usage_percent 50.00") || !strings.Contains(body, "hwinfo_gpu_up 0") {
		t.Fatalf("unexpected metrics body:\n%s", body)
	}
}

func TestHealthz(t *testing.T) {
	r := buildRouter(t, fakeQuerier{})
	w := doRequest(r, http.MethodGet, "/healthz")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected healthz response %d %s", w.Code, w.Body.String())
	}
}
