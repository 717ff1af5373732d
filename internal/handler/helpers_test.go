package handler_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/msomdec/employee-pass/internal/handler"
	"github.com/msomdec/employee-pass/internal/repository/memory"
	"github.com/msomdec/employee-pass/internal/service"
)

const (
	testAdminPassword = "admin123"
	testSessionSecret = "test-secret-for-handler-tests-0123456789"
	testMaxUpload     = 1 << 20
)

type testEnv struct {
	srv    *httptest.Server
	client *http.Client
	store  *service.EmployeeStore
	slots  *memory.Store
}

type envOptions struct {
	exportRate, exportBurst float64
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWith(t, envOptions{exportRate: 100, exportBurst: 100})
}

func newTestEnvWith(t *testing.T, opts envOptions) *testEnv {
	t.Helper()

	slots := memory.New()
	store := service.NewEmployeeStore(context.Background(), slots)
	renderer, err := service.NewPassRenderer(service.Branding{ShortName: "GLOBAL ASSOC.", FullName: "Global Association"})
	if err != nil {
		t.Fatalf("NewPassRenderer: %v", err)
	}
	limiter := service.NewTokenBucket(opts.exportRate, opts.exportBurst)
	t.Cleanup(limiter.Stop)

	h := handler.NewHandler(handler.Deps{
		Gate:           service.NewAdminGate(service.NewFixedSecretVerifier(testAdminPassword), testSessionSecret, time.Hour),
		Store:          store,
		Registration:   service.NewRegistrationService(store),
		Renderer:       renderer,
		ExportLimiter:  limiter,
		MaxUploadBytes: testMaxUpload,
	})

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse // don't follow redirects automatically
		},
	}

	return &testEnv{srv: srv, client: client, store: store, slots: slots}
}

// do sends a request and returns the response with its body read.
func (e *testEnv) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := e.client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, e.srv.URL+path, nil)
	return e.do(t, req)
}

// datastarGet issues a request the way the datastar client does.
func (e *testEnv) datastarGet(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, e.srv.URL+path, nil)
	req.Header.Set("Datastar-Request", "true")
	return e.do(t, req)
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values, datastar bool) (*http.Response, string) {
	t.Helper()
	req, _ := http.NewRequest(http.MethodPost, e.srv.URL+path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if datastar {
		req.Header.Set("Datastar-Request", "true")
	}
	return e.do(t, req)
}

func (e *testEnv) register(t *testing.T, name, employeeID string, photo []byte) (*http.Response, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("name", name)
	mw.WriteField("employeeId", employeeID)
	if photo != nil {
		fw, err := mw.CreateFormFile("photo", "photo.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		fw.Write(photo)
	}
	mw.Close()

	req, _ := http.NewRequest(http.MethodPost, e.srv.URL+"/register", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return e.do(t, req)
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	resp, _ := e.postForm(t, "/admin/login", url.Values{"password": {testAdminPassword}}, false)
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("login: expected 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/admin" {
		t.Fatalf("login: expected redirect to /admin, got %s", loc)
	}
}

// seed registers an employee directly through the store.
func (e *testEnv) seed(t *testing.T, name, employeeID string) string {
	t.Helper()
	photo, err := service.EncodePhoto(testPNG(t))
	if err != nil {
		t.Fatalf("EncodePhoto: %v", err)
	}
	emp, err := e.store.Create(context.Background(), name, employeeID, photo)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return emp.ID
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 120, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
