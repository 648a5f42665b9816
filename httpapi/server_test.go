package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iw2rmb/inkwell"
	"github.com/iw2rmb/inkwell/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	st, err := store.New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for name, text := range map[string]string{
		"2024-03-09.txt":          "March 09, 2024\n\nhello",
		"MonthlyLogs/2024-03.txt": "--- 2024-03-09 ---\n\nhello\n",
		"Project One.txt":         "draft",
	} {
		if err := st.WriteFile(name, text); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
	srv := httptest.NewServer(NewServer(Config{MaxUploadBytes: 64}, st).Handler())
	t.Cleanup(srv.Close)
	return srv, st
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func TestIndexListsFiles(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, body := get(t, srv.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Server"); got != inkwell.UserAgent() {
		t.Fatalf("server header: got %q, want %q", got, inkwell.UserAgent())
	}
	for _, want := range []string{"2024-03-09.txt", "MonthlyLogs/2024-03.txt", "Project%20One.txt", `enctype="multipart/form-data"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("index missing %q:\n%s", want, body)
		}
	}

	resp, _ = get(t, srv.URL+"/elsewhere")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown path: got %d, want 404", resp.StatusCode)
	}
}

func TestListJSON(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, body := get(t, srv.URL+"/api/files")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d", resp.StatusCode)
	}
	var listing store.Listing
	if err := json.Unmarshal([]byte(body), &listing); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listing.Daily) != 1 || len(listing.Monthly) != 1 || len(listing.Projects) != 1 {
		t.Fatalf("listing: got %+v", listing)
	}
}

func TestDownload(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, body := get(t, srv.URL+"/download/MonthlyLogs/2024-03.txt")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d", resp.StatusCode)
	}
	if body != "--- 2024-03-09 ---\n\nhello\n" {
		t.Fatalf("body: got %q", body)
	}
	if got := resp.Header.Get("Content-Disposition"); got != `attachment; filename="2024-03.txt"` {
		t.Fatalf("disposition: got %q", got)
	}

	resp, _ = get(t, srv.URL+"/download/Project%20One.txt")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("escaped name: got %d", resp.StatusCode)
	}
}

func TestDownloadRejects(t *testing.T) {
	srv, _ := newTestServer(t)
	cases := map[string]int{
		"/download/missing.txt":  http.StatusNotFound,
		"/download/.initialized": http.StatusNotFound,
	}
	for path, want := range cases {
		resp, _ := get(t, srv.URL+path)
		if resp.StatusCode != want {
			t.Fatalf("%s: got %d, want %d", path, resp.StatusCode, want)
		}
	}
}

func upload(t *testing.T, url, filename, content string, jsonReply bool) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	_, _ = io.WriteString(fw, content)
	_ = mw.Close()

	req, err := http.NewRequest(http.MethodPost, url+"/upload", &buf)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if jsonReply {
		req.Header.Set("Accept", "application/json")
	}
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	resp.Body.Close()
	return resp
}

func TestUpload(t *testing.T) {
	srv, st := newTestServer(t)

	resp := upload(t, srv.URL, "Novel.txt", "line one\r\nline two", false)
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/" {
		t.Fatalf("form upload: got %d to %q", resp.StatusCode, resp.Header.Get("Location"))
	}
	got, err := st.ReadFile("Novel.txt")
	if err != nil || got != "line one\nline two" {
		t.Fatalf("stored: got %q/%v", got, err)
	}

	resp = upload(t, srv.URL, "../../Project One.txt", "replaced", true)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("json upload: got %d", resp.StatusCode)
	}
	if got, _ := st.ReadFile("Project One.txt"); got != "replaced" {
		t.Fatalf("last writer wins: got %q", got)
	}
}

func TestUploadRejects(t *testing.T) {
	srv, _ := newTestServer(t)
	cases := []struct {
		name, content string
		want          int
	}{
		{"photo.png", "x", http.StatusBadRequest},
		{".hidden.txt", "x", http.StatusBadRequest},
		{"big.txt", strings.Repeat("x", 65), http.StatusRequestEntityTooLarge},
		{"binary.txt", "\xff\xfe", http.StatusBadRequest},
	}
	for _, tc := range cases {
		if resp := upload(t, srv.URL, tc.name, tc.content, true); resp.StatusCode != tc.want {
			t.Fatalf("%s: got %d, want %d", tc.name, resp.StatusCode, tc.want)
		}
	}
}

type outsideLibrary struct{}

func (outsideLibrary) List() (store.Listing, error) { return store.Listing{}, nil }

func (outsideLibrary) ReadFile(name string) (string, error) {
	return "", fmt.Errorf("%w: %q", store.ErrOutsideRoot, name)
}

func (outsideLibrary) WriteFile(name, text string) error { return store.ErrOutsideRoot }

func TestDownloadOutsideRootForbidden(t *testing.T) {
	h := NewServer(Config{}, outsideLibrary{}).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download/escape.txt", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want 403", rec.Code)
	}
}

func TestRemoteHost(t *testing.T) {
	cases := map[string]string{
		"192.168.1.20:51234": "192.168.1.20",
		"[fe80::1]:8000":     "fe80::1",
		"bare":               "bare",
	}
	for in, want := range cases {
		if got := remoteHost(in); got != want {
			t.Fatalf("remoteHost(%q): got %q, want %q", in, got, want)
		}
	}
}
