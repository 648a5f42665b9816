// Package httpapi serves the projects directory over HTTP so documents can
// be copied off and onto the appliance.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/iw2rmb/inkwell"
	"github.com/iw2rmb/inkwell/store"
	"pkt.systems/pslog"
)

// Library is the document storage the server exposes.
type Library interface {
	List() (store.Listing, error)
	ReadFile(name string) (string, error)
	WriteFile(name, text string) error
}

// Server serves the file list, downloads and uploads.
type Server struct {
	cfg   Config
	files Library
}

// NewServer constructs a transfer server over files.
func NewServer(cfg Config, files Library) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUpload
	}
	return &Server{cfg: cfg, files: files}
}

// Handler returns an http.Handler for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/files", s.handleList)
	mux.HandleFunc("GET /download/{name...}", s.handleDownload)
	mux.HandleFunc("POST /upload", s.handleUpload)
	return withServerHeader(withRequestLogging(mux))
}

func withServerHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", inkwell.UserAgent())
		next.ServeHTTP(w, r)
	})
}

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Product}} files</title>
<style>
body { font-family: Georgia, serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; color: #333; }
h2 { border-bottom: 1px solid #ccc; padding-bottom: .3rem; }
li { margin: .4rem 0; }
</style>
</head>
<body>
<h1>{{.Product}} files</h1>
{{define "group"}}<ul>{{range .}}<li><a href="/download/{{.}}">{{.}}</a></li>{{else}}<li>None yet.</li>{{end}}</ul>{{end}}
<h2>Monthly logs</h2>
{{template "group" .Files.Monthly}}
<h2>Daily journals</h2>
{{template "group" .Files.Daily}}
<h2>Projects</h2>
{{template "group" .Files.Projects}}
<h2>Upload</h2>
<form method="post" action="/upload" enctype="multipart/form-data">
<input type="file" name="file" accept=".txt"> <button type="submit">Upload</button>
</form>
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	listing, err := s.files.List()
	if err != nil {
		pslog.Ctx(r.Context()).Warn("list documents failed", "err", err)
		http.Error(w, "could not read projects directory", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Product string
		Files   store.Listing
	}{inkwell.Product, listing}
	if err := indexTemplate.Execute(w, data); err != nil {
		pslog.Ctx(r.Context()).Warn("render index failed", "err", err)
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	listing, err := s.files.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if path.Ext(name) != ".txt" {
		http.NotFound(w, r)
		return
	}
	text, err := s.files.ReadFile(name)
	switch {
	case errors.Is(err, store.ErrOutsideRoot):
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	case errors.Is(err, fs.ErrNotExist):
		http.NotFound(w, r)
		return
	case err != nil:
		pslog.Ctx(r.Context()).Warn("download failed", "doc", name, "err", err)
		http.Error(w, "could not read document", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", path.Base(name)))
	_, _ = io.WriteString(w, text)
}

// handleUpload stores a .txt file at the top of the projects directory. An
// existing document of the same name is replaced.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+64<<10)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("missing file: %w", err))
		return
	}
	defer file.Close()

	name := path.Base(strings.ReplaceAll(header.Filename, "\\", "/"))
	if path.Ext(name) != ".txt" || strings.HasPrefix(name, ".") {
		writeError(w, http.StatusBadRequest, errors.New("only .txt documents can be uploaded"))
		return
	}
	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, errors.New("document too large"))
		return
	}
	if !utf8.Valid(data) {
		writeError(w, http.StatusBadRequest, errors.New("document is not UTF-8 text"))
		return
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	if err := s.files.WriteFile(name, text); err != nil {
		pslog.Ctx(r.Context()).Warn("upload failed", "doc", name, "err", err)
		writeError(w, http.StatusInternalServerError, errors.New("could not store document"))
		return
	}
	pslog.Ctx(r.Context()).Info("document uploaded", "doc", name, "bytes", len(text))

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, http.StatusCreated, map[string]any{"name": name, "bytes": len(text)})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}
