// Package webui exposes a minimal HTTP server with an HTML form that
// runs the CSV schema sniffer against a local file or a remote URL and
// shows the inferred schema.
//
// Routes:
//
//	GET  /          → form
//	POST /sniff     → runs the sniffer with form inputs; renders inline
//	GET  /api/sniff → machine-friendly API, returns application/json
package webui

import (
	"bytes"
	"context"
	"encoding/json"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/ejo6/DataWarehouse/internal/datasource/file"
	"github.com/ejo6/DataWarehouse/internal/datasource/httpds"
	"github.com/ejo6/DataWarehouse/internal/scan"
	"github.com/ejo6/DataWarehouse/internal/schema"
)

// DefaultSampleBytes bounds how much of a remote file is fetched for
// sniffing when the form does not say otherwise.
const DefaultSampleBytes = 256 << 10

// Config controls server startup.
type Config struct {
	Addr string

	// Client fetches remote samples. Nil gets a default client.
	Client *httpds.Client

	// Scan carries the delimiter and guard limits for every sniff.
	Scan scan.Options
}

// pageData feeds the embedded template.
type pageData struct {
	Path       string
	URL        string
	Bytes      int
	ResultText string
}

// Server wraps http.Server for convenience.
type Server struct {
	cfg    Config
	client *httpds.Client
	mux    *http.ServeMux
	tmpl   *template.Template
}

// NewServer constructs a Server with routes and the embedded template.
func NewServer(cfg Config) *Server {
	client := cfg.Client
	if client == nil {
		client = httpds.NewClient(httpds.Config{})
	}
	s := &Server{
		cfg:    cfg,
		client: client,
		mux:    http.NewServeMux(),
		tmpl:   template.Must(template.New("index").Parse(indexHTML)),
	}
	s.routes()
	return s
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return http.ListenAndServe(s.cfg.Addr, s.mux)
}

// Handler returns the route mux, mainly for tests.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/sniff", s.handleSniff)
	s.mux.HandleFunc("/api/sniff", s.handleAPISniff)
}

// handleIndex renders the input form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	_ = s.tmpl.Execute(w, pageData{})
}

// handleSniff processes the form and renders a results page.
func (s *Server) handleSniff(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form: "+err.Error(), http.StatusBadRequest)
		return
	}
	path := strings.TrimSpace(r.FormValue("path"))
	url := strings.TrimSpace(r.FormValue("url"))
	bytesStr := strings.TrimSpace(r.FormValue("bytes"))
	nbytes, _ := strconv.Atoi(bytesStr)

	result, err := s.sniffTarget(r.Context(), path, url, nbytes)
	if err != nil {
		http.Error(w, "sniff failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	data := pageData{
		Path:       path,
		URL:        url,
		Bytes:      nbytes,
		ResultText: string(result),
	}
	if err := s.tmpl.Execute(w, data); err != nil {
		log.Println("template error:", err)
	}
}

// handleAPISniff returns the schema JSON so scripts can curl it.
func (s *Server) handleAPISniff(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	path := strings.TrimSpace(q.Get("path"))
	url := strings.TrimSpace(q.Get("url"))
	nbytes, _ := strconv.Atoi(strings.TrimSpace(q.Get("bytes")))

	result, err := s.sniffTarget(r.Context(), path, url, nbytes)
	if err != nil {
		http.Error(w, "sniff failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(result)
}

// sniffTarget sniffs either a local path or a remote URL sample and
// returns the schema as JSON. Exactly one of path/url must be set.
func (s *Server) sniffTarget(ctx context.Context, path, url string, nbytes int) ([]byte, error) {
	var (
		sch schema.Schema
		err error
	)
	switch {
	case path != "" && url != "":
		return nil, fmt.Errorf("give either a path or a url, not both")
	case path != "":
		var rc io.ReadCloser
		rc, err = file.NewLocal(path).Open(ctx)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		sch, err = scan.Sniff(rc, s.cfg.Scan)
	case url != "":
		if nbytes <= 0 {
			nbytes = DefaultSampleBytes
		}
		var sample []byte
		sample, err = s.client.FetchFirstBytes(ctx, url, nbytes)
		if err != nil {
			return nil, err
		}
		// A Range fetch usually chops the last record; drop the partial
		// line so it cannot skew the inferred types.
		sample = httpds.CutAtLastNewline(sample)
		sch, err = scan.Sniff(bytes.NewReader(sample), s.cfg.Scan)
	default:
		return nil, fmt.Errorf("path or url is required")
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(sch)
}

// indexHTML is an embedded, minimal page with vanilla styling.
//
//go:embed index.tmpl.html
var indexHTML string
