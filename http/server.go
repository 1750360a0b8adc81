package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/staffdir"
)

// ShutdownTimeout is the time given for outstanding requests to finish
// before the server is forcibly closed.
const ShutdownTimeout = 5 * time.Second

// DefaultSnippetLimit caps the snippets returned for one page.
const DefaultSnippetLimit = 50

// Server serves the scraping and selector configuration API.
type Server struct {
	ln     net.Listener
	server *http.Server

	// Addr is the bind address, e.g. ":3000".
	Addr string

	Scraper   staffdir.Scraper
	Selectors staffdir.SelectorService
	Fetcher   staffdir.Fetcher
	Snippets  staffdir.SnippetFinder
	Logger    *slog.Logger

	// ValidateConfig and ValidateUpdate check selectors before they are
	// stored. When nil only structural validation runs.
	ValidateConfig func(cfg *staffdir.SelectorConfig) error
	ValidateUpdate func(upd staffdir.SelectorUpdate) error

	SnippetLimit int

	// SnippetWait is the wait selector used when fetching a page for
	// selector discovery.
	SnippetWait string
}

// NewServer returns a new Server. Dependencies must be set before Open.
func NewServer() *Server {
	s := &Server{
		Logger:       slog.New(slog.DiscardHandler),
		SnippetLimit: DefaultSnippetLimit,
		SnippetWait:  staffdir.SnippetWaitSelector,
	}
	s.server = &http.Server{
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the API routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /scrape", s.handleScrape)
	mux.HandleFunc("GET /potentialClasses", s.handleGetSelectors)
	mux.HandleFunc("POST /potentialClasses", s.handleReplaceSelectors)
	mux.HandleFunc("PUT /potentialClasses", s.handleUpdateSelectors)
	mux.HandleFunc("GET /scrapeWebsiteSnippets", s.handleSnippets)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return s.logRequests(mux)
}

// Open begins listening on Addr and serving in a background goroutine.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	s.server.Handler = s.Handler()

	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("serve", "err", err)
		}
	}()
	return nil
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req staffdir.ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := req.Validate(); err != nil {
		s.writeScrapeError(w, r, err)
		return
	}

	records, err := s.Scraper.Scrape(r.Context(), req)
	if err != nil {
		s.writeScrapeError(w, r, err)
		return
	}
	if records == nil {
		records = []*staffdir.StaffRecord{}
	}

	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetSelectors(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.Selectors.FindSelectorConfig(r.Context())
	if err != nil {
		s.writeResult(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleReplaceSelectors(w http.ResponseWriter, r *http.Request) {
	var cfg staffdir.SelectorConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		s.writeResult(w, r, staffdir.Errorf(staffdir.EINVALID, "Invalid request body."), "")
		return
	}

	validate := s.ValidateConfig
	if validate == nil {
		validate = func(cfg *staffdir.SelectorConfig) error { return cfg.Validate() }
	}
	if err := validate(&cfg); err != nil {
		s.writeResult(w, r, err, "")
		return
	}

	err := s.Selectors.ReplaceSelectorConfig(r.Context(), &cfg)
	s.writeResult(w, r, err, "Classes saved successfully.")
}

func (s *Server) handleUpdateSelectors(w http.ResponseWriter, r *http.Request) {
	var upd staffdir.SelectorUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		s.writeResult(w, r, staffdir.Errorf(staffdir.EINVALID, "Invalid request body."), "")
		return
	}

	validate := s.ValidateUpdate
	if validate == nil {
		validate = func(upd staffdir.SelectorUpdate) error { return upd.Validate() }
	}
	if err := validate(upd); err != nil {
		s.writeResult(w, r, err, "")
		return
	}

	err := s.Selectors.ApplySelectorUpdate(r.Context(), upd)
	s.writeResult(w, r, err, "Classes updated successfully.")
}

// snippetsResponse keeps the selector to HTML map the configuration UI reads
// and adds the ordered snippet list.
type snippetsResponse struct {
	URL          string              `json:"url"`
	HTMLSnippets map[string]string   `json:"htmlSnippets"`
	Snippets     []*staffdir.Snippet `json:"snippets"`
}

func (s *Server) handleSnippets(w http.ResponseWriter, r *http.Request) {
	pageURL := r.URL.Query().Get("url")
	if _, err := staffdir.ResolveDomainKey(pageURL); err != nil {
		writeMessage(w, http.StatusBadRequest, staffdir.ErrorMessage(err))
		return
	}

	html, err := s.Fetcher.Fetch(r.Context(), pageURL, s.SnippetWait)
	if err != nil {
		s.Logger.Error("snippets", "url", pageURL, "err", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch page.")
		return
	}

	snippets, err := s.Snippets.FindSnippets(html, s.SnippetLimit)
	if err != nil {
		s.Logger.Error("snippets", "url", pageURL, "err", err)
		writeMessage(w, statusFor(err), staffdir.ErrorMessage(err))
		return
	}

	resp := snippetsResponse{
		URL:          pageURL,
		HTMLSnippets: make(map[string]string, len(snippets)),
		Snippets:     snippets,
	}
	for _, sn := range snippets {
		resp.HTMLSnippets[sn.Selector] = sn.HTML
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// writeScrapeError maps scrape failures to their status. Failures without an
// application error code are renderer failures.
func (s *Server) writeScrapeError(w http.ResponseWriter, r *http.Request, err error) {
	if staffdir.ErrorCode(err) == staffdir.EINTERNAL {
		s.Logger.Error("scrape", "path", r.URL.Path, "err", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to scrape data.")
		return
	}
	writeMessage(w, statusFor(err), staffdir.ErrorMessage(err))
}

// result is the acknowledgement returned by configuration writes.
type result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) writeResult(w http.ResponseWriter, r *http.Request, err error, okMessage string) {
	if err == nil {
		writeJSON(w, http.StatusOK, result{Success: true, Message: okMessage})
		return
	}
	code := staffdir.ErrorCode(err)
	if code == staffdir.EINTERNAL {
		s.Logger.Error("selectors", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, statusFor(err), result{Success: false, Message: staffdir.ErrorMessage(err)})
}

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	staffdir.ECONFLICT:    http.StatusConflict,
	staffdir.EINVALID:     http.StatusBadRequest,
	staffdir.ENOTFOUND:    http.StatusNotFound,
	staffdir.EUNSUPPORTED: http.StatusBadRequest,
	staffdir.EINTERNAL:    http.StatusInternalServerError,
}

func statusFor(err error) int {
	if status, ok := codes[staffdir.ErrorCode(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func(begin time.Time) {
			s.Logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(begin),
			)
		}(time.Now())
		next.ServeHTTP(rec, r)
	})
}
