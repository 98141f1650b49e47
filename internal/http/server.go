package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"mime"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"familyspend/internal/app"
	"familyspend/internal/cache"
	"familyspend/internal/core"
	"familyspend/internal/i18n"
	applog "familyspend/internal/log"
	"familyspend/internal/middleware/metrics"
	"familyspend/internal/middleware/security"
	"familyspend/internal/middleware/trace"
	"familyspend/internal/notify"
	"familyspend/internal/render"
	appweb "familyspend/web"
)

const (
	defaultConfirmTTL = 2 * time.Minute
	maxPending        = 64
	staticMaxAge      = 3600
)

// Config wires the server to the application.
type Config struct {
	Addr     string
	App      *app.App
	Renderer *render.Renderer
	// Pending holds destructive commands awaiting confirmation, keyed by
	// token. A bounded LRU with ConfirmTTL is used when nil.
	Pending    cache.Cache[app.Command]
	ConfirmTTL time.Duration
	// Metrics is served on /metrics; a fresh registry is used when nil.
	Metrics *metrics.Metrics
	// TrustedProxies are CIDRs whose forwarding headers name the client,
	// in addition to loopback.
	TrustedProxies []string
	Logger         *applog.Logger
}

// Server is the local web surface: it serves the page, turns posted gestures
// into commands and answers with out-of-band region swaps and triggers.
type Server struct {
	http.Server
	app       *app.App
	templates *template.Template
	pending   cache.Cache[app.Command]
	metrics   *metrics.Metrics
	logger    *applog.Logger

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = applog.Discard()
	}
	if cfg.ConfirmTTL <= 0 {
		cfg.ConfirmTTL = defaultConfirmTTL
	}
	if cfg.Pending == nil {
		cfg.Pending = cache.NewLRUCache[app.Command](maxPending, cfg.ConfirmTTL)
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}

	mux := http.NewServeMux()
	s := &Server{
		app:       cfg.App,
		templates: cfg.Renderer.Templates(),
		pending:   cfg.Pending,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger.WithComponent(applog.ComponentHTTP),
	}

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(staticMaxAge)(static))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("GET /ready", handleReady)
	mux.Handle("GET /metrics", cfg.Metrics.Handler())
	mux.HandleFunc("GET /export", s.handleExport)
	mux.HandleFunc("POST /cmd/{name...}", s.handleCommand)
	mux.HandleFunc("POST /confirm/{token}", s.handleConfirm)

	detector := security.NewDetector()
	for _, cidr := range cfg.TrustedProxies {
		if err := detector.AddTrustedProxy(cidr); err != nil {
			s.logger.Warn("Ignoring trusted proxy", applog.FieldError, err)
		}
	}
	tracer := trace.NewMiddleware(cfg.Logger, detector.ExtractClientIP)
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	cfg.Metrics.WatchCounter("suspicious_requests_total", "Requests rejected by the request detector.",
		func() float64 { return float64(detector.GetMetrics().SuspiciousRequests) })
	cfg.Metrics.WatchGauge("pending_confirmations", "Destructive commands waiting for the user to confirm.",
		func() float64 { return float64(s.pending.Size()) })

	handler := cfg.Metrics.Middleware(mux)
	handler = detector.Guard(cfg.Logger)(handler)
	handler = headers.Middleware(handler)
	handler = tracer.Middleware(handler)

	s.Server = http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	frame := render.NewFrame()
	if err := s.app.Page(frame); err != nil {
		s.logger.ErrorContext(r.Context(), "Page render failed", applog.FieldError, err)
	}
	view, lang, theme := s.app.Snapshot()

	data := struct {
		Lang    i18n.Language
		Title   string
		Theme   core.Theme
		View    string
		Regions map[string]template.HTML
	}{lang, i18n.Translate(lang, i18n.AppTitle), theme, string(view), frame.Map()}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "Index template execution failed", applog.FieldError, err, "template", "index.html")
		InternalServerError(i18n.Translate(lang, i18n.ErrorOccurred)).Write(w)
		return
	}
	NewHTMXResponse().BodyHTML(buf.String()).Write(w)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		BadRequestError("malformed form").Write(w)
		return
	}
	cmd, err := ParseCommand(r.PathValue("name"), r.PostForm)
	if err != nil {
		NotFoundError(err.Error()).Write(w)
		return
	}
	s.run(r.Context(), w, cmd, render.NewFrame())
}

// handleConfirm settles a held-back command: "yes" dispatches it with the
// user's approval, anything else only closes the dialog.
func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		BadRequestError("malformed form").Write(w)
		return
	}
	frame := render.NewFrame()
	if err := s.app.DismissConfirmation(frame); err != nil {
		s.logger.ErrorContext(r.Context(), "Dialog render failed", applog.FieldError, err)
	}

	cmd, ok := s.pending.Take(r.PathValue("token"))
	switch {
	case !ok:
		s.logger.InfoContext(r.Context(), "Confirmation token expired or unknown")
		_, lang, _ := s.app.Snapshot()
		NewHTMXResponse().
			Swap(frame).
			TriggerToasts(lang, []notify.Toast{{Level: notify.Error, Key: i18n.ErrorOccurred}}).
			Write(w)
	case r.PostForm.Get("decision") == "yes":
		s.run(app.WithConfirmation(r.Context()), w, cmd, frame)
	default:
		NewHTMXResponse().Swap(frame).Write(w)
	}
}

// handleExport serves the CSV export as an attachment.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	cmd := app.Export{}
	out, err := s.app.Dispatch(r.Context(), cmd, render.NewFrame())
	s.observe(cmd, out, err)
	if err != nil || out.Download == nil {
		_, lang, _ := s.app.Snapshot()
		ErrorResponse(http.StatusBadGateway, i18n.Translate(lang, i18n.ErrorOccurred)).Write(w)
		return
	}
	writeDownload(w, out.Download.Name, out.Download.Data)
}

// run dispatches cmd with a per-request toast recorder and writes the regions
// painted into frame, the toasts and the page triggers. Failures are reported
// through toasts, so the status is 200 and htmx still applies the swaps.
func (s *Server) run(ctx context.Context, w http.ResponseWriter, cmd app.Command, frame *render.Frame) {
	rec := &notify.Recorder{}
	ctx = notify.WithNotifier(ctx, rec)

	out, err := s.app.Dispatch(ctx, cmd, frame)
	s.observe(cmd, out, err)
	if out.Confirm != "" {
		token := uuid.NewString()
		s.pending.Set(token, cmd)
		if err := s.app.AskConfirmation(out.Confirm, token, frame); err != nil {
			s.logger.ErrorContext(ctx, "Dialog render failed", applog.FieldError, err)
		}
	}
	if out.Download != nil {
		writeDownload(w, out.Download.Name, out.Download.Data)
		return
	}

	toasts := rec.Toasts()
	if err != nil && len(toasts) == 0 {
		toasts = append(toasts, notify.Toast{Level: notify.Error, Key: i18n.ErrorOccurred})
	}

	_, lang, _ := s.app.Snapshot()
	b := NewHTMXResponse().Swap(frame).TriggerToasts(lang, toasts)
	if out.ViewChanged {
		b.TriggerViewChanged(out.View)
	}
	if out.ThemeChanged {
		b.TriggerThemeChanged(out.Theme)
	}
	if out.LanguageChanged {
		b.TriggerLanguageChanged(out.Language)
	}
	b.Write(w)
}

func (s *Server) observe(cmd app.Command, out app.Outcome, err error) {
	var verr *core.ValidationError
	result := metrics.ResultOK
	switch {
	case out.Confirm != "":
		result = metrics.ResultConfirm
	case errors.As(err, &verr):
		result = metrics.ResultInvalid
	case err != nil:
		result = metrics.ResultFailed
	}
	s.metrics.ObserveCommand(cmd.Name(), result)
}

func writeDownload(w http.ResponseWriter, name string, data []byte) {
	if name == "" || strings.ContainsAny(name, "/\\") {
		name = "expenses.csv"
	}
	NewHTMXResponse().
		Header("Content-Type", "text/csv; charset=utf-8").
		Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name})).
		Header("Content-Length", fmt.Sprint(len(data))).
		Body(data).
		Write(w)
}
