package http

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"potability/form"
	"potability/ml"
	"potability/monitoring"
)

//go:embed templates/index.html
var templateFS embed.FS

// HandlerConfig holds presentation settings for the form.
type HandlerConfig struct {
	Title  string
	Locale string
}

// Handler serves the measurement form and runs predictions on demand. It
// holds no per-user state; every trigger is handled independently.
type Handler struct {
	predictor *ml.Predictor
	metrics   *monitoring.Metrics
	formatter *form.Formatter
	page      *template.Template
	title     string
	logger    *zap.Logger
	upgrader  websocket.Upgrader
}

type fieldView struct {
	Key    string
	Title  string
	Help   string
	Range  string
	Min    string
	Max    string
	Step   string
	Value  string
	Slider bool
}

type pageData struct {
	Title  string
	Fields []fieldView
	Result *Verdict
}

// NewHandler builds the form handler around a loaded predictor.
func NewHandler(predictor *ml.Predictor, metrics *monitoring.Metrics, cfg HandlerConfig, logger *zap.Logger) (*Handler, error) {
	if predictor == nil {
		return nil, errors.New("predictor is required")
	}
	if metrics == nil {
		metrics = monitoring.NewMetrics()
	}
	formatter, err := form.NewFormatter(cfg.Locale)
	if err != nil {
		return nil, err
	}
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	title := cfg.Title
	if title == "" {
		title = "Water Potability Prediction"
	}
	return &Handler{
		predictor: predictor,
		metrics:   metrics,
		formatter: formatter,
		page:      page,
		title:     title,
		logger:    logger.Named("http"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}, nil
}

// Register mounts the form, websocket and operational routes.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("POST /predict", h.handlePredict)
	mux.HandleFunc("GET /ws", h.handleWebSocket)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /api/metrics", h.handleMetrics)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	hits, misses := h.predictor.CacheStats()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.metrics.Snapshot(hits, misses))
}

// handleIndex renders the form with defaults and no result.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, form.Defaults(), nil)
}

// handlePredict is the trigger: one snapshot in, one verdict out.
func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.metrics.RecordRejected()
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	measurement, err := form.Parse(r.PostForm)
	if err != nil {
		h.metrics.RecordRejected()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	label, err := h.predictor.PredictMeasurement(measurement)
	h.metrics.ObserveLatency(time.Since(start))
	if err != nil {
		h.metrics.RecordFailure()
		h.logger.Error("Prediction failed",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.Error(err),
		)
		http.Error(w, "prediction failed", http.StatusInternalServerError)
		return
	}
	h.metrics.RecordVerdict(label)
	h.logger.Debug("Prediction served",
		zap.String("request_id", GetRequestID(r.Context())),
		zap.Stringer("label", label),
	)

	verdict := VerdictFor(label)
	h.render(w, r, http.StatusOK, measurement, &verdict)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, m ml.RawMeasurement, result *Verdict) {
	data := pageData{Title: h.title, Result: result}
	for _, f := range form.Fields() {
		data.Fields = append(data.Fields, fieldView{
			Key:    f.Key,
			Title:  f.Title(),
			Help:   f.Help,
			Range:  h.formatter.Range(f),
			Min:    strconv.FormatFloat(f.Min, 'f', -1, 64),
			Max:    strconv.FormatFloat(f.Max, 'f', -1, 64),
			Step:   strconv.FormatFloat(f.Step, 'f', -1, 64),
			Value:  form.FormatInput(f.Value(m), f.Decimals()),
			Slider: f.Widget == form.WidgetSlider,
		})
	}

	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		h.logger.Error("Render failed", zap.String("request_id", GetRequestID(r.Context())), zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
