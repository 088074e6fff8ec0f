package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"heartrisk/inference"
	"heartrisk/ml"
)

// Handler serves the inference routes from one preloaded Service.
type Handler struct {
	svc    *inference.Service
	logger *zap.Logger
}

// NewHandler 创建推理处理器
func NewHandler(svc *inference.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

type errorResponse struct {
	Error string `json:"error"`
}

type featureImportanceResponse struct {
	FeatureImportance []ml.FeatureImportance `json:"featureImportance"`
}

// RegisterHandlers 注册推理相关的路由
func RegisterHandlers(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("POST /api/predict", h.handlePredict)
	mux.HandleFunc("GET /api/feature-importance", h.handleFeatureImportance)
	mux.HandleFunc("GET /api/healthy-baseline", h.handleHealthyBaseline)
	mux.HandleFunc("GET /api/health", h.handleHealth)
}

func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = errors.New("request body too large")
		}
		h.badRequest(w, r, err)
		return
	}

	x, err := ml.ParsePatient(body)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	prediction, err := h.svc.Predict(x)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, prediction)
}

func (h *Handler) handleFeatureImportance(w http.ResponseWriter, r *http.Request) {
	ranked, err := h.svc.FeatureImportance()
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, featureImportanceResponse{FeatureImportance: ranked})
}

func (h *Handler) handleHealthyBaseline(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.HealthyBaseline())
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Health())
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Warn("request rejected",
		zap.String("request_id", GetRequestID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
