package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/docent"
	"github.com/aretw0/docent/internal/logging"
	"github.com/aretw0/docent/pkg/domain"
	"github.com/aretw0/docent/pkg/input"
	"github.com/aretw0/docent/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "docent"

// MaxAudioSize bounds the multipart body accepted by /stt.
const MaxAudioSize = 25 << 20

// Emotion is the avatar hint returned with every chat reply.
const Emotion = "neutral"

// Engine defines the conversation operations the transport needs.
type Engine interface {
	Start(ctx context.Context, sessionID string) (string, error)
	Turn(ctx context.Context, sessionID, text string) (*docent.Reply, error)
}

// Server exposes an Engine and the optional speech adapters over HTTP.
type Server struct {
	Engine      Engine
	Transcriber ports.Transcriber
	Synthesizer ports.Synthesizer

	gatherer prometheus.Gatherer
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures the Server.
type Option func(*Server)

// WithTranscriber enables POST /stt.
func WithTranscriber(t ports.Transcriber) Option {
	return func(s *Server) {
		s.Transcriber = t
	}
}

// WithSynthesizer enables POST /tts.
func WithSynthesizer(syn ports.Synthesizer) Option {
	return func(s *Server) {
		s.Synthesizer = syn
	}
}

// WithGatherer serves /metrics from g instead of the default registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the request error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine: engine,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/", s.Health)
	r.Get("/health", s.Health)
	r.Get("/start", s.Start)
	r.Post("/chat", s.Chat)
	r.Post("/stt", s.SpeechToText)
	r.Post("/tts", s.TextToSpeech)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	} else {
		r.Handle("/metrics", promhttp.Handler())
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// StartResponse is the body of GET /start.
type StartResponse struct {
	ReplyText string `json:"reply_text"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	UserText  string `json:"user_text"`
}

// ChatResponse is the body of a successful POST /chat.
type ChatResponse struct {
	ReplyText string `json:"reply_text"`
	Emotion   string `json:"emotion"`
}

// TranscriptResponse is the body of a successful POST /stt.
type TranscriptResponse struct {
	Transcript       string  `json:"transcript"`
	Confidence       float64 `json:"confidence"`
	Language         string  `json:"language"`
	ProcessingTimeMS int64   `json:"processing_time_ms"`
}

// SpeechRequest is the body of POST /tts.
type SpeechRequest struct {
	Text   string `json:"text"`
	Voice  string `json:"voice,omitempty"`
	Format string `json:"format,omitempty"`
}

// Health handles GET / and GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, HealthResponse{
		Status:    "healthy",
		Service:   ServiceName,
		Version:   docent.Version,
		Timestamp: s.now().UTC(),
	})
}

// Start handles GET /start.
func (s *Server) Start(w http.ResponseWriter, r *http.Request) {
	id, ok := s.validated(w, "session_id", r.URL.Query().Get("session_id"), input.ValidateSessionID)
	if !ok {
		return
	}

	greeting, err := s.Engine.Start(r.Context(), id)
	if err != nil {
		s.engineError(w, "Start failed", err)
		return
	}
	s.writeJSON(w, StartResponse{ReplyText: greeting})
}

// Chat handles POST /chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var body ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Chat: Invalid request body", "error", err)
		return
	}

	id, ok := s.validated(w, "session_id", body.SessionID, input.ValidateSessionID)
	if !ok {
		return
	}
	text, ok := s.validated(w, "user_text", body.UserText, input.ValidateUtterance)
	if !ok {
		return
	}

	reply, err := s.Engine.Turn(r.Context(), id, text)
	if err != nil {
		s.engineError(w, "Turn failed", err)
		return
	}
	s.writeJSON(w, ChatResponse{ReplyText: reply.Text, Emotion: Emotion})
}

// SpeechToText handles POST /stt.
func (s *Server) SpeechToText(w http.ResponseWriter, r *http.Request) {
	if s.Transcriber == nil {
		http.Error(w, "Speech-to-text is not configured", http.StatusServiceUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxAudioSize)
	if err := r.ParseMultipartForm(MaxAudioSize); err != nil {
		http.Error(w, "Invalid multipart body", http.StatusBadRequest)
		s.logger.Warn("STT: Invalid multipart body", "error", err)
		return
	}

	file, header, err := r.FormFile("audio_file")
	if err != nil {
		http.Error(w, "audio_file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read audio_file", http.StatusBadRequest)
		return
	}
	if len(audio) == 0 {
		http.Error(w, "audio_file is empty", http.StatusBadRequest)
		return
	}

	language := r.FormValue("language")
	if language == "" {
		language = "en"
	}

	start := s.now()
	transcript, err := s.Transcriber.Transcribe(r.Context(), audio, header.Filename, language)
	if err != nil {
		http.Error(w, "Transcription failed", http.StatusInternalServerError)
		s.logger.Error("Transcription failed", "session_id", r.FormValue("session_id"), "error", err)
		return
	}

	s.writeJSON(w, TranscriptResponse{
		Transcript:       transcript.Text,
		Confidence:       transcript.Confidence,
		Language:         transcript.Language,
		ProcessingTimeMS: s.now().Sub(start).Milliseconds(),
	})
}

// TextToSpeech handles POST /tts.
func (s *Server) TextToSpeech(w http.ResponseWriter, r *http.Request) {
	if s.Synthesizer == nil {
		http.Error(w, "Text-to-speech is not configured", http.StatusServiceUnavailable)
		return
	}

	var body SpeechRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("TTS: Invalid request body", "error", err)
		return
	}
	text, ok := s.validated(w, "text", body.Text, input.ValidateUtterance)
	if !ok {
		return
	}

	speech, err := s.Synthesizer.Synthesize(r.Context(), text, body.Voice, body.Format)
	if err != nil {
		http.Error(w, "Speech synthesis failed", http.StatusInternalServerError)
		s.logger.Error("Speech synthesis failed", "error", err)
		return
	}

	w.Header().Set("Content-Type", speech.ContentType)
	if _, err := w.Write(speech.Audio); err != nil {
		s.logger.Error("TTS response write failed", "error", err)
	}
}

// validated writes 413 for oversized fields and 400 for any other rejection.
func (s *Server) validated(w http.ResponseWriter, field, value string, validate func(string) (string, error)) (string, bool) {
	clean, err := validate(value)
	switch {
	case errors.Is(err, input.ErrTooLarge):
		http.Error(w, field+" "+err.Error(), http.StatusRequestEntityTooLarge)
		return "", false
	case err != nil:
		http.Error(w, field+" "+err.Error(), http.StatusBadRequest)
		return "", false
	}
	return clean, true
}

func (s *Server) engineError(w http.ResponseWriter, msg string, err error) {
	if errors.Is(err, domain.ErrEmptySessionID) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, msg, http.StatusInternalServerError)
	s.logger.Error(msg, "error", err)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "error", err)
	}
}
