package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"living_pages/export"
	"living_pages/session"
	"living_pages/story"
	"living_pages/templates"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	SessionCookie = "living_pages_session"
	Title         = "Living Pages"
)

type Handler struct {
	Engine         *story.Engine
	Manager        *session.Manager
	Logger         *zap.Logger
	MaxActionWords int
}

// Routes registers every endpoint on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/", h.Index)
	mux.HandleFunc("/start", h.StartStory)
	mux.HandleFunc("/generate", h.Generate)
	mux.HandleFunc("/suggestions", h.Suggestions)
	mux.HandleFunc("/state", h.State)
	mux.HandleFunc("/download", h.DownloadStory)
	mux.Handle("/metrics", promhttp.Handler())
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if err := templates.Index(Title).Render(r.Context(), w); err != nil {
		h.Logger.Error("Failed to render index", zap.Error(err))
	}
}

// sessionID returns the caller's session, creating one and setting the
// cookie when the request carries none or an unknown one.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (string, error) {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}
	newID, _, err := h.Manager.GetOrCreate(r.Context(), id)
	if err != nil {
		return "", err
	}
	if newID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    newID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return newID, nil
}

func (h *Handler) StartStory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, err := h.sessionID(w, r)
	if err != nil {
		h.serverError(w, "Failed to open the story", err)
		return
	}
	if _, err := h.Manager.Reset(r.Context(), id); err != nil {
		h.serverError(w, "Failed to restart the story", err)
		return
	}
	h.renderStory(w, r, id)
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	prompt := strings.TrimSpace(r.FormValue("prompt"))

	// Handle the restart command.
	if strings.EqualFold(prompt, "restart") {
		h.StartStory(w, r)
		return
	}
	if prompt == "" {
		http.Error(w, "Tell the story what you do.", http.StatusBadRequest)
		return
	}
	if h.MaxActionWords > 0 && len(strings.Fields(prompt)) > h.MaxActionWords {
		http.Error(w, fmt.Sprintf("Response must be %d words or less.", h.MaxActionWords), http.StatusBadRequest)
		return
	}

	id, err := h.sessionID(w, r)
	if err != nil {
		h.serverError(w, "Failed to open the story", err)
		return
	}

	var turn story.TurnResult
	err = h.Manager.Update(r.Context(), id, func(s *story.Session) error {
		var err error
		turn, err = h.Engine.Advance(r.Context(), s, prompt)
		return err
	})
	if errors.Is(err, story.ErrEmptyAction) {
		http.Error(w, "Tell the story what you do.", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.serverError(w, "Failed to advance the story", err)
		return
	}
	h.Logger.Info("Turn played",
		zap.String("sessionID", id),
		zap.String("event", string(turn.Event)),
		zap.String("character", turn.Character),
		zap.String("discovered", turn.Discovered),
	)
	h.renderStory(w, r, id)
}

// renderStory fills the suggestion cache, saves it and renders the story view.
func (h *Handler) renderStory(w http.ResponseWriter, r *http.Request, id string) {
	var (
		snap    story.Snapshot
		choices []string
	)
	err := h.Manager.Update(r.Context(), id, func(s *story.Session) error {
		h.Engine.Suggestions(r.Context(), s)
		snap = s.Snapshot()
		choices = s.ActionChoices()
		return nil
	})
	if err != nil {
		h.serverError(w, "Failed to load the story", err)
		return
	}
	if err := templates.StoryView(snap, choices).Render(r.Context(), w); err != nil {
		h.Logger.Error("Failed to render story", zap.Error(err))
	}
}

func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(w, r)
	if err != nil {
		h.serverError(w, "Failed to open the story", err)
		return
	}
	var suggestions []string
	err = h.Manager.Update(r.Context(), id, func(s *story.Session) error {
		suggestions = h.Engine.Suggestions(r.Context(), s)
		return nil
	})
	if err != nil {
		h.serverError(w, "Failed to load suggestions", err)
		return
	}
	writeJSON(w, map[string][]string{"suggestions": suggestions})
}

type stateResponse struct {
	story.Snapshot
	Locations   []string `json:"locations"`
	Suggestions []string `json:"suggestions"`
}

// State dumps the session as JSON for debugging.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(w, r)
	if err != nil {
		h.serverError(w, "Failed to open the story", err)
		return
	}
	s, err := h.Manager.Get(r.Context(), id)
	if err != nil {
		h.serverError(w, "Failed to load the story", err)
		return
	}
	writeJSON(w, stateResponse{
		Snapshot:    s.Snapshot(),
		Locations:   s.World().Locations,
		Suggestions: s.Suggestions(),
	})
}

func (h *Handler) DownloadStory(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(w, r)
	if err != nil {
		h.serverError(w, "Failed to open the story", err)
		return
	}
	s, err := h.Manager.Get(r.Context(), id)
	if err != nil {
		h.serverError(w, "Failed to load the story", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="living-pages-%s.pdf"`, time.Now().Format("20060102-150405")))
	if err := export.WritePDF(w, Title, s.Snapshot()); err != nil {
		h.Logger.Error("Failed to write PDF", zap.String("sessionID", id), zap.Error(err))
	}
}

func (h *Handler) serverError(w http.ResponseWriter, msg string, err error) {
	h.Logger.Error(msg, zap.Error(err))
	http.Error(w, msg+". Please try again.", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
