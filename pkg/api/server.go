package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/kjeelani/soundseq/pkg/links"
	"github.com/kjeelani/soundseq/pkg/models"
	"github.com/kjeelani/soundseq/pkg/session"
	"github.com/kjeelani/soundseq/pkg/submission"
)

const (
	sessionCookie = "soundseq_session"
	titleTimeout  = 5 * time.Second
)

var indexTmpl = template.Must(template.New("index").Parse(tmpl))

// TitleLookup resolves a video id to its title.
type TitleLookup interface {
	Title(ctx context.Context, videoID string) (string, error)
}

type Server struct {
	Port     int
	Sessions *session.Store
	// Titles is optional; when set the confirmation shows the video title.
	Titles TitleLookup
}

// Handler returns the routes of the web UI and its JSON API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleWebIndex)
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/input", s.handleInput)
	mux.HandleFunc("/api/submit", s.handleSubmit)
	mux.HandleFunc("/api/reset", s.handleReset)
	return mux
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("Starting web server", "addr", fmt.Sprintf("http://localhost:%d", s.Port))
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) controller(w http.ResponseWriter, r *http.Request) (*submission.Controller, string) {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil {
		id = c.Value
	}
	ctrl, sid := s.Sessions.Get(id)
	if sid != id {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sid,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return ctrl, sid
}

func (s *Server) handleWebIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctrl, sid := s.controller(w, r)
	view := s.view(ctrl, sid)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, view); err != nil {
		slog.Error("Template execution failed", "error", err, "remote", r.RemoteAddr)
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctrl, sid := s.controller(w, r)
	view := s.view(ctrl, sid)
	s.respondJSON(w, http.StatusOK, models.APIResponse{Success: true, State: &view})
}

func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req models.InputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctrl, sid := s.controller(w, r)
	s.respondCommand(w, ctrl, sid, ctrl.InputChanged(req.VideoLink))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctrl, sid := s.controller(w, r)
	slog.Info("Submit received", "remote", r.RemoteAddr)

	// The user cannot abort a submission by going away.
	err := ctrl.Submit(context.WithoutCancel(r.Context()))

	if err == nil && s.Titles != nil {
		s.Sessions.SetTitle(sid, s.lookupTitle(r.Context(), ctrl.Snapshot().VideoLink))
	}
	s.respondCommand(w, ctrl, sid, err)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctrl, sid := s.controller(w, r)
	s.respondCommand(w, ctrl, sid, ctrl.Reset())
}

// respondCommand writes the state after a command. Validation and submission
// failures are ordinary outcomes carried in the state; rejected commands get 409.
func (s *Server) respondCommand(w http.ResponseWriter, ctrl *submission.Controller, sid string, err error) {
	view := s.view(ctrl, sid)

	var (
		verr *submission.ValidationError
		serr *submission.SubmissionError
	)
	switch {
	case err == nil, errors.As(err, &verr), errors.As(err, &serr):
		s.respondJSON(w, http.StatusOK, models.APIResponse{Success: true, State: &view})
	case errors.Is(err, submission.ErrInFlight), errors.Is(err, submission.ErrInvalidState):
		slog.Debug("Command rejected", "err", err)
		s.respondJSON(w, http.StatusConflict, models.APIResponse{Success: false, Error: err.Error(), State: &view})
	default:
		slog.Error("Command failed", "err", err)
		s.respondJSON(w, http.StatusInternalServerError, models.APIResponse{Success: false, Error: "Internal error", State: &view})
	}
}

func (s *Server) lookupTitle(ctx context.Context, link string) string {
	vidID := links.VideoID(link)
	if vidID == "" {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, titleTimeout)
	defer cancel()
	title, err := s.Titles.Title(ctx, vidID)
	if err != nil {
		slog.Warn("Failed to fetch video title", "vid", vidID, "err", err)
		return ""
	}
	return title
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if jerr := json.NewEncoder(w).Encode(data); jerr != nil {
		slog.Error("JSON encoding failed", "error", jerr)
	}
}

func (s *Server) view(ctrl *submission.Controller, sid string) models.StateView {
	view := toView(ctrl.Snapshot())
	if view.Submitted {
		view.Title = s.Sessions.Title(sid)
	}
	return view
}

func toView(st submission.State) models.StateView {
	return models.StateView{
		Phase:        st.Phase.String(),
		Submitted:    st.Submitted(),
		VideoLink:    st.VideoLink,
		ErrorMessage: st.ErrorMessage,
		Pending:      st.Pending,
	}
}
