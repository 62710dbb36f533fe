package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"elampillai/internal/app/blog"
	"elampillai/internal/app/shops"
	"elampillai/internal/confirm"
	"elampillai/internal/logging"
)

// ShopEditor captures the shop directory operations needed by the HTTP handlers.
type ShopEditor interface {
	List() []shops.Shop
	Get(id string) (shops.Shop, error)
	Edit(form *shops.Form, id string) error
	Submit(ctx context.Context, form *shops.Form) (shops.Shop, error)
	Delete(ctx context.Context, id string, confirm func(id string) bool) error
}

// CommentThreads hands out the comment thread a visitor sees under a post.
type CommentThreads interface {
	Thread(session, post string) *blog.Thread
}

// Confirmer issues and checks delete confirmations.
type Confirmer interface {
	Policy() confirm.Policy
	Issue(kind, id string) (string, time.Time, error)
	Prompt(token, kind string) func(id string) bool
}

const (
	kindShop    = "shop"
	kindComment = "comment"
)

// Server wires HTTP handlers to the underlying services.
type Server struct {
	shops    ShopEditor
	comments CommentThreads
	confirm  Confirmer
}

// New configures a Server with the given services.
func New(shops ShopEditor, comments CommentThreads, confirm Confirmer) *Server {
	return &Server{
		shops:    shops,
		comments: comments,
		confirm:  confirm,
	}
}

// Routes exposes the HTTP handlers for the shop directory and the blog.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Shop directory routes
	mux.HandleFunc("GET /api/v1/shops", s.handleListShops)
	mux.HandleFunc("POST /api/v1/shops", s.handleCreateShop)
	mux.HandleFunc("GET /api/v1/shops/{id}", s.handleGetShop)
	mux.HandleFunc("GET /api/v1/shops/{id}/edit", s.handleEditShop)
	mux.HandleFunc("PUT /api/v1/shops/{id}", s.handleUpdateShop)
	mux.HandleFunc("POST /api/v1/shops/{id}/delete-confirmation", s.handleConfirmShopDelete)
	mux.HandleFunc("DELETE /api/v1/shops/{id}", s.handleDeleteShop)

	// Blog routes
	mux.HandleFunc("GET /api/v1/posts/{id}", s.handleGetPost)
	mux.HandleFunc("GET /api/v1/posts/{id}/comments", s.handleListComments)
	mux.HandleFunc("POST /api/v1/posts/{id}/comments", s.handleCreateComment)
	mux.HandleFunc("POST /api/v1/posts/{id}/comments/{commentID}/delete-confirmation", s.handleConfirmCommentDelete)
	mux.HandleFunc("DELETE /api/v1/posts/{id}/comments/{commentID}", s.handleDeleteComment)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

type confirmationResponse struct {
	Required  bool       `json:"required"`
	Prompt    string     `json:"prompt"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// issueConfirmation answers a delete-confirmation request for (kind, id).
func (s *Server) issueConfirmation(w http.ResponseWriter, kind, id, prompt string) {
	if s.confirm.Policy() == confirm.Never {
		writeJSON(w, http.StatusOK, confirmationResponse{Required: false, Prompt: prompt})
		return
	}

	token, expiresAt, err := s.confirm.Issue(kind, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, confirmationResponse{
		Required:  true,
		Prompt:    prompt,
		Token:     token,
		ExpiresAt: &expiresAt,
	})
}

func confirmToken(r *http.Request) string {
	if token := r.Header.Get("X-Confirm-Token"); token != "" {
		return token
	}
	return r.URL.Query().Get("confirm")
}

func sessionID(r *http.Request) string {
	if id := logging.SessionID(r.Context()); id != "" {
		return id
	}
	return r.Header.Get("X-Session-ID")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
