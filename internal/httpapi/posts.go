package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"elampillai/internal/app/blog"
	"elampillai/internal/logging"
)

type commentCreatedResponse struct {
	Comment blog.Comment     `json:"comment"`
	Form    blog.CommentForm `json:"form"`
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, blog.Lookup(r.PathValue("id")))
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	thread, ok := s.thread(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Comments []blog.Comment `json:"comments"`
	}{Comments: thread.Comments()})
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	thread, ok := s.thread(w, r)
	if !ok {
		return
	}

	var form blog.CommentForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	comment, err := thread.Submit(&form, blog.FormatterFor(r.Header.Get("Accept-Language")))
	if err != nil {
		writeCommentError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, commentCreatedResponse{Comment: comment, Form: form})
}

func (s *Server) handleConfirmCommentDelete(w http.ResponseWriter, r *http.Request) {
	thread, ok := s.thread(w, r)
	if !ok {
		return
	}

	id := r.PathValue("commentID")
	if _, err := thread.Get(id); err != nil {
		writeCommentError(w, r, err)
		return
	}

	s.issueConfirmation(w, kindComment, id, "Are you sure you want to delete this comment?")
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	thread, ok := s.thread(w, r)
	if !ok {
		return
	}

	prompt := s.confirm.Prompt(confirmToken(r), kindComment)
	if err := thread.Delete(r.PathValue("commentID"), prompt); err != nil {
		writeCommentError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// thread resolves the visitor's comment thread for the post in the path.
func (s *Server) thread(w http.ResponseWriter, r *http.Request) (*blog.Thread, bool) {
	session := sessionID(r)
	if session == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing session"})
		return nil, false
	}
	return s.comments.Thread(session, r.PathValue("id")), true
}

func writeCommentError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, blog.ErrCommentNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "comment not found"})
	case errors.Is(err, blog.ErrCommentIncomplete):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, blog.ErrNotConfirmed):
		writeJSON(w, http.StatusPreconditionRequired, errorResponse{Error: err.Error()})
	default:
		logging.FromContext(r.Context()).Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("comment request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}
