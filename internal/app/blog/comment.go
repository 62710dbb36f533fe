package blog

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrCommentIncomplete rejects a comment missing its author or text.
	ErrCommentIncomplete = errors.New("comment author and text are required")
	// ErrCommentNotFound indicates no comment has the requested id.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrNotConfirmed means the delete prompt was declined.
	ErrNotConfirmed = errors.New("delete not confirmed")
)

// Comment is a visitor's note on a post.
type Comment struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Author string `json:"author"`
	Date   string `json:"date"`
}

// CommentForm is the pair of input buffers behind the comment box.
type CommentForm struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

func (f *CommentForm) complete() bool {
	return strings.TrimSpace(f.Author) != "" && strings.TrimSpace(f.Text) != ""
}

// Thread is the ordered list of comments a visitor sees under one post.
type Thread struct {
	mu       sync.Mutex
	comments []Comment
	newID    func() string
	now      func() time.Time
}

// NewThread returns an empty thread.
func NewThread() *Thread {
	return &Thread{newID: uuid.NewString, now: time.Now}
}

// Comments returns a copy of the thread in posting order.
func (t *Thread) Comments() []Comment {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Comment, len(t.comments))
	copy(out, t.comments)
	return out
}

// Get returns the comment with the given id.
func (t *Thread) Get(id string) (Comment, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(id)
	if i < 0 {
		return Comment{}, ErrCommentNotFound
	}
	return t.comments[i], nil
}

// Submit appends the comment held by form, dated today in the formatter's
// locale, and clears form. Incomplete forms are left untouched.
func (t *Thread) Submit(form *CommentForm, dates DateFormatter) (Comment, error) {
	if !form.complete() {
		return Comment{}, ErrCommentIncomplete
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	c := Comment{
		ID:     t.uniqueID(),
		Text:   form.Text,
		Author: form.Author,
		Date:   dates.Format(t.now()),
	}
	t.comments = append(slices.Clip(t.comments), c)
	*form = CommentForm{}
	return c, nil
}

// Delete removes the comment with the given id after confirm approves it.
// A nil confirm approves every delete.
func (t *Thread) Delete(id string, confirm func(id string) bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(id)
	if i < 0 {
		return ErrCommentNotFound
	}
	if confirm != nil && !confirm(id) {
		return ErrNotConfirmed
	}
	t.comments = slices.Delete(slices.Clone(t.comments), i, i+1)
	return nil
}

func (t *Thread) uniqueID() string {
	for {
		id := t.newID()
		if t.indexOf(id) < 0 {
			return id
		}
	}
}

func (t *Thread) indexOf(id string) int {
	return slices.IndexFunc(t.comments, func(c Comment) bool {
		return c.ID == id
	})
}
