package registry

import (
	"io"

	"github.com/a-h/textsync/document"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

// Registry holds the buffers of open documents, keyed by identifier.
//
// Registry does no locking. Callers that use it from more than one goroutine
// must serialize access themselves.
type Registry struct {
	documents map[string]*document.Buffer
	atomic    bool
	log       *slog.Logger
}

type Option func(*Registry)

// WithLogger sets the logger used to record document lifecycle events.
func WithLogger(log *slog.Logger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// WithAtomicChanges makes Change discard every event of a request when any
// one of them fails.
func WithAtomicChanges(atomic bool) Option {
	return func(r *Registry) {
		r.atomic = atomic
	}
}

func New(opts ...Option) *Registry {
	r := &Registry{
		documents: map[string]*document.Buffer{},
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open creates the buffer for req.ID, replacing any existing one.
func (r *Registry) Open(req OpenRequest) {
	_, replaced := r.documents[req.ID]
	buf := document.NewBuffer()
	buf.Load(req.Text, req.Version)
	r.documents[req.ID] = buf
	r.log.Debug("opened document",
		slog.String("id", req.ID),
		slog.Int("version", req.Version),
		slog.Int("lines", buf.LineCount()),
		slog.Bool("replaced", replaced))
}

// Change sets the version of the document and applies the events of req in
// order. The version is updated even if applying the events fails.
func (r *Registry) Change(req ChangeRequest) (err error) {
	buf, ok := r.documents[req.ID]
	if !ok {
		return ErrChangeOnUnopen
	}
	buf.Version = req.Version
	if r.atomic {
		err = buf.ApplyAtomic(req.Events)
	} else {
		err = buf.Apply(req.Events)
	}
	if err != nil {
		return &ChangeError{ID: req.ID, Version: req.Version, Err: err}
	}
	r.log.Debug("changed document",
		slog.String("id", req.ID),
		slog.Int("version", req.Version),
		slog.Int("events", len(req.Events)),
		slog.Int("lines", buf.LineCount()))
	return nil
}

// SetVersion sets the version of the document without changing its content.
// It reports whether the document is open.
func (r *Registry) SetVersion(id string, version int) bool {
	buf, ok := r.documents[id]
	if !ok {
		return false
	}
	buf.Version = version
	return true
}

// Get returns a copy of the document's rows keyed by row index.
func (r *Registry) Get(id string) (content map[int]string, ok bool) {
	buf, ok := r.documents[id]
	if !ok {
		return nil, false
	}
	return buf.Map(), true
}

// Lines returns a copy of the document's rows and its version.
func (r *Registry) Lines(id string) (lines []string, version int, ok bool) {
	buf, ok := r.documents[id]
	if !ok {
		return nil, 0, false
	}
	return buf.Lines(), buf.Version, true
}

// Delete removes the document and returns its buffer, if there was one.
func (r *Registry) Delete(id string) (buf *document.Buffer, ok bool) {
	buf, ok = r.documents[id]
	if !ok {
		return nil, false
	}
	delete(r.documents, id)
	r.log.Debug("deleted document", slog.String("id", id))
	return buf, true
}

func (r *Registry) Len() int {
	return len(r.documents)
}

// IDs returns the identifiers of the open documents in sorted order.
func (r *Registry) IDs() []string {
	ids := maps.Keys(r.documents)
	slices.Sort(ids)
	return ids
}
