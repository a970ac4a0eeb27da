package main

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/a-h/textsync/lsp"
	"github.com/a-h/textsync/messages"
	"github.com/a-h/textsync/protocol"
	"github.com/a-h/textsync/registry"
	"golang.org/x/exp/slog"
)

// server mirrors the documents open in the client. The registry doesn't lock,
// so all access to it goes through mu.
type server struct {
	log       *slog.Logger
	mu        sync.RWMutex
	documents *registry.Registry
	notify    func(method string, params any) error
}

func newServer(log *slog.Logger, documents *registry.Registry, notify func(method string, params any) error) *server {
	return &server{
		log:       log,
		documents: documents,
		notify:    notify,
	}
}

func (s *server) register(m *lsp.Mux) {
	m.HandleMethod("initialize", s.initialize)
	m.HandleNotification("initialized", s.initialized)
	m.HandleMethod("shutdown", s.shutdown)
	m.HandleNotification(messages.DidOpenTextDocumentNotification, s.didOpen)
	m.HandleNotification(messages.DidChangeTextDocumentNotification, s.didChange)
	m.HandleNotification(messages.DidCloseTextDocumentNotification, s.didClose)
	m.HandleMethod(messages.DocumentRequestMethod, s.document)
}

func (s *server) initialize(params json.RawMessage) (result any, err error) {
	var initializeParams messages.InitializeParams
	if err = json.Unmarshal(params, &initializeParams); err != nil {
		return nil, invalidParams(err)
	}
	s.log.Info("received initialize method", slog.Any("params", initializeParams))

	result = messages.InitializeResult{
		Capabilities: messages.ServerCapabilities{
			TextDocumentSync: &messages.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    messages.TextDocumentSyncKindIncremental,
			},
		},
		ServerInfo: &messages.ServerInfo{
			Name: "textsync",
		},
	}
	return
}

// invalidParams reports err to the client as a JSON-RPC invalid params error.
func invalidParams(err error) error {
	return &protocol.Error{
		Code:    protocol.ErrInvalidParams.Code,
		Message: protocol.ErrInvalidParams.Message,
		Data:    err.Error(),
	}
}

func (s *server) initialized(params json.RawMessage) (err error) {
	s.log.Info("received initialized notification")
	return nil
}

func (s *server) shutdown(params json.RawMessage) (result any, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.log.Info("received shutdown method", slog.Any("openDocuments", s.documents.IDs()))
	return nil, nil
}

func (s *server) didOpen(rawParams json.RawMessage) (err error) {
	var params messages.DidOpenTextDocumentParams
	if err = json.Unmarshal(rawParams, &params); err != nil {
		return
	}
	s.log.Info("received didOpenTextDocument notification",
		slog.String("uri", params.TextDocument.URI),
		slog.Int("version", params.TextDocument.Version))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents.Open(registry.FromDidOpen(params))
	return nil
}

func (s *server) didChange(rawParams json.RawMessage) (err error) {
	var params messages.DidChangeTextDocumentParams
	if err = json.Unmarshal(rawParams, &params); err != nil {
		return
	}
	log := s.log.With(slog.String("uri", params.TextDocument.URI), slog.Int("version", params.TextDocument.Version))
	log.Info("received didChangeTextDocument notification", slog.Int("changes", len(params.ContentChanges)))

	s.mu.Lock()
	req, err := registry.FromDidChange(params)
	if err != nil {
		// The client has still moved on to the new version.
		s.documents.SetVersion(params.TextDocument.URI, params.TextDocument.Version)
		err = fmt.Errorf("failed to read changes to %s: %w", params.TextDocument.URI, err)
	} else {
		err = s.documents.Change(req)
	}
	s.mu.Unlock()
	if err != nil {
		s.reportOutOfSync(log, params.TextDocument.URI, err)
		return err
	}
	return nil
}

// reportOutOfSync tells the user that the client's copy of uri and ours no
// longer match.
func (s *server) reportOutOfSync(log *slog.Logger, uri string, err error) {
	if notifyErr := s.notify(messages.ShowMessageMethod, messages.ShowMessageParams{
		Type:    messages.MessageTypeError,
		Message: fmt.Sprintf("%s is out of sync, reopen it: %v", uri, err),
	}); notifyErr != nil {
		log.Error("failed to send message", slog.Any("error", notifyErr))
	}
}

func (s *server) didClose(rawParams json.RawMessage) (err error) {
	var params messages.DidCloseTextDocumentParams
	if err = json.Unmarshal(rawParams, &params); err != nil {
		return
	}
	s.mu.Lock()
	_, ok := s.documents.Delete(params.TextDocument.URI)
	s.mu.Unlock()
	s.log.Info("received didCloseTextDocument notification",
		slog.String("uri", params.TextDocument.URI),
		slog.Bool("wasOpen", ok))
	return nil
}

func (s *server) document(rawParams json.RawMessage) (result any, err error) {
	var params messages.DocumentParams
	if err = json.Unmarshal(rawParams, &params); err != nil {
		return nil, invalidParams(err)
	}
	s.mu.RLock()
	lines, version, ok := s.documents.Lines(params.TextDocument.URI)
	s.mu.RUnlock()
	return messages.DocumentResult{
		URI:     params.TextDocument.URI,
		Found:   ok,
		Version: version,
		Lines:   lines,
	}, nil
}
