package lsp

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/a-h/textsync/protocol"
	"golang.org/x/exp/slog"
)

const (
	initializeMethod = "initialize"
	exitNotification = "exit"
)

func NewMux(log *slog.Logger, r io.Reader, w io.Writer) *Mux {
	return &Mux{
		reader:               bufio.NewReader(r),
		concurrencyLimit:     4,
		methodHandlers:       map[string]MethodHandler{},
		notificationHandlers: map[string]NotificationHandler{},
		writer:               bufio.NewWriter(w),
		writeLock:            &sync.Mutex{},
		log:                  log,
		error:                func(err error) {},
	}
}

// Mux reads JSON-RPC messages and routes them to handlers.
//
// Notifications are handled one at a time in the order they are received, so
// that document changes are applied in sequence. Requests are handled
// concurrently, up to the concurrency limit. A notification waits for requests
// received before it to complete, so requests always see the state as of
// when they arrived.
type Mux struct {
	reader               *bufio.Reader
	concurrencyLimit     int64
	methodHandlers       map[string]MethodHandler
	notificationHandlers map[string]NotificationHandler
	writer               *bufio.Writer
	writeLock            *sync.Mutex
	log                  *slog.Logger
	error                func(err error)
}

type MethodHandler func(params json.RawMessage) (result any, err error)
type NotificationHandler func(params json.RawMessage) (err error)

func (m *Mux) HandleMethod(name string, method MethodHandler) {
	m.methodHandlers[name] = method
}

func (m *Mux) HandleNotification(name string, notification NotificationHandler) {
	m.notificationHandlers[name] = notification
}

// SetConcurrencyLimit sets the number of requests handled at once. It must be
// called before Process.
func (m *Mux) SetConcurrencyLimit(limit int64) {
	if limit < 1 {
		limit = 1
	}
	m.concurrencyLimit = limit
}

// SetErrorHandler sets a function that is called with errors from
// notification handlers and failed writes.
func (m *Mux) SetErrorHandler(f func(err error)) {
	if f == nil {
		return
	}
	m.error = f
}

func (m *Mux) Notify(method string, params any) (err error) {
	return m.write(protocol.NewNotification(method, params))
}

func (m *Mux) write(msg protocol.Message) (err error) {
	m.writeLock.Lock()
	defer m.writeLock.Unlock()
	return protocol.Write(m.writer, msg)
}

// Process handles messages until the input ends or the client sends exit.
func (m *Mux) Process() (err error) {
	// Handle initialization.
	for {
		req, err := m.read()
		if err != nil {
			return ignoreEOF(err)
		}
		if req.IsNotification() {
			if req.Method != exitNotification {
				// Drop notifications sent before initialization.
				m.log.Warn("dropping notification sent before initialization", slog.String("method", req.Method))
				continue
			}
			m.handleNotification(req)
			return nil
		}
		if req.Method != initializeMethod {
			// Return an error if methods used before initialization.
			m.log.Warn("the client sent a method before initialization", slog.String("method", req.Method))
			if err = m.write(protocol.NewResponseError(req.ID, protocol.ErrServerNotInitialized)); err != nil {
				return err
			}
			continue
		}
		m.handleRequestResponse(req)
		break
	}
	m.log.Info("initialization complete")

	// Handle standard flow.
	var wg sync.WaitGroup
	defer wg.Wait()
	sem := make(chan struct{}, m.concurrencyLimit)
	for {
		req, err := m.read()
		if err != nil {
			return ignoreEOF(err)
		}
		if req.IsNotification() {
			wg.Wait()
			m.handleNotification(req)
			if req.Method == exitNotification {
				return nil
			}
			continue
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(req protocol.Request) {
			defer wg.Done()
			m.handleRequestResponse(req)
			<-sem
		}(req)
	}
}

// read returns the next message. Messages that can't be decoded are answered
// with an error response and skipped.
func (m *Mux) read() (req protocol.Request, err error) {
	for {
		req, err = protocol.Read(m.reader)
		if err == nil {
			return req, nil
		}
		var rpcErr *protocol.Error
		if !errors.As(err, &rpcErr) {
			return req, err
		}
		m.log.Warn("received invalid message", slog.Any("error", err))
		if err = m.write(protocol.NewResponseError(req.ID, rpcErr)); err != nil {
			return req, err
		}
	}
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (m *Mux) handleNotification(req protocol.Request) {
	log := m.log.With(slog.String("method", req.Method))
	nh, ok := m.notificationHandlers[req.Method]
	if !ok {
		log.Warn("notification not handled")
		return
	}
	// We don't need to notify clients if the notification results in an error.
	if err := nh(req.Params); err != nil {
		log.Error("failed to handle notification", slog.Any("error", err))
		m.error(err)
	}
}

func (m *Mux) handleRequestResponse(req protocol.Request) {
	log := m.log.With(slog.Any("id", req.ID), slog.String("method", req.Method))
	mh, ok := m.methodHandlers[req.Method]
	if !ok {
		log.Error("method not found")
		if err := m.write(protocol.NewResponseError(req.ID, protocol.ErrMethodNotFound)); err != nil {
			log.Error("failed to respond", slog.Any("error", err))
			m.error(fmt.Errorf("failed to respond: %w", err))
		}
		return
	}
	var res protocol.Response
	result, err := mh(req.Params)
	if err != nil {
		log.Error("failed to handle", slog.Any("error", err))
		res = protocol.NewResponseError(req.ID, err)
	} else {
		res = protocol.NewResponse(req.ID, result)
	}
	if err = m.write(res); err != nil {
		log.Error("failed to respond", slog.Any("error", err))
		m.error(fmt.Errorf("failed to respond: %w", err))
	}
}
