package lsp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/textproto"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/exp/slog"
)

func frame(body string) string {
	return "Content-Length: " + strconv.Itoa(len(body)) + "\r\n\r\n" + body
}

func input(bodies ...string) io.Reader {
	var sb strings.Builder
	for _, b := range bodies {
		sb.WriteString(frame(b))
	}
	return strings.NewReader(sb.String())
}

type response struct {
	ID     *int            `json:"id"`
	Method string          `json:"method"`
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code int64 `json:"code"`
	} `json:"error"`
}

func readResponses(t *testing.T, out *bytes.Buffer) (responses []response) {
	t.Helper()
	r := bufio.NewReader(out)
	for {
		header, err := textproto.NewReader(r).ReadMIMEHeader()
		if errors.Is(err, io.EOF) {
			return responses
		}
		if err != nil {
			t.Fatalf("failed to read header: %v", err)
		}
		length, err := strconv.Atoi(header.Get("Content-Length"))
		if err != nil {
			t.Fatalf("invalid content length: %v", err)
		}
		body := make([]byte, length)
		if _, err = io.ReadFull(r, body); err != nil {
			t.Fatalf("failed to read body: %v", err)
		}
		var resp response
		if err = json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("failed to unmarshal %q: %v", body, err)
		}
		responses = append(responses, resp)
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProcessRequiresInitialize(t *testing.T) {
	var out bytes.Buffer
	m := NewMux(discard(), input(
		`{"jsonrpc":"2.0","method":"textDocument/didOpen","params":{}}`,
		`{"jsonrpc":"2.0","id":1,"method":"textsync/document","params":{}}`,
		`{"jsonrpc":"2.0","id":2,"method":"initialize","params":{}}`,
	), &out)
	var notified bool
	m.HandleNotification("textDocument/didOpen", func(params json.RawMessage) error {
		notified = true
		return nil
	})
	m.HandleMethod("initialize", func(params json.RawMessage) (any, error) {
		return map[string]string{"ok": "yes"}, nil
	})
	if err := m.Process(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notified {
		t.Error("expected notifications before initialize to be dropped")
	}
	responses := readResponses(t, &out)
	if len(responses) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(responses))
	}
	if responses[0].Error == nil || responses[0].Error.Code != -32002 {
		t.Errorf("expected server not initialized error, got %+v", responses[0])
	}
	if *responses[1].ID != 2 || responses[1].Error != nil {
		t.Errorf("expected initialize to succeed, got %+v", responses[1])
	}
}

func TestProcessHandlesNotificationsInOrder(t *testing.T) {
	var out bytes.Buffer
	bodies := []string{`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`}
	for i := 0; i < 20; i++ {
		bodies = append(bodies, `{"jsonrpc":"2.0","method":"record","params":`+strconv.Itoa(i)+`}`)
	}
	bodies = append(bodies,
		`{"jsonrpc":"2.0","id":2,"method":"count","params":{}}`,
		`{"jsonrpc":"2.0","method":"exit"}`,
		`{"jsonrpc":"2.0","method":"record","params":99}`,
	)
	m := NewMux(discard(), input(bodies...), &out)
	m.SetConcurrencyLimit(8)
	var recorded []int
	m.HandleMethod("initialize", func(params json.RawMessage) (any, error) {
		return nil, nil
	})
	m.HandleNotification("record", func(params json.RawMessage) error {
		var i int
		if err := json.Unmarshal(params, &i); err != nil {
			return err
		}
		recorded = append(recorded, i)
		return nil
	})
	m.HandleMethod("count", func(params json.RawMessage) (any, error) {
		return len(recorded), nil
	})
	if err := m.Process(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recorded) != 20 {
		t.Fatalf("expected 20 notifications before exit, got %d", len(recorded))
	}
	for i, v := range recorded {
		if v != i {
			t.Fatalf("expected notification %d to be handled in order, got %v", i, recorded)
		}
	}
	responses := readResponses(t, &out)
	if len(responses) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(responses))
	}
	if string(responses[1].Result) != "20" {
		t.Errorf("expected request to see all earlier notifications, got %s", responses[1].Result)
	}
}

func TestProcessErrors(t *testing.T) {
	var out bytes.Buffer
	m := NewMux(discard(), input(
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":`,
		`{"jsonrpc":"2.0","id":2,"method":"unknown","params":{}}`,
		`{"jsonrpc":"2.0","id":3,"method":"fails","params":{}}`,
		`{"jsonrpc":"2.0","method":"broken","params":{}}`,
	), &out)
	var handled []error
	m.SetErrorHandler(func(err error) {
		handled = append(handled, err)
	})
	m.HandleMethod("initialize", func(params json.RawMessage) (any, error) {
		return nil, nil
	})
	m.HandleMethod("fails", func(params json.RawMessage) (any, error) {
		return nil, errors.New("it failed")
	})
	m.HandleNotification("broken", func(params json.RawMessage) error {
		return errors.New("notification failed")
	})
	if err := m.Process(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	codes := map[int64]bool{}
	for _, r := range readResponses(t, &out) {
		if r.Error != nil {
			codes[r.Error.Code] = true
		}
	}
	for _, code := range []int64{-32700, -32601, -32603} {
		if !codes[code] {
			t.Errorf("expected an error response with code %d, got %v", code, codes)
		}
	}
	if len(handled) != 1 {
		t.Errorf("expected the notification error to be reported, got %v", handled)
	}
}

func TestProcessContinuesAfterNotificationErrorWithoutHandler(t *testing.T) {
	var out bytes.Buffer
	m := NewMux(discard(), input(
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","method":"broken","params":{}}`,
		`{"jsonrpc":"2.0","id":2,"method":"ping","params":{}}`,
	), &out)
	m.SetErrorHandler(nil)
	m.HandleMethod("initialize", func(params json.RawMessage) (any, error) {
		return nil, nil
	})
	m.HandleMethod("ping", func(params json.RawMessage) (any, error) {
		return "pong", nil
	})
	m.HandleNotification("broken", func(params json.RawMessage) error {
		return errors.New("notification failed")
	})
	if err := m.Process(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	responses := readResponses(t, &out)
	if len(responses) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(responses))
	}
	if string(responses[1].Result) != `"pong"` {
		t.Errorf("expected the request after the failed notification to be answered, got %s", responses[1].Result)
	}
}
