package protocol

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"
)

func TestRequestNotification(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		expected bool
	}{
		{
			name: "messages without an ID are notifications",
			msg: `{
	"jsonrpc": "2.0",
	"method": "notification",
	"params": null
}`,
			expected: true,
		},
		{
			name: "messages with an ID are requests",
			msg: `{
	"jsonrpc": "2.0",
	"id": 1,
	"method": "request",
	"params": null
}`,
			expected: false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var msg Request
			err := json.Unmarshal([]byte(test.msg), &msg)
			if err != nil {
				t.Fatalf("failed to unmarshal message: %v", err)
			}
			actual := msg.IsNotification()
			if test.expected != actual {
				t.Errorf("expected %v, got %v", test.expected, actual)
			}
		})
	}
}

func frame(body string) string {
	return "Content-Length: " + strconv.Itoa(len(body)) + "\r\n\r\n" + body
}

func TestRead(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedMethod string
		expectedErr    error
	}{
		{
			name:           "framed requests are read",
			input:          frame(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`),
			expectedMethod: "initialize",
		},
		{
			name:        "missing content length",
			input:       "Content-Type: application/json\r\n\r\n{}",
			expectedErr: ErrInvalidContentLengthHeader,
		},
		{
			name:        "invalid json",
			input:       frame(`{"jsonrpc":`),
			expectedErr: ErrParseError,
		},
		{
			name:        "wrong protocol version",
			input:       frame(`{"jsonrpc":"1.0","method":"initialize"}`),
			expectedErr: ErrInvalidRequest,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req, err := Read(bufio.NewReader(strings.NewReader(test.input)))
			if test.expectedErr != nil {
				if !errors.Is(err, test.expectedErr) {
					t.Fatalf("expected %v, got %v", test.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Method != test.expectedMethod {
				t.Errorf("expected %q, got %q", test.expectedMethod, req.Method)
			}
		})
	}
}

func TestReadAfterMalformedBody(t *testing.T) {
	r := bufio.NewReader(strings.NewReader(frame(`{"jsonrpc":`) + frame(`{"jsonrpc":"2.0","method":"exit"}`)))
	if _, err := Read(r); !errors.Is(err, ErrParseError) {
		t.Fatalf("expected parse error, got %v", err)
	}
	req, err := Read(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Method != "exit" {
		t.Errorf("expected exit, got %q", req.Method)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if err := Write(w, NewNotification("window/showMessage", map[string]string{"message": "hello"})); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	req, err := Read(bufio.NewReader(&buf))
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	if req.Method != "window/showMessage" || !req.IsNotification() {
		t.Errorf("unexpected request: %+v", req)
	}
}

func TestNewError(t *testing.T) {
	if NewError(nil) != nil {
		t.Error("expected nil error to map to nil")
	}
	if e := NewError(ErrMethodNotFound); e != ErrMethodNotFound {
		t.Errorf("expected JSON-RPC errors to be passed through, got %v", e)
	}
	e := NewError(errors.New("boom"))
	if e.Code != ErrInternal.Code || e.Message != "boom" {
		t.Errorf("unexpected error: %+v", e)
	}
}
