package protocol

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"strconv"
)

// Version is the only JSON-RPC version supported.
const Version = "2.0"

type Message interface {
	IsJSONRPC() bool
}

type Request struct {
	// ProtocolVersion is a string specifying the version of the JSON-RPC protocol. MUST be exactly "2.0".
	ProtocolVersion string `json:"jsonrpc"`
	// ID is an identifier established by the Client that MUST contain a String, Number, or NULL value if included. If it is not included it is assumed to be a notification. The value SHOULD normally not be Null [1] and Numbers SHOULD NOT contain fractional parts [2]
	ID *json.RawMessage `json:"id"`
	// Method is a string containing the name of the method to be invoked. Method names that begin with the word rpc followed by a period character (U+002E or ASCII 46) are reserved for rpc-internal methods and extensions and MUST NOT be used for anything else.
	Method string `json:"method"`
	// Params is a structured value that holds the parameter values to be used during the invocation of the method. This member MAY be omitted.
	Params json.RawMessage `json:"params"`
}

func (r Request) IsJSONRPC() bool {
	return r.ProtocolVersion == Version
}

func (r Request) IsNotification() bool {
	return r.ID == nil
}

type Response struct {
	ProtocolVersion string           `json:"jsonrpc"`
	ID              *json.RawMessage `json:"id"`
	// Result is populated on success.
	// This member is REQUIRED on success.
	// This member MUST NOT exist if there was an error invoking the method.
	// The value of this member is determined by the method invoked on the Server.
	Result any `json:"result"`
	// Error is populated on failure.
	// This member is REQUIRED on error.
	// This member MUST NOT exist if there was no error triggered during invocation.
	Error *Error `json:"error,omitempty"`
}

func (r Response) IsJSONRPC() bool {
	return r.ProtocolVersion == Version
}

func NewResponse(id *json.RawMessage, result any) Response {
	return Response{
		ProtocolVersion: Version,
		ID:              id,
		Result:          result,
	}
}

func NewResponseError(id *json.RawMessage, err error) Response {
	return Response{
		ProtocolVersion: Version,
		ID:              id,
		Error:           NewError(err),
	}
}

type Notification struct {
	ProtocolVersion string `json:"jsonrpc"`
	Method          string `json:"method"`
	Params          any    `json:"params"`
}

func (n Notification) IsJSONRPC() bool {
	return n.ProtocolVersion == Version
}

func NewNotification(method string, params any) Notification {
	return Notification{
		ProtocolVersion: Version,
		Method:          method,
		Params:          params,
	}
}

type Error struct {
	// Code is a Number that indicates the error type that occurred.
	Code int64 `json:"code"`
	// Message of the error.
	// The message SHOULD be limited to a concise single sentence.
	Message string `json:"message"`
	// A Primitive or Structured value that contains additional information about the error.
	// This may be omitted.
	// The value of this member is defined by the Server (e.g. detailed error information, nested errors etc.).
	Data any `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// NewError converts err to a JSON-RPC error. Errors that are not already an
// *Error are reported as internal errors.
func NewError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{
		Code:    ErrInternal.Code,
		Message: err.Error(),
	}
}

var (
	ErrParseError           *Error = &Error{Code: -32700, Message: "Parse error"}
	ErrInvalidRequest       *Error = &Error{Code: -32600, Message: "Invalid Request"}
	ErrMethodNotFound       *Error = &Error{Code: -32601, Message: "Method not found"}
	ErrInvalidParams        *Error = &Error{Code: -32602, Message: "Invalid params"}
	ErrInternal             *Error = &Error{Code: -32603, Message: "Internal error"}
	ErrServerNotInitialized *Error = &Error{Code: -32002, Message: "Server not initialized"}
)

var ErrInvalidContentLengthHeader = errors.New("missing or invalid Content-Length header")

func Read(r *bufio.Reader) (req Request, err error) {
	// Read header.
	header, err := textproto.NewReader(r).ReadMIMEHeader()
	if err != nil {
		return
	}
	contentLength, err := strconv.ParseInt(header.Get("Content-Length"), 10, 64)
	if err != nil || contentLength < 0 {
		return req, ErrInvalidContentLengthHeader
	}
	// Read body. The whole body is consumed before decoding so that a
	// malformed message doesn't leave the reader part way through it.
	body := make([]byte, contentLength)
	if _, err = io.ReadFull(r, body); err != nil {
		return
	}
	if err = json.Unmarshal(body, &req); err != nil {
		return req, fmt.Errorf("%w: %v", ErrParseError, err)
	}
	if !req.IsJSONRPC() {
		return req, ErrInvalidRequest
	}
	return
}

func Write(w *bufio.Writer, msg Message) (err error) {
	// Calculate body size.
	body, err := json.Marshal(msg)
	if err != nil {
		return
	}
	// Write the header.
	_, err = w.WriteString(fmt.Sprintf("Content-Length: %d\r\n\r\n", len(body)))
	if err != nil {
		return
	}
	// Write the body.
	_, err = w.Write(body)
	if err != nil {
		return
	}
	// Flush.
	err = w.Flush()
	return
}
