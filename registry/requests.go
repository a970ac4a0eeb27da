package registry

import (
	"github.com/a-h/textsync/document"
	"github.com/a-h/textsync/messages"
)

type OpenRequest struct {
	ID      string
	Text    string
	Version int
}

type ChangeRequest struct {
	ID      string
	Version int
	Events  []document.ChangeEvent
}

const deprecatedReason = "no range given, the deprecated rangeLength encoding is not supported"

func FromDidOpen(params messages.DidOpenTextDocumentParams) OpenRequest {
	return OpenRequest{
		ID:      params.TextDocument.URI,
		Text:    params.TextDocument.Text,
		Version: params.TextDocument.Version,
	}
}

// FromDidChange converts a didChange notification. Content changes without a
// range can't be expressed as edits and fail the whole request with a
// document.Deprecated error.
func FromDidChange(params messages.DidChangeTextDocumentParams) (req ChangeRequest, err error) {
	req = ChangeRequest{
		ID:      params.TextDocument.URI,
		Version: params.TextDocument.Version,
		Events:  make([]document.ChangeEvent, len(params.ContentChanges)),
	}
	for i, change := range params.ContentChanges {
		if change.Range == nil {
			return ChangeRequest{}, document.Deprecated(deprecatedReason)
		}
		req.Events[i] = document.NewChangeEvent(toRange(*change.Range), change.Text)
	}
	return req, nil
}

func toRange(r messages.Range) document.Range {
	return document.NewRange(r.Start.Line, r.Start.Character, r.End.Line, r.End.Character)
}
