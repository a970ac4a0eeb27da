package messages

const DidCloseTextDocumentNotification = "textDocument/didClose"

type DidCloseTextDocumentParams struct {
	// The document that was closed.
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}
