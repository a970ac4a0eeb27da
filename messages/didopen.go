package messages

const DidOpenTextDocumentNotification = "textDocument/didOpen"

type DidOpenTextDocumentParams struct {
	// The document that was opened.
	TextDocument TextDocumentItem `json:"textDocument"`
}

// https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification/#textDocumentItem
type TextDocumentItem struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	// Version is incremented by the client after each change.
	Version int    `json:"version"`
	Text    string `json:"text"`
}
