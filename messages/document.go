package messages

// DocumentRequestMethod returns the server's copy of a document. It lets
// clients and tests check that incremental changes have been mirrored.
const DocumentRequestMethod = "textsync/document"

type DocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

type DocumentResult struct {
	URI     string   `json:"uri"`
	Found   bool     `json:"found"`
	Version int      `json:"version"`
	Lines   []string `json:"lines"`
}
