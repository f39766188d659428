package langserver

import (
	"os"
	"strings"

	"github.com/dhamidi/trails/query/lang"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "trails"

type Server struct {
	workspace *Workspace
	handler   protocol.Handler
	server    *server.Server
	version   string
}

// NewServer builds a language server over the shared catalog. When no
// relation source is given the TRAILS_RELATIONS environment variable
// supplies the relation list.
func NewServer(version string, relations lang.RelationSource) *Server {
	if relations == nil {
		relations = EnvRelations
	}
	engine := lang.NewEngine(lang.Default(), relations)

	s := &Server{
		workspace: NewWorkspace(engine),
		version:   version,
	}

	s.handler = protocol.Handler{
		Initialize:             s.initialize,
		Initialized:            s.initialized,
		Shutdown:               s.shutdown,
		SetTrace:               s.setTrace,
		TextDocumentDidOpen:    s.textDocumentDidOpen,
		TextDocumentDidChange:  s.textDocumentDidChange,
		TextDocumentDidClose:   s.textDocumentDidClose,
		TextDocumentCompletion: s.textDocumentCompletion,
		TextDocumentHover:      s.textDocumentHover,
		TextDocumentRename:     s.textDocumentRename,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

// EnvRelations reads the relation list from TRAILS_RELATIONS, a
// comma-separated set of identifiers.
func EnvRelations() []string {
	raw := os.Getenv("TRAILS_RELATIONS")
	if raw == "" {
		return nil
	}
	var relations []string
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			relations = append(relations, name)
		}
	}
	return relations
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
	}

	triggerChars := []string{"."}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: triggerChars,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.workspace.Update(string(params.TextDocument.URI), params.TextDocument.Text)
	s.publishDiagnostics(ctx, params.TextDocument.URI)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.workspace.Update(string(params.TextDocument.URI), textChange.Text)
			s.publishDiagnostics(ctx, params.TextDocument.URI)
		}
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.workspace.Remove(string(params.TextDocument.URI))
	return nil
}

func (s *Server) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri) {
	content, ok := s.workspace.Get(string(uri))
	if !ok {
		return
	}

	diagnostics := []protocol.Diagnostic{}
	severity := protocol.DiagnosticSeverityError
	for _, d := range s.workspace.Engine().Diagnostics(content) {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      uint32(d.Span.Start.Line - 1),
					Character: uint32(d.Span.Start.Column - 1),
				},
				End: protocol.Position{
					Line:      uint32(d.Span.End.Line - 1),
					Character: uint32(d.Span.End.Column - 1),
				},
			},
			Severity: &severity,
			Message:  d.Message,
		})
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func (s *Server) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	content, ok := s.workspace.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}

	offset := offsetForPosition(content, params.Position)
	completions := s.workspace.Engine().Complete(content, offset)
	if completions == nil {
		return nil, nil
	}

	var items []protocol.CompletionItem
	for _, c := range completions.Items {
		kind := toProtocolKind(c.Category)
		detail := c.Detail
		insertText := c.InsertText
		format := protocol.InsertTextFormatSnippet

		item := protocol.CompletionItem{
			Label:            c.Label,
			Kind:             &kind,
			Detail:           &detail,
			InsertText:       &insertText,
			InsertTextFormat: &format,
		}
		if c.Documentation != "" {
			item.Documentation = c.Documentation
		}
		items = append(items, item)
	}

	return items, nil
}

func (s *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	content, ok := s.workspace.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}

	offset := offsetForPosition(content, params.Position)
	doc, ok := s.workspace.Engine().Hover(content, offset)
	if !ok {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: formatHover(doc),
		},
	}, nil
}

func formatHover(doc lang.Documentation) string {
	var b strings.Builder
	b.WriteString("**" + doc.Title + "**\n\n")
	b.WriteString(doc.Description)
	if doc.Syntax != "" {
		b.WriteString("\n\n```\n" + doc.Syntax + "\n```")
	}
	for _, example := range doc.Examples {
		b.WriteString("\n\n`" + example + "`")
	}
	if doc.ResultType != "" {
		b.WriteString("\n\nResult: " + doc.ResultType)
	}
	return b.String()
}

func (s *Server) textDocumentRename(ctx *glsp.Context, params *protocol.RenameParams) (*protocol.WorkspaceEdit, error) {
	content, ok := s.workspace.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}

	offset := offsetForPosition(content, params.Position)
	oldName := lang.WordAt(content, offset)
	rewritten := s.workspace.Engine().Rename(content, oldName, params.NewName)
	if rewritten == content {
		return nil, nil
	}

	edit := protocol.TextEdit{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   endPosition(content),
		},
		NewText: rewritten,
	}

	return &protocol.WorkspaceEdit{
		Changes: map[protocol.DocumentUri][]protocol.TextEdit{
			params.TextDocument.URI: {edit},
		},
	}, nil
}

// offsetForPosition converts an LSP line/character position to a byte
// offset into the document.
func offsetForPosition(content string, pos protocol.Position) int {
	offset := 0
	line := uint32(0)
	for line < pos.Line {
		next := strings.IndexByte(content[offset:], '\n')
		if next < 0 {
			return len(content)
		}
		offset += next + 1
		line++
	}
	offset += int(pos.Character)
	if offset > len(content) {
		offset = len(content)
	}
	return offset
}

func endPosition(content string) protocol.Position {
	line := uint32(0)
	column := uint32(0)
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			line++
			column = 0
		} else {
			column++
		}
	}
	return protocol.Position{Line: line, Character: column}
}

func toProtocolKind(category lang.Category) protocol.CompletionItemKind {
	switch category {
	case lang.CategoryKeyword:
		return protocol.CompletionItemKindKeyword
	case lang.CategoryOperator:
		return protocol.CompletionItemKindOperator
	case lang.CategoryFunction:
		return protocol.CompletionItemKindFunction
	case lang.CategoryProperty:
		return protocol.CompletionItemKindProperty
	case lang.CategoryValue:
		return protocol.CompletionItemKindValue
	default:
		return protocol.CompletionItemKindText
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
