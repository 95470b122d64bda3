// Package lsp serves the Language Server Protocol for structype declaration
// files over JSON-RPC on stdin/stdout: diagnostics as documents change, hover
// information, and document symbols.
package lsp

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"

	"github.com/structype-lang/structype/internal/compiler/metadata"
	"github.com/structype-lang/structype/internal/tooling"
)

const serverVersion = "0.1.0"

// Server routes LSP requests to the tooling API. One server handles one
// editor connection.
type Server struct {
	api           *tooling.API
	conn          jsonrpc2.Conn
	client        protocol.Client
	logger        *log.Logger
	workspaceRoot string
	cancel        context.CancelFunc
}

// NewServer creates a server that compiles documents under the given
// annotation form
func NewServer(form metadata.Form) *Server {
	return &Server{
		api:    tooling.NewAPI(form),
		logger: log.New(os.Stderr, "[LSP] ", log.LstdFlags),
	}
}

// capabilities describes what this server answers. Sync is full-document:
// the grammar is small enough that incremental sync buys nothing.
func (s *Server) capabilities() protocol.ServerCapabilities {
	return protocol.ServerCapabilities{
		TextDocumentSync: protocol.TextDocumentSyncOptions{
			OpenClose: true,
			Change:    protocol.TextDocumentSyncKindFull,
			Save:      &protocol.SaveOptions{IncludeText: false},
		},
		HoverProvider:          true,
		DocumentSymbolProvider: true,
	}
}

// Run serves the connection until the context is cancelled or the client
// sends exit
func (s *Server) Run(ctx context.Context) error {
	s.logger.Println("structype language server starting")

	ctx, s.cancel = context.WithCancel(ctx)

	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(stdio{}))
	s.conn = conn

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		zapLogger = zap.NewNop()
	}
	s.client = protocol.ClientDispatcher(conn, zapLogger)

	conn.Go(ctx, s.handle)
	<-ctx.Done()

	s.logger.Println("structype language server stopping")
	return conn.Close()
}

func (s *Server) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	s.logger.Printf("<- %s", req.Method())

	switch req.Method() {
	case protocol.MethodInitialize:
		return s.initialize(ctx, reply, req)
	case protocol.MethodInitialized, protocol.MethodShutdown:
		return reply(ctx, nil, nil)
	case protocol.MethodExit:
		err := reply(ctx, nil, nil)
		if s.cancel != nil {
			s.cancel()
		}
		return err
	case protocol.MethodTextDocumentDidOpen:
		return s.didOpen(ctx, reply, req)
	case protocol.MethodTextDocumentDidChange:
		return s.didChange(ctx, reply, req)
	case protocol.MethodTextDocumentDidClose:
		return s.didClose(ctx, reply, req)
	case protocol.MethodTextDocumentDidSave:
		return s.didSave(ctx, reply, req)
	case protocol.MethodTextDocumentHover:
		return s.hover(ctx, reply, req)
	case protocol.MethodTextDocumentDocumentSymbol:
		return s.documentSymbol(ctx, reply, req)
	default:
		return reply(ctx, nil, jsonrpc2.ErrMethodNotFound)
	}
}

// decode unmarshals request params, replying with InvalidParams on failure.
// The boolean reports whether the caller should proceed.
func (s *Server) decode(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request, v interface{}) (bool, error) {
	if err := json.Unmarshal(req.Params(), v); err != nil {
		s.logger.Printf("bad params for %s: %v", req.Method(), err)
		return false, reply(ctx, nil, &jsonrpc2.Error{
			Code:    jsonrpc2.InvalidParams,
			Message: err.Error(),
		})
	}
	return true, nil
}

func (s *Server) initialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.InitializeParams
	if ok, err := s.decode(ctx, reply, req, &params); !ok {
		return err
	}

	switch {
	case len(params.WorkspaceFolders) > 0:
		s.workspaceRoot = uri.URI(params.WorkspaceFolders[0].URI).Filename()
	case params.RootURI != "":
		s.workspaceRoot = params.RootURI.Filename()
	case params.RootPath != "":
		s.workspaceRoot = params.RootPath
	}
	if s.workspaceRoot != "" {
		s.logger.Printf("workspace root: %s", s.workspaceRoot)
	}

	return reply(ctx, protocol.InitializeResult{
		Capabilities: s.capabilities(),
		ServerInfo: &protocol.ServerInfo{
			Name:    "structype-lsp",
			Version: serverVersion,
		},
	}, nil)
}

func (s *Server) didOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if ok, err := s.decode(ctx, reply, req, &params); !ok {
		return err
	}

	docURI := string(params.TextDocument.URI)
	if _, err := s.api.ParseFile(docURI, params.TextDocument.Text); err != nil {
		s.logger.Printf("parse failed for %s: %v", docURI, err)
	}
	s.publishDiagnostics(ctx, docURI)

	return reply(ctx, nil, nil)
}

func (s *Server) didChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if ok, err := s.decode(ctx, reply, req, &params); !ok {
		return err
	}
	if len(params.ContentChanges) == 0 {
		return reply(ctx, nil, nil)
	}

	// Full sync: the last change carries the whole document
	docURI := string(params.TextDocument.URI)
	content := params.ContentChanges[len(params.ContentChanges)-1].Text
	if _, err := s.api.UpdateDocument(docURI, content, int(params.TextDocument.Version)); err != nil {
		s.logger.Printf("update failed for %s: %v", docURI, err)
	}
	s.publishDiagnostics(ctx, docURI)

	return reply(ctx, nil, nil)
}

func (s *Server) didClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if ok, err := s.decode(ctx, reply, req, &params); !ok {
		return err
	}

	s.api.CloseDocument(string(params.TextDocument.URI))
	return reply(ctx, nil, nil)
}

func (s *Server) didSave(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidSaveTextDocumentParams
	if ok, err := s.decode(ctx, reply, req, &params); !ok {
		return err
	}

	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return reply(ctx, nil, nil)
}

// publishDiagnostics pushes the current diagnostics for a document to the
// client. An empty list clears previously published diagnostics.
func (s *Server) publishDiagnostics(ctx context.Context, docURI string) {
	diagnostics := s.api.GetDiagnostics(docURI)

	out := make([]protocol.Diagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		out = append(out, protocol.Diagnostic{
			Range:    convertRange(d.Range),
			Severity: convertSeverity(d.Severity),
			Code:     d.Code,
			Source:   d.Source,
			Message:  d.Message,
		})
	}

	err := s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(docURI),
		Diagnostics: out,
	})
	if err != nil {
		s.logger.Printf("publishDiagnostics failed for %s: %v", docURI, err)
	}
}

func convertSeverity(severity tooling.DiagnosticSeverity) protocol.DiagnosticSeverity {
	if severity == tooling.DiagnosticSeverityWarning {
		return protocol.DiagnosticSeverityWarning
	}
	return protocol.DiagnosticSeverityError
}

func convertRange(r tooling.Range) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: uint32(r.Start.Line), Character: uint32(r.Start.Character)},
		End:   protocol.Position{Line: uint32(r.End.Line), Character: uint32(r.End.Character)},
	}
}

// stdio adapts stdin/stdout to the io.ReadWriteCloser the JSON-RPC stream
// expects
type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

func (stdio) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}
