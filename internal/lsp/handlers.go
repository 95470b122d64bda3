package lsp

import (
	"context"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/structype-lang/structype/internal/tooling"
)

func (s *Server) hover(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.HoverParams
	if ok, err := s.decode(ctx, reply, req, &params); !ok {
		return err
	}

	hover, err := s.api.GetHover(string(params.TextDocument.URI), tooling.Position{
		Line:      int(params.Position.Line),
		Character: int(params.Position.Character),
	})
	if err != nil {
		s.logger.Printf("hover failed: %v", err)
		return reply(ctx, nil, &jsonrpc2.Error{Code: jsonrpc2.InternalError, Message: err.Error()})
	}
	if hover == nil {
		return reply(ctx, nil, nil)
	}

	hoverRange := convertRange(hover.Range)
	return reply(ctx, protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hover.Contents,
		},
		Range: &hoverRange,
	}, nil)
}

func (s *Server) documentSymbol(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DocumentSymbolParams
	if ok, err := s.decode(ctx, reply, req, &params); !ok {
		return err
	}

	symbols, err := s.api.GetDocumentSymbols(string(params.TextDocument.URI))
	if err != nil {
		s.logger.Printf("documentSymbol failed: %v", err)
		return reply(ctx, nil, &jsonrpc2.Error{Code: jsonrpc2.InternalError, Message: err.Error()})
	}

	out := make([]protocol.DocumentSymbol, 0, len(symbols))
	for _, sym := range symbols {
		out = append(out, protocol.DocumentSymbol{
			Name:           sym.Name,
			Kind:           convertSymbolKind(sym.Kind),
			Detail:         sym.Detail,
			Range:          convertRange(sym.Range),
			SelectionRange: convertRange(sym.Range),
		})
	}

	return reply(ctx, out, nil)
}

func convertSymbolKind(kind tooling.SymbolKind) protocol.SymbolKind {
	switch kind {
	case tooling.SymbolKindStruct:
		return protocol.SymbolKindStruct
	case tooling.SymbolKindField:
		return protocol.SymbolKindField
	default:
		return protocol.SymbolKindObject
	}
}
