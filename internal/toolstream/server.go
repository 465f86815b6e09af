package toolstream

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"

	"katalog-backend/internal/catalog"

	"go.uber.org/zap"
)

// JSON-RPC 2.0 hata kodları
const (
	codeParse          = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternal       = -32603
	codeServer         = -32000
)

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Server, satır bazlı JSON-RPC 2.0 akışı üzerinden katalog araçlarını sunar.
// Her satır bir istek, her cevap tek satır. HTTP tarafıyla aynı motora
// gider; burada sadece çerçeveleme var.
type Server struct {
	engine *catalog.Engine
	log    *zap.Logger
	in     io.Reader
	out    io.Writer
}

func NewServer(engine *catalog.Engine, log *zap.Logger, in io.Reader, out io.Writer) *Server {
	return &Server{engine: engine, log: log, in: in, out: out}
}

// Run, stdin kapanana ya da ctx iptal edilene kadar istekleri işler.
func (s *Server) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	enc := json.NewEncoder(s.out)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.Warn("Çözümlenemeyen istek satırı", zap.Error(err))
			writeResponse(enc, s.log, response{
				JSONRPC: "2.0",
				ID:      json.RawMessage("null"),
				Error:   &rpcError{Code: codeParse, Message: "Geçersiz JSON"},
			})
			continue
		}

		resp := s.dispatch(ctx, req)

		// id'siz istek bildirimdir, cevap dönülmez
		if len(req.ID) == 0 || string(req.ID) == "null" {
			continue
		}
		writeResponse(enc, s.log, resp)
	}
	return scanner.Err()
}

func writeResponse(enc *json.Encoder, log *zap.Logger, resp response) {
	if err := enc.Encode(resp); err != nil {
		log.Error("Cevap yazılamadı", zap.Error(err))
	}
}

func (s *Server) dispatch(ctx context.Context, req request) response {
	resp := response{JSONRPC: "2.0", ID: req.ID}

	switch req.Method {
	case "initialize":
		resp.Result = map[string]any{
			"server":  "katalog-backend",
			"version": "1.0.0",
		}
	case "tools/list":
		resp.Result = map[string]any{"tools": toolDefs()}
	case "tools/call":
		result, rpcErr := s.call(ctx, req.Params)
		if rpcErr != nil {
			resp.Error = rpcErr
		} else {
			resp.Result = result
		}
	default:
		resp.Error = &rpcError{Code: codeMethodNotFound, Message: "Bilinmeyen metot: " + req.Method}
	}
	return resp
}
