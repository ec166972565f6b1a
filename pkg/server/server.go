package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/kagura-dev/typeway/internal/logger"
	"github.com/kagura-dev/typeway/pkg/config"
	"github.com/kagura-dev/typeway/pkg/encode"
	"github.com/kagura-dev/typeway/pkg/engine"
)

// Server handles the IPC for dictionary queries
type Server struct {
	engine   *engine.Engine
	config   *config.Config
	decoder  *msgpack.Decoder
	encoder  *msgpack.Encoder
	log      *log.Logger
	requests int
}

// NewServer creates a new query server using stdin/stdout for IPC
func NewServer(eng *engine.Engine, cfg *config.Config) *Server {
	return &Server{
		engine:  eng,
		config:  cfg,
		decoder: msgpack.NewDecoder(os.Stdin),
		encoder: msgpack.NewEncoder(os.Stdout),
		log:     logger.New("server"),
	}
}

// Start begins listening for IPC requests. It returns nil once the
// client closes stdin. A frame that fails to decode ends the loop,
// since the stream offset can no longer be trusted.
func (s *Server) Start() error {
	s.log.Debug("Starting server.")

	for {
		var request Request
		if err := s.decoder.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debug("Client disconnected (EOF)")
				return nil
			}
			s.log.Errorf("Reading from stdin: %v", err)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches one decoded request
func (s *Server) handleRequest(request Request) {
	s.requests++
	s.log.Debugf("Request %d: op=%s id=%s", s.requests, request.Op, request.ID)

	switch request.Op {
	case "eval":
		s.handleEval(request)
	case "encode":
		s.handleEncode(request)
	case "lookup":
		s.handleLookup(request)
	case "info":
		s.handleInfo(request)
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown op: %s", request.Op), 400)
	}
}

// sendResponse marshals one response frame onto stdout.
func (s *Server) sendResponse(response interface{}) {
	if err := s.encoder.Encode(response); err != nil {
		s.log.Errorf("Marshaling response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
	})
}

// handleEval runs the decoder over a raw keystroke stream.
func (s *Server) handleEval(request Request) {
	if max := s.config.Server.MaxInput; max > 0 && len(request.Input) > max {
		s.sendError(request.ID, fmt.Sprintf("Input exceeds maximum length of %d bytes", max), 400)
		return
	}

	start := time.Now()
	text := s.engine.Eval(request.Input)
	elapsed := time.Since(start)

	s.sendResponse(EvalResponse{
		ID:        request.ID,
		Text:      text,
		TimeTaken: elapsed.Microseconds(),
	})
}

// handleEncode computes the cheapest keystroke fragments for a sentence.
func (s *Server) handleEncode(request Request) {
	if max := s.config.Server.MaxSentence; max > 0 && utf8.RuneCountInString(request.Input) > max {
		s.sendError(request.ID, fmt.Sprintf("Sentence exceeds maximum length of %d characters", max), 400)
		return
	}

	start := time.Now()
	fragments, err := s.engine.Shortest(request.Input)
	elapsed := time.Since(start)

	if err != nil {
		var segErr *encode.SegmentationError
		if errors.As(err, &segErr) {
			s.sendError(request.ID, segErr.Error(), 422)
		} else {
			s.sendError(request.ID, err.Error(), 500)
		}
		return
	}

	s.sendResponse(EncodeResponse{
		ID:         request.ID,
		Fragments:  fragments,
		Count:      len(fragments),
		Keystrokes: strings.Join(fragments, ""),
		TimeTaken:  elapsed.Microseconds(),
	})
}

// handleLookup returns the shortest full code for one word.
func (s *Server) handleLookup(request Request) {
	code, ok := s.engine.Lookup(request.Input)
	if !ok {
		s.sendError(request.ID, fmt.Sprintf("No code for %q", request.Input), 404)
		return
	}
	s.sendResponse(LookupResponse{
		ID:   request.ID,
		Word: request.Input,
		Code: code,
	})
}

// handleInfo reports loaded dictionary sizes.
func (s *Server) handleInfo(request Request) {
	stats := s.engine.Stats()
	s.sendResponse(InfoResponse{
		ID:      request.ID,
		Entries: stats.Entries,
		Words:   stats.Words,
		Nodes:   stats.Nodes,
	})
}
