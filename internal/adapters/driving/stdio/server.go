// Package stdio exposes the retrieval service over a line-oriented
// JSON protocol: one command array per stdin line, one JSON response
// per stdout line. Stdout carries nothing but protocol lines; all
// logging goes to stderr.
package stdio

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Sph3inz/MindFeed/internal/core/domain"
	"github.com/Sph3inz/MindFeed/internal/core/ports/driving"
	"github.com/Sph3inz/MindFeed/internal/logger"
)

// maxLineSize caps a single command line. Sync payloads carry whole
// note collections, so this is generous.
const maxLineSize = 16 * 1024 * 1024

// errInvalidFormat is the protocol-level rejection for lines that do
// not decode to a three-element command array.
var errInvalidFormat = errors.New("Invalid command format")

// Acknowledgement messages per command.
const (
	syncedMessage   = "Notes synced and ready for querying"
	insertedMessage = "Notes added and ready for querying"
	deletedMessage  = "Document deleted successfully"
)

type readyMessage struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ackMessage struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorMessage struct {
	Error string `json:"error"`
}

// Server reads commands from a stream and writes one response line per
// command, in command order.
type Server struct {
	service driving.RetrievalService
	in      io.Reader
	out     *json.Encoder
}

// NewServer creates a server reading commands from in and writing
// responses to out.
func NewServer(service driving.RetrievalService, in io.Reader, out io.Writer) *Server {
	return &Server{
		service: service,
		in:      in,
		out:     json.NewEncoder(out),
	}
}

// Run announces readiness and serves commands until the input stream
// ends. A closed stream is a normal shutdown, not an error. Command
// failures are reported on the protocol stream and never stop the
// loop.
func (s *Server) Run(ctx context.Context) error {
	s.write(readyMessage{Status: "ready", Message: "Service manager started"})
	logger.Info("Service manager started, waiting for commands...")

	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		s.handle(ctx, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}
	logger.Info("Input stream closed, shutting down")
	return nil
}

// handle dispatches one command line and writes exactly one response.
func (s *Server) handle(ctx context.Context, line string) {
	response, err := s.dispatch(ctx, line)
	if err != nil {
		logger.Error("Error processing command: %v", err)
		s.write(errorMessage{Error: err.Error()})
		return
	}
	s.write(response)
}

func (s *Server) dispatch(ctx context.Context, line string) (any, error) {
	command, err := parseCommand(line)
	if err != nil {
		return nil, err
	}
	logger.Info("Received command: %s for user %s", command.Kind, command.UserID)

	switch command.Kind {
	case domain.CommandQuery:
		return s.service.Query(ctx, command.Arg)

	case domain.CommandSync:
		notes, err := parseNotes(command.Arg)
		if err != nil {
			return nil, err
		}
		logger.Info("Syncing %d notes for user %s", len(notes), command.UserID)
		if err := s.service.ClearDocuments(ctx); err != nil {
			return nil, err
		}
		result, err := s.service.AddNotes(ctx, notes)
		if err != nil {
			return nil, err
		}
		if !result.Success {
			return nil, fmt.Errorf("failed to sync notes")
		}
		return ackMessage{Success: true, Message: syncedMessage}, nil

	case domain.CommandInsert:
		notes, err := parseNotes(command.Arg)
		if err != nil {
			return nil, err
		}
		logger.Info("Inserting %d notes for user %s", len(notes), command.UserID)
		result, err := s.service.AddNotes(ctx, notes)
		if err != nil {
			return nil, err
		}
		if !result.Success {
			return nil, fmt.Errorf("failed to add notes")
		}
		return ackMessage{Success: true, Message: insertedMessage}, nil

	case domain.CommandDelete:
		logger.Info("Deleting document %s for user %s", command.Arg, command.UserID)
		if err := s.service.DeleteDocument(ctx, command.Arg); err != nil {
			return nil, err
		}
		return ackMessage{Success: true, Message: deletedMessage}, nil

	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCommand, command.Kind)
	}
}

// parseCommand decodes a protocol line: a JSON array of exactly three
// strings, [command, user_id, argument].
func parseCommand(line string) (domain.Command, error) {
	var parts []string
	if err := json.Unmarshal([]byte(line), &parts); err != nil {
		return domain.Command{}, errInvalidFormat
	}
	if len(parts) != 3 {
		return domain.Command{}, errInvalidFormat
	}

	kind, err := domain.ParseCommandKind(parts[0])
	if err != nil {
		return domain.Command{}, err
	}
	return domain.Command{Kind: kind, UserID: parts[1], Arg: parts[2]}, nil
}

// parseNotes decodes the note payload carried as a JSON string inside
// the command array.
func parseNotes(arg string) ([]domain.Note, error) {
	var notes []domain.Note
	if err := json.Unmarshal([]byte(arg), &notes); err != nil {
		return nil, fmt.Errorf("%w: parse notes: %v", domain.ErrInvalidInput, err)
	}
	return notes, nil
}

// write emits one response line. A write failure means the peer is
// gone; it is logged and the current response dropped.
func (s *Server) write(v any) {
	if err := s.out.Encode(v); err != nil {
		logger.Error("Failed to write response: %v", err)
	}
}
