package domain

import "fmt"

// CommandKind enumerates the commands accepted on the service channel.
// Dispatch switches exhaustively over this type rather than comparing
// raw command strings.
type CommandKind int

const (
	// CommandUnknown is the zero value for unrecognised commands.
	CommandUnknown CommandKind = iota

	// CommandQuery answers a free-text question against the corpus.
	CommandQuery

	// CommandSync replaces the entire corpus with the supplied notes.
	CommandSync

	// CommandInsert adds notes to the existing corpus.
	CommandInsert

	// CommandDelete removes a single document by id.
	CommandDelete
)

// ParseCommandKind maps a wire command name to its CommandKind.
// Unrecognised names return CommandUnknown and an error carrying the
// original name, which becomes the command's error response.
func ParseCommandKind(name string) (CommandKind, error) {
	switch name {
	case "query":
		return CommandQuery, nil
	case "sync":
		return CommandSync, nil
	case "insert":
		return CommandInsert, nil
	case "delete":
		return CommandDelete, nil
	default:
		return CommandUnknown, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
}

// String returns the wire name of the command kind.
func (k CommandKind) String() string {
	switch k {
	case CommandQuery:
		return "query"
	case CommandSync:
		return "sync"
	case CommandInsert:
		return "insert"
	case CommandDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Command is a parsed service command. Every command carries the id of
// the user it acts for and a single string argument whose meaning
// depends on the kind: query text, a JSON array of notes, or a
// document id.
type Command struct {
	Kind   CommandKind
	UserID string
	Arg    string
}
