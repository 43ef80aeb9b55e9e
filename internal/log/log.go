// Package log provides centralised audit logging for llmsh operations.
// Logs are stored in ~/.llmsh/log/llmsh-log.db and track chat turns,
// tool executions, and provider lifecycle events across projects.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("tool:shell", "execute").
//		Tool("shell").
//		Detail("command", cmd).
//		Write(err)
//
//	log.Event("mcp:connect", "connect").
//		Provider(id).
//		Detail("tools", len(result.Tools)).
//		Write(result.Err)
//
// The source parameter follows the format "{area}:{operation}":
// "chat:turn", "tool:{name}", "mcp:connect", "mcp:disconnect".
package log

import (
	"sync"
	"time"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source   string // e.g., "chat:turn", "tool:shell", "mcp:connect"
	Action   string // verb: chat, execute, connect, disconnect
	Tool     string // tool name for execution entries
	Provider string // provider id for lifecycle entries

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call
// [Builder.Write] to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Tool sets the tool name this operation executed.
func (b *Builder) Tool(name string) *Builder {
	b.entry.Tool = name
	return b
}

// Provider sets the provider id this operation affects.
func (b *Builder) Provider(id string) *Builder {
	b.entry.Provider = id
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
// Can be called multiple times to add multiple details.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure
// from err. This is the standard way to complete a log entry after an
// operation.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
