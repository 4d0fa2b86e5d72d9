// Package env implements ParseEnv, the evaluator-side state shared
// across one top-level gura.Parse call: the variable bindings of
// spec.md section 3.2, the import stack used for cycle detection, and
// optional structured tracing.
//
// Variable accumulation is grounded on sqlparser/pragma.go's
// Pragma.ParsePragmas / Document.parseSinglePragma (state built up
// incrementally during a single parse); the import stack is grounded
// on sqlparser/document.go's Document.Include merge, together with
// the stack/visited-set bookkeeping pattern of
// sqlparser/sqldocument/topological_sort.go, here repurposed from
// ordering CREATE statements by dependency to guarding against
// re-entering a file already being imported.
package env

import (
	"github.com/gofrs/uuid"
	"github.com/gura-conf/gura-go/value"
	"github.com/sirupsen/logrus"
)

// maxImportDepth bounds import recursion per spec.md section 5.
const maxImportDepth = 64

// ParseEnv carries everything a single top-level parse call threads
// through every recursive grammar call: variable bindings, the import
// stack, the base directory relative paths resolve against, and an
// optional logger for tracing. It is never shared across distinct
// Parse/ParseWith calls (spec.md section 5 — two concurrent calls on
// distinct inputs share no mutable state).
type ParseEnv struct {
	Variables map[string]value.Value
	BaseDir   string

	importStack []string // canonicalized absolute paths currently being imported

	log     *logrus.Entry
	traceID string
}

// New returns a ParseEnv rooted at baseDir, with a fresh trace id and
// a no-op (discard) logger. Use WithLogger to enable tracing.
func New(baseDir string) *ParseEnv {
	id := uuid.Must(uuid.NewV4()).String()
	logger := logrus.New()
	logger.SetOutput(discardWriter{})
	return &ParseEnv{
		Variables: make(map[string]value.Value),
		BaseDir:   baseDir,
		traceID:   id,
		log:       logger.WithField("parse_id", id),
	}
}

// WithLogger replaces the environment's logger, e.g. with the logger
// cmd/gura builds for CLI tracing (its -v flag).
// Returns e for chaining.
func (e *ParseEnv) WithLogger(l *logrus.Logger) *ParseEnv {
	e.log = l.WithField("parse_id", e.traceID)
	return e
}

// Log returns the environment's structured logger, always non-nil.
func (e *ParseEnv) Log() *logrus.Entry { return e.log }

// TraceID returns the per-parse-call correlation id attached to every
// log entry this environment emits.
func (e *ParseEnv) TraceID() string { return e.traceID }

// LookupVariable resolves $name against the bound variables.
func (e *ParseEnv) LookupVariable(name string) (value.Value, bool) {
	v, ok := e.Variables[name]
	return v, ok
}

// DeclareVariable binds name to v. It reports false without modifying
// the environment if name is already bound — the caller raises
// DuplicateVariable in that case.
func (e *ParseEnv) DeclareVariable(name string, v value.Value) bool {
	if _, exists := e.Variables[name]; exists {
		return false
	}
	e.Variables[name] = v
	return true
}

// ImportDepth reports how many imports are currently nested.
func (e *ParseEnv) ImportDepth() int {
	return len(e.importStack)
}

// PushImport attempts to enter path (expected already canonicalized by
// the caller). It reports ok == false with cycle == true if path is
// already on the stack (DuplicateImport), or ok == false with
// cycle == false if the depth guard trips (ImportDepthExceeded).
// Callers must call PopImport on every path that PushImport admitted,
// on every exit including error (spec.md section 5's scoped
// acquire/release discipline, here applied to the import stack rather
// than a file handle).
func (e *ParseEnv) PushImport(path string) (ok, cycle bool) {
	for _, p := range e.importStack {
		if p == path {
			return false, true
		}
	}
	if len(e.importStack) >= maxImportDepth {
		return false, false
	}
	e.importStack = append(e.importStack, path)
	return true, false
}

// PopImport removes the most recently pushed import path. It is a
// no-op if the stack is already empty.
func (e *ParseEnv) PopImport() {
	if len(e.importStack) == 0 {
		return
	}
	e.importStack = e.importStack[:len(e.importStack)-1]
}

// ImportStack returns a snapshot of the currently active import
// stack, root first.
func (e *ParseEnv) ImportStack() []string {
	out := make([]string, len(e.importStack))
	copy(out, e.importStack)
	return out
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
