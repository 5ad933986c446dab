package gateway

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
	"github.com/orsinium-labs/enum"
	"modernc.org/sqlite"
)

// Operation names one gateway operation.
type Operation enum.Member[string]

var (
	OpDescribeDatabase = Operation{Value: "describe_database"}
	OpRunSelect        = Operation{Value: "run_select"}
	OpListTables       = Operation{Value: "list_tables"}
	OpDescribeTable    = Operation{Value: "describe_table"}
	OpInsertRecord     = Operation{Value: "insert_record"}
	OpReadRecords      = Operation{Value: "read_records"}
	OpUpdateRecords    = Operation{Value: "update_records"}
	OpDeleteRecords    = Operation{Value: "delete_records"}
	OpPing             = Operation{Value: "ping"}
)

// ErrorKind is the category of a failed operation.
type ErrorKind enum.Member[string]

var (
	KindNotFound            = ErrorKind{Value: "not_found"}
	KindConstraintViolation = ErrorKind{Value: "constraint_violation"}
	KindSyntaxError         = ErrorKind{Value: "syntax_error"}
	KindIOFailure           = ErrorKind{Value: "io_failure"}
	KindInvalidArgument     = ErrorKind{Value: "invalid_argument"}
	KindReadOnly            = ErrorKind{Value: "read_only"}
	KindUnknown             = ErrorKind{Value: "unknown"}
)

// Error is returned by every gateway operation that fails.
type Error struct {
	Op   Operation
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failed (%s): %v", e.Op.Value, e.Kind.Value, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns the underlying error text without the operation prefix.
func (e *Error) Message() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// KindOf returns the ErrorKind of err, or KindUnknown if err was not
// produced by the gateway.
func KindOf(err error) ErrorKind {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Kind
	}
	return KindUnknown
}

// kindError marks an error with a kind decided by the gateway itself,
// before the engine is involved.
type kindError struct {
	kind ErrorKind
	msg  string
}

func (e kindError) Error() string { return e.msg }

func notFoundf(format string, args ...any) error {
	return kindError{kind: KindNotFound, msg: fmt.Sprintf(format, args...)}
}

func invalidArgumentf(format string, args ...any) error {
	return kindError{kind: KindInvalidArgument, msg: fmt.Sprintf(format, args...)}
}

// wrapError attaches op and a classified kind to err.
func wrapError(op Operation, err error) error {
	if err == nil {
		return nil
	}

	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr
	}

	return &Error{Op: op, Kind: classify(err), Err: err}
}

// classify maps driver errors of both supported engines to an ErrorKind.
func classify(err error) ErrorKind {
	var kerr kindError
	if errors.As(err, &kerr) {
		return kerr.kind
	}

	var mattnErr sqlite3.Error
	if errors.As(err, &mattnErr) {
		return kindFromCode(sqlite3.ErrNo(mattnErr.Code), mattnErr.Error())
	}

	var moderncErr *sqlite.Error
	if errors.As(err, &moderncErr) {
		// Extended codes keep the primary code in the low byte.
		return kindFromCode(sqlite3.ErrNo(moderncErr.Code()&0xff), moderncErr.Error())
	}

	return kindFromMessage(err.Error())
}

func kindFromCode(code sqlite3.ErrNo, msg string) ErrorKind {
	switch code {
	case sqlite3.ErrConstraint, sqlite3.ErrMismatch:
		return KindConstraintViolation
	case sqlite3.ErrReadonly:
		return KindReadOnly
	case sqlite3.ErrRange:
		return KindInvalidArgument
	case sqlite3.ErrCantOpen, sqlite3.ErrIoErr, sqlite3.ErrNotADB, sqlite3.ErrCorrupt,
		sqlite3.ErrFull, sqlite3.ErrPerm, sqlite3.ErrBusy, sqlite3.ErrLocked:
		return KindIOFailure
	}
	return kindFromMessage(msg)
}

func kindFromMessage(msg string) ErrorKind {
	msg = strings.ToLower(msg)

	switch {
	case strings.Contains(msg, "no such table"),
		strings.Contains(msg, "no such column"):
		return KindNotFound
	case strings.Contains(msg, "syntax error"),
		strings.Contains(msg, "incomplete input"),
		strings.Contains(msg, "unrecognized token"):
		return KindSyntaxError
	case strings.Contains(msg, "constraint failed"):
		return KindConstraintViolation
	case strings.Contains(msg, "readonly database"):
		return KindReadOnly
	case strings.Contains(msg, "unable to open database"),
		strings.Contains(msg, "disk i/o error"),
		strings.Contains(msg, "file is not a database"):
		return KindIOFailure
	case strings.Contains(msg, "expected") && strings.Contains(msg, "argument"):
		return KindInvalidArgument
	}

	return KindUnknown
}
