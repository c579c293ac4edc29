// Package apperr defines the error kinds surfaced by codevault operations.
// Errors carry a Kind and plain-text details; presentation belongs to the CLI.
package apperr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies an operation failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindAmbiguousSelector
	KindInvalidInput
	KindStoreUnreadable
	KindStoreMissing
	KindCancelled
)

var kindNames = map[Kind]string{
	KindUnknown:           "unknown",
	KindNotFound:          "not found",
	KindAmbiguousSelector: "ambiguous selector",
	KindInvalidInput:      "invalid input",
	KindStoreUnreadable:   "store unreadable",
	KindStoreMissing:      "store missing",
	KindCancelled:         "cancelled",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

var (
	ErrNotFound          = errors.New("not found")
	ErrAmbiguousSelector = errors.New("ambiguous selector")
	ErrInvalidInput      = errors.New("invalid input")
	ErrStoreUnreadable   = errors.New("store unreadable")
	ErrStoreMissing      = errors.New("store missing")
	ErrCancelled         = errors.New("cancelled")
)

var sentinels = map[Kind]error{
	KindNotFound:          ErrNotFound,
	KindAmbiguousSelector: ErrAmbiguousSelector,
	KindInvalidInput:      ErrInvalidInput,
	KindStoreUnreadable:   ErrStoreUnreadable,
	KindStoreMissing:      ErrStoreMissing,
	KindCancelled:         ErrCancelled,
}

// Error is the concrete error returned by the core packages.
type Error struct {
	Kind    Kind
	Message string
	// IDs lists the snippet IDs the error refers to (e.g. every missing ID).
	IDs []uint32
	// Candidates holds the matching IDs of an ambiguous selector.
	Candidates []uint32
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// NotFoundIDs reports snippet IDs that do not exist in the collection.
func NotFoundIDs(ids ...uint32) *Error {
	noun := "snippet ID"
	if len(ids) > 1 {
		noun = "snippet IDs"
	}
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s %s not found in the collection", noun, JoinIDs(ids)),
		IDs:     ids,
	}
}

// NotFoundTag reports a tag selector that matched nothing.
func NotFoundTag(tag string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("tag %q does not match any snippet", tag),
	}
}

// NotFoundf reports an empty query result.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Ambiguous reports a tag selector matching more than one snippet.
func Ambiguous(tag string, candidates []uint32) *Error {
	return &Error{
		Kind:       KindAmbiguousSelector,
		Message:    fmt.Sprintf("tag %q matches %d snippets", tag, len(candidates)),
		Candidates: candidates,
	}
}

// InvalidInput reports malformed operator input.
func InvalidInput(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// StoreMissing reports an absent backing store.
func StoreMissing(path string, err error) *Error {
	return &Error{
		Kind:    KindStoreMissing,
		Message: fmt.Sprintf("snippet store %s does not exist yet", path),
		Err:     err,
	}
}

// StoreUnreadable reports backing content that exists but cannot be decoded.
func StoreUnreadable(path string, err error) *Error {
	return &Error{
		Kind:    KindStoreUnreadable,
		Message: fmt.Sprintf("snippet store %s is corrupt or unreadable", path),
		Err:     err,
	}
}

// Cancelled reports an operation the operator declined.
func Cancelled(op string) *Error {
	return &Error{Kind: KindCancelled, Message: op + " cancelled"}
}

// JoinIDs renders ids as a comma-separated list.
func JoinIDs(ids []uint32) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ", ")
}
