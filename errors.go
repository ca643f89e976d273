package intelhex

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an Error.
type ErrorKind uint

const (
	InvalidFraming         ErrorKind = 1 // Missing ':' marker or non-hex characters
	TruncatedRecord        ErrorKind = 2 // Fewer characters than the byte count requires
	ChecksumMismatch       ErrorKind = 3 // Stored checksum differs from the computed one
	MalformedControlRecord ErrorKind = 4 // Wrong payload length in an address record
	AddressOverflow        ErrorKind = 5 // Data would pass the end of the 32-bit address space
	InvalidWriteValue      ErrorKind = 6 // Write value is neither hex text, integer nor bytes
)

var (
	// ErrInvalidFraming matches errors of kind InvalidFraming.
	ErrInvalidFraming = errors.New("intelhex: invalid framing")
	// ErrTruncatedRecord matches errors of kind TruncatedRecord.
	ErrTruncatedRecord = errors.New("intelhex: truncated record")
	// ErrChecksumMismatch matches errors of kind ChecksumMismatch.
	ErrChecksumMismatch = errors.New("intelhex: checksum mismatch")
	// ErrMalformedControlRecord matches errors of kind MalformedControlRecord.
	ErrMalformedControlRecord = errors.New("intelhex: malformed control record")
	// ErrAddressOverflow matches errors of kind AddressOverflow.
	ErrAddressOverflow = errors.New("intelhex: address overflow")
	// ErrInvalidWriteValue matches errors of kind InvalidWriteValue.
	ErrInvalidWriteValue = errors.New("intelhex: invalid write value")
	// ErrRecordTooLong is returned when encoding more than 255 data bytes.
	ErrRecordTooLong = errors.New("intelhex: record data longer than 255 bytes")
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidFraming:
		return "invalid framing"
	case TruncatedRecord:
		return "truncated record"
	case ChecksumMismatch:
		return "checksum mismatch"
	case MalformedControlRecord:
		return "malformed control record"
	case AddressOverflow:
		return "address overflow"
	case InvalidWriteValue:
		return "invalid write value"
	}
	return "error"
}

func (k ErrorKind) sentinel() error {
	switch k {
	case InvalidFraming:
		return ErrInvalidFraming
	case TruncatedRecord:
		return ErrTruncatedRecord
	case ChecksumMismatch:
		return ErrChecksumMismatch
	case MalformedControlRecord:
		return ErrMalformedControlRecord
	case AddressOverflow:
		return ErrAddressOverflow
	case InvalidWriteValue:
		return ErrInvalidWriteValue
	}
	return nil
}

// Error is returned by every decode, load and write operation that rejects
// its input. LineNum is 1-based and zero when the error did not come from a
// file load.
type Error struct {
	Kind    ErrorKind
	Message string
	LineNum uint
	Line    string
	Err     error
}

func (e *Error) Error() string {
	if e.LineNum == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s at line %d (%q)", e.Kind, e.Message, e.LineNum, e.Line)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel of the error kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// ChecksumError holds the checksum stored in a record and the one computed
// from its fields.
type ChecksumError struct {
	Expected byte
	Computed byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("expected %02X, computed %02X", e.Expected, e.Computed)
}

func newError(k ErrorKind, msg string) *Error {
	return &Error{Kind: k, Message: msg}
}

// atLine attaches the source position to err when it is an *Error.
func atLine(err error, lineNum uint, line string) error {
	var e *Error
	if errors.As(err, &e) {
		e.LineNum = lineNum
		e.Line = line
	}
	return err
}
