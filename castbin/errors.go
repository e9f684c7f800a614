package castbin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/castformat/castfile"
)

var (
	// Indicates an unexpected file signature.
	ErrInvalidMagic = errors.New("invalid magic")
	// Indicates an unexpected content for bytes presumed to be reserved.
	ErrReserveNonZero = errors.New("reserved space in file header is non-zero")
	// Indicates that nodes are nested deeper than the decoder allows.
	ErrTooDeep = errors.New("nodes nested too deeply")
	// Indicates a property without a value.
	ErrNilValue = errors.New("property has no value")
	// Indicates a string value containing a NUL byte, which would terminate
	// the encoded string early.
	ErrInvalidString = errors.New("string contains NUL byte")
)

// ErrUnrecognizedVersion indicates a format version not recognized by the
// codec.
type ErrUnrecognizedVersion uint32

func (err ErrUnrecognizedVersion) Error() string {
	return fmt.Sprintf("unrecognized version %d", uint32(err))
}

// ErrUnknownType indicates a property type tag not known by the codec.
type ErrUnknownType [2]byte

func (err ErrUnknownType) Error() string {
	return fmt.Sprintf("unknown type tag %q (% 02X)", string(err[:]), err[:])
}

// ErrLengthMismatch indicates that the byte length declared by a node header
// does not match the number of bytes the node occupies.
type ErrLengthMismatch struct {
	Declared uint32
	Actual   int64
}

func (err ErrLengthMismatch) Error() string {
	return fmt.Sprintf("declared length %d does not match actual length %d", err.Declared, err.Actual)
}

// ErrDuplicateProperty indicates that a node contains more than one property
// of the same name. The last value is kept.
type ErrDuplicateProperty string

func (err ErrDuplicateProperty) Error() string {
	return fmt.Sprintf("duplicate property %q", string(err))
}

// ErrTooLarge indicates a value that does not fit the field that encodes it.
type ErrTooLarge struct {
	Field string
	Size  uint64
}

func (err ErrTooLarge) Error() string {
	return fmt.Sprintf("%s too large (%d)", err.Field, err.Size)
}

// CodecError wraps an error that occurred while encoding or decoding a
// document.
type CodecError struct {
	Cause error
}

func (err CodecError) Error() string {
	if err.Cause == nil {
		return "codec error"
	}
	return "codec error: " + err.Cause.Error()
}

func (err CodecError) Unwrap() error {
	return err.Cause
}

// DataError wraps an error that occurred while encoding or decoding byte data.
type DataError struct {
	// Offset is the byte offset where the error occurred.
	Offset int64

	Cause error
}

func (err DataError) Error() string {
	var s strings.Builder
	s.WriteString("data error")
	if err.Offset >= 0 {
		s.WriteString(" at ")
		s.Write(strconv.AppendInt(nil, err.Offset, 10))
	}
	if err.Cause != nil {
		s.WriteString(": ")
		s.WriteString(err.Cause.Error())
	}
	return s.String()
}

func (err DataError) Unwrap() error {
	return err.Cause
}

// NodeError indicates an error that occurred within a node.
type NodeError struct {
	// Path locates the node within the document, as a list of identifier
	// mnemonics and indices, such as "root[0]/modl[1]".
	Path string
	// Hash is the hash of the node.
	Hash uint64

	Cause error
}

func (err NodeError) Error() string {
	return fmt.Sprintf("node %s (%016X): %s", err.Path, err.Hash, err.Cause.Error())
}

func (err NodeError) Unwrap() error {
	return err.Cause
}

// nodePath builds the Path of a NodeError.
type nodePath []string

func (p nodePath) push(id castfile.Identifier, i int) nodePath {
	return append(p[:len(p):len(p)], id.String()+"["+strconv.Itoa(i)+"]")
}

func (p nodePath) String() string {
	return strings.Join(p, "/")
}
