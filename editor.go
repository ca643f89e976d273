package intelhex

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/MineSlash/intelhex-editor/internal/logger"
)

// Editor is a Memory bound to the file it was opened from. Addresses and
// values may be given as integers or as hex strings.
type Editor struct {
	path string
	mem  *Memory
}

// Open loads the IntelHex file at path.
func Open(path string) (*Editor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("intelhex: open: %w", err)
	}
	defer f.Close()

	mem, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("opened", "path", path, "bytes", mem.Len())
	return &Editor{path: path, mem: mem}, nil
}

// NewEditor wraps an existing memory. path is the default Save target.
func NewEditor(mem *Memory, path string) *Editor {
	if mem == nil {
		mem = NewMemory()
	}
	return &Editor{path: path, mem: mem}
}

// Memory returns the underlying image.
func (e *Editor) Memory() *Memory { return e.mem }

// Path returns the file the editor was opened from.
func (e *Editor) Path() string { return e.path }

// Save writes the image to path, or to the opened file when path is empty.
// The file is replaced atomically and keeps its permissions; new files are
// created 0644.
func (e *Editor) Save(path string) error {
	if path == "" {
		path = e.path
	}
	if path == "" {
		return fmt.Errorf("intelhex: save: no output path")
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("intelhex: save: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := e.mem.DumpIntelHex(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("intelhex: save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("intelhex: save %s: %w", path, err)
	}
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("intelhex: save %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("intelhex: save %s: %w", path, err)
	}
	logger.Info("saved", "path", path, "bytes", e.mem.Len())
	return nil
}

// StartAddress returns the entry point formatted as 0x%08X. ok is false
// when the image has no entry point.
func (e *Editor) StartAddress() (adr string, ok bool) {
	a, ok := e.mem.GetStartAddress()
	if !ok {
		return "", false
	}
	return fmt.Sprintf("0x%08X", a), true
}

// Length returns the span from the lowest to the highest populated address.
func (e *Editor) Length() uint64 {
	return e.mem.SpanLength()
}

// MaxReadLength is the largest length accepted by Editor.Read.
const MaxReadLength = 1 << 24

// Read returns length bytes at address as upper-case hex digits. Lengths
// above MaxReadLength are rejected.
func (e *Editor) Read(address, length any) (string, error) {
	adr, err := ParseHexLike(address)
	if err != nil {
		return "", err
	}
	n, err := ParseHexLike(length)
	if err != nil {
		return "", err
	}
	if n > MaxReadLength {
		return "", newError(InvalidWriteValue, fmt.Sprintf("length 0x%X exceeds 0x%X", n, MaxReadLength))
	}
	return strings.ToUpper(hex.EncodeToString(e.mem.Read(adr, n))), nil
}

// Write stores data at address. Nothing is written if either argument is
// invalid.
func (e *Editor) Write(address, data any) error {
	adr, err := ParseHexLike(address)
	if err != nil {
		return err
	}
	b, err := ParseWriteValue(data)
	if err != nil {
		return err
	}
	return e.mem.Write(adr, b)
}

func trimHexPrefix(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}
	return s
}

// integer returns the value of any Go integer type. ok is false for
// non-integer values.
func integer(v any) (n uint64, ok bool, err error) {
	var signed int64
	switch x := v.(type) {
	case int:
		signed = int64(x)
	case int8:
		signed = int64(x)
	case int16:
		signed = int64(x)
	case int32:
		signed = int64(x)
	case int64:
		signed = x
	case uint:
		return uint64(x), true, nil
	case uint8:
		return uint64(x), true, nil
	case uint16:
		return uint64(x), true, nil
	case uint32:
		return uint64(x), true, nil
	case uint64:
		return x, true, nil
	case uintptr:
		return uint64(x), true, nil
	default:
		return 0, false, nil
	}
	if signed < 0 {
		return 0, true, newError(InvalidWriteValue, fmt.Sprintf("negative value %d", signed))
	}
	return uint64(signed), true, nil
}

// ParseHexLike converts an integer, or a hex string with an optional 0x
// prefix, into a 32-bit value.
func ParseHexLike(v any) (uint32, error) {
	if x, ok := v.(string); ok {
		s := trimHexPrefix(strings.TrimSpace(x))
		u, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return 0, newError(InvalidWriteValue, fmt.Sprintf("%q is not a 32-bit hex number", x))
		}
		return uint32(u), nil
	}
	n, ok, err := integer(v)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, newError(InvalidWriteValue, fmt.Sprintf("unsupported type %T", v))
	}
	if n > 0xFFFFFFFF {
		return 0, newError(InvalidWriteValue, fmt.Sprintf("value 0x%X does not fit 32 bits", n))
	}
	return uint32(n), nil
}

// ParseWriteValue converts a write value into bytes. Strings are hex digits
// with an optional 0x prefix, integers of any Go integer type are written
// big-endian using the fewest bytes, byte slices are used as they are. Odd
// digit counts are padded with a leading zero. Empty values are rejected.
func ParseWriteValue(v any) ([]byte, error) {
	var digits string
	switch x := v.(type) {
	case []byte:
		if len(x) == 0 {
			return nil, newError(InvalidWriteValue, "empty value")
		}
		return x, nil
	case string:
		digits = trimHexPrefix(strings.TrimSpace(x))
		if digits == "" {
			return nil, newError(InvalidWriteValue, fmt.Sprintf("%q has no hex digits", x))
		}
	default:
		n, ok, err := integer(v)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, newError(InvalidWriteValue, fmt.Sprintf("unsupported type %T", v))
		}
		digits = strconv.FormatUint(n, 16)
	}
	if len(digits)%2 != 0 {
		digits = "0" + digits
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return nil, newError(InvalidWriteValue, err.Error())
	}
	return b, nil
}
