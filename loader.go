package intelhex

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/MineSlash/intelhex-editor/internal/logger"
)

// Longest accepted input line: 255 data bytes plus framing, with room for
// trailing whitespace.
const maxLineSize = 1024

// loader holds the state carried from one record to the next during a
// single load.
type loader struct {
	mem             *Memory
	extendedAddress uint32 // Extended linear address
	firstAddress    uint32 // Address of the first data record
	firstFlag       bool   // First data record seen
	eofFlag         bool   // End of file record seen
	lineNum         uint   // Parser input line number
	records         int
}

func newLoader() *loader {
	return &loader{mem: NewMemory()}
}

func (l *loader) parseIntelHexRecord(rec Record) error {
	switch rec.Type {
	case DataRecord:
		adr := l.extendedAddress | uint32(rec.Address)
		if err := checkRange(adr, len(rec.Data)); err != nil {
			return err
		}
		if !l.firstFlag {
			l.firstAddress = adr
			l.firstFlag = true
		}
		l.mem.write(adr, rec.Data)
	case EOFRecord:
		l.eofFlag = true
	case ExtendedLinearAddressRecord:
		if len(rec.Data) != 2 {
			return newError(MalformedControlRecord,
				fmt.Sprintf("extended linear address record with %d data bytes", len(rec.Data)))
		}
		l.extendedAddress = uint32(binary.BigEndian.Uint16(rec.Data)) << 16
		logger.Debug("extended linear address", "line", l.lineNum, "base", fmt.Sprintf("0x%08X", l.extendedAddress))
	case StartLinearAddressRecord:
		if len(rec.Data) != 4 {
			return newError(MalformedControlRecord,
				fmt.Sprintf("start linear address record with %d data bytes", len(rec.Data)))
		}
		l.mem.SetStartAddress(binary.BigEndian.Uint32(rec.Data))
	default:
		logger.Warn("skipping record", "line", l.lineNum, "type", byte(rec.Type))
	}
	return nil
}

func (l *loader) parseIntelHexLine(line string) error {
	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return nil
	}
	rec, err := DecodeRecord(line)
	if err != nil {
		return atLine(err, l.lineNum, line)
	}
	l.records++
	if err := l.parseIntelHexRecord(rec); err != nil {
		return atLine(err, l.lineNum, line)
	}
	return nil
}

func (l *loader) finish() *Memory {
	if !l.mem.startFlag && l.firstFlag {
		l.mem.inferStartAddress(l.firstAddress)
	}
	logger.Debug("intelhex loaded",
		"lines", l.lineNum, "records", l.records, "bytes", l.mem.Len(), "eof", l.eofFlag)
	return l.mem
}

// ParseIntelHex replaces the content of m with the image read from reader.
// Lines after the end of file record are not read. On error m is left
// unchanged.
func (m *Memory) ParseIntelHex(reader io.Reader) error {
	l := newLoader()
	// Editors on some platforms prepend a byte order mark.
	r := transform.NewReader(reader, unicode.BOMOverride(transform.Nop))
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, maxLineSize), maxLineSize)
	for scanner.Scan() {
		l.lineNum++
		if err := l.parseIntelHexLine(scanner.Text()); err != nil {
			return err
		}
		if l.eofFlag {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("intelhex: reading line %d: %w", l.lineNum+1, err)
	}
	*m = *l.finish()
	return nil
}

// ParseIntelHexLines is ParseIntelHex over lines already split.
func (m *Memory) ParseIntelHexLines(lines []string) error {
	l := newLoader()
	for _, line := range lines {
		l.lineNum++
		if err := l.parseIntelHexLine(line); err != nil {
			return err
		}
		if l.eofFlag {
			break
		}
	}
	*m = *l.finish()
	return nil
}

// Load reads a new Memory from reader.
func Load(reader io.Reader) (*Memory, error) {
	m := NewMemory()
	if err := m.ParseIntelHex(reader); err != nil {
		return nil, err
	}
	return m, nil
}
