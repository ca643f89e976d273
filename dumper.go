package intelhex

import (
	"bufio"
	"io"

	"github.com/MineSlash/intelhex-editor/internal/logger"
)

// ChunkSize is the number of data bytes in every dumped data record.
const ChunkSize = 32

// IntelHexLines returns the records of m as text lines without terminators.
//
// Data is written in ChunkSize records aligned to ChunkSize: the walk starts
// at the lowest address rounded down to a multiple of ChunkSize, not at the
// lowest address itself, so no record crosses a 64 KiB segment. Holes, the
// head of the first chunk and the tail of the last chunk are filled with
// FillByte. An extended linear address record precedes the first chunk of
// every 64 KiB segment. An explicit start address is written first, an
// inferred one is not written.
func (m *Memory) IntelHexLines() []string {
	lines := []string{}
	m.dumpIntelHex(func(line string) error {
		lines = append(lines, line)
		return nil
	})
	return lines
}

// DumpIntelHex writes m as IntelHex text to writer, one record per line.
func (m *Memory) DumpIntelHex(writer io.Writer) error {
	w := bufio.NewWriter(writer)
	err := m.dumpIntelHex(func(line string) error {
		if _, err := w.WriteString(line); err != nil {
			return err
		}
		return w.WriteByte('\n')
	})
	if err != nil {
		return err
	}
	return w.Flush()
}

func (m *Memory) dumpIntelHex(emit func(string) error) error {
	if m.startExplicit {
		if err := emit(makeStartAddressLine(m.startAddress)); err != nil {
			return err
		}
	}

	records := 0
	if lo, hi, ok := m.Bounds(); ok {
		segment := int64(-1)
		// uint64 so the walk ends after the chunk holding 0xFFFFFFFF
		for base := uint64(lo) &^ (ChunkSize - 1); base <= uint64(hi); base += ChunkSize {
			adr := uint32(base)
			if s := int64(adr >> 16); s != segment {
				segment = s
				if err := emit(makeExtendedAddressLine(uint16(s))); err != nil {
					return err
				}
			}
			line, _ := EncodeRecord(DataRecord, uint16(adr), m.Read(adr, ChunkSize))
			if err := emit(line); err != nil {
				return err
			}
			records++
		}
	}

	logger.Debug("intelhex dumped", "data_records", records, "bytes", m.Len())
	return emit(makeEOFLine())
}
