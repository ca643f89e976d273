package intelhex

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHex = ":10000000112233445566778899AABBCCDDEEFF00F8\n:00000001FF\n"

func assertParseError(t *testing.T, input string, kind ErrorKind, lineNum uint, msg string) {
	t.Helper()
	m := NewMemory()
	err := m.ParseIntelHex(strings.NewReader(input))
	require.Error(t, err, msg)
	var e *Error
	require.True(t, errors.As(err, &e), "%s: %v", msg, err)
	assert.Equal(t, kind, e.Kind, "%s: %v", msg, err)
	assert.Equal(t, lineNum, e.LineNum, msg)
}

func TestParseSample(t *testing.T) {
	m, err := Load(strings.NewReader(sampleHex))
	require.NoError(t, err)

	assert.Equal(t, []byte{
		0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88,
		0x99, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF, 0x00,
	}, m.Read(0, 16))
	assert.Equal(t, 16, m.Len())
	assert.Equal(t, uint64(16), m.SpanLength())

	adr, ok := m.GetStartAddress()
	assert.True(t, ok)
	assert.Equal(t, uint32(0), adr)
	assert.False(t, m.HasExplicitStartAddress())
}

func TestParseExtendedAddress(t *testing.T) {
	m, err := Load(strings.NewReader(":020000040001F9\n:01001000AB44\n:00000001FF\n"))
	require.NoError(t, err)
	b, ok := m.Get(0x00010010)
	require.True(t, ok)
	assert.Equal(t, byte(0xAB), b)
	assert.Equal(t, 1, m.Len())
}

func TestParseStartAddress(t *testing.T) {
	m, err := Load(strings.NewReader(":0400000580008000F7\n:01001000AB44\n:00000001FF\n"))
	require.NoError(t, err)
	adr, ok := m.GetStartAddress()
	assert.True(t, ok)
	assert.Equal(t, uint32(0x80008000), adr)
	assert.True(t, m.HasExplicitStartAddress())

	// the last start address record wins
	m, err = Load(strings.NewReader(":0400000580008000F7\n:0400000500000010E7\n"))
	require.NoError(t, err)
	adr, _ = m.GetStartAddress()
	assert.Equal(t, uint32(0x10), adr)
}

func TestParseFirstAddressFallback(t *testing.T) {
	input := ":020000040001F9\n:01001000AB44\n:020000040000FA\n:0100000009F6\n:00000001FF\n"
	m, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	adr, ok := m.GetStartAddress()
	assert.True(t, ok)
	assert.Equal(t, uint32(0x00010010), adr, "entry point must be the first data address in file order")
}

func TestParseNoData(t *testing.T) {
	m, err := Load(strings.NewReader(":00000001FF\n"))
	require.NoError(t, err)
	_, ok := m.GetStartAddress()
	assert.False(t, ok)
	assert.Zero(t, m.Len())

	m, err = Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, m.Len())
}

func TestParseOverwrite(t *testing.T) {
	m, err := Load(strings.NewReader(":0100000009F6\n:0100000055AA\n"))
	require.NoError(t, err)
	b, _ := m.Get(0)
	assert.Equal(t, byte(0x55), b)
}

func TestParseStopsAtEOF(t *testing.T) {
	m, err := Load(strings.NewReader(":0100000009F6\n:00000001FF\nnot a record\n:0100000055AA\n"))
	require.NoError(t, err)
	b, _ := m.Get(0)
	assert.Equal(t, byte(0x09), b)
}

func TestParseWhitespaceAndBlankLines(t *testing.T) {
	input := "\r\n  :0100000009F6  \r\n\t\n\n:00000001FF\r\n"
	m, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
}

func TestParseByteOrderMark(t *testing.T) {
	m, err := Load(strings.NewReader("\xEF\xBB\xBF" + sampleHex))
	require.NoError(t, err)
	assert.Equal(t, 16, m.Len())
}

func TestParseSkipsUnknownRecords(t *testing.T) {
	m, err := Load(strings.NewReader(":020000021000EC\n:0100000009F6\n:00000001FF\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
	b, _ := m.Get(0)
	assert.Equal(t, byte(0x09), b)
}

func TestParseErrors(t *testing.T) {
	assertParseError(t, "00000001FF\n", InvalidFraming, 1, "no colon error")
	assertParseError(t, ":0100000009F6\n:qw00000001FF\n", InvalidFraming, 2, "no ascii hex error")
	assertParseError(t, "\n:02000000FE\n", TruncatedRecord, 2, "no data length error")
	assertParseError(t, ":00000001FE\n", ChecksumMismatch, 1, "eof checksum error")
	assertParseError(t, ":0100000401FA\n", MalformedControlRecord, 1, "short extended address error")
	assertParseError(t, ":020000050102F6\n", MalformedControlRecord, 1, "short start address error")
	assertParseError(t, ":02000004FFFFFC\n:03FFFE00010203FA\n", AddressOverflow, 2, "address overflow error")
}

func TestParseErrorContext(t *testing.T) {
	m := NewMemory()
	err := m.ParseIntelHex(strings.NewReader(":0100000009F6\n  :00000001FE\n"))
	require.ErrorIs(t, err, ErrChecksumMismatch)
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, ":00000001FE", e.Line)
	assert.Contains(t, err.Error(), "at line 2")
	var cerr *ChecksumError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, byte(0xFE), cerr.Expected)
	assert.Equal(t, byte(0xFF), cerr.Computed)
}

func TestParseErrorLeavesMemory(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.ParseIntelHex(strings.NewReader(sampleHex)))
	err := m.ParseIntelHex(strings.NewReader(":0100000055AA\n:00000001FE\n"))
	require.Error(t, err)
	assert.Equal(t, 16, m.Len())
	b, _ := m.Get(0)
	assert.Equal(t, byte(0x11), b)
}

func TestParseReplacesMemory(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Write(0x1000, []byte{1}))
	m.SetStartAddress(0x1000)
	require.NoError(t, m.ParseIntelHex(strings.NewReader(sampleHex)))
	_, ok := m.Get(0x1000)
	assert.False(t, ok)
	assert.False(t, m.HasExplicitStartAddress())
}

func TestParseIntelHexLines(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.ParseIntelHexLines([]string{":020000040001F9", "", ":01001000AB44", ":00000001FF", "garbage"}))
	b, ok := m.Get(0x00010010)
	require.True(t, ok)
	assert.Equal(t, byte(0xAB), b)

	err := m.ParseIntelHexLines([]string{":0100000009F6", "oops"})
	require.ErrorIs(t, err, ErrInvalidFraming)
	assert.Equal(t, 1, m.Len(), "memory changed by a failed load")
}

func TestParseLineTooLong(t *testing.T) {
	m := NewMemory()
	err := m.ParseIntelHex(strings.NewReader(":" + strings.Repeat("0", 2000) + "\n"))
	require.Error(t, err)
}
