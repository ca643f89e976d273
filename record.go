package intelhex

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// RecordType is the type field of an IntelHex record.
type RecordType byte

// IntelHex record types understood by the loader
const (
	DataRecord                  RecordType = 0 // Record with data bytes
	EOFRecord                   RecordType = 1 // Record with end of file indicator
	ExtendedLinearAddressRecord RecordType = 4 // Record with extended linear address
	StartLinearAddressRecord    RecordType = 5 // Record with start linear address
)

const (
	recordMarker  = ':'
	maxDataLength = 255
	// count, address (2), type and checksum
	recordOverhead = 5
)

// Record is one decoded line of an IntelHex file.
type Record struct {
	Type    RecordType
	Address uint16
	Data    []byte
}

func calcSum(bytes []byte) byte {
	sum := 0
	for _, b := range bytes {
		sum += int(b)
	}
	sum %= 256
	sum = 256 - sum
	return byte(sum)
}

// DecodeRecord parses a single record line and verifies its checksum.
// Record types are not validated, unknown types are returned as they are.
// Characters following the checksum field are ignored.
func DecodeRecord(line string) (Record, error) {
	if len(line) == 0 || line[0] != recordMarker {
		return Record{}, newError(InvalidFraming, "no colon char at the beginning of the record")
	}
	text := line[1:]
	if len(text) < 2 {
		return Record{}, newError(TruncatedRecord, "missing byte count field")
	}
	count, err := hex.DecodeString(text[:2])
	if err != nil {
		return Record{}, newError(InvalidFraming, err.Error())
	}
	need := 2 * (int(count[0]) + recordOverhead)
	if len(text) < need {
		return Record{}, newError(TruncatedRecord,
			fmt.Sprintf("byte count %d needs %d hex chars, got %d", count[0], need, len(text)))
	}
	bytes, err := hex.DecodeString(text[:need])
	if err != nil {
		return Record{}, newError(InvalidFraming, err.Error())
	}

	last := len(bytes) - 1
	if sum := calcSum(bytes[:last]); sum != bytes[last] {
		cerr := &ChecksumError{Expected: bytes[last], Computed: sum}
		e := newError(ChecksumMismatch, cerr.Error())
		e.Err = cerr
		return Record{}, e
	}

	return Record{
		Type:    RecordType(bytes[3]),
		Address: binary.BigEndian.Uint16(bytes[1:3]),
		Data:    bytes[4:last],
	}, nil
}

// EncodeRecord returns the text line of a record, without line terminator.
func EncodeRecord(recordType RecordType, adr uint16, data []byte) (string, error) {
	if len(data) > maxDataLength {
		return "", ErrRecordTooLong
	}
	bytes := make([]byte, 0, len(data)+recordOverhead)
	bytes = append(bytes, byte(len(data)), byte(adr>>8), byte(adr), byte(recordType))
	bytes = append(bytes, data...)
	bytes = append(bytes, calcSum(bytes))

	var sb strings.Builder
	sb.Grow(1 + 2*len(bytes))
	sb.WriteByte(recordMarker)
	sb.WriteString(strings.ToUpper(hex.EncodeToString(bytes)))
	return sb.String(), nil
}

// String encodes the record. Data beyond 255 bytes is reported inline since
// it cannot be represented.
func (r Record) String() string {
	s, err := EncodeRecord(r.Type, r.Address, r.Data)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return s
}

func makeExtendedAddressLine(segment uint16) string {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], segment)
	s, _ := EncodeRecord(ExtendedLinearAddressRecord, 0, b[:])
	return s
}

func makeStartAddressLine(adr uint32) string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], adr)
	s, _ := EncodeRecord(StartLinearAddressRecord, 0, b[:])
	return s
}

func makeEOFLine() string {
	s, _ := EncodeRecord(EOFRecord, 0, nil)
	return s
}
