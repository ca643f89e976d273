package intelhex

import (
	"fmt"
	"sort"
)

// FillByte is returned for every address that was never written.
const FillByte byte = 0xFF

// Structure with binary data segment fields
type DataSegment struct {
	Address uint32 // Starting address of data segment
	Data    []byte // Data segment bytes
}

// Memory is a sparse 32-bit address space populated from IntelHex records.
// It is not safe for concurrent use.
type Memory struct {
	cells         map[uint32]byte // Populated addresses
	startAddress  uint32          // Entry point
	startFlag     bool            // Entry point known
	startExplicit bool            // Entry point came from a start linear address record
}

// Constructor of Memory structure
func NewMemory() *Memory {
	m := new(Memory)
	m.Clear()
	return m
}

// Clear removes all data and the entry point.
func (m *Memory) Clear() {
	m.cells = make(map[uint32]byte)
	m.startAddress = 0
	m.startFlag = false
	m.startExplicit = false
}

// GetStartAddress returns the entry point. It is the start linear address
// when one was set, otherwise the first data address seen by the last load.
func (m *Memory) GetStartAddress() (adr uint32, ok bool) {
	if m.startFlag {
		return m.startAddress, true
	}
	return 0, false
}

// SetStartAddress sets an explicit entry point which is kept on dump.
func (m *Memory) SetStartAddress(adr uint32) {
	m.startAddress = adr
	m.startFlag = true
	m.startExplicit = true
}

// HasExplicitStartAddress reports whether the entry point was set
// explicitly rather than inferred from the data.
func (m *Memory) HasExplicitStartAddress() bool {
	return m.startExplicit
}

func (m *Memory) inferStartAddress(adr uint32) {
	m.startAddress = adr
	m.startFlag = true
	m.startExplicit = false
}

// Len returns the number of populated addresses.
func (m *Memory) Len() int {
	return len(m.cells)
}

// Get returns the byte at adr and whether it was ever written.
func (m *Memory) Get(adr uint32) (byte, bool) {
	b, ok := m.cells[adr]
	return b, ok
}

// Read returns length bytes starting at adr. Holes read as FillByte and
// addresses past the end of the address space wrap around. The result is
// allocated in one piece, so callers bound length.
func (m *Memory) Read(adr uint32, length uint32) []byte {
	return m.ToBinary(adr, length, FillByte)
}

// Write stores data at consecutive addresses starting at adr, overwriting
// previous values. Nothing is written if the range does not fit below
// 0xFFFFFFFF.
func (m *Memory) Write(adr uint32, data []byte) error {
	if err := checkRange(adr, len(data)); err != nil {
		return err
	}
	m.write(adr, data)
	return nil
}

func (m *Memory) write(adr uint32, data []byte) {
	for i, b := range data {
		m.cells[adr+uint32(i)] = b
	}
}

func checkRange(adr uint32, size int) error {
	if size > 0 && uint64(adr)+uint64(size)-1 > 0xFFFFFFFF {
		return newError(AddressOverflow, fmt.Sprintf("%d bytes at 0x%08X pass the end of the address space", size, adr))
	}
	return nil
}

// Bounds returns the lowest and highest populated address.
func (m *Memory) Bounds() (lo, hi uint32, ok bool) {
	for adr := range m.cells {
		if !ok {
			lo, hi, ok = adr, adr, true
			continue
		}
		if adr < lo {
			lo = adr
		}
		if adr > hi {
			hi = adr
		}
	}
	return lo, hi, ok
}

// SpanLength returns the distance from the lowest to the highest populated
// address inclusive, or 0 for an empty memory.
func (m *Memory) SpanLength() uint64 {
	lo, hi, ok := m.Bounds()
	if !ok {
		return 0
	}
	return uint64(hi) - uint64(lo) + 1
}

func (m *Memory) sortedAddresses() []uint32 {
	adrs := make([]uint32, 0, len(m.cells))
	for adr := range m.cells {
		adrs = append(adrs, adr)
	}
	sort.Slice(adrs, func(i, j int) bool { return adrs[i] < adrs[j] })
	return adrs
}

// GetDataSegments groups the populated addresses into contiguous segments
// sorted by address.
func (m *Memory) GetDataSegments() []DataSegment {
	segs := []DataSegment{}
	for _, adr := range m.sortedAddresses() {
		n := len(segs)
		if n > 0 && segs[n-1].Address+uint32(len(segs[n-1].Data)) == adr {
			segs[n-1].Data = append(segs[n-1].Data, m.cells[adr])
			continue
		}
		segs = append(segs, DataSegment{Address: adr, Data: []byte{m.cells[adr]}})
	}
	return segs
}

// ToBinary returns size bytes starting at address with holes set to padding.
// The result is allocated in one piece, so callers bound size.
func (m *Memory) ToBinary(address uint32, size uint32, padding byte) []byte {
	data := make([]byte, size)
	for i := range data {
		b, ok := m.cells[address+uint32(i)]
		if !ok {
			b = padding
		}
		data[i] = b
	}
	return data
}
