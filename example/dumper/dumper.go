package main

import (
	"os"

	intelhex "github.com/MineSlash/intelhex-editor"
)

func main() {
	file, err := os.Create("output.hex")
	if err != nil {
		panic(err)
	}
	defer file.Close()

	mem := intelhex.NewMemory()
	mem.SetStartAddress(0x80008000)
	if err := mem.Write(0x10008000, []byte{0x01, 0x02, 0x03, 0x04}); err != nil {
		panic(err)
	}
	if err := mem.Write(0x10010000, make([]byte, 256)); err != nil {
		panic(err)
	}

	if err := mem.DumpIntelHex(file); err != nil {
		panic(err)
	}
}
