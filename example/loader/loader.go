package main

import (
	"fmt"
	"os"

	intelhex "github.com/MineSlash/intelhex-editor"
)

func main() {
	file, err := os.Open("example.hex")
	if err != nil {
		panic(err)
	}
	defer file.Close()

	mem, err := intelhex.Load(file)
	if err != nil {
		panic(err)
	}
	for _, segment := range mem.GetDataSegments() {
		fmt.Printf("0x%08X %d\n", segment.Address, len(segment.Data))
	}
	if adr, ok := mem.GetStartAddress(); ok {
		fmt.Printf("start 0x%08X\n", adr)
	}
	fmt.Printf("% X\n", mem.Read(0xFFF0, 32))
}
