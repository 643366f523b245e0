//go:build ignore

// gen writes icons_gen.go from the drawings in internal/art.
package main

import (
	"bytes"
	"fmt"
	"go/format"
	"log"
	"os"

	"periph.io/x/devices/v3/ssd1683/icons/internal/art"
)

func main() {
	var b bytes.Buffer
	b.WriteString("// Code generated by gen.go; DO NOT EDIT.\n\npackage icons\n\nvar bitmaps = [numKinds][]byte{\n")
	for k, bmp := range art.Render() {
		fmt.Fprintf(&b, "\t%s: {\n", art.Names[k])
		for i := 0; i < len(bmp); i += art.Size / 8 {
			b.WriteString("\t\t")
			for j, v := range bmp[i : i+art.Size/8] {
				if j > 0 {
					b.WriteByte(' ')
				}
				fmt.Fprintf(&b, "0x%02x,", v)
			}
			b.WriteByte('\n')
		}
		b.WriteString("\t},\n")
	}
	b.WriteString("}\n")

	src, err := format.Source(b.Bytes())
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile("icons_gen.go", src, 0o644); err != nil {
		log.Fatal(err)
	}
}
