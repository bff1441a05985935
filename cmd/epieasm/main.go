// Command epieasm assembles an EPIE source file into a container image,
// mirroring the teacher's cmd/asm (bassosimone/risc32) CLI shape.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/epie-vm/epie/pkg/assemble"
)

func main() {
	log.SetFlags(0)
	filename := flag.String("f", "", "assembly source file to assemble")
	output := flag.String("o", "", "output file (default: stdout)")
	flag.Parse()
	if *filename == "" {
		log.Fatal("usage: epieasm -f <assembly-source-file> [-o <output-file>]")
	}

	src, err := os.ReadFile(*filename)
	if err != nil {
		log.Fatal(err)
	}

	image, err := assemble.Assemble(string(src))
	if err != nil {
		log.Fatal(err)
	}

	if *output == "" {
		if _, err := os.Stdout.Write(image); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := os.WriteFile(*output, image, 0o644); err != nil {
		log.Fatal(err)
	}
}
