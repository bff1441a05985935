// Command epievm loads and runs an EPIE container image, mirroring the
// teacher's cmd/vm (bassosimone/risc32) fetch/decode/execute loop and its
// -v/-d flags.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/xyproto/env/v2"

	"github.com/epie-vm/epie/pkg/vm"
)

func main() {
	log.SetFlags(0)
	debug := flag.Bool("d", false, "single-step: pause for Enter before each instruction")
	verbose := flag.Bool("v", env.Bool("EPIE_TRACE"), "trace: print each decoded instruction before executing")
	filename := flag.String("f", "", "container image file to run")
	flag.Parse()
	if *filename == "" {
		log.Fatal("usage: epievm [-d] [-v] -f <container-image-file>")
	}

	image, err := os.ReadFile(*filename)
	if err != nil {
		log.Fatal(err)
	}

	machine := vm.New()
	machine.Load(image)

	for {
		pc := machine.PC
		if pc+4 > uint32(len(machine.Program)) {
			break
		}
		var word [4]byte
		copy(word[:], machine.Program[pc:pc+4])

		if *verbose {
			log.Printf("vm: pc=%d %s\n", pc, vm.Disassemble(word))
		}
		if *debug {
			log.Printf("vm: paused...")
			fmt.Scanln()
		}

		if err := machine.Step(); err != nil {
			if errors.Is(err, vm.ErrHalted) {
				break
			}
			log.Fatal(err)
		}
	}
}
