// Command epie is an interactive REPL for the EPIE toolchain: each line
// is assembled, loaded, and run against one persistent VM instance, so a
// session can build up register state across lines. This is supplemental
// CLI plumbing (spec.md §1 names the REPL's history and pretty-printer as
// out-of-scope collaborators), grounded on the teacher's cmd/interp loop.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xyproto/env/v2"

	"github.com/epie-vm/epie/pkg/assemble"
	"github.com/epie-vm/epie/pkg/container"
	"github.com/epie-vm/epie/pkg/vm"
)

func main() {
	log.SetFlags(0)
	fmt.Println("epie — EPIE toolchain REPL. Type .quit to exit, .registers/.program/.history/.hexdump for state.")

	machine := vm.New()
	if defaultImagePath != "" {
		if image, err := os.ReadFile(defaultImagePath); err == nil {
			machine.Load(image)
			fmt.Printf("loaded %s (%d bytes)\n", defaultImagePath, len(image))
		} else {
			log.Printf("could not load EPIE_IMAGE_PATH %s: %v", defaultImagePath, err)
		}
	}

	var history []string
	rd := newLineReader(&history)
	defer rd.Close()

	for {
		fmt.Print("epie> ")
		line, ok := rd.ReadLine()
		if !ok {
			fmt.Println()
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		history = append(history, line)

		if strings.HasPrefix(line, ".") {
			if !runMeta(machine, history, line) {
				return
			}
			continue
		}

		if err := assembleAndRun(machine, line); err != nil {
			fmt.Println("error:", err)
		}
	}
}

// runMeta handles the dot-prefixed meta-commands. It returns false when the
// REPL should exit.
func runMeta(machine *vm.VM, history []string, line string) bool {
	switch line {
	case ".quit":
		return false
	case ".registers":
		for i, v := range machine.Registers {
			fmt.Printf("$%-2d = %d\n", i, v)
		}
	case ".program":
		fmt.Printf("pc=%d code-start=%d program-bytes=%d\n", machine.PC, machine.CodeStart, len(machine.Program))
	case ".history":
		for i, h := range history {
			fmt.Printf("%4d  %s\n", i+1, h)
		}
	case ".hexdump":
		hexdump(machine.Program)
	default:
		fmt.Println("unknown meta-command:", line)
	}
	return true
}

// assembleAndRun assembles one line of source, appends its code onto the
// VM's existing program image (rather than resetting it via Load), and
// runs from the new code's start — preserving register state across
// lines, per this REPL's "build up state" design.
func assembleAndRun(machine *vm.VM, src string) error {
	image, err := assemble.Assemble(src)
	if err != nil {
		return err
	}

	if len(machine.Program) == 0 {
		machine.Load(image)
		return machine.Run()
	}

	header := container.DecodeHeader(image)
	code := image[header.CodeOffset : header.CodeOffset+header.CodeLength]
	start := uint32(len(machine.Program))
	machine.Program = append(machine.Program, code...)
	machine.PC = start
	return machine.Run()
}

// defaultImagePath is the REPL's optional startup image, loaded before the
// first prompt when set. It comes only from the EPIE_IMAGE_PATH env var;
// the REPL has no command-line flag for it.
var defaultImagePath = env.Str("EPIE_IMAGE_PATH", "")
