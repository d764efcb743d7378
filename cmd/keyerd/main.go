// Command keyerd is the composition root for the CW keyer core: it
// wires the sample stream, fault register, iambic processor, Morse
// classifier/decoder, host protocol parser, atomic config, and RT log
// ring into a running process, on real GPIO hardware or the in-memory
// dummy platform.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

func main() {
	serialDev := flag.String("serial", "", "host serial device (empty autodetects)")
	tickHz := flag.Int("tick-hz", 2000, "RT tick rate in Hz")
	flag.Parse()

	if err := run(*serialDev, *tickHz); err != nil {
		fmt.Fprintf(os.Stderr, "run: %v\n", err)
		os.Exit(2)
	}
}

func run(serialDev string, tickHz int) error {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
	log.Println("keyerd: starting")

	k, err := newKeyer(serialDev, tickHz)
	if err != nil {
		return fmt.Errorf("keyerd: %w", err)
	}
	defer k.Close()

	go k.runDrain()
	go k.runHostReader()
	k.runTickLoop()
	return nil
}
