//go:build !(linux && arm)

package main

import (
	"log"

	"cwkeyer.dev/internal/platform"
)

// openPlatform on non-Raspberry-Pi builds uses the in-memory dummy
// GPIO and a loopback transport, so the tick loop and host reader run
// the same as on hardware, just with nothing wired to real pins.
func openPlatform(serialDev string) (platform.GPIO, platform.Transport, error) {
	log.Println("keyerd: no GPIO backend for this platform, using dummy loopback")
	return platform.NewGPIO(), platform.NewLoopbackTransport(), nil
}
