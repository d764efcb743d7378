//go:build linux && arm

package main

import (
	"cwkeyer.dev/internal/platform"
)

func openPlatform(serialDev string) (platform.GPIO, platform.Transport, error) {
	gpio, err := platform.OpenGPIO()
	if err != nil {
		return nil, nil, err
	}
	transport, err := platform.OpenSerial(serialDev)
	if err != nil {
		return nil, nil, err
	}
	return gpio, transport, nil
}
