//go:build !tinygo

package platform

import (
	"errors"
	"runtime"

	"github.com/tarm/serial"
)

// SerialTransport carries the host protocol over a USB-serial link.
type SerialTransport struct {
	port *serial.Port
	buf  [1]byte
}

// OpenSerial opens dev (or a platform default if dev is empty) at the
// host protocol's fixed baud rate.
func OpenSerial(dev string) (*SerialTransport, error) {
	const baudRate = 115200

	var devices []string
	if dev != "" {
		devices = append(devices, dev)
	} else {
		switch runtime.GOOS {
		case "windows":
			devices = append(devices, "COM3")
		case "linux":
			devices = append(devices, "/dev/ttyACM0", "/dev/ttyUSB0")
		}
	}
	if len(devices) == 0 {
		return nil, errors.New("platform: no serial device specified")
	}
	var firstErr error
	for _, d := range devices {
		c := &serial.Config{Name: d, Baud: baudRate}
		p, err := serial.OpenPort(c)
		if err == nil {
			return &SerialTransport{port: p}, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

func (s *SerialTransport) ReadByte() (byte, error) {
	n, err := s.port.Read(s.buf[:])
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, errors.New("platform: short read")
	}
	return s.buf[0], nil
}

func (s *SerialTransport) WriteByte(b byte) error {
	s.buf[0] = b
	_, err := s.port.Write(s.buf[:])
	return err
}

func (s *SerialTransport) Close() error {
	return s.port.Close()
}
