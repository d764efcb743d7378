package main

import (
	"cwkeyer.dev/config"
	"cwkeyer.dev/hostproto"
)

// callbacks binds the host protocol's capability set to this keyer's
// config store, log streams, and serial transport.
func (k *keyer) callbacks() hostproto.Callbacks {
	return hostproto.Callbacks{
		Emit: func(b byte) {
			if k.transport != nil {
				k.transport.WriteByte(b)
			}
		},
		Text: func(c byte) {
			// Host-originated text keying is out of this composition
			// root's scope; a fuller build would route it to a
			// key-immediate sample via stream.PushRaw.
			_ = c
		},
		ClearBuffer: func() {
			k.decoder.Drain()
		},
		Speed: func(wpm byte) {
			config.SetByName(k.cfg, "wpm", int64(wpm))
		},
		Weight: func(percent byte) {
			config.SetByName(k.cfg, "weight", int64(percent))
		},
		Sidetone: func(code byte) {
			k.cfg.SetSidetoneHz(uint32(code) * 50)
		},
		Mode: func(value byte) {
			config.SetByName(k.cfg, "mode", int64(value))
		},
		PTTTiming: func(leadIn, tail byte) {
			k.cfg.SetPTTTiming(uint32(leadIn), uint32(tail))
		},
		LoadDefaults: func() {
			k.cfg.Activate(k.cfg.ActiveIndex())
		},
	}
}
