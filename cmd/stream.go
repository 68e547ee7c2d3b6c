// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltlab

package cmd

import (
	"log"

	"github.com/voltlab/psuwatch/pkg/cmpsu"
)

// pumpFrames reads the connection and invokes handle for each complete
// report frame. It returns nil when the connection closes cleanly.
func pumpFrames(conn Connection, handle func(frame []byte)) error {
	framer := cmpsu.NewFramer()
	buf := make([]byte, 128)

	for {
		n, err := conn.Read(buf)
		if err != nil {
			// For WebSocket connections, a read error usually means
			// the connection is permanently closed - exit gracefully
			if err == ErrConnectionClosed {
				log.Printf("Connection closed")
				return nil
			}
			log.Printf("Read error: %v", err)
			continue
		}

		for i := 0; i < n; i++ {
			if frame := framer.Push(buf[i]); frame != nil {
				handle(frame)
			}
		}
	}
}
