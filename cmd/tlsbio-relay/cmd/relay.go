/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package cmd

import (
	"io"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nabbar/tlsbio/membuf"
	"github.com/nabbar/tlsbio/tlsbio"
	"github.com/nabbar/tlsbio/tlsbio/relayconfig"
)

// runRelay listens on cfg.ListenAddress and, for every accepted
// connection, dials cfg.DialAddress and wires a tlsbio.Pipe onto the
// accepted side: bytes read from the client feed Pipe.ReceiveFromNetwork,
// and OutboundCiphertext is polled and forwarded upstream whenever a
// driving TLS engine has written to it. With no TLS engine attached (this
// binary never creates a TLS session), the pipe mostly just accumulates
// inbound bytes, whose total the inbound pump logs when it ends - it exercises
// the shim's host-facing surface end to end without terminating TLS
// itself, which is out of scope here.
func runRelay(cfg *relayconfig.Config, log *logrus.Entry) error {
	ln, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		return err
	}
	defer ln.Close()

	log.WithField("listen", cfg.ListenAddress).WithField("dial", cfg.DialAddress).Info("tlsbio-relay: listening")

	alloc := membuf.NewPooledAllocator()

	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go handleConn(conn, cfg, alloc, log)
	}
}

func handleConn(conn net.Conn, cfg *relayconfig.Config, alloc membuf.Allocator, log *logrus.Entry) {
	defer conn.Close()

	entry := log.WithField("remote", conn.RemoteAddr().String())

	upstream, err := net.Dial("tcp", cfg.DialAddress)
	if err != nil {
		entry.WithError(err).Error("tlsbio-relay: dial upstream failed")
		return
	}
	defer upstream.Close()

	pipe, errc := tlsbio.New(alloc, cfg.MaxPreservedCapacity, entry)
	if errc != nil {
		entry.WithError(errc).Error("tlsbio-relay: failed to construct pipe")
		return
	}
	defer pipe.Close()

	bio, errc := pipe.RetainedBIO()
	if errc != nil {
		entry.WithError(errc).Error("tlsbio-relay: failed to retain vtable handle")
		return
	}
	defer bio.Release()

	done := make(chan struct{})
	go pumpInbound(conn, pipe, entry, done)
	go pumpOutbound(upstream, pipe, entry, done)

	<-done
	<-done
}

// pumpInbound feeds everything read from conn into the pipe's inbound
// buffer, as if it were ciphertext just received from the network.
func pumpInbound(conn net.Conn, pipe *tlsbio.Pipe, log *logrus.Entry, done chan<- struct{}) {
	defer func() { done <- struct{}{} }()

	buf := make([]byte, 32*1024)
	var total int

	for {
		n, err := conn.Read(buf)
		if n > 0 {
			pipe.ReceiveFromNetwork(buf[:n])
			total += n
		}
		if err != nil {
			if err != io.EOF {
				log.WithError(err).Debug("tlsbio-relay: inbound read ended")
			}
			log.WithField("bytes", total).Info("tlsbio-relay: inbound pump finished")
			return
		}
	}
}

// pumpOutbound periodically drains the pipe's outbound buffer and
// forwards whatever was accumulated to upstream, logging occupancy.
func pumpOutbound(upstream net.Conn, pipe *tlsbio.Pipe, log *logrus.Entry, done chan<- struct{}) {
	defer func() { done <- struct{}{} }()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	var total int
	for range ticker.C {
		out, ok := pipe.OutboundCiphertext()
		if !ok {
			continue
		}

		n := out.ReadableBytes()
		if _, err := upstream.Write(out.GetBytes(out.ReaderIndex(), n)); err != nil {
			log.WithError(err).Error("tlsbio-relay: upstream write failed")
			_ = out.Close()
			return
		}
		_ = out.Close()

		total += n
		log.WithField("bytes", total).WithField("capacity", out.Capacity()).Debug("tlsbio-relay: outbound flush")
	}
}
