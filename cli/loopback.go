package main

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/ZhengLongBing/uart16550/uarthal"
	"github.com/sigurn/crc16"
)

type LoopbackCmd struct {
	Data    string        `optional help:"Frame payload as hex string." default:"0123456789abcdef"`
	Count   int           `optional help:"Number of frames to send." default:"4"`
	Timeout time.Duration `optional help:"Per frame deadline." default:"2s"`
}

var loopbackCrcTab = crc16.MakeTable(crc16.CRC16_XMODEM)

/* Frame: 0x55, sequence, big endian payload length, payload, CRC16 */
func loopbackEncodeFrame(seq byte, payload []byte) []byte {
	frame := []byte{0x55, seq, 0, 0}
	binary.BigEndian.PutUint16(frame[2:], uint16(len(payload)))
	frame = append(frame, payload...)

	var crc [2]byte
	binary.BigEndian.PutUint16(crc[:], crc16.Checksum(frame, loopbackCrcTab))
	return append(frame, crc[:]...)
}

func loopbackVerifyFrame(frame []byte) error {
	if len(frame) < 6 || frame[0] != 0x55 {
		return errors.New("malformed frame")
	}
	body := frame[:len(frame)-2]
	want := binary.BigEndian.Uint16(frame[len(frame)-2:])
	if crc16.Checksum(body, loopbackCrcTab) != want {
		return errors.New("frame checksum mismatch")
	}
	return nil
}

func (l *LoopbackCmd) Run(c *Context) error {
	if c.sim == nil {
		fmt.Println("Not using the simulator: TX must be physically wired to RX.")
	}

	payload, err := hex.DecodeString(l.Data)
	if err != nil {
		return err
	}

	for i := 0; i < l.Count; i++ {
		frame := loopbackEncodeFrame(byte(i), payload)
		deadline := time.Now().Add(l.Timeout)

		if err := sendAll(c.hal, frame, deadline); err != nil {
			return err
		}

		echo := make([]byte, len(frame))
		if err := recvAll(c.hal, echo, deadline); err != nil {
			return err
		}

		if err := loopbackVerifyFrame(echo); err != nil {
			return err
		}
		if !bytes.Equal(echo, frame) {
			return errors.New("echo does not match transmitted frame")
		}
	}

	fmt.Printf("%d frames verified.\n", l.Count)
	return nil
}

// sendAll loops over the best-effort Write until buf is gone, then
// waits for the line to drain.
func sendAll(h *uarthal.HAL, buf []byte, deadline time.Time) error {
	for len(buf) > 0 {
		n, _ := h.Write(buf)
		buf = buf[n:]
		if n == 0 {
			if time.Now().After(deadline) {
				return errors.New("transmitter stalled")
			}
			time.Sleep(time.Millisecond)
		}
	}
	h.Flush()
	return nil
}

func recvAll(h *uarthal.HAL, buf []byte, deadline time.Time) error {
	for len(buf) > 0 {
		n, _ := h.Read(buf)
		buf = buf[n:]
		if n == 0 {
			if time.Now().After(deadline) {
				return errors.New("timed out waiting for echo")
			}
			time.Sleep(time.Millisecond)
		}
	}
	return nil
}
