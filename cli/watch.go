package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/inancgumus/screen"
)

type WatchCmd struct {
	Loop int `optional help:"1=Mark changes since start, 2=Mark changes since previous iteration." default:"2"`
}

// Run dumps the 8 byte register file in a refresh loop. Reading the
// file is intrusive: it consumes received data and clears latched
// error flags, so this is a debug aid, not a passive probe.
func (l *WatchCmd) Run(c *Context) error {
	if l.Loop < 1 || l.Loop > 2 {
		return errors.New("Loop flag out of range")
	}

	var oldBuf []byte
	var mark []bool
	for {
		startTime := time.Now()
		if l.Loop == 2 || mark == nil {
			mark = make([]bool, 8)
		}

		buf := make([]byte, 8)
		for i := range buf {
			buf[i] = c.mem.Read8(uint32(i))
		}

		screen.Clear()
		screen.MoveTopLeft()
		if oldBuf != nil {
			for i, m := range oldBuf {
				if m != buf[i] {
					mark[i] = true
				}
			}
		}
		fmt.Println(hexdump(0, buf, mark))

		lcr := c.hal.Registers().LineControl()
		fmt.Printf("LCR: word=%s stop=%s latch=%v\n",
			lcr.WordLength(), lcr.StopBits(), lcr.DivisorLatch())

		oldBuf = buf

		d := time.Since(startTime)
		td := 200 * time.Millisecond
		if d < td {
			time.Sleep(td - d)
		}
	}
}
