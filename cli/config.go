package main

import (
	"errors"
	"fmt"

	"github.com/ZhengLongBing/uart16550/uarthal"
	"github.com/fatih/color"
)

type ConfigCmd struct {
	Clock int `optional help:"UART input clock in Hz, used to derive the baud rate." default:"1843200"`
}

func (l *ConfigCmd) Run(c *Context) error {
	cfg := c.hal.Config()

	fmt.Printf("Divisor:     %d\n", cfg.Divisor)
	if cfg.Divisor != 0 {
		fmt.Printf("Baud rate:   %d\n", l.Clock/16/int(cfg.Divisor))
	}
	fmt.Printf("Parity:      %s\n", cfg.ParityMode)
	fmt.Printf("Stop bits:   %s\n", cfg.StopBits)
	fmt.Printf("Word length: %s\n", cfg.WordLength)
	return nil
}

type SetCmd struct {
	Divisor    int    `optional help:"Divisor to program. 0 keeps the current one."`
	Baud       int    `optional help:"Compute the divisor from this baud rate instead."`
	Clock      int    `optional help:"UART input clock in Hz." default:"1843200"`
	Parity     string `optional help:"Parity mode." enum:"none,odd,even,high,low" default:"none"`
	StopBits   int    `optional name:"stop-bits" help:"1, or 2 (1.5 with a 5 bit word)." default:"1"`
	WordLength int    `optional name:"word-length" help:"Data bits per frame, 5 to 8." default:"8"`
}

func (s *SetCmd) Run(c *Context) error {
	config := uarthal.DefaultConfig()

	switch {
	case s.Divisor != 0 && s.Baud != 0:
		return errors.New("give either a divisor or a baud rate, not both")
	case s.Divisor != 0:
		if s.Divisor < 0 || s.Divisor > 0xFFFF {
			return errors.New("divisor out of range")
		}
		config.Divisor = uint16(s.Divisor)
	case s.Baud != 0:
		d := s.Clock / 16 / s.Baud
		if d < 1 || d > 0xFFFF {
			return errors.New("baud rate not reachable with this clock")
		}
		config.Divisor = uint16(d)
	}

	switch s.Parity {
	case "odd":
		config.ParityMode = uarthal.ParityOdd
	case "even":
		config.ParityMode = uarthal.ParityEven
	case "high":
		config.ParityMode = uarthal.ParityHigh
	case "low":
		config.ParityMode = uarthal.ParityLow
	default:
		config.ParityMode = uarthal.ParityNone
	}

	switch s.StopBits {
	case 1:
		config.StopBits = uarthal.StopBits1
	case 2:
		config.StopBits = uarthal.StopBits2
	default:
		return errors.New("stop bits must be 1 or 2")
	}

	switch s.WordLength {
	case 5:
		config.WordLength = uarthal.WordLength5
	case 6:
		config.WordLength = uarthal.WordLength6
	case 7:
		config.WordLength = uarthal.WordLength7
	case 8:
		config.WordLength = uarthal.WordLength8
	default:
		return errors.New("word length must be 5 to 8")
	}

	config.LogFunc = c.logFunc
	c.hal = uarthal.New(c.regs, config)
	return nil
}

type StatusCmd struct{}

func (l *StatusCmd) Run(c *Context) error {
	s := c.hal.Registers().LineStatus()
	red := color.New(color.FgRed)

	show := func(name string, set bool, fault bool) {
		v := "clear"
		if set {
			v = "SET"
		}
		if set && fault {
			fmt.Printf("%-22s %s\n", name, red.Sprint(v))
			return
		}
		fmt.Printf("%-22s %s\n", name, v)
	}

	show("Data ready", s.DataReady(), false)
	show("Overrun error", s.OverrunError(), true)
	show("Parity error", s.ParityError(), true)
	show("Framing error", s.FramingError(), true)
	show("Break interrupt", s.BreakInterrupt(), true)
	show("TX holding empty", s.TxHoldingEmpty(), false)
	show("TX empty", s.TxEmpty(), false)
	show("FIFO error", s.FIFOError(), true)
	return nil
}
