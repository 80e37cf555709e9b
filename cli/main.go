package main

import (
	"fmt"
	"os"

	"github.com/ZhengLongBing/uart16550/regio"
	"github.com/ZhengLongBing/uart16550/sim"
	"github.com/ZhengLongBing/uart16550/uarthal"
	"github.com/alecthomas/kong"
)

type Context struct {
	mem  regio.Mem
	regs uarthal.RegisterBlock
	hal  *uarthal.HAL
	sim  *sim.Device
}

func (c *Context) logFunc(level int, format string, param ...interface{}) {
	if level > CLI.LogLevel {
		return
	}
	str := fmt.Sprintf(format, param...)
	fmt.Printf("UART(%d): %s\n", level, str)
}

var CLI struct {
	DevMem   string `optional help:"Memory device the registers are mapped through." default:"/dev/mem"`
	Base     int64  `optional type:"hex" help:"Physical base address of the UART registers."`
	Sim      bool   `optional help:"Use a built-in simulated 16550 (loopback wired) instead of hardware."`
	LogLevel int    `optional help:"Higher values give more output."`

	Config ConfigCmd `cmd help:"Show the line configuration currently programmed."`
	Set    SetCmd    `cmd help:"Program divisor, parity, stop bits and word length."`
	Status StatusCmd `cmd help:"Decode the line status register."`

	Tx TxCmd `cmd help:"Transmit a hex string and wait for it to drain."`
	Rx RxCmd `cmd help:"Dump whatever the receiver currently holds."`

	Watch    WatchCmd    `cmd help:"Continuously dump the register file, marking changes."`
	Loopback LoopbackCmd `cmd help:"Send CRC framed frames and verify the echo (needs --sim or a looped line)."`
}

func main() {
	k, err := kong.New(&CLI,
		kong.NamedMapper("hex", intMapper{base: 16}))
	if err != nil {
		fmt.Println(err)
		return
	}

	ctx, err := k.Parse(os.Args[1:])
	if err != nil {
		fmt.Println(err)
		return
	}

	c := &Context{}
	if CLI.Sim {
		dev := sim.New(sim.Config{Loopback: true, TxDelay: 2})
		c.sim = dev
		c.mem = dev
	} else {
		if CLI.Base == 0 {
			fmt.Println("A register base address is required (--base), or use --sim")
			return
		}
		mem, err := regio.OpenDevMem(CLI.DevMem, uint64(CLI.Base), 8)
		if err != nil {
			fmt.Println("Failed to map registers:", err)
			return
		}
		defer mem.Close()
		c.mem = mem
	}

	c.regs = uarthal.NewRegisterBlock(c.mem)
	c.hal = uarthal.Adopt(c.regs)

	err = ctx.Run(c)
	ctx.FatalIfErrorf(err)
}
