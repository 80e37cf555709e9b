package main

import (
	"encoding/hex"
	"errors"
	"fmt"
)

type TxCmd struct {
	Data string `arg name:"data" help:"Hex string to transmit."`
}

func (l *TxCmd) Run(c *Context) error {
	buf, err := hex.DecodeString(l.Data)
	if err != nil {
		return err
	}

	n, _ := c.hal.Write(buf)
	c.hal.Flush()

	fmt.Printf("Wrote %d of %d bytes.\n", n, len(buf))
	if n < len(buf) {
		/* The driver is best-effort and does not retry; that is up to the caller */
		return errors.New("transmitter did not accept all data, retry the remainder")
	}
	return nil
}

type RxCmd struct {
	Amount int `arg name:"amount" optional default:"16" help:"Maximum number of bytes to read."`
}

func (l *RxCmd) Run(c *Context) error {
	if l.Amount <= 0 {
		return errors.New("amount must be positive")
	}

	buf := make([]byte, l.Amount)
	n, _ := c.hal.Read(buf)
	if n == 0 {
		fmt.Println("No data available.")
		return nil
	}

	fmt.Print(hexdump(0, buf[:n], nil))
	return nil
}
