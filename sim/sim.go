// Package sim provides a behavioral 16550 register file. It stands in
// for real hardware in tests and in the CLI's --sim mode.
package sim

import "sync"

/* Standard 16550 register map, byte spaced */
const (
	regData         = 0 // RBR/THR, or DLL with the divisor latch open
	regIntEnable    = 1 // IER, or DLH with the divisor latch open
	regFIFOControl  = 2
	regLineControl  = 3
	regModemControl = 4
	regLineStatus   = 5
	regModemStatus  = 6
	regScratch      = 7
)

const (
	lcrDivisorLatch = 1 << 7

	lsrDataReady      = 1 << 0
	lsrTxHoldingEmpty = 1 << 5
	lsrTxEmpty        = 1 << 6
)

// Config selects the simulated device's behavior.
type Config struct {
	// Loopback feeds every transmitted byte straight back into the
	// receiver.
	Loopback bool

	// TxDelay is the number of line status polls a transmitted byte
	// takes to leave the shift register. 0 means the transmitter
	// drains instantly.
	TxDelay int
}

// Device is a simulated 16550. It implements regio.Mem.
//
// The device carries a mutex because it plays the role of hardware:
// the driver side and a test or CLI goroutine feeding the receiver may
// touch it concurrently.
type Device struct {
	mu     sync.Mutex
	config Config

	lcr byte
	ier byte
	fcr byte
	mcr byte
	scr byte
	dll byte
	dlh byte

	rx []byte
	tx []byte

	// txPending counts line status polls until the shift register
	// reports empty again.
	txPending int
}

func New(config Config) *Device {
	return &Device{config: config}
}

func (d *Device) Read8(off uint32) byte {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch off {
	case regData:
		if d.lcr&lcrDivisorLatch != 0 {
			return d.dll
		}
		if len(d.rx) == 0 {
			return 0
		}
		b := d.rx[0]
		d.rx = d.rx[1:]
		return b
	case regIntEnable:
		if d.lcr&lcrDivisorLatch != 0 {
			return d.dlh
		}
		return d.ier
	case regLineControl:
		return d.lcr
	case regModemControl:
		return d.mcr
	case regLineStatus:
		return d.lineStatus()
	case regScratch:
		return d.scr
	}
	return 0
}

func (d *Device) Write8(off uint32, v byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch off {
	case regData:
		if d.lcr&lcrDivisorLatch != 0 {
			d.dll = v
			return
		}
		d.tx = append(d.tx, v)
		if d.config.Loopback {
			d.rx = append(d.rx, v)
		}
		d.txPending = d.config.TxDelay
	case regIntEnable:
		if d.lcr&lcrDivisorLatch != 0 {
			d.dlh = v
			return
		}
		d.ier = v
	case regFIFOControl:
		d.fcr = v
	case regLineControl:
		d.lcr = v
	case regModemControl:
		d.mcr = v
	case regScratch:
		d.scr = v
	}
}

// lineStatus computes LSR. The holding register always has room; the
// shift register drains one poll tick per read until txPending hits 0.
func (d *Device) lineStatus() byte {
	s := byte(lsrTxHoldingEmpty)
	if len(d.rx) > 0 {
		s |= lsrDataReady
	}
	if d.txPending > 0 {
		d.txPending--
	} else {
		s |= lsrTxEmpty
	}
	return s
}

// PushRX queues bytes for the driver to receive.
func (d *Device) PushRX(b []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rx = append(d.rx, b...)
}

// TxBytes returns a copy of everything the driver has transmitted so
// far.
func (d *Device) TxBytes() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]byte(nil), d.tx...)
}

// LoadDivisor presets the divisor latches, modelling firmware that
// programmed the rate before handing the device over.
func (d *Device) LoadDivisor(v uint16) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dll = byte(v)
	d.dlh = byte(v >> 8)
}

// Divisor reports the latched divisor value.
func (d *Device) Divisor() uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return uint16(d.dlh)<<8 | uint16(d.dll)
}
