package uarthal

import "github.com/ZhengLongBing/uart16550/regio"

// Layout gives the byte offsets of the registers this driver touches,
// relative to the peripheral base. Data and IntEnable are the
// multiplexed pair: while the divisor latch is open they turn into the
// low and high divisor bytes.
type Layout struct {
	Data        uint32
	IntEnable   uint32
	LineControl uint32
	LineStatus  uint32
}

// DefaultLayout matches a standard 16550 with byte spaced registers.
var DefaultLayout = Layout{
	Data:        0,
	IntEnable:   1,
	LineControl: 3,
	LineStatus:  5,
}

// RegisterBlock binds a register space to a layout. One RegisterBlock
// corresponds to one physical UART and must be handed to exactly one
// HAL; a second writer on the same block corrupts in-flight data.
type RegisterBlock struct {
	mem    regio.Mem
	layout Layout
}

func NewRegisterBlock(mem regio.Mem) RegisterBlock {
	return NewRegisterBlockLayout(mem, DefaultLayout)
}

func NewRegisterBlockLayout(mem regio.Mem, layout Layout) RegisterBlock {
	return RegisterBlock{mem: mem, layout: layout}
}

func (r RegisterBlock) LineControl() LineControl {
	return LineControl(r.mem.Read8(r.layout.LineControl))
}

func (r RegisterBlock) SetLineControl(l LineControl) {
	r.mem.Write8(r.layout.LineControl, byte(l))
}

func (r RegisterBlock) LineStatus() LineStatus {
	return LineStatus(r.mem.Read8(r.layout.LineStatus))
}

// ReadData consumes the next received byte. Only valid while the
// divisor latch is closed and LineStatus reports DataReady.
func (r RegisterBlock) ReadData() byte {
	return r.mem.Read8(r.layout.Data)
}

// WriteData places a byte in the transmit holding register. Only valid
// while the divisor latch is closed and LineStatus reports
// TxHoldingEmpty.
func (r RegisterBlock) WriteData(b byte) {
	r.mem.Write8(r.layout.Data, b)
}

// WordLength is the number of data bits per frame, encoded the way the
// line control register holds it.
type WordLength byte

const (
	WordLength5 WordLength = iota
	WordLength6
	WordLength7
	WordLength8
)

// Bits returns the number of data bits selected.
func (w WordLength) Bits() int { return int(w&0x03) + 5 }

func (w WordLength) String() string {
	switch w {
	case WordLength5:
		return "5"
	case WordLength6:
		return "6"
	case WordLength7:
		return "7"
	default:
		return "8"
	}
}

// StopBits selects the stop bit count. StopBits2 means 1.5 stop bits
// with a 5 bit word and 2 stop bits otherwise, per 16550 semantics.
type StopBits byte

const (
	StopBits1 StopBits = iota
	StopBits2
)

func (s StopBits) String() string {
	if s == StopBits2 {
		return "2"
	}
	return "1"
}

// LineControl is the decoded line control register.
type LineControl byte

const (
	lcrWordLengthMask LineControl = 0x03
	lcrStopBits       LineControl = 1 << 2
	lcrParityEnable   LineControl = 1 << 3
	lcrEvenParity     LineControl = 1 << 4
	lcrStickParity    LineControl = 1 << 5
	lcrBreakControl   LineControl = 1 << 6
	lcrDivisorLatch   LineControl = 1 << 7
)

func (l LineControl) flag(bit LineControl) bool { return l&bit != 0 }

func (l LineControl) setFlag(bit LineControl, on bool) LineControl {
	if on {
		return l | bit
	}
	return l &^ bit
}

func (l LineControl) WordLength() WordLength {
	return WordLength(l & lcrWordLengthMask)
}

func (l LineControl) SetWordLength(w WordLength) LineControl {
	return l&^lcrWordLengthMask | LineControl(w)&lcrWordLengthMask
}

func (l LineControl) StopBits() StopBits {
	if l.flag(lcrStopBits) {
		return StopBits2
	}
	return StopBits1
}

func (l LineControl) SetStopBits(s StopBits) LineControl {
	return l.setFlag(lcrStopBits, s == StopBits2)
}

func (l LineControl) ParityEnabled() bool { return l.flag(lcrParityEnable) }

func (l LineControl) SetParityEnabled(on bool) LineControl {
	return l.setFlag(lcrParityEnable, on)
}

// EvenParity reports the parity select bit: set means even parity,
// clear means odd. Meaningful only while parity is enabled.
func (l LineControl) EvenParity() bool { return l.flag(lcrEvenParity) }

func (l LineControl) SetEvenParity(on bool) LineControl {
	return l.setFlag(lcrEvenParity, on)
}

// StickParity forces the parity bit to a constant level instead of
// computing it: combined with the parity select bit it yields mark or
// space parity.
func (l LineControl) StickParity() bool { return l.flag(lcrStickParity) }

func (l LineControl) SetStickParity(on bool) LineControl {
	return l.setFlag(lcrStickParity, on)
}

func (l LineControl) Break() bool { return l.flag(lcrBreakControl) }

func (l LineControl) SetBreak(on bool) LineControl {
	return l.setFlag(lcrBreakControl, on)
}

// DivisorLatch reports whether the multiplexed registers currently
// carry the divisor bytes instead of the data path.
func (l LineControl) DivisorLatch() bool { return l.flag(lcrDivisorLatch) }

func (l LineControl) SetDivisorLatch(on bool) LineControl {
	return l.setFlag(lcrDivisorLatch, on)
}

// LineStatus is the decoded line status register. The error flags are
// observations only: no driver operation reads or acts on them.
type LineStatus byte

const (
	lsrDataReady LineStatus = 1 << iota
	lsrOverrunError
	lsrParityError
	lsrFramingError
	lsrBreakInterrupt
	lsrTxHoldingEmpty
	lsrTxEmpty
	lsrFIFOError
)

// DataReady reports that the receiver holds at least one byte.
func (s LineStatus) DataReady() bool { return s&lsrDataReady != 0 }

func (s LineStatus) OverrunError() bool   { return s&lsrOverrunError != 0 }
func (s LineStatus) ParityError() bool    { return s&lsrParityError != 0 }
func (s LineStatus) FramingError() bool   { return s&lsrFramingError != 0 }
func (s LineStatus) BreakInterrupt() bool { return s&lsrBreakInterrupt != 0 }
func (s LineStatus) FIFOError() bool      { return s&lsrFIFOError != 0 }

// TxHoldingEmpty reports that the holding register can accept a byte.
func (s LineStatus) TxHoldingEmpty() bool { return s&lsrTxHoldingEmpty != 0 }

// TxEmpty reports that both the holding register and the shift
// register have drained onto the wire.
func (s LineStatus) TxEmpty() bool { return s&lsrTxEmpty != 0 }
