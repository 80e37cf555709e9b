package uarthal

import "encoding/binary"

// ParityMode is the user visible parity setting. High and Low use the
// stick parity feature to force the parity bit to a constant level
// (mark and space parity).
type ParityMode byte

const (
	ParityNone ParityMode = iota
	ParityOdd
	ParityEven
	ParityHigh
	ParityLow
)

func (p ParityMode) String() string {
	switch p {
	case ParityOdd:
		return "odd"
	case ParityEven:
		return "even"
	case ParityHigh:
		return "high"
	case ParityLow:
		return "low"
	default:
		return "none"
	}
}

// Config collects the line settings applied at construction.
//
// Divisor 0 means "leave the divisor latch alone": the hardware always
// has some divisor programmed and New will not touch it. Note that the
// zero value of Config selects a 5 bit word; use DefaultConfig for the
// usual 8N1 starting point.
type Config struct {
	Divisor    uint16
	ParityMode ParityMode
	StopBits   StopBits
	WordLength WordLength

	LogFunc LogFunc
}

// DefaultConfig returns 8 data bits, no parity, one stop bit and an
// untouched divisor.
func DefaultConfig() Config {
	return Config{
		Divisor:    0,
		ParityMode: ParityNone,
		StopBits:   StopBits1,
		WordLength: WordLength8,
	}
}

/* While the divisor latch is open the multiplexed registers do not
 * carry receive/transmit/interrupt meaning: a data path access in that
 * window reads or writes garbage. divisorLatch scopes the window and
 * restores the saved line control value on Close, on every exit path,
 * so the data path always comes back in the caller's configuration. */
type divisorLatch struct {
	regs  RegisterBlock
	saved LineControl
}

func openDivisorLatch(regs RegisterBlock) *divisorLatch {
	saved := regs.LineControl()
	regs.SetLineControl(saved.SetDivisorLatch(true))
	return &divisorLatch{regs: regs, saved: saved}
}

func (d *divisorLatch) Divisor() uint16 {
	lo := d.regs.mem.Read8(d.regs.layout.Data)
	hi := d.regs.mem.Read8(d.regs.layout.IntEnable)
	return binary.LittleEndian.Uint16([]byte{lo, hi})
}

func (d *divisorLatch) SetDivisor(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	d.regs.mem.Write8(d.regs.layout.Data, b[0])
	d.regs.mem.Write8(d.regs.layout.IntEnable, b[1])
}

func (d *divisorLatch) Close() {
	d.regs.SetLineControl(d.saved)
}

func divisor(regs RegisterBlock) uint16 {
	l := openDivisorLatch(regs)
	defer l.Close()
	return l.Divisor()
}

func setDivisor(regs RegisterBlock, v uint16) {
	l := openDivisorLatch(regs)
	defer l.Close()
	l.SetDivisor(v)
}

func parityMode(regs RegisterBlock) ParityMode {
	lcr := regs.LineControl()
	switch {
	case !lcr.ParityEnabled():
		return ParityNone
	case lcr.StickParity() && lcr.EvenParity():
		return ParityLow
	case lcr.StickParity():
		return ParityHigh
	case lcr.EvenParity():
		return ParityEven
	default:
		return ParityOdd
	}
}

func setParityMode(regs RegisterBlock, mode ParityMode) {
	lcr := regs.LineControl()
	switch mode {
	case ParityOdd:
		lcr = lcr.SetParityEnabled(true).SetStickParity(false).SetEvenParity(false)
	case ParityEven:
		lcr = lcr.SetParityEnabled(true).SetStickParity(false).SetEvenParity(true)
	case ParityHigh:
		lcr = lcr.SetParityEnabled(true).SetStickParity(true).SetEvenParity(false)
	case ParityLow:
		lcr = lcr.SetParityEnabled(true).SetStickParity(true).SetEvenParity(true)
	default:
		lcr = lcr.SetParityEnabled(false)
	}
	regs.SetLineControl(lcr)
}

func stopBits(regs RegisterBlock) StopBits {
	return regs.LineControl().StopBits()
}

func setStopBits(regs RegisterBlock, s StopBits) {
	regs.SetLineControl(regs.LineControl().SetStopBits(s))
}

func wordLength(regs RegisterBlock) WordLength {
	return regs.LineControl().WordLength()
}

func setWordLength(regs RegisterBlock, w WordLength) {
	regs.SetLineControl(regs.LineControl().SetWordLength(w))
}
