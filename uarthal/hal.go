package uarthal

// HAL owns one UART. Construction transfers ownership of the register
// block: nothing else may touch those registers while the HAL lives.
//
// There is no lock here. Status queries only need the handle shared,
// anything that writes a register needs it exclusive; a platform that
// exposes one physical UART to several goroutines must add its own
// mutual exclusion around the handle.
type HAL struct {
	regs RegisterBlock
}

type LogFunc func(level int, format string, param ...interface{})

// New takes ownership of regs and programs config, divisor first (the
// only setting that opens the divisor latch), then parity, stop bits
// and word length. A zero config.Divisor leaves the hardware divisor
// untouched.
func New(regs RegisterBlock, config Config) *HAL {
	h := &HAL{regs: regs}

	if config.Divisor != 0 {
		setDivisor(regs, config.Divisor)
	}
	setParityMode(regs, config.ParityMode)
	setStopBits(regs, config.StopBits)
	setWordLength(regs, config.WordLength)

	if config.LogFunc != nil {
		applied := h.Config()
		config.LogFunc(1, "Configured divisor=%d parity=%s stop=%s word=%s",
			applied.Divisor, applied.ParityMode, applied.StopBits, applied.WordLength)
	}

	return h
}

// Adopt takes ownership of an already configured UART without writing
// any register. Use New to program a configuration at the same time.
func Adopt(regs RegisterBlock) *HAL {
	return &HAL{regs: regs}
}

// Config re-reads the full line configuration from the hardware. The
// divisor is always reported, whether or not New programmed one, so a
// handle constructed without an explicit divisor reports whatever was
// already latched.
func (h *HAL) Config() Config {
	return Config{
		Divisor:    divisor(h.regs),
		ParityMode: parityMode(h.regs),
		StopBits:   stopBits(h.regs),
		WordLength: wordLength(h.regs),
	}
}

func (h *HAL) Divisor() uint16            { return divisor(h.regs) }
func (h *HAL) SetDivisor(v uint16)        { setDivisor(h.regs, v) }
func (h *HAL) ParityMode() ParityMode     { return parityMode(h.regs) }
func (h *HAL) SetParityMode(p ParityMode) { setParityMode(h.regs, p) }
func (h *HAL) StopBits() StopBits         { return stopBits(h.regs) }
func (h *HAL) SetStopBits(s StopBits)     { setStopBits(h.regs, s) }
func (h *HAL) WordLength() WordLength     { return wordLength(h.regs) }
func (h *HAL) SetWordLength(w WordLength) { setWordLength(h.regs, w) }

// Read drains whatever the receiver already holds into p and returns
// immediately with the count, possibly 0. The error is always nil;
// callers that need the buffer filled must loop themselves.
func (h *HAL) Read(p []byte) (int, error) {
	return readAvail(h.regs, p), nil
}

// Write queues as much of p as the transmitter accepts right now and
// returns the count. It never waits and never retries; the error is
// always nil.
func (h *HAL) Write(p []byte) (int, error) {
	return writeAvail(h.regs, p), nil
}

// Flush blocks until every previously written byte has fully left the
// shift register, not merely the holding register. It spins without a
// timeout.
func (h *HAL) Flush() {
	drain(h.regs)
}

// ReadReady reports whether ReadByte would succeed right now.
func (h *HAL) ReadReady() bool { return h.regs.LineStatus().DataReady() }

// WriteReady reports whether WriteByte would succeed right now.
func (h *HAL) WriteReady() bool { return h.regs.LineStatus().TxHoldingEmpty() }

// ReadByte consumes one received byte, or returns ErrWouldBlock if the
// receiver is empty.
func (h *HAL) ReadByte() (byte, error) {
	var b [1]byte
	if readAvail(h.regs, b[:]) == 0 {
		return 0, ErrWouldBlock
	}
	return b[0], nil
}

// WriteByte queues one byte for transmission, or returns ErrWouldBlock
// if the holding register is full.
func (h *HAL) WriteByte(c byte) error {
	if writeAvail(h.regs, []byte{c}) == 0 {
		return ErrWouldBlock
	}
	return nil
}

// TryFlush polls the transmitter once and returns ErrWouldBlock while
// bytes are still leaving the shift register. Callers can put their
// own bound around it instead of committing to Flush's unbounded spin.
func (h *HAL) TryFlush() error {
	if !h.regs.LineStatus().TxEmpty() {
		return ErrWouldBlock
	}
	return nil
}

// Registers exposes the owned register block for direct access, for
// debug tooling. The caller inherits the exclusivity contract while
// using it: no HAL operation may run concurrently, and the divisor
// latch must be left closed.
func (h *HAL) Registers() RegisterBlock {
	return h.regs
}
