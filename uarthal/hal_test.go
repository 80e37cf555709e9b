package uarthal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ZhengLongBing/uart16550/regio"
	"github.com/ZhengLongBing/uart16550/sim"
)

type traceWrite struct {
	off uint32
	v   byte
}

// traceMem records every register write in order.
type traceMem struct {
	inner  regio.Mem
	writes []traceWrite
}

func (m *traceMem) Read8(off uint32) byte { return m.inner.Read8(off) }

func (m *traceMem) Write8(off uint32, v byte) {
	m.writes = append(m.writes, traceWrite{off, v})
	m.inner.Write8(off, v)
}

func TestNewProgramsDivisorFirst(t *testing.T) {
	trace := &traceMem{inner: sim.New(sim.Config{})}
	regs := NewRegisterBlock(trace)

	New(regs, Config{
		Divisor:    96,
		ParityMode: ParityEven,
		StopBits:   StopBits1,
		WordLength: WordLength8,
	})

	wantOffs := []uint32{3, 0, 1, 3, 3, 3, 3}
	if len(trace.writes) != len(wantOffs) {
		t.Fatalf("write count=%d, want %d (%v)", len(trace.writes), len(wantOffs), trace.writes)
	}
	for i, w := range trace.writes {
		if w.off != wantOffs[i] {
			t.Fatalf("write %d hit offset %d, want %d", i, w.off, wantOffs[i])
		}
	}

	if LineControl(trace.writes[0].v).DivisorLatch() != true {
		t.Fatal("first write must open the divisor latch")
	}
	if LineControl(trace.writes[3].v).DivisorLatch() {
		t.Fatal("latch still open when the divisor session closed")
	}
	if trace.writes[1].v != 96 || trace.writes[2].v != 0 {
		t.Fatalf("divisor bytes %d/%d, want 96/0",
			trace.writes[1].v, trace.writes[2].v)
	}
}

func TestNewSkipsUnsetDivisor(t *testing.T) {
	dev := sim.New(sim.Config{})
	dev.LoadDivisor(24)

	New(NewRegisterBlock(dev), DefaultConfig())
	if got := dev.Divisor(); got != 24 {
		t.Fatalf("hardware divisor=%d after New without divisor, want 24", got)
	}
}

func TestDefaultConfigReportsHardwareDivisor(t *testing.T) {
	dev := sim.New(sim.Config{})
	dev.LoadDivisor(24)

	h := New(NewRegisterBlock(dev), DefaultConfig())
	cfg := h.Config()

	if cfg.Divisor != 24 {
		t.Fatalf("Divisor=%d, want the pre-existing 24", cfg.Divisor)
	}
	if cfg.ParityMode != ParityNone {
		t.Fatalf("ParityMode=%v, want none", cfg.ParityMode)
	}
	if cfg.StopBits != StopBits1 {
		t.Fatalf("StopBits=%v, want 1", cfg.StopBits)
	}
	if cfg.WordLength != WordLength8 {
		t.Fatalf("WordLength=%v, want 8", cfg.WordLength)
	}
}

func TestConfigRoundTripThroughNew(t *testing.T) {
	dev := sim.New(sim.Config{})

	h := New(NewRegisterBlock(dev), Config{
		Divisor:    0x0C17,
		ParityMode: ParityOdd,
		StopBits:   StopBits2,
		WordLength: WordLength7,
	})

	cfg := h.Config()
	if cfg.Divisor != 0x0C17 || cfg.ParityMode != ParityOdd ||
		cfg.StopBits != StopBits2 || cfg.WordLength != WordLength7 {
		t.Fatalf("Config()=%+v did not round-trip", cfg)
	}
}

func TestNewLogsAppliedConfiguration(t *testing.T) {
	dev := sim.New(sim.Config{})

	var logged []string
	cfg := DefaultConfig()
	cfg.Divisor = 12
	cfg.LogFunc = func(level int, format string, param ...interface{}) {
		logged = append(logged, format)
	}

	New(NewRegisterBlock(dev), cfg)
	if len(logged) != 1 || !strings.Contains(logged[0], "divisor") {
		t.Fatalf("logged %q, want one configuration line", logged)
	}
}

func TestWouldBlockSurface(t *testing.T) {
	dev := sim.New(sim.Config{TxDelay: 3})
	h := New(NewRegisterBlock(dev), DefaultConfig())

	if _, err := h.ReadByte(); err != ErrWouldBlock {
		t.Fatalf("ReadByte on empty receiver=%v, want ErrWouldBlock", err)
	}
	if h.ReadReady() {
		t.Fatal("ReadReady=true on an empty receiver")
	}

	if !h.WriteReady() {
		t.Fatal("WriteReady=false with an empty holding register")
	}
	if err := h.WriteByte('x'); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	if !bytes.Equal(dev.TxBytes(), []byte{'x'}) {
		t.Fatalf("TxBytes=%q, want \"x\"", dev.TxBytes())
	}

	if err := h.TryFlush(); err != ErrWouldBlock {
		t.Fatalf("TryFlush while draining=%v, want ErrWouldBlock", err)
	}
	drained := false
	for i := 0; i < 10; i++ {
		if h.TryFlush() == nil {
			drained = true
			break
		}
	}
	if !drained {
		t.Fatal("TryFlush never reported a drained transmitter")
	}

	dev.PushRX([]byte{0x7F})
	if !h.ReadReady() {
		t.Fatal("ReadReady=false with a queued byte")
	}
	b, err := h.ReadByte()
	if err != nil || b != 0x7F {
		t.Fatalf("ReadByte=(%#02x, %v), want (0x7f, nil)", b, err)
	}
	if _, err := h.ReadByte(); err != ErrWouldBlock {
		t.Fatalf("second ReadByte=%v, want ErrWouldBlock", err)
	}
}

func TestStreamLoopback(t *testing.T) {
	dev := sim.New(sim.Config{Loopback: true})
	h := New(NewRegisterBlock(dev), DefaultConfig())

	msg := []byte("hello")
	n, err := h.Write(msg)
	if err != nil || n != len(msg) {
		t.Fatalf("Write=(%d, %v), want (%d, nil)", n, err, len(msg))
	}
	h.Flush()

	buf := make([]byte, 16)
	n, err = h.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(buf[:n], msg) {
		t.Fatalf("Read back %q, want %q", buf[:n], msg)
	}
}
