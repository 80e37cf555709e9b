package uarthal

import "runtime"

// readAvail moves received bytes into buf, one status poll per slot,
// and stops at the first poll without data. It never waits.
func readAvail(regs RegisterBlock, buf []byte) int {
	n := 0
	for i := range buf {
		if !regs.LineStatus().DataReady() {
			break
		}
		buf[i] = regs.ReadData()
		n++
	}
	return n
}

// writeAvail places bytes in the holding register while the hardware
// reports room, and stops at the first byte it cannot place. It never
// waits.
func writeAvail(regs RegisterBlock, buf []byte) int {
	n := 0
	for _, b := range buf {
		if !regs.LineStatus().TxHoldingEmpty() {
			break
		}
		regs.WriteData(b)
		n++
	}
	return n
}

// drain spins until the shift register reports empty. There is no
// timeout: a wedged transmitter blocks the caller forever.
func drain(regs RegisterBlock) {
	for !regs.LineStatus().TxEmpty() {
		runtime.Gosched()
	}
}
