package uarthal

import "errors"

var (
	// ErrWouldBlock reports that the hardware cannot accept or supply
	// a byte right now. It is not a fault; retry later.
	ErrWouldBlock = errors.New("uart not ready")
)
