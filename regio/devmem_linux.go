//go:build linux
// +build linux

package regio

import (
	"os"

	"golang.org/x/sys/unix"
)

// DevMem is a Mem over a window of physical address space, mapped
// through a memory device node such as /dev/mem.
type DevMem struct {
	mapped []byte
	window []byte
}

// OpenDevMem maps length bytes of physical address space starting at
// base. The file is only needed for the mmap call itself and is closed
// before returning. Access to /dev/mem normally requires root and a
// kernel built without CONFIG_STRICT_DEVMEM.
func OpenDevMem(path string, base uint64, length uint32) (*DevMem, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	/* The mmap offset must be page aligned, the UART base usually is not */
	pageSize := uint64(os.Getpagesize())
	pageBase := base &^ (pageSize - 1)
	skew := base - pageBase

	mapped, err := unix.Mmap(int(f.Fd()), int64(pageBase), int(skew+uint64(length)),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}

	return &DevMem{
		mapped: mapped,
		window: mapped[skew : skew+uint64(length)],
	}, nil
}

func (d *DevMem) Read8(off uint32) byte     { return d.window[off] }
func (d *DevMem) Write8(off uint32, v byte) { d.window[off] = v }

func (d *DevMem) Close() error {
	return unix.Munmap(d.mapped)
}
