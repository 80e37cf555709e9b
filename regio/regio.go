package regio

// Mem is a byte addressed register space.
//
// Register loads and stores have no software visible failure mode, so
// the accessors return no error. Implementations must perform single
// byte accesses: a wider access can tear a multiplexed register.
type Mem interface {
	Read8(off uint32) byte
	Write8(off uint32, v byte)
}

// Bytes is a Mem backed by ordinary memory, for tests and simulated
// devices.
type Bytes []byte

func (b Bytes) Read8(off uint32) byte     { return b[off] }
func (b Bytes) Write8(off uint32, v byte) { b[off] = v }
