package addressing

import "fmt"

// An AddressOverflowError reports an address that needs more bits than the
// address width provides.
type AddressOverflowError struct {
	Addr        WordAddress
	NumAddrBits int
}

func (e *AddressOverflowError) Error() string {
	return fmt.Sprintf(
		"address %d needs %d bits, only %d available",
		e.Addr, e.Addr.BitLen(), e.NumAddrBits)
}
