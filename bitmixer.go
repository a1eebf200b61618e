package automaton

const (
	// Golden ratio bit mixers.
	PHI_C32 = uint32(0x9e3779b9)
	PHI_C64 = uint64(0x9e3779b97f4a7c15)
)

func mix(key int) int {
	return mix32(key)
}

// MurmurHash3 32-bit finalization step.
func mix32(v int) int {
	k := uint32(v)
	k = (k ^ (k >> 16)) * 0x85ebca6b
	k = (k ^ (k >> 13)) * 0xc2b2ae35
	return int(k ^ (k >> 16))
}

// Golden-ratio multiplicative mixer for int keys.
func mixPhi(v int) int {
	h := uint64(v) * PHI_C64
	return int(h ^ (h >> 32))
}
