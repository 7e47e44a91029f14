package dataprocessing

// DecodeUint decodes each group as an unsigned little-endian integer. Only the
// low eight bytes of a group are read: a longer group is truncated to them and
// its exact value is not decoded.
func DecodeUint(groups [][]byte) []uint64 {
	out := make([]uint64, len(groups))
	for i, g := range groups {
		out[i] = decodeUint(g)
	}
	return out
}

// DecodeBool reports whether each group, read as an unsigned little-endian
// integer, is nonzero. Every byte of the group counts, including those past
// the eighth that DecodeUint drops.
func DecodeBool(groups [][]byte) []bool {
	out := make([]bool, len(groups))
	for i, g := range groups {
		out[i] = decodeBool(g)
	}
	return out
}

// decodeUint reads the low eight bytes of b and ignores the rest.
func decodeUint(b []byte) uint64 {
	if len(b) > 8 {
		b = b[:8]
	}
	var n uint64
	for i := len(b) - 1; i >= 0; i-- {
		n = n<<8 | uint64(b[i])
	}
	return n
}

func decodeBool(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return true
		}
	}
	return false
}
