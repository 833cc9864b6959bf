package x86_64

// Immediate is a signed integer operand carried directly in the instruction
// bytes. Width is the number of bits the value was encoded in (8, 16, 32, or
// 64); Value is always sign-extended to 64 bits so callers never need to
// mask it themselves.
type Immediate struct {
	Value int64
	Width int
}

// ImmediateFrom builds an Immediate from raw little-endian bytes, sign
// extending according to width. It mirrors the displacement/immediate
// decode path.
func ImmediateFrom(raw []byte) Immediate {
	switch len(raw) {
	case 1:
		return Immediate{Value: int64(int8(raw[0])), Width: 8}
	case 2:
		v := uint16(raw[0]) | uint16(raw[1])<<8
		return Immediate{Value: int64(int16(v)), Width: 16}
	case 4:
		v := uint32(raw[0]) | uint32(raw[1])<<8 | uint32(raw[2])<<16 | uint32(raw[3])<<24
		return Immediate{Value: int64(int32(v)), Width: 32}
	case 8:
		var v uint64
		for i := 7; i >= 0; i-- {
			v = v<<8 | uint64(raw[i])
		}
		return Immediate{Value: int64(v), Width: 64}
	default:
		return Immediate{}
	}
}

// Bytes returns the little-endian encoding of the immediate at its own
// Width, with no further sign-extension or truncation.
func (imm Immediate) Bytes() []byte {
	switch imm.Width {
	case 8:
		return []byte{byte(imm.Value)}
	case 16:
		v := uint16(imm.Value)
		return []byte{byte(v), byte(v >> 8)}
	case 32:
		v := uint32(imm.Value)
		return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
	case 64:
		v := uint64(imm.Value)
		return []byte{
			byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24),
			byte(v >> 32), byte(v >> 40), byte(v >> 48), byte(v >> 56),
		}
	default:
		return nil
	}
}

// FitsInt8 reports whether the immediate's value is representable in a
// signed 8-bit encoding, used by the encoder's shortest-immediate
// canonicalisation rule.
func (imm Immediate) FitsInt8() bool {
	return imm.Value >= -128 && imm.Value <= 127
}

// FitsInt32 reports whether the immediate's value is representable in a
// signed 32-bit encoding.
func (imm Immediate) FitsInt32() bool {
	return imm.Value >= -2147483648 && imm.Value <= 2147483647
}
