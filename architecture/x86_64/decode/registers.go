package decode

import (
	"github.com/keurnel/x86codec/architecture/x86_64"
	"github.com/keurnel/x86codec/architecture/x86_64/opcodetable"
)

// resolveRegisterByClass dispatches a 4-bit register encoding (reg/rm field
// with REX/VEX extension bits already folded in) to the concrete register it
// names, honouring the requested width and register class.
func resolveRegisterByClass(encoding byte, width int, hasREX bool, class opcodetable.RegisterClass) (x86_64.Register, error) {
	switch class {
	case opcodetable.ClassXMMOrYMM:
		switch width {
		case 512:
			if reg, ok := x86_64.ZMMByEncoding(encoding); ok {
				return reg, nil
			}
			return x86_64.Register{}, &x86_64.ReservedEncodingError{Reason: "no ZMM register for this encoding"}
		case 256:
			if reg, ok := x86_64.YMMByEncoding(encoding); ok {
				return reg, nil
			}
			return x86_64.Register{}, &x86_64.ReservedEncodingError{Reason: "no YMM register for this encoding"}
		}
		if reg, ok := x86_64.XMMByEncoding(encoding); ok {
			return reg, nil
		}
		return x86_64.Register{}, &x86_64.ReservedEncodingError{Reason: "no XMM register for this encoding"}

	default:
		w := width
		if w == 0 {
			w = 32
		}
		if reg, ok := x86_64.RegisterByWidthAndEncoding(w, encoding, hasREX); ok {
			return reg, nil
		}
		return x86_64.Register{}, &x86_64.ReservedEncodingError{Reason: "no general purpose register for this width/encoding"}
	}
}
