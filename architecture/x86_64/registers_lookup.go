package x86_64

// registersByWidthAndEncoding indexes the general purpose register constants
// by (width in bits, encoding) so the decoder can resolve a ModR/M reg or rm
// field without a chain of switch statements. Built once from the same
// constants RegistersByName is built from.
var registersByWidthAndEncoding = map[int]map[byte]Register{
	64: {
		0: RAX, 1: RCX, 2: RDX, 3: RBX, 4: RSP, 5: RBP, 6: RSI, 7: RDI,
		8: R8, 9: R9, 10: R10, 11: R11, 12: R12, 13: R13, 14: R14, 15: R15,
	},
	32: {
		0: EAX, 1: ECX, 2: EDX, 3: EBX, 4: ESP, 5: EBP, 6: ESI, 7: EDI,
		8: R8D, 9: R9D, 10: R10D, 11: R11D, 12: R12D, 13: R13D, 14: R14D, 15: R15D,
	},
	16: {
		0: AX, 1: CX, 2: DX, 3: BX, 4: SP, 5: BP, 6: SI, 7: DI,
		8: R8W, 9: R9W, 10: R10W, 11: R11W, 12: R12W, 13: R13W, 14: R14W, 15: R15W,
	},
	// 8-bit without a REX prefix: encodings 4-7 resolve to the legacy
	// high-byte registers (AH/CH/DH/BH) instead of SPL/BPL/SIL/DIL.
	8: {
		0: AL, 1: CL, 2: DL, 3: BL, 4: AH, 5: CH, 6: DH, 7: BH,
		8: R8B, 9: R9B, 10: R10B, 11: R11B, 12: R12B, 13: R13B, 14: R14B, 15: R15B,
	},
}

// registers8WithREX resolves encodings 4-7 to SPL/BPL/SIL/DIL instead of the
// high-byte registers. Selected whenever a REX prefix (of any kind) is
// present in the instruction being decoded or encoded.
var registers8WithREX = map[byte]Register{
	0: AL, 1: CL, 2: DL, 3: BL, 4: SPL, 5: BPL, 6: SIL, 7: DIL,
	8: R8B, 9: R9B, 10: R10B, 11: R11B, 12: R12B, 13: R13B, 14: R14B, 15: R15B,
}

var xmmByEncoding = map[byte]Register{
	0: XMM0, 1: XMM1, 2: XMM2, 3: XMM3, 4: XMM4, 5: XMM5, 6: XMM6, 7: XMM7,
	8: XMM8, 9: XMM9, 10: XMM10, 11: XMM11, 12: XMM12, 13: XMM13, 14: XMM14, 15: XMM15,
}

var ymmByEncoding = map[byte]Register{
	0: YMM0, 1: YMM1, 2: YMM2, 3: YMM3, 4: YMM4, 5: YMM5, 6: YMM6, 7: YMM7,
	8: YMM8, 9: YMM9, 10: YMM10, 11: YMM11, 12: YMM12, 13: YMM13, 14: YMM14, 15: YMM15,
}

var zmmByEncoding = map[byte]Register{
	0: ZMM0, 1: ZMM1, 2: ZMM2, 3: ZMM3, 4: ZMM4, 5: ZMM5, 6: ZMM6, 7: ZMM7,
	8: ZMM8, 9: ZMM9, 10: ZMM10, 11: ZMM11, 12: ZMM12, 13: ZMM13, 14: ZMM14, 15: ZMM15,
	16: ZMM16, 17: ZMM17, 18: ZMM18, 19: ZMM19, 20: ZMM20, 21: ZMM21, 22: ZMM22, 23: ZMM23,
	24: ZMM24, 25: ZMM25, 26: ZMM26, 27: ZMM27, 28: ZMM28, 29: ZMM29, 30: ZMM30, 31: ZMM31,
}

var segmentsByEncoding = map[byte]Register{
	0: ES, 1: CS, 2: SS, 3: DS, 4: FS, 5: GS,
}

// RegisterByWidthAndEncoding resolves a general purpose register given its
// operand width and its 4-bit encoding (after folding in REX.R/X/B). hasREX
// selects between the high-byte 8-bit registers (no REX) and SPL/BPL/SIL/DIL
// (REX present); it is ignored for every width other than 8.
func RegisterByWidthAndEncoding(width int, encoding byte, hasREX bool) (Register, bool) {
	if width == 8 && hasREX {
		reg, ok := registers8WithREX[encoding]
		return reg, ok
	}
	byEncoding, ok := registersByWidthAndEncoding[width]
	if !ok {
		return Register{}, false
	}
	reg, ok := byEncoding[encoding]
	return reg, ok
}

// XMMByEncoding resolves an XMM register by its 4-bit encoding.
func XMMByEncoding(encoding byte) (Register, bool) {
	reg, ok := xmmByEncoding[encoding]
	return reg, ok
}

// YMMByEncoding resolves a YMM register by its 4-bit encoding.
func YMMByEncoding(encoding byte) (Register, bool) {
	reg, ok := ymmByEncoding[encoding]
	return reg, ok
}

// ZMMByEncoding resolves a ZMM register by its 5-bit encoding.
func ZMMByEncoding(encoding byte) (Register, bool) {
	reg, ok := zmmByEncoding[encoding]
	return reg, ok
}

// SegmentByEncoding resolves a segment register by its 3-bit encoding.
func SegmentByEncoding(encoding byte) (Register, bool) {
	reg, ok := segmentsByEncoding[encoding]
	return reg, ok
}
