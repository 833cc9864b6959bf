package encode

import (
	"github.com/keurnel/x86codec/architecture/x86_64"
	"github.com/keurnel/x86codec/architecture/x86_64/opcodetable"
)

// encodeModRMAndOperands emits the ModR/M (+ SIB + displacement) bytes for
// instr under desc, and separately returns the low 3 opcode bits a
// RegInOpcode form needs OR'd into the already-emitted opcode byte. It is the
// structural inverse of decode's resolveModRM/parseModRMByte.
func encodeModRMAndOperands(instr x86_64.Instruction, desc *opcodetable.Descriptor) ([]byte, byte, error) {
	if desc.RegInOpcode {
		for i, spec := range desc.Operands {
			if spec.Role == opcodetable.RoleOpcodeReg {
				return nil, instr.Operands[i].Reg.Encoding & 0x07, nil
			}
		}
		return nil, 0, nil
	}

	if !desc.ModRM {
		return nil, 0, nil
	}

	var regField byte
	if desc.HasOpcodeExt {
		regField = desc.OpcodeExt
	} else {
		for i, spec := range desc.Operands {
			if spec.Role == opcodetable.RoleModRMReg {
				regField = instr.Operands[i].Reg.Encoding & 0x07
			}
		}
	}

	var rm *x86_64.Operand
	for i, spec := range desc.Operands {
		if spec.Role == opcodetable.RoleModRMRM {
			rm = &instr.Operands[i]
		}
	}
	if rm == nil {
		return nil, 0, &x86_64.IllegalOperandError{Mnemonic: desc.Mnemonic, Reason: "descriptor has no ModR/M.rm operand"}
	}

	if rm.Kind == x86_64.OperandKindReg {
		modrm := (byte(0x03) << 6) | (regField << 3) | (rm.Reg.Encoding & 0x07)
		return []byte{modrm}, 0, nil
	}

	return encodeMemoryOperand(rm.Mem, regField)
}

func encodeMemoryOperand(mem x86_64.Indirect, regField byte) ([]byte, byte, error) {
	if mem.Base != nil && (mem.Base.Name == "rip" || mem.Base.Name == "eip") {
		modrm := (byte(0x00) << 6) | (regField << 3) | 0x05
		return append([]byte{modrm}, dispBytes(mem.Displacement, 32)...), 0, nil
	}

	noBase := mem.Base == nil
	noIndex := mem.Index == nil
	forcesSIB := !noIndex || noBase || isLowBits100(mem.Base)

	if forcesSIB {
		var mod byte
		var dispW int
		if noBase {
			mod, dispW = 0x00, 32
		} else {
			mod, dispW = modAndDispWidth(mem)
		}

		modrm := (mod << 6) | (regField << 3) | 0x04
		scaleBits := scaleToBits(mem.Scale)

		indexBits := byte(0x04)
		if !noIndex {
			indexBits = mem.Index.Encoding & 0x07
		}
		baseBits := byte(0x05)
		if !noBase {
			baseBits = mem.Base.Encoding & 0x07
		}
		sib := (scaleBits << 6) | (indexBits << 3) | baseBits

		out := []byte{modrm, sib}
		if dispW > 0 {
			out = append(out, dispBytes(mem.Displacement, dispW)...)
		}
		return out, 0, nil
	}

	mod, dispW := modAndDispWidth(mem)
	modrm := (mod << 6) | (regField << 3) | (mem.Base.Encoding & 0x07)
	out := []byte{modrm}
	if dispW > 0 {
		out = append(out, dispBytes(mem.Displacement, dispW)...)
	}
	return out, 0, nil
}

// isLowBits100 reports whether base's low 3 encoding bits are 100 (RSP/R12):
// these always force a SIB byte, even with no index register, since rm=100
// in ModR/M means "read a SIB byte" rather than "base is RSP".
func isLowBits100(base *x86_64.Register) bool {
	return base != nil && base.Encoding&0x07 == 0x04
}

// modAndDispWidth picks the mod field and displacement width for a
// base-present memory operand. A width the operand was built with is
// preserved (§4.4 rule 5: a typed zero forces its width); otherwise the
// canonical choice is no displacement at all unless the base's low bits are
// 101 (RBP/R13, which the mod=00 encoding reserves for RIP-relative/no-base
// forms and so requires a forced disp8=0), and the narrowest width the
// value fits in beyond that.
func modAndDispWidth(mem x86_64.Indirect) (byte, int) {
	switch mem.DisplacementWidth {
	case 8:
		return 0x01, 8
	case 32:
		return 0x02, 32
	}
	baseIsBPFamily := mem.Base != nil && mem.Base.Encoding&0x07 == 0x05
	switch {
	case mem.Displacement == 0 && !baseIsBPFamily:
		return 0x00, 0
	case fitsInt8(mem.Displacement):
		return 0x01, 8
	default:
		return 0x02, 32
	}
}

func fitsInt8(v int32) bool {
	return v >= -128 && v <= 127
}

func scaleToBits(scale byte) byte {
	switch scale {
	case 2:
		return 1
	case 4:
		return 2
	case 8:
		return 3
	default:
		return 0
	}
}

func dispBytes(v int32, width int) []byte {
	imm := x86_64.Immediate{Value: int64(v), Width: width}
	return imm.Bytes()
}
