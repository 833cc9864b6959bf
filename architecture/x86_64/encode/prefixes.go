package encode

import (
	"github.com/keurnel/x86codec/architecture/x86_64"
	"github.com/keurnel/x86codec/architecture/x86_64/opcodetable"
)

// encodeLegacyPrefixes emits the legacy prefix bytes in canonical order:
// LOCK/REP family first, then segment override, operand-size (0x66),
// address-size (0x67), and finally any F2/F3 mandatory prefix, which must
// sit immediately before the opcode escape bytes. A mandatory 0x66 is
// emitted in the operand-size slot. The segment override and both size
// overrides are derived from the operands rather than read from
// instr.Prefixes; the decoder strips them on the way in, the same way REX
// is re-derived.
func encodeLegacyPrefixes(instr x86_64.Instruction, desc *opcodetable.Descriptor) []byte {
	var out []byte

	for _, p := range instr.Prefixes {
		switch p {
		case x86_64.PrefixLock, x86_64.PrefixRepNE, x86_64.PrefixRep:
			if desc.MandatoryPrefix != 0 && byte(p) == desc.MandatoryPrefix {
				continue
			}
			out = append(out, byte(p))
		}
	}

	if seg := segmentToEmit(instr, desc); seg != nil {
		out = append(out, byte(segmentPrefix(*seg)))
	}

	if desc.MandatoryPrefix == byte(x86_64.PrefixOperandSize) {
		out = append(out, byte(x86_64.PrefixOperandSize))
	} else if widthBearing(desc) && effectiveWidth(instr, desc) == 16 {
		out = append(out, byte(x86_64.PrefixOperandSize))
	}

	if needsAddressSizeOverride(instr) {
		out = append(out, byte(x86_64.PrefixAddressSize))
	}

	switch desc.MandatoryPrefix {
	case byte(x86_64.PrefixRep), byte(x86_64.PrefixRepNE):
		out = append(out, desc.MandatoryPrefix)
	}

	return out
}

// segmentToEmit picks the segment-override byte the memory operands call
// for. A string instruction's ES:[rDI] destination is pinned to ES and
// never takes an override; its DS:[rSI] source only needs one when the
// segment is not the DS default. An explicit ModR/M memory operand emits
// whatever segment it carries.
func segmentToEmit(instr x86_64.Instruction, desc *opcodetable.Descriptor) *x86_64.Register {
	for i, spec := range desc.Operands {
		op := instr.Operands[i]
		if op.Kind != x86_64.OperandKindMem || op.Mem.Segment == nil {
			continue
		}
		switch spec.Role {
		case opcodetable.RoleModRMRM:
			return op.Mem.Segment
		case opcodetable.RoleImplicitRSI:
			if op.Mem.Segment.Name != "ds" {
				return op.Mem.Segment
			}
		}
	}
	return nil
}

// needsAddressSizeOverride reports whether any memory operand addresses
// through 32-bit registers, which requires the 0x67 prefix in 64-bit mode.
func needsAddressSizeOverride(instr x86_64.Instruction) bool {
	for _, op := range instr.Operands {
		if op.Kind != x86_64.OperandKindMem {
			continue
		}
		if op.Mem.Base != nil && op.Mem.Base.Type == x86_64.Register32 {
			return true
		}
		if op.Mem.Index != nil && op.Mem.Index.Type == x86_64.Register32 {
			return true
		}
	}
	return false
}

func segmentPrefix(reg x86_64.Register) x86_64.Prefix {
	switch reg.Name {
	case "cs":
		return x86_64.PrefixCS
	case "ss":
		return x86_64.PrefixSS
	case "ds":
		return x86_64.PrefixDS
	case "es":
		return x86_64.PrefixES
	case "fs":
		return x86_64.PrefixFS
	case "gs":
		return x86_64.PrefixGS
	default:
		return x86_64.PrefixNone
	}
}

// computeREX decides whether a REX prefix is needed for instr under desc and,
// if so, its byte value. ReqREXW forces the bit one way or the other for
// forms like CDQ/CQO that carry no operand to infer width from; otherwise
// REX.W follows the resolved operand width. REX.R/X/B follow straight from
// which operand register (if any) needs its encoding extended past 3 bits,
// and a REX is also forced, with no bits set, by the uniform low-byte
// registers SPL/BPL/SIL/DIL, which only exist under a REX prefix.
func computeREX(instr x86_64.Instruction, desc *opcodetable.Descriptor) (bool, byte) {
	w := desc.ReqREXW == 1 || desc.DefaultREXW
	if desc.ReqREXW == 0 && !desc.DefaultREXW {
		w = widthBearing(desc) && effectiveWidth(instr, desc) == 64
	}

	r, x, b := regExtensionBits(instr, desc)

	needsREX := w || r || x || b
	for _, op := range instr.Operands {
		if op.Kind == x86_64.OperandKindReg && op.Reg.RequiresREX() {
			needsREX = true
		}
	}

	rex := byte(0x40)
	if w {
		rex |= 0x08
	}
	if r {
		rex |= 0x04
	}
	if x {
		rex |= 0x02
	}
	if b {
		rex |= 0x01
	}
	return needsREX, rex
}

// regExtensionBits reports which of REX.R/X/B (or their VEX/EVEX
// equivalents) this instruction's operands require: R from a ModR/M.reg
// register, X from a SIB index register, B from a ModR/M.rm register, an
// addressing base register, or an opcode-embedded register. The synthetic
// instruction-pointer bases (encoding 16) never set an extension bit.
func regExtensionBits(instr x86_64.Instruction, desc *opcodetable.Descriptor) (r, x, b bool) {
	for i, spec := range desc.Operands {
		op := instr.Operands[i]
		switch spec.Role {
		case opcodetable.RoleModRMReg:
			if op.Kind == x86_64.OperandKindReg && op.Reg.Encoding&0x08 != 0 {
				r = true
			}
		case opcodetable.RoleModRMRM:
			switch op.Kind {
			case x86_64.OperandKindReg:
				if op.Reg.Encoding&0x08 != 0 {
					b = true
				}
			case x86_64.OperandKindMem:
				if op.Mem.Base != nil && op.Mem.Base.Encoding&0x08 != 0 && op.Mem.Base.Encoding != 16 {
					b = true
				}
				if op.Mem.Index != nil && op.Mem.Index.Encoding&0x08 != 0 {
					x = true
				}
			}
		case opcodetable.RoleOpcodeReg:
			if op.Kind == x86_64.OperandKindReg && op.Reg.Encoding&0x08 != 0 {
				b = true
			}
		}
	}
	return r, x, b
}
