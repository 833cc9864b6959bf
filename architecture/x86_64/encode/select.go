package encode

import (
	"github.com/keurnel/x86codec/architecture/x86_64"
	"github.com/keurnel/x86codec/architecture/x86_64/opcodetable"
)

// selectDescriptor finds the opcode descriptor to encode instr with and the
// immediate width it resolves to. Candidates are narrowed by mnemonic and
// per-operand shape, then scored by the §4.4 canonicalisation rules:
// rule 1 (shortest encoding wins) is applied literally, by estimating each
// candidate's encoded byte length, and rule 2 breaks remaining ties toward
// the form that places the destination in ModR/M.rm.
func selectDescriptor(instr x86_64.Instruction) (*opcodetable.Descriptor, int, error) {
	var best *opcodetable.Descriptor
	bestImmWidth := 0
	bestScore := 0
	found := false

	for _, d := range opcodetable.All() {
		if d.Mnemonic != instr.Mnemonic || len(d.Operands) != len(instr.Operands) {
			continue
		}
		if !operandsMatch(instr, d) {
			continue
		}
		if widthBearing(d) {
			width := effectiveWidth(instr, d)
			if d.ReqREXW == 1 && width != 64 {
				continue
			}
			if d.ReqREXW == 2 && width == 64 {
				continue
			}
		}
		immWidth := d.ImmWidthFor(effectiveWidth(instr, d))
		if !immediateFits(instr, d, immWidth) {
			continue
		}

		score := candidateScore(d, immWidth)
		if !found || score < bestScore {
			best = d
			bestScore = score
			bestImmWidth = immWidth
			found = true
		}
	}

	if !found {
		return nil, 0, &x86_64.UnknownOpcodeError{}
	}
	return best, bestImmWidth, nil
}

// widthBearing reports whether any of d's register or memory slots resolves
// its width from context, making the ReqREXW constraint checkable against
// the operands. Immediates don't count: their slot width is decided by the
// descriptor, not by the instruction's operand width. Forms like CQO/CDQE
// and MOVABS carry the constraint with no context-width operand; for them
// the mnemonic alone disambiguates.
func widthBearing(d *opcodetable.Descriptor) bool {
	for _, spec := range d.Operands {
		if spec.Role == opcodetable.RoleImm {
			continue
		}
		if spec.Width == 0 && spec.Class != opcodetable.ClassXMMOrYMM {
			return true
		}
	}
	return false
}

// candidateScore estimates the encoded length of d in bytes (opcode escape
// bytes, mandatory prefix, ModR/M, immediate; prefix bytes shared by every
// candidate are left out). The low bits carry the rule-2 tie-break: at equal
// length, a destination-in-rm form beats a destination-in-reg form.
func candidateScore(d *opcodetable.Descriptor, immWidth int) int {
	length := 1 // primary opcode byte
	switch d.Map {
	case x86_64.Map0F:
		length++
	case x86_64.Map0F38, x86_64.Map0F3A:
		length += 2
	}
	if d.MandatoryPrefix != 0 {
		length++
	}
	if d.ModRM {
		length++
	}
	length += immWidth / 8

	score := length * 4
	if len(d.Operands) > 0 && d.Operands[0].Role == opcodetable.RoleModRMReg {
		score++
	}
	return score
}

func immediateFits(instr x86_64.Instruction, d *opcodetable.Descriptor, immWidth int) bool {
	for i, spec := range d.Operands {
		if spec.Role != opcodetable.RoleImm {
			continue
		}
		op := instr.Operands[i]
		if op.Kind != x86_64.OperandKindImm {
			return false
		}
		switch immWidth {
		case 8:
			return op.Imm.FitsInt8()
		case 16:
			return op.Imm.Value >= -32768 && op.Imm.Value <= 32767
		case 32:
			return op.Imm.FitsInt32()
		default:
			return true
		}
	}
	return true
}

func operandsMatch(instr x86_64.Instruction, d *opcodetable.Descriptor) bool {
	for i, spec := range d.Operands {
		if !operandMatchesSpec(instr.Operands[i], spec, d) {
			return false
		}
	}
	return true
}

func operandMatchesSpec(op x86_64.Operand, spec opcodetable.OperandSpec, d *opcodetable.Descriptor) bool {
	switch spec.Role {
	case opcodetable.RoleModRMReg, opcodetable.RoleOpcodeReg, opcodetable.RoleVexVvvv:
		return op.Kind == x86_64.OperandKindReg && registerMatchesSpec(op.Reg, spec)

	case opcodetable.RoleImplicitAcc:
		return op.Kind == x86_64.OperandKindReg && op.Reg.Encoding == 0 &&
			!op.Reg.IsHighByte() && registerMatchesSpec(op.Reg, spec)

	case opcodetable.RoleModRMRM:
		switch op.Kind {
		case x86_64.OperandKindReg:
			return !d.MemOnly && registerMatchesSpec(op.Reg, spec)
		case x86_64.OperandKindMem:
			return memMatchesSpec(op.Mem, spec)
		default:
			return false
		}

	case opcodetable.RoleImm:
		return op.Kind == x86_64.OperandKindImm

	case opcodetable.RoleImplicitRSI, opcodetable.RoleImplicitRDI:
		return op.Kind == x86_64.OperandKindMem && memMatchesSpec(op.Mem, spec)

	default:
		return false
	}
}

func registerMatchesSpec(reg x86_64.Register, spec opcodetable.OperandSpec) bool {
	if spec.Class == opcodetable.ClassXMMOrYMM {
		switch reg.Type {
		case x86_64.RegisterXMM, x86_64.RegisterYMM, x86_64.RegisterZMM:
		default:
			return false
		}
		// Legacy SSE forms pin the width to 128; VEX forms leave it to the
		// L bit and accept either.
		return spec.Width == 0 || reg.Width() == spec.Width
	}
	switch reg.Type {
	case x86_64.Register8, x86_64.Register16, x86_64.Register32, x86_64.Register64:
	default:
		return false
	}
	if spec.Width == 0 {
		// Context-resolved width is always 16/32/64; the 8-bit register
		// class has its own opcode bytes with an explicit Width.
		return reg.Width() != 8
	}
	return reg.Width() == spec.Width
}

func memMatchesSpec(mem x86_64.Indirect, spec opcodetable.OperandSpec) bool {
	if spec.Width != 0 && mem.PointerSize != 0 && mem.PointerSize != spec.Width {
		return false
	}
	if spec.Width == 0 && spec.Class != opcodetable.ClassXMMOrYMM && mem.PointerSize == 8 {
		return false
	}
	return true
}

// effectiveWidth resolves the instruction's general-purpose operand width
// (16/32/64) from whichever operand carries it, the same information the
// decoder pulls from REX.W/0x66 in the other direction, so that REX.W and
// the operand-size prefix can be derived rather than stored redundantly on
// Instruction.
func effectiveWidth(instr x86_64.Instruction, d *opcodetable.Descriptor) int {
	for i, spec := range d.Operands {
		if spec.Width != 0 || spec.Class == opcodetable.ClassXMMOrYMM {
			continue
		}
		op := instr.Operands[i]
		switch op.Kind {
		case x86_64.OperandKindReg:
			return op.Reg.Width()
		case x86_64.OperandKindMem:
			if op.Mem.PointerSize != 0 {
				return op.Mem.PointerSize
			}
		}
	}
	return 32
}
