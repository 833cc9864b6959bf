package encode

import (
	"github.com/keurnel/x86codec/architecture/x86_64"
	"github.com/keurnel/x86codec/architecture/x86_64/opcodetable"
)

// encodeVEX emits the two- or three-byte VEX prefix for instr. When instr
// carries a decoded VEXPrefix (the round-trip case) that value is emitted
// directly so a decode-then-encode cycle reproduces the original bytes
// exactly, short form included; otherwise one is synthesised from the
// operands and the descriptor's VEX constraints, the path an instruction
// built from Intel syntax takes.
func encodeVEX(instr x86_64.Instruction, desc *opcodetable.Descriptor) []byte {
	if instr.VEX != nil {
		return vexBytes(*instr.VEX)
	}
	return vexBytes(synthesizeVEX(instr, desc))
}

func encodeEVEX(instr x86_64.Instruction, desc *opcodetable.Descriptor) []byte {
	if instr.EVEX != nil {
		return evexBytes(*instr.EVEX)
	}
	return evexBytes(synthesizeEVEX(instr, desc))
}

func synthesizeVEX(instr x86_64.Instruction, desc *opcodetable.Descriptor) x86_64.VEXPrefix {
	r, x, b := regExtensionBits(instr, desc)
	return x86_64.VEXPrefix{
		R: r, X: x, B: b,
		Map:  desc.Map,
		W:    desc.VEXW == 1,
		Vvvv: vvvvEncoding(instr, desc),
		L:    desc.VEXL == 1 || vecIsYMM(instr, desc),
		PP:   desc.VEXPP,
	}
}

func synthesizeEVEX(instr x86_64.Instruction, desc *opcodetable.Descriptor) x86_64.EVEXPrefix {
	r, x, b := regExtensionBits(instr, desc)
	return x86_64.EVEXPrefix{
		R: r, X: x, B: b,
		Rp:   regFifthBit(instr, desc, opcodetable.RoleModRMReg),
		Map:  desc.Map,
		W:    desc.VEXW == 1,
		Vvvv: vvvvEncoding(instr, desc),
		Vp:   regFifthBit(instr, desc, opcodetable.RoleVexVvvv),
		PP:   desc.VEXPP,
		L:    vecLBits(instr, desc),
	}
}

// regFifthBit reports whether the register filling the given role needs the
// EVEX fifth encoding bit (registers 16-31).
func regFifthBit(instr x86_64.Instruction, desc *opcodetable.Descriptor, role opcodetable.OperandRole) bool {
	for i, spec := range desc.Operands {
		if spec.Role == role && instr.Operands[i].Kind == x86_64.OperandKindReg {
			return instr.Operands[i].Reg.Encoding >= 16
		}
	}
	return false
}

// vexBytes picks the shortest legal VEX form: the two-byte 0xC5 encoding is
// usable only when no REX.X/B-equivalent extension and no REX.W-equivalent
// is needed and the opcode is in the 0F map, matching maybeReadVEX's decode
// of that form in reverse.
func vexBytes(v x86_64.VEXPrefix) []byte {
	if v.Map == x86_64.Map0F && !v.W && !v.X && !v.B {
		b1 := v.PP
		if !v.R {
			b1 |= 0x80
		}
		if v.L {
			b1 |= 0x04
		}
		b1 |= (15 - v.Vvvv) << 3
		return []byte{0xC5, b1}
	}

	var mapSelect byte = 1
	switch v.Map {
	case x86_64.Map0F38:
		mapSelect = 2
	case x86_64.Map0F3A:
		mapSelect = 3
	}
	b1 := mapSelect
	if !v.R {
		b1 |= 0x80
	}
	if !v.X {
		b1 |= 0x40
	}
	if !v.B {
		b1 |= 0x20
	}
	b2 := v.PP
	if v.W {
		b2 |= 0x80
	}
	b2 |= (15 - v.Vvvv) << 3
	if v.L {
		b2 |= 0x04
	}
	return []byte{0xC4, b1, b2}
}

func evexBytes(e x86_64.EVEXPrefix) []byte {
	var mapSelect byte = 1
	switch e.Map {
	case x86_64.Map0F38:
		mapSelect = 2
	case x86_64.Map0F3A:
		mapSelect = 3
	}
	p0 := mapSelect
	if !e.R {
		p0 |= 0x80
	}
	if !e.X {
		p0 |= 0x40
	}
	if !e.B {
		p0 |= 0x20
	}
	if !e.Rp {
		p0 |= 0x10
	}

	p1 := e.PP | 0x04 // bit 2 is architecturally fixed to 1
	if e.W {
		p1 |= 0x80
	}
	p1 |= (15 - e.Vvvv) << 3

	p2 := e.Mask & 0x07
	if !e.Vp {
		p2 |= 0x08
	}
	if e.Broadcast {
		p2 |= 0x10
	}
	p2 |= (e.L & 0x03) << 5
	if e.Z {
		p2 |= 0x80
	}

	return []byte{0x62, p0, p1, p2}
}

// vvvvEncoding returns the low four bits of the NDS register's encoding;
// the fifth bit travels separately as EVEX.V'.
func vvvvEncoding(instr x86_64.Instruction, desc *opcodetable.Descriptor) byte {
	for i, spec := range desc.Operands {
		if spec.Role == opcodetable.RoleVexVvvv && instr.Operands[i].Kind == x86_64.OperandKindReg {
			return instr.Operands[i].Reg.Encoding & 0x0F
		}
	}
	return 0
}

func vecIsYMM(instr x86_64.Instruction, desc *opcodetable.Descriptor) bool {
	for i, spec := range desc.Operands {
		if spec.Class != opcodetable.ClassXMMOrYMM {
			continue
		}
		op := instr.Operands[i]
		if op.Kind == x86_64.OperandKindReg && op.Reg.Type == x86_64.RegisterYMM {
			return true
		}
	}
	return false
}

func vecLBits(instr x86_64.Instruction, desc *opcodetable.Descriptor) byte {
	for i, spec := range desc.Operands {
		if spec.Class != opcodetable.ClassXMMOrYMM {
			continue
		}
		op := instr.Operands[i]
		if op.Kind != x86_64.OperandKindReg {
			continue
		}
		switch op.Reg.Type {
		case x86_64.RegisterYMM:
			return 1
		case x86_64.RegisterZMM:
			return 2
		}
	}
	return 0
}
