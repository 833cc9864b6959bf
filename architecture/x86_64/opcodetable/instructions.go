package opcodetable

import "github.com/keurnel/x86codec/architecture/x86_64"

// buildDescriptors is the static instruction table. Its shape mirrors the
// architecture's own InstructionsByMnemonic map (MOV/ADD/PUSH/... as plain
// struct literals keyed by opcode bytes); this is the same table turned
// around to be keyed for decode dispatch instead of mnemonic lookup, and
// extended with the string-instruction and VEX forms a byte-level codec
// needs that the mnemonic-oriented table never had to express. Regular
// families (the eight arithmetic/logical group-1 mnemonics, the shift
// group, the F6/F7 unary group, the two-letter condition codes) are
// generated by a small helper per family rather than typed out by hand 300
// times over, the same way a hand-rolled opcode map in this corpus would
// favour a loop over copy-pasted literals for a mechanically regular table.
func buildDescriptors() []*Descriptor {
	var d []*Descriptor
	d = append(d, fixedFormDescriptors()...)
	d = append(d, group1ArithmeticDescriptors()...)
	d = append(d, group1ImmediateDescriptors()...)
	d = append(d, groupF6F7Descriptors()...)
	d = append(d, groupFFDescriptors()...)
	d = append(d, shiftGroupDescriptors()...)
	d = append(d, conditionCodeDescriptors()...)
	d = append(d, stringOpDescriptors()...)
	d = append(d, bitOpDescriptors()...)
	d = append(d, flagAndSystemDescriptors()...)
	d = append(d, sseDescriptors()...)
	d = append(d, vexDescriptors()...)
	return d
}

// fixedFormDescriptors covers every opcode that is not part of a mechanical
// family: single-mnemonic data movement, control transfer, and
// zero/one-operand forms.
func fixedFormDescriptors() []*Descriptor {
	return []*Descriptor{
		// NOP - single byte, no operands.
		{Mnemonic: "NOP", Map: x86_64.MapLegacy, Opcode: 0x90},

		// Multi-byte NOP - 0F 1F /0, Ev. The classic "long NOP" family used
		// for alignment padding; its sole operand is always discarded but
		// still has to decode/encode like any other r/m operand.
		{
			Mnemonic: "NOP", Map: x86_64.Map0F, Opcode: 0x1F, OpcodeExt: 0, HasOpcodeExt: true, ModRM: true,
			Operands: []OperandSpec{{Role: RoleModRMRM, Class: ClassGPR}},
		},

		// MOV r/m8, r8
		{
			Mnemonic: "MOV", Map: x86_64.MapLegacy, Opcode: 0x88, ModRM: true,
			Operands: []OperandSpec{
				{Role: RoleModRMRM, Class: ClassGPR, Width: 8},
				{Role: RoleModRMReg, Class: ClassGPR, Width: 8},
			},
		},
		// MOV r/m, r (16/32/64 resolved from context)
		{
			Mnemonic: "MOV", Map: x86_64.MapLegacy, Opcode: 0x89, ModRM: true,
			Operands: []OperandSpec{
				{Role: RoleModRMRM, Class: ClassGPR},
				{Role: RoleModRMReg, Class: ClassGPR},
			},
		},
		// MOV r, r/m (the reverse-direction twin of 0x89, needed so that a
		// register destination read from memory round-trips; canonicalised
		// to 0x89 on encode whenever both operands are registers).
		{
			Mnemonic: "MOV", Map: x86_64.MapLegacy, Opcode: 0x8B, ModRM: true,
			Operands: []OperandSpec{
				{Role: RoleModRMReg, Class: ClassGPR},
				{Role: RoleModRMRM, Class: ClassGPR},
			},
		},
		// MOV r8, imm8
		{
			Mnemonic: "MOV", Map: x86_64.MapLegacy, Opcode: 0xB0, RegInOpcode: true, ImmWidth: 8,
			Operands: []OperandSpec{
				{Role: RoleOpcodeReg, Class: ClassGPR, Width: 8},
				{Role: RoleImm},
			},
		},
		// MOV r16/r32, imm16/imm32 (width resolved from the operand-size
		// prefix; REX.W is handled by the MOVABS descriptor below instead).
		{
			Mnemonic: "MOV", Map: x86_64.MapLegacy, Opcode: 0xB8, RegInOpcode: true, ImmWidth: -1, ReqREXW: 2,
			Operands: []OperandSpec{
				{Role: RoleOpcodeReg, Class: ClassGPR},
				{Role: RoleImm},
			},
		},
		// MOVABS r64, imm64 - same opcode byte as MOV r32,imm32 above, but
		// REX.W selects both the 64-bit destination register and the full
		// 8-byte immediate; §8 scenario 5 requires the 10-byte form here,
		// never a narrower canonicalisation.
		{
			Mnemonic: "MOVABS", Map: x86_64.MapLegacy, Opcode: 0xB8, RegInOpcode: true, ImmWidth: 64, ReqREXW: 1,
			Operands: []OperandSpec{
				{Role: RoleOpcodeReg, Class: ClassGPR, Width: 64},
				{Role: RoleImm},
			},
		},

		// MOV r/m8, imm8
		{
			Mnemonic: "MOV", Map: x86_64.MapLegacy, Opcode: 0xC6, OpcodeExt: 0, HasOpcodeExt: true, ModRM: true, ImmWidth: 8,
			Operands: []OperandSpec{
				{Role: RoleModRMRM, Class: ClassGPR, Width: 8},
				{Role: RoleImm},
			},
		},
		// MOV r/m, immz - the narrow alternative to MOVABS: a 64-bit
		// destination still only carries a 32-bit sign-extended immediate
		// here, so an immediate that doesn't fit int32 must fall back to
		// the MOVABS/0xB8+rd form instead (enforced by the encoder's
		// shortest-legal-encoding search, not by this descriptor).
		{
			Mnemonic: "MOV", Map: x86_64.MapLegacy, Opcode: 0xC7, OpcodeExt: 0, HasOpcodeExt: true, ModRM: true, ImmWidth: -1,
			Operands: []OperandSpec{
				{Role: RoleModRMRM, Class: ClassGPR},
				{Role: RoleImm},
			},
		},

		// LEA r, m - mod=11 is a reserved encoding here; there is no address
		// to compute for a register source.
		{
			Mnemonic: "LEA", Map: x86_64.MapLegacy, Opcode: 0x8D, ModRM: true, MemOnly: true,
			Operands: []OperandSpec{
				{Role: RoleModRMReg, Class: ClassGPR},
				{Role: RoleModRMRM, Class: ClassGPR},
			},
		},

		// TEST - the register forms; the imm forms live with the F6/F7 group
		// and the accumulator shortcuts below.
		{
			Mnemonic: "TEST", Map: x86_64.MapLegacy, Opcode: 0x84, ModRM: true,
			Operands: []OperandSpec{
				{Role: RoleModRMRM, Class: ClassGPR, Width: 8},
				{Role: RoleModRMReg, Class: ClassGPR, Width: 8},
			},
		},
		{
			Mnemonic: "TEST", Map: x86_64.MapLegacy, Opcode: 0x85, ModRM: true,
			Operands: []OperandSpec{
				{Role: RoleModRMRM, Class: ClassGPR},
				{Role: RoleModRMReg, Class: ClassGPR},
			},
		},
		{
			Mnemonic: "TEST", Map: x86_64.MapLegacy, Opcode: 0xA8, ImmWidth: 8,
			Operands: []OperandSpec{
				{Role: RoleImplicitAcc, Class: ClassGPR, Width: 8},
				{Role: RoleImm},
			},
		},
		{
			Mnemonic: "TEST", Map: x86_64.MapLegacy, Opcode: 0xA9, ImmWidth: -1,
			Operands: []OperandSpec{
				{Role: RoleImplicitAcc, Class: ClassGPR},
				{Role: RoleImm},
			},
		},

		// PUSH r64 (the opcode's low 3 bits, not REX.W, select the 64-bit
		// register in 64-bit mode - PUSH/POP have no 32-bit form there).
		{
			Mnemonic: "PUSH", Map: x86_64.MapLegacy, Opcode: 0x50, RegInOpcode: true,
			Operands: []OperandSpec{{Role: RoleOpcodeReg, Class: ClassGPR, Width: 64}},
		},
		// PUSH imm32
		{
			Mnemonic: "PUSH", Map: x86_64.MapLegacy, Opcode: 0x68, ImmWidth: 32,
			Operands: []OperandSpec{{Role: RoleImm}},
		},
		// PUSH imm8
		{
			Mnemonic: "PUSH", Map: x86_64.MapLegacy, Opcode: 0x6A, ImmWidth: 8,
			Operands: []OperandSpec{{Role: RoleImm}},
		},
		// POP r64
		{
			Mnemonic: "POP", Map: x86_64.MapLegacy, Opcode: 0x58, RegInOpcode: true,
			Operands: []OperandSpec{{Role: RoleOpcodeReg, Class: ClassGPR, Width: 64}},
		},

		// XCHG r/m, r
		{
			Mnemonic: "XCHG", Map: x86_64.MapLegacy, Opcode: 0x87, ModRM: true,
			Operands: []OperandSpec{
				{Role: RoleModRMRM, Class: ClassGPR},
				{Role: RoleModRMReg, Class: ClassGPR},
			},
		},
		{
			Mnemonic: "XCHG", Map: x86_64.MapLegacy, Opcode: 0x86, ModRM: true,
			Operands: []OperandSpec{
				{Role: RoleModRMRM, Class: ClassGPR, Width: 8},
				{Role: RoleModRMReg, Class: ClassGPR, Width: 8},
			},
		},

		// MOVZX/MOVSX - the destination is always wider than the source, so
		// the source width is fixed by the opcode byte and the destination
		// resolves from context (operand-size prefix/REX.W) like any other
		// general-purpose ModR/M.reg operand.
		{
			Mnemonic: "MOVZX", Map: x86_64.Map0F, Opcode: 0xB6, ModRM: true,
			Operands: []OperandSpec{
				{Role: RoleModRMReg, Class: ClassGPR},
				{Role: RoleModRMRM, Class: ClassGPR, Width: 8},
			},
		},
		{
			Mnemonic: "MOVZX", Map: x86_64.Map0F, Opcode: 0xB7, ModRM: true,
			Operands: []OperandSpec{
				{Role: RoleModRMReg, Class: ClassGPR},
				{Role: RoleModRMRM, Class: ClassGPR, Width: 16},
			},
		},
		{
			Mnemonic: "MOVSX", Map: x86_64.Map0F, Opcode: 0xBE, ModRM: true,
			Operands: []OperandSpec{
				{Role: RoleModRMReg, Class: ClassGPR},
				{Role: RoleModRMRM, Class: ClassGPR, Width: 8},
			},
		},
		{
			Mnemonic: "MOVSX", Map: x86_64.Map0F, Opcode: 0xBF, ModRM: true,
			Operands: []OperandSpec{
				{Role: RoleModRMReg, Class: ClassGPR},
				{Role: RoleModRMRM, Class: ClassGPR, Width: 16},
			},
		},
		// IMUL r, r/m (two-operand form; the one-operand Eb/Ev form lives in
		// the F6/F7 group below alongside MUL/DIV/IDIV).
		{
			Mnemonic: "IMUL", Map: x86_64.Map0F, Opcode: 0xAF, ModRM: true,
			Operands: []OperandSpec{
				{Role: RoleModRMReg, Class: ClassGPR},
				{Role: RoleModRMRM, Class: ClassGPR},
			},
		},

		// Control transfer.
		{Mnemonic: "CALL", Map: x86_64.MapLegacy, Opcode: 0xE8, ImmWidth: 32, Operands: []OperandSpec{{Role: RoleImm}}},
		{Mnemonic: "JMP", Map: x86_64.MapLegacy, Opcode: 0xE9, ImmWidth: 32, Operands: []OperandSpec{{Role: RoleImm}}},
		{Mnemonic: "JMP", Map: x86_64.MapLegacy, Opcode: 0xEB, ImmWidth: 8, Operands: []OperandSpec{{Role: RoleImm}}},
		{Mnemonic: "RET", Map: x86_64.MapLegacy, Opcode: 0xC3},
		{Mnemonic: "RET", Map: x86_64.MapLegacy, Opcode: 0xC2, ImmWidth: 16, Operands: []OperandSpec{{Role: RoleImm}}},
		{Mnemonic: "LEAVE", Map: x86_64.MapLegacy, Opcode: 0xC9},
		{Mnemonic: "HLT", Map: x86_64.MapLegacy, Opcode: 0xF4},
		{Mnemonic: "INT3", Map: x86_64.MapLegacy, Opcode: 0xCC},
		{Mnemonic: "CDQ", Map: x86_64.MapLegacy, Opcode: 0x99, ReqREXW: 2},
		{Mnemonic: "CQO", Map: x86_64.MapLegacy, Opcode: 0x99, ReqREXW: 1},
		{Mnemonic: "CPUID", Map: x86_64.Map0F, Opcode: 0xA2},

		// PREFETCHNTA/T0/T1/T2 - 0F 18 /0../3, Mb. Like long NOP, the operand
		// is decoded and re-encoded but carries no runtime meaning for this
		// codec.
		{
			Mnemonic: "PREFETCHNTA", Map: x86_64.Map0F, Opcode: 0x18, OpcodeExt: 0, HasOpcodeExt: true, ModRM: true, MemOnly: true,
			Operands: []OperandSpec{{Role: RoleModRMRM, Class: ClassGPR, Width: 8}},
		},
		{
			Mnemonic: "PREFETCHT0", Map: x86_64.Map0F, Opcode: 0x18, OpcodeExt: 1, HasOpcodeExt: true, ModRM: true, MemOnly: true,
			Operands: []OperandSpec{{Role: RoleModRMRM, Class: ClassGPR, Width: 8}},
		},
		{
			Mnemonic: "PREFETCHT1", Map: x86_64.Map0F, Opcode: 0x18, OpcodeExt: 2, HasOpcodeExt: true, ModRM: true, MemOnly: true,
			Operands: []OperandSpec{{Role: RoleModRMRM, Class: ClassGPR, Width: 8}},
		},
		{
			Mnemonic: "PREFETCHT2", Map: x86_64.Map0F, Opcode: 0x18, OpcodeExt: 3, HasOpcodeExt: true, ModRM: true, MemOnly: true,
			Operands: []OperandSpec{{Role: RoleModRMRM, Class: ClassGPR, Width: 8}},
		},

		// IMUL r, r/m, imm - the three-operand forms; 0x6B takes a
		// sign-extended imm8 and 0x69 the full immz, so the encoder's
		// shortest-immediate rule picks between them.
		{
			Mnemonic: "IMUL", Map: x86_64.MapLegacy, Opcode: 0x6B, ModRM: true, ImmWidth: 8,
			Operands: []OperandSpec{
				{Role: RoleModRMReg, Class: ClassGPR},
				{Role: RoleModRMRM, Class: ClassGPR},
				{Role: RoleImm},
			},
		},
		{
			Mnemonic: "IMUL", Map: x86_64.MapLegacy, Opcode: 0x69, ModRM: true, ImmWidth: -1,
			Operands: []OperandSpec{
				{Role: RoleModRMReg, Class: ClassGPR},
				{Role: RoleModRMRM, Class: ClassGPR},
				{Role: RoleImm},
			},
		},

		// MOVBE - 0F 38 F0/F1, the only legacy three-byte-map loads/stores
		// in the table. Memory operand only; mod=11 selects CRC32's
		// encoding space instead and is reserved here.
		{
			Mnemonic: "MOVBE", Map: x86_64.Map0F38, Opcode: 0xF0, ModRM: true, MemOnly: true,
			Operands: []OperandSpec{
				{Role: RoleModRMReg, Class: ClassGPR},
				{Role: RoleModRMRM, Class: ClassGPR},
			},
		},
		{
			Mnemonic: "MOVBE", Map: x86_64.Map0F38, Opcode: 0xF1, ModRM: true, MemOnly: true,
			Operands: []OperandSpec{
				{Role: RoleModRMRM, Class: ClassGPR},
				{Role: RoleModRMReg, Class: ClassGPR},
			},
		},
	}
}

// group1Entry is one row of the eight-mnemonic arithmetic/logical family
// that shares an identical five-opcode shape, differing only in the base
// opcode byte and the /digit used by the 0x80/0x81/0x83 immediate forms.
type group1Entry struct {
	mnemonic string
	base     byte // Eb/Gb form is base+0x00
	ext      byte // /digit used by the immediate-group encodings
}

var group1Family = []group1Entry{
	{"ADD", 0x00, 0},
	{"OR", 0x08, 1},
	{"ADC", 0x10, 2},
	{"SBB", 0x18, 3},
	{"AND", 0x20, 4},
	{"SUB", 0x28, 5},
	{"XOR", 0x30, 6},
	{"CMP", 0x38, 7},
}

// group1ArithmeticDescriptors generates the register/memory forms (Eb,Gb /
// Ev,Gv / Gb,Eb / Gv,Ev) for every group1Family mnemonic.
func group1ArithmeticDescriptors() []*Descriptor {
	var d []*Descriptor
	for _, g := range group1Family {
		d = append(d,
			&Descriptor{
				Mnemonic: g.mnemonic, Map: x86_64.MapLegacy, Opcode: g.base + 0x00, ModRM: true,
				Operands: []OperandSpec{
					{Role: RoleModRMRM, Class: ClassGPR, Width: 8},
					{Role: RoleModRMReg, Class: ClassGPR, Width: 8},
				},
			},
			&Descriptor{
				Mnemonic: g.mnemonic, Map: x86_64.MapLegacy, Opcode: g.base + 0x01, ModRM: true,
				Operands: []OperandSpec{
					{Role: RoleModRMRM, Class: ClassGPR},
					{Role: RoleModRMReg, Class: ClassGPR},
				},
			},
			&Descriptor{
				Mnemonic: g.mnemonic, Map: x86_64.MapLegacy, Opcode: g.base + 0x02, ModRM: true,
				Operands: []OperandSpec{
					{Role: RoleModRMReg, Class: ClassGPR, Width: 8},
					{Role: RoleModRMRM, Class: ClassGPR, Width: 8},
				},
			},
			&Descriptor{
				Mnemonic: g.mnemonic, Map: x86_64.MapLegacy, Opcode: g.base + 0x03, ModRM: true,
				Operands: []OperandSpec{
					{Role: RoleModRMReg, Class: ClassGPR},
					{Role: RoleModRMRM, Class: ClassGPR},
				},
			},
		)
	}
	return d
}

// group1ImmediateDescriptors generates the 0x80/0x81/0x83 immediate forms,
// disambiguated from each other (same opcode byte, eight mnemonics) by the
// ModR/M.reg /digit extension.
func group1ImmediateDescriptors() []*Descriptor {
	var d []*Descriptor
	for _, g := range group1Family {
		d = append(d,
			// Eb, imm8
			&Descriptor{
				Mnemonic: g.mnemonic, Map: x86_64.MapLegacy, Opcode: 0x80, OpcodeExt: g.ext, HasOpcodeExt: true, ModRM: true, ImmWidth: 8,
				Operands: []OperandSpec{
					{Role: RoleModRMRM, Class: ClassGPR, Width: 8},
					{Role: RoleImm},
				},
			},
			// Ev, immz
			&Descriptor{
				Mnemonic: g.mnemonic, Map: x86_64.MapLegacy, Opcode: 0x81, OpcodeExt: g.ext, HasOpcodeExt: true, ModRM: true, ImmWidth: -1,
				Operands: []OperandSpec{
					{Role: RoleModRMRM, Class: ClassGPR},
					{Role: RoleImm},
				},
			},
			// Ev, imm8 (sign-extended to the operand width at decode time)
			&Descriptor{
				Mnemonic: g.mnemonic, Map: x86_64.MapLegacy, Opcode: 0x83, OpcodeExt: g.ext, HasOpcodeExt: true, ModRM: true, ImmWidth: 8,
				Operands: []OperandSpec{
					{Role: RoleModRMRM, Class: ClassGPR},
					{Role: RoleImm},
				},
			},
			// AL, imm8 - the short accumulator form, one byte tighter than
			// 0x80 /digit since it carries no ModR/M byte.
			&Descriptor{
				Mnemonic: g.mnemonic, Map: x86_64.MapLegacy, Opcode: g.base + 0x04, ImmWidth: 8,
				Operands: []OperandSpec{
					{Role: RoleImplicitAcc, Class: ClassGPR, Width: 8},
					{Role: RoleImm},
				},
			},
			// eAX, immz
			&Descriptor{
				Mnemonic: g.mnemonic, Map: x86_64.MapLegacy, Opcode: g.base + 0x05, ImmWidth: -1,
				Operands: []OperandSpec{
					{Role: RoleImplicitAcc, Class: ClassGPR},
					{Role: RoleImm},
				},
			},
		)
	}
	return d
}

// groupF6F7Descriptors covers the F6/F7 unary group: TEST/NOT/NEG/MUL/IMUL/
// DIV/IDIV, selected by ModR/M.reg. Only the explicit r/m operand that is
// actually encoded in the bytes is modelled; the implicit AL/AX:DX
// accumulator operands MUL/IMUL/DIV/IDIV also read and write are not part of
// the byte encoding and so are outside this codec's operand model, the same
// way string instructions only expose their RSI/RDI memory operands.
func groupF6F7Descriptors() []*Descriptor {
	unary := []struct {
		mnemonic string
		ext      byte
		hasImm   bool
	}{
		{"TEST", 0, true},
		{"NOT", 2, false},
		{"NEG", 3, false},
		{"MUL", 4, false},
		{"IMUL", 5, false},
		{"DIV", 6, false},
		{"IDIV", 7, false},
	}
	var d []*Descriptor
	for _, u := range unary {
		ops8 := []OperandSpec{{Role: RoleModRMRM, Class: ClassGPR, Width: 8}}
		ops := []OperandSpec{{Role: RoleModRMRM, Class: ClassGPR}}
		immWidth8, immWidthWide := 0, 0
		if u.hasImm {
			ops8 = append(ops8, OperandSpec{Role: RoleImm})
			ops = append(ops, OperandSpec{Role: RoleImm})
			immWidth8, immWidthWide = 8, -1
		}
		d = append(d,
			&Descriptor{Mnemonic: u.mnemonic, Map: x86_64.MapLegacy, Opcode: 0xF6, OpcodeExt: u.ext, HasOpcodeExt: true, ModRM: true, ImmWidth: immWidth8, Operands: ops8},
			&Descriptor{Mnemonic: u.mnemonic, Map: x86_64.MapLegacy, Opcode: 0xF7, OpcodeExt: u.ext, HasOpcodeExt: true, ModRM: true, ImmWidth: immWidthWide, Operands: ops},
		)
	}
	return d
}

// groupFFDescriptors covers the FF group (INC/DEC/near CALL/JMP/PUSH via
// Ev) and the matching single-byte-opcode INC/DEC forms are deliberately
// absent: those encodings (0x40-0x4F) are repurposed as the REX prefix in
// 64-bit mode, so INC/DEC only exist through this ModR/M-dispatched group
// here.
func groupFFDescriptors() []*Descriptor {
	return []*Descriptor{
		{Mnemonic: "INC", Map: x86_64.MapLegacy, Opcode: 0xFF, OpcodeExt: 0, HasOpcodeExt: true, ModRM: true, Operands: []OperandSpec{{Role: RoleModRMRM, Class: ClassGPR}}},
		{Mnemonic: "DEC", Map: x86_64.MapLegacy, Opcode: 0xFF, OpcodeExt: 1, HasOpcodeExt: true, ModRM: true, Operands: []OperandSpec{{Role: RoleModRMRM, Class: ClassGPR}}},
		{Mnemonic: "CALL", Map: x86_64.MapLegacy, Opcode: 0xFF, OpcodeExt: 2, HasOpcodeExt: true, ModRM: true, Operands: []OperandSpec{{Role: RoleModRMRM, Class: ClassGPR, Width: 64}}},
		{Mnemonic: "JMP", Map: x86_64.MapLegacy, Opcode: 0xFF, OpcodeExt: 4, HasOpcodeExt: true, ModRM: true, Operands: []OperandSpec{{Role: RoleModRMRM, Class: ClassGPR, Width: 64}}},
		{Mnemonic: "PUSH", Map: x86_64.MapLegacy, Opcode: 0xFF, OpcodeExt: 6, HasOpcodeExt: true, ModRM: true, Operands: []OperandSpec{{Role: RoleModRMRM, Class: ClassGPR, Width: 64}}},
		{Mnemonic: "INC", Map: x86_64.MapLegacy, Opcode: 0xFE, OpcodeExt: 0, HasOpcodeExt: true, ModRM: true, Operands: []OperandSpec{{Role: RoleModRMRM, Class: ClassGPR, Width: 8}}},
		{Mnemonic: "DEC", Map: x86_64.MapLegacy, Opcode: 0xFE, OpcodeExt: 1, HasOpcodeExt: true, ModRM: true, Operands: []OperandSpec{{Role: RoleModRMRM, Class: ClassGPR, Width: 8}}},
	}
}

// shiftGroupDescriptors covers the C0/C1 shift-by-imm8 group. The D0-D3
// shift-by-1/shift-by-CL forms take no ModR/M-external operand (an implicit
// 1 or CL) and are left out for the same reason as the F6/F7 accumulator
// operands: nothing in the byte encoding names them as an operand.
func shiftGroupDescriptors() []*Descriptor {
	shifts := []struct {
		mnemonic string
		ext      byte
	}{
		{"ROL", 0}, {"ROR", 1}, {"RCL", 2}, {"RCR", 3},
		{"SHL", 4}, {"SHR", 5}, {"SAR", 7},
	}
	var d []*Descriptor
	for _, s := range shifts {
		d = append(d,
			&Descriptor{
				Mnemonic: s.mnemonic, Map: x86_64.MapLegacy, Opcode: 0xC0, OpcodeExt: s.ext, HasOpcodeExt: true, ModRM: true, ImmWidth: 8,
				Operands: []OperandSpec{{Role: RoleModRMRM, Class: ClassGPR, Width: 8}, {Role: RoleImm}},
			},
			&Descriptor{
				Mnemonic: s.mnemonic, Map: x86_64.MapLegacy, Opcode: 0xC1, OpcodeExt: s.ext, HasOpcodeExt: true, ModRM: true, ImmWidth: 8,
				Operands: []OperandSpec{{Role: RoleModRMRM, Class: ClassGPR}, {Role: RoleImm}},
			},
		)
	}
	return d
}

// conditionCode is one of the sixteen condition-code suffixes shared by
// Jcc/SETcc/CMOVcc, keyed by their low nibble.
type conditionCode struct {
	suffix string
	nibble byte
}

var conditionCodes = []conditionCode{
	{"O", 0x0}, {"NO", 0x1}, {"B", 0x2}, {"AE", 0x3},
	{"E", 0x4}, {"NE", 0x5}, {"BE", 0x6}, {"A", 0x7},
	{"S", 0x8}, {"NS", 0x9}, {"P", 0xA}, {"NP", 0xB},
	{"L", 0xC}, {"GE", 0xD}, {"LE", 0xE}, {"G", 0xF},
}

// conditionCodeDescriptors generates Jcc (short and near), SETcc, and CMOVcc
// for all sixteen condition codes.
func conditionCodeDescriptors() []*Descriptor {
	var d []*Descriptor
	for _, c := range conditionCodes {
		d = append(d,
			&Descriptor{
				Mnemonic: "J" + c.suffix, Map: x86_64.MapLegacy, Opcode: 0x70 | c.nibble, ImmWidth: 8,
				Operands: []OperandSpec{{Role: RoleImm}},
			},
			&Descriptor{
				Mnemonic: "J" + c.suffix, Map: x86_64.Map0F, Opcode: 0x80 | c.nibble, ImmWidth: 32,
				Operands: []OperandSpec{{Role: RoleImm}},
			},
			&Descriptor{
				Mnemonic: "SET" + c.suffix, Map: x86_64.Map0F, Opcode: 0x90 | c.nibble, ModRM: true,
				Operands: []OperandSpec{{Role: RoleModRMRM, Class: ClassGPR, Width: 8}},
			},
			&Descriptor{
				Mnemonic: "CMOV" + c.suffix, Map: x86_64.Map0F, Opcode: 0x40 | c.nibble, ModRM: true,
				Operands: []OperandSpec{
					{Role: RoleModRMReg, Class: ClassGPR},
					{Role: RoleModRMRM, Class: ClassGPR},
				},
			},
		)
	}
	return d
}

// stringOpDescriptors covers the string-instruction family's memory forms.
// Every one of these always carries an implicit ES:[RDI] and/or DS:[RSI]
// operand pair; the decoder resolves RoleImplicitRDI/RoleImplicitRSI
// directly rather than consulting ModR/M, since none of these opcodes carry
// one.
func stringOpDescriptors() []*Descriptor {
	return []*Descriptor{
		{Mnemonic: "MOVS", Map: x86_64.MapLegacy, Opcode: 0xA4, Operands: []OperandSpec{{Role: RoleImplicitRDI, Width: 8}, {Role: RoleImplicitRSI, Width: 8}}},
		{Mnemonic: "MOVS", Map: x86_64.MapLegacy, Opcode: 0xA5, Operands: []OperandSpec{{Role: RoleImplicitRDI}, {Role: RoleImplicitRSI}}},
		{Mnemonic: "CMPS", Map: x86_64.MapLegacy, Opcode: 0xA6, Operands: []OperandSpec{{Role: RoleImplicitRSI, Width: 8}, {Role: RoleImplicitRDI, Width: 8}}},
		{Mnemonic: "CMPS", Map: x86_64.MapLegacy, Opcode: 0xA7, Operands: []OperandSpec{{Role: RoleImplicitRSI}, {Role: RoleImplicitRDI}}},
		{Mnemonic: "STOS", Map: x86_64.MapLegacy, Opcode: 0xAA, Operands: []OperandSpec{{Role: RoleImplicitRDI, Width: 8}}},
		{Mnemonic: "STOS", Map: x86_64.MapLegacy, Opcode: 0xAB, Operands: []OperandSpec{{Role: RoleImplicitRDI}}},
		{Mnemonic: "LODS", Map: x86_64.MapLegacy, Opcode: 0xAC, Operands: []OperandSpec{{Role: RoleImplicitRSI, Width: 8}}},
		{Mnemonic: "LODS", Map: x86_64.MapLegacy, Opcode: 0xAD, Operands: []OperandSpec{{Role: RoleImplicitRSI}}},
		{Mnemonic: "SCAS", Map: x86_64.MapLegacy, Opcode: 0xAE, Operands: []OperandSpec{{Role: RoleImplicitRDI, Width: 8}}},
		{Mnemonic: "SCAS", Map: x86_64.MapLegacy, Opcode: 0xAF, Operands: []OperandSpec{{Role: RoleImplicitRDI}}},
	}
}

// bitOpDescriptors covers the 0F-map bit-test, bit-scan, and exchange
// extensions: BT/BTS/BTR/BTC (register and /digit-immediate forms), BSF/BSR
// and their F3-prefixed LZCNT/TZCNT/POPCNT relatives, CMPXCHG, XADD, and
// BSWAP.
func bitOpDescriptors() []*Descriptor {
	bit := []struct {
		mnemonic string
		opcode   byte
		ext      byte
	}{
		{"BT", 0xA3, 4},
		{"BTS", 0xAB, 5},
		{"BTR", 0xB3, 6},
		{"BTC", 0xBB, 7},
	}
	var d []*Descriptor
	for _, b := range bit {
		d = append(d,
			// BTx r/m, r
			&Descriptor{
				Mnemonic: b.mnemonic, Map: x86_64.Map0F, Opcode: b.opcode, ModRM: true,
				Operands: []OperandSpec{
					{Role: RoleModRMRM, Class: ClassGPR},
					{Role: RoleModRMReg, Class: ClassGPR},
				},
			},
			// BTx r/m, imm8 - all four share opcode 0F BA, split by /digit.
			&Descriptor{
				Mnemonic: b.mnemonic, Map: x86_64.Map0F, Opcode: 0xBA, OpcodeExt: b.ext, HasOpcodeExt: true, ModRM: true, ImmWidth: 8,
				Operands: []OperandSpec{
					{Role: RoleModRMRM, Class: ClassGPR},
					{Role: RoleImm},
				},
			},
		)
	}

	scan := []struct {
		mnemonic string
		opcode   byte
	}{
		{"BSF", 0xBC},
		{"BSR", 0xBD},
	}
	for _, s := range scan {
		d = append(d, &Descriptor{
			Mnemonic: s.mnemonic, Map: x86_64.Map0F, Opcode: s.opcode, ModRM: true,
			Operands: []OperandSpec{
				{Role: RoleModRMReg, Class: ClassGPR},
				{Role: RoleModRMRM, Class: ClassGPR},
			},
		})
	}

	// The F3-prefixed relatives reuse the BSF/BSR opcode bytes (and 0F B8,
	// which is unassigned without the prefix).
	counted := []struct {
		mnemonic string
		opcode   byte
	}{
		{"POPCNT", 0xB8},
		{"TZCNT", 0xBC},
		{"LZCNT", 0xBD},
	}
	for _, c := range counted {
		d = append(d, &Descriptor{
			Mnemonic: c.mnemonic, Map: x86_64.Map0F, Opcode: c.opcode, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixRep),
			Operands: []OperandSpec{
				{Role: RoleModRMReg, Class: ClassGPR},
				{Role: RoleModRMRM, Class: ClassGPR},
			},
		})
	}

	d = append(d,
		&Descriptor{
			Mnemonic: "CMPXCHG", Map: x86_64.Map0F, Opcode: 0xB0, ModRM: true,
			Operands: []OperandSpec{
				{Role: RoleModRMRM, Class: ClassGPR, Width: 8},
				{Role: RoleModRMReg, Class: ClassGPR, Width: 8},
			},
		},
		&Descriptor{
			Mnemonic: "CMPXCHG", Map: x86_64.Map0F, Opcode: 0xB1, ModRM: true,
			Operands: []OperandSpec{
				{Role: RoleModRMRM, Class: ClassGPR},
				{Role: RoleModRMReg, Class: ClassGPR},
			},
		},
		&Descriptor{
			Mnemonic: "XADD", Map: x86_64.Map0F, Opcode: 0xC0, ModRM: true,
			Operands: []OperandSpec{
				{Role: RoleModRMRM, Class: ClassGPR, Width: 8},
				{Role: RoleModRMReg, Class: ClassGPR, Width: 8},
			},
		},
		&Descriptor{
			Mnemonic: "XADD", Map: x86_64.Map0F, Opcode: 0xC1, ModRM: true,
			Operands: []OperandSpec{
				{Role: RoleModRMRM, Class: ClassGPR},
				{Role: RoleModRMReg, Class: ClassGPR},
			},
		},
		&Descriptor{
			Mnemonic: "BSWAP", Map: x86_64.Map0F, Opcode: 0xC8, RegInOpcode: true,
			Operands: []OperandSpec{{Role: RoleOpcodeReg, Class: ClassGPR}},
		},
	)
	return d
}

// flagAndSystemDescriptors covers the zero-operand flag manipulation and
// system instructions: single bytes in the legacy map plus a handful of 0F
// escapes.
func flagAndSystemDescriptors() []*Descriptor {
	return []*Descriptor{
		{Mnemonic: "CMC", Map: x86_64.MapLegacy, Opcode: 0xF5},
		{Mnemonic: "CLC", Map: x86_64.MapLegacy, Opcode: 0xF8},
		{Mnemonic: "STC", Map: x86_64.MapLegacy, Opcode: 0xF9},
		{Mnemonic: "CLI", Map: x86_64.MapLegacy, Opcode: 0xFA},
		{Mnemonic: "STI", Map: x86_64.MapLegacy, Opcode: 0xFB},
		{Mnemonic: "CLD", Map: x86_64.MapLegacy, Opcode: 0xFC},
		{Mnemonic: "STD", Map: x86_64.MapLegacy, Opcode: 0xFD},
		{Mnemonic: "PUSHF", Map: x86_64.MapLegacy, Opcode: 0x9C},
		{Mnemonic: "POPF", Map: x86_64.MapLegacy, Opcode: 0x9D},
		// 0x98 sign-extends the accumulator in place; like 0x99 the REX.W
		// bit selects which widening it names.
		{Mnemonic: "CWDE", Map: x86_64.MapLegacy, Opcode: 0x98, ReqREXW: 2},
		{Mnemonic: "CDQE", Map: x86_64.MapLegacy, Opcode: 0x98, ReqREXW: 1},
		{Mnemonic: "INT", Map: x86_64.MapLegacy, Opcode: 0xCD, ImmWidth: 8, Operands: []OperandSpec{{Role: RoleImm}}},
		{Mnemonic: "IRET", Map: x86_64.MapLegacy, Opcode: 0xCF},
		{Mnemonic: "SYSCALL", Map: x86_64.Map0F, Opcode: 0x05},
		{Mnemonic: "SYSRET", Map: x86_64.Map0F, Opcode: 0x07},
		{Mnemonic: "UD2", Map: x86_64.Map0F, Opcode: 0x0B},
		{Mnemonic: "RDTSC", Map: x86_64.Map0F, Opcode: 0x31},
		// PAUSE is NOP's F3-selected variant, the same mandatory-prefix
		// duality as the SSE families.
		{Mnemonic: "PAUSE", Map: x86_64.MapLegacy, Opcode: 0x90, MandatoryPrefix: byte(x86_64.PrefixRep)},
	}
}

// sseDescriptors covers the legacy-SSE move family, selected by mandatory
// 66/F2/F3 prefix byte rather than by a distinct opcode.
func sseDescriptors() []*Descriptor {
	xmm := func(role OperandRole) OperandSpec { return OperandSpec{Role: role, Class: ClassXMMOrYMM, Width: 128} }
	return []*Descriptor{
		{Mnemonic: "MOVUPS", Map: x86_64.Map0F, Opcode: 0x10, ModRM: true, Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "MOVUPS", Map: x86_64.Map0F, Opcode: 0x11, ModRM: true, Operands: []OperandSpec{xmm(RoleModRMRM), xmm(RoleModRMReg)}},
		{Mnemonic: "MOVUPD", Map: x86_64.Map0F, Opcode: 0x10, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixOperandSize), Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "MOVUPD", Map: x86_64.Map0F, Opcode: 0x11, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixOperandSize), Operands: []OperandSpec{xmm(RoleModRMRM), xmm(RoleModRMReg)}},
		{Mnemonic: "MOVSS", Map: x86_64.Map0F, Opcode: 0x10, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixRep), Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "MOVSS", Map: x86_64.Map0F, Opcode: 0x11, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixRep), Operands: []OperandSpec{xmm(RoleModRMRM), xmm(RoleModRMReg)}},
		{Mnemonic: "MOVSD", Map: x86_64.Map0F, Opcode: 0x10, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixRepNE), Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "MOVSD", Map: x86_64.Map0F, Opcode: 0x11, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixRepNE), Operands: []OperandSpec{xmm(RoleModRMRM), xmm(RoleModRMReg)}},
		{Mnemonic: "MOVAPS", Map: x86_64.Map0F, Opcode: 0x28, ModRM: true, Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "MOVAPS", Map: x86_64.Map0F, Opcode: 0x29, ModRM: true, Operands: []OperandSpec{xmm(RoleModRMRM), xmm(RoleModRMReg)}},
		{Mnemonic: "MOVAPD", Map: x86_64.Map0F, Opcode: 0x28, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixOperandSize), Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "MOVAPD", Map: x86_64.Map0F, Opcode: 0x29, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixOperandSize), Operands: []OperandSpec{xmm(RoleModRMRM), xmm(RoleModRMReg)}},
		{Mnemonic: "MOVD", Map: x86_64.Map0F, Opcode: 0x6E, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixOperandSize), Operands: []OperandSpec{xmm(RoleModRMReg), {Role: RoleModRMRM, Class: ClassGPR}}},
		{Mnemonic: "MOVD", Map: x86_64.Map0F, Opcode: 0x7E, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixOperandSize), Operands: []OperandSpec{{Role: RoleModRMRM, Class: ClassGPR}, xmm(RoleModRMReg)}},
		{Mnemonic: "PXOR", Map: x86_64.Map0F, Opcode: 0xEF, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixOperandSize), Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "PAND", Map: x86_64.Map0F, Opcode: 0xDB, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixOperandSize), Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "POR", Map: x86_64.Map0F, Opcode: 0xEB, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixOperandSize), Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "PADDB", Map: x86_64.Map0F, Opcode: 0xFC, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixOperandSize), Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "PADDD", Map: x86_64.Map0F, Opcode: 0xFE, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixOperandSize), Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "PADDQ", Map: x86_64.Map0F, Opcode: 0xD4, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixOperandSize), Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "PSUBB", Map: x86_64.Map0F, Opcode: 0xF8, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixOperandSize), Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},

		// The aligned/unaligned double-quadword moves: 66 selects the
		// aligned pair's prefix space, F3 the unaligned one.
		{Mnemonic: "MOVDQA", Map: x86_64.Map0F, Opcode: 0x6F, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixOperandSize), Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "MOVDQA", Map: x86_64.Map0F, Opcode: 0x7F, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixOperandSize), Operands: []OperandSpec{xmm(RoleModRMRM), xmm(RoleModRMReg)}},
		{Mnemonic: "MOVDQU", Map: x86_64.Map0F, Opcode: 0x6F, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixRep), Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "MOVDQU", Map: x86_64.Map0F, Opcode: 0x7F, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixRep), Operands: []OperandSpec{xmm(RoleModRMRM), xmm(RoleModRMReg)}},

		// MOVQ between XMM halves: F3 0F 7E loads, 66 0F D6 stores.
		{Mnemonic: "MOVQ", Map: x86_64.Map0F, Opcode: 0x7E, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixRep), Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "MOVQ", Map: x86_64.Map0F, Opcode: 0xD6, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixOperandSize), Operands: []OperandSpec{xmm(RoleModRMRM), xmm(RoleModRMReg)}},

		// Packed/scalar float arithmetic and compares.
		{Mnemonic: "ADDPS", Map: x86_64.Map0F, Opcode: 0x58, ModRM: true, Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "ADDSD", Map: x86_64.Map0F, Opcode: 0x58, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixRepNE), Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "ADDSS", Map: x86_64.Map0F, Opcode: 0x58, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixRep), Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "MULPS", Map: x86_64.Map0F, Opcode: 0x59, ModRM: true, Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "MULSD", Map: x86_64.Map0F, Opcode: 0x59, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixRepNE), Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "SUBPS", Map: x86_64.Map0F, Opcode: 0x5C, ModRM: true, Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "SUBSD", Map: x86_64.Map0F, Opcode: 0x5C, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixRepNE), Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "DIVSD", Map: x86_64.Map0F, Opcode: 0x5E, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixRepNE), Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "SQRTSD", Map: x86_64.Map0F, Opcode: 0x51, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixRepNE), Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "ANDPS", Map: x86_64.Map0F, Opcode: 0x54, ModRM: true, Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "ORPS", Map: x86_64.Map0F, Opcode: 0x56, ModRM: true, Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "XORPS", Map: x86_64.Map0F, Opcode: 0x57, ModRM: true, Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "UCOMISS", Map: x86_64.Map0F, Opcode: 0x2E, ModRM: true, Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "UCOMISD", Map: x86_64.Map0F, Opcode: 0x2E, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixOperandSize), Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},
		{Mnemonic: "COMISS", Map: x86_64.Map0F, Opcode: 0x2F, ModRM: true, Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)}},

		// PSHUFD takes a shuffle-order imm8 after the ModR/M tail; PALIGNR
		// reaches through the 0F 3A map, the table's third escape level.
		{
			Mnemonic: "PSHUFD", Map: x86_64.Map0F, Opcode: 0x70, ModRM: true, ImmWidth: 8, MandatoryPrefix: byte(x86_64.PrefixOperandSize),
			Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM), {Role: RoleImm}},
		},
		{
			Mnemonic: "PALIGNR", Map: x86_64.Map0F3A, Opcode: 0x0F, ModRM: true, ImmWidth: 8, MandatoryPrefix: byte(x86_64.PrefixOperandSize),
			Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM), {Role: RoleImm}},
		},
		// PMULLD lives in the 0F 38 map.
		{
			Mnemonic: "PMULLD", Map: x86_64.Map0F38, Opcode: 0x40, ModRM: true, MandatoryPrefix: byte(x86_64.PrefixOperandSize),
			Operands: []OperandSpec{xmm(RoleModRMReg), xmm(RoleModRMRM)},
		},
	}
}

// vecOperand builds a ClassXMMOrYMM operand spec whose width resolves from
// the VEX.L/EVEX.L vector-length bit at decode time (Width 0 = infer).
func vecOperand(role OperandRole) OperandSpec {
	return OperandSpec{Role: role, Class: ClassXMMOrYMM}
}

// vexDescriptors covers the AVX forms reachable through the VEX prefix:
// VMOVDQU's load/store pair plus a representative 3-operand NDS form
// (VPXOR) and a 2-operand form (VMOVAPS), enough to exercise both VEX.vvvv
// resolution and the §8 scenario 6 short-vs-long VEX canonicalisation.
func vexDescriptors() []*Descriptor {
	return []*Descriptor{
		// VMOVDQU xmm/ymm, xmm/ymm/m - VEX.128/256.F3.0F 6F /r (load form).
		{
			Mnemonic: "VMOVDQU", Map: x86_64.Map0F, Opcode: 0x6F, ModRM: true,
			Encoding: x86_64.EncodingVEX, VEXPP: 2, VEXW: 2,
			Operands: []OperandSpec{vecOperand(RoleModRMReg), vecOperand(RoleModRMRM)},
		},
		// VMOVDQU xmm/ymm/m, xmm/ymm - VEX.128/256.F3.0F 7F /r (store form).
		{
			Mnemonic: "VMOVDQU", Map: x86_64.Map0F, Opcode: 0x7F, ModRM: true,
			Encoding: x86_64.EncodingVEX, VEXPP: 2, VEXW: 2,
			Operands: []OperandSpec{vecOperand(RoleModRMRM), vecOperand(RoleModRMReg)},
		},
		// VMOVAPS xmm/ymm, xmm/ymm/m - VEX.128/256.0F.WIG 28 /r.
		{
			Mnemonic: "VMOVAPS", Map: x86_64.Map0F, Opcode: 0x28, ModRM: true,
			Encoding: x86_64.EncodingVEX, VEXPP: 0, VEXW: 2,
			Operands: []OperandSpec{vecOperand(RoleModRMReg), vecOperand(RoleModRMRM)},
		},
		{
			Mnemonic: "VMOVAPS", Map: x86_64.Map0F, Opcode: 0x29, ModRM: true,
			Encoding: x86_64.EncodingVEX, VEXPP: 0, VEXW: 2,
			Operands: []OperandSpec{vecOperand(RoleModRMRM), vecOperand(RoleModRMReg)},
		},
		// VPXOR xmm, xmm, xmm/m - VEX.NDS.128/256.66.0F.WIG EF /r.
		{
			Mnemonic: "VPXOR", Map: x86_64.Map0F, Opcode: 0xEF, ModRM: true,
			Encoding: x86_64.EncodingVEX, VEXPP: 1, VEXW: 2,
			Operands: []OperandSpec{vecOperand(RoleModRMReg), vecOperand(RoleVexVvvv), vecOperand(RoleModRMRM)},
		},
		// VADDPS xmm, xmm, xmm/m - VEX.NDS.128/256.0F.WIG 58 /r.
		{
			Mnemonic: "VADDPS", Map: x86_64.Map0F, Opcode: 0x58, ModRM: true,
			Encoding: x86_64.EncodingVEX, VEXPP: 0, VEXW: 2,
			Operands: []OperandSpec{vecOperand(RoleModRMReg), vecOperand(RoleVexVvvv), vecOperand(RoleModRMRM)},
		},
		// VMOVDQA load/store pair - VEX.128/256.66.0F 6F/7F /r.
		{
			Mnemonic: "VMOVDQA", Map: x86_64.Map0F, Opcode: 0x6F, ModRM: true,
			Encoding: x86_64.EncodingVEX, VEXPP: 1, VEXW: 2,
			Operands: []OperandSpec{vecOperand(RoleModRMReg), vecOperand(RoleModRMRM)},
		},
		{
			Mnemonic: "VMOVDQA", Map: x86_64.Map0F, Opcode: 0x7F, ModRM: true,
			Encoding: x86_64.EncodingVEX, VEXPP: 1, VEXW: 2,
			Operands: []OperandSpec{vecOperand(RoleModRMRM), vecOperand(RoleModRMReg)},
		},
		// VMOVUPS load/store pair - VEX.128/256.0F 10/11 /r.
		{
			Mnemonic: "VMOVUPS", Map: x86_64.Map0F, Opcode: 0x10, ModRM: true,
			Encoding: x86_64.EncodingVEX, VEXPP: 0, VEXW: 2,
			Operands: []OperandSpec{vecOperand(RoleModRMReg), vecOperand(RoleModRMRM)},
		},
		{
			Mnemonic: "VMOVUPS", Map: x86_64.Map0F, Opcode: 0x11, ModRM: true,
			Encoding: x86_64.EncodingVEX, VEXPP: 0, VEXW: 2,
			Operands: []OperandSpec{vecOperand(RoleModRMRM), vecOperand(RoleModRMReg)},
		},
		// Three-operand NDS arithmetic/logical forms.
		{
			Mnemonic: "VPAND", Map: x86_64.Map0F, Opcode: 0xDB, ModRM: true,
			Encoding: x86_64.EncodingVEX, VEXPP: 1, VEXW: 2,
			Operands: []OperandSpec{vecOperand(RoleModRMReg), vecOperand(RoleVexVvvv), vecOperand(RoleModRMRM)},
		},
		{
			Mnemonic: "VPOR", Map: x86_64.Map0F, Opcode: 0xEB, ModRM: true,
			Encoding: x86_64.EncodingVEX, VEXPP: 1, VEXW: 2,
			Operands: []OperandSpec{vecOperand(RoleModRMReg), vecOperand(RoleVexVvvv), vecOperand(RoleModRMRM)},
		},
		{
			Mnemonic: "VPADDB", Map: x86_64.Map0F, Opcode: 0xFC, ModRM: true,
			Encoding: x86_64.EncodingVEX, VEXPP: 1, VEXW: 2,
			Operands: []OperandSpec{vecOperand(RoleModRMReg), vecOperand(RoleVexVvvv), vecOperand(RoleModRMRM)},
		},
		{
			Mnemonic: "VPADDD", Map: x86_64.Map0F, Opcode: 0xFE, ModRM: true,
			Encoding: x86_64.EncodingVEX, VEXPP: 1, VEXW: 2,
			Operands: []OperandSpec{vecOperand(RoleModRMReg), vecOperand(RoleVexVvvv), vecOperand(RoleModRMRM)},
		},
		{
			Mnemonic: "VXORPS", Map: x86_64.Map0F, Opcode: 0x57, ModRM: true,
			Encoding: x86_64.EncodingVEX, VEXPP: 0, VEXW: 2,
			Operands: []OperandSpec{vecOperand(RoleModRMReg), vecOperand(RoleVexVvvv), vecOperand(RoleModRMRM)},
		},
		{
			Mnemonic: "VMULPS", Map: x86_64.Map0F, Opcode: 0x59, ModRM: true,
			Encoding: x86_64.EncodingVEX, VEXPP: 0, VEXW: 2,
			Operands: []OperandSpec{vecOperand(RoleModRMReg), vecOperand(RoleVexVvvv), vecOperand(RoleModRMRM)},
		},
		{
			Mnemonic: "VSUBPS", Map: x86_64.Map0F, Opcode: 0x5C, ModRM: true,
			Encoding: x86_64.EncodingVEX, VEXPP: 0, VEXW: 2,
			Operands: []OperandSpec{vecOperand(RoleModRMReg), vecOperand(RoleVexVvvv), vecOperand(RoleModRMRM)},
		},
		{
			Mnemonic: "VADDPD", Map: x86_64.Map0F, Opcode: 0x58, ModRM: true,
			Encoding: x86_64.EncodingVEX, VEXPP: 1, VEXW: 2,
			Operands: []OperandSpec{vecOperand(RoleModRMReg), vecOperand(RoleVexVvvv), vecOperand(RoleModRMRM)},
		},
		// VPSHUFD and VPALIGNR - the VEX twins of the legacy shuffle forms,
		// PALIGNR again through the 0F 3A map and with a trailing imm8.
		{
			Mnemonic: "VPSHUFD", Map: x86_64.Map0F, Opcode: 0x70, ModRM: true, ImmWidth: 8,
			Encoding: x86_64.EncodingVEX, VEXPP: 1, VEXW: 2,
			Operands: []OperandSpec{vecOperand(RoleModRMReg), vecOperand(RoleModRMRM), {Role: RoleImm}},
		},
		{
			Mnemonic: "VPALIGNR", Map: x86_64.Map0F3A, Opcode: 0x0F, ModRM: true, ImmWidth: 8,
			Encoding: x86_64.EncodingVEX, VEXPP: 1, VEXW: 2,
			Operands: []OperandSpec{vecOperand(RoleModRMReg), vecOperand(RoleVexVvvv), vecOperand(RoleModRMRM), {Role: RoleImm}},
		},
		{
			Mnemonic: "VPMULLD", Map: x86_64.Map0F38, Opcode: 0x40, ModRM: true,
			Encoding: x86_64.EncodingVEX, VEXPP: 1, VEXW: 2,
			Operands: []OperandSpec{vecOperand(RoleModRMReg), vecOperand(RoleVexVvvv), vecOperand(RoleModRMRM)},
		},
		// VZEROUPPER/VZEROALL share VEX.0F 77 and are told apart only by
		// the vector-length bit.
		{
			Mnemonic: "VZEROUPPER", Map: x86_64.Map0F, Opcode: 0x77,
			Encoding: x86_64.EncodingVEX, VEXPP: 0, VEXW: 2, VEXL: 2,
		},
		{
			Mnemonic: "VZEROALL", Map: x86_64.Map0F, Opcode: 0x77,
			Encoding: x86_64.EncodingVEX, VEXPP: 0, VEXW: 2, VEXL: 1,
		},

		// The EVEX reach of the same move/xor families, covering the
		// 512-bit registers. Masked/zeroing/broadcast forms are rejected at
		// the prefix layer, so these descriptors only ever see the plain
		// full-width forms.
		{
			Mnemonic: "VMOVDQU64", Map: x86_64.Map0F, Opcode: 0x6F, ModRM: true,
			Encoding: x86_64.EncodingEVEX, VEXPP: 2, VEXW: 1,
			Operands: []OperandSpec{vecOperand(RoleModRMReg), vecOperand(RoleModRMRM)},
		},
		{
			Mnemonic: "VMOVDQU64", Map: x86_64.Map0F, Opcode: 0x7F, ModRM: true,
			Encoding: x86_64.EncodingEVEX, VEXPP: 2, VEXW: 1,
			Operands: []OperandSpec{vecOperand(RoleModRMRM), vecOperand(RoleModRMReg)},
		},
		{
			Mnemonic: "VPXORD", Map: x86_64.Map0F, Opcode: 0xEF, ModRM: true,
			Encoding: x86_64.EncodingEVEX, VEXPP: 1, VEXW: 0,
			Operands: []OperandSpec{vecOperand(RoleModRMReg), vecOperand(RoleVexVvvv), vecOperand(RoleModRMRM)},
		},
	}
}
