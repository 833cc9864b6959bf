package encode_test

import (
	"errors"
	"testing"

	"github.com/keurnel/x86codec/architecture/x86_64"
	"github.com/keurnel/x86codec/architecture/x86_64/encode"
)

func reg(r x86_64.Register) x86_64.Operand { return x86_64.RegOperand(r) }

func imm(value int64, width int) x86_64.Operand {
	return x86_64.ImmOperand(x86_64.Immediate{Value: value, Width: width})
}

func mem(t *testing.T, build func(*x86_64.IndirectBuilder) *x86_64.IndirectBuilder) x86_64.Operand {
	t.Helper()
	indirect, err := build(x86_64.NewIndirectBuilder()).Build()
	if err != nil {
		t.Fatalf("building indirect operand: %v", err)
	}
	return x86_64.MemOperand(indirect)
}

func instruction(mnemonic string, operands ...x86_64.Operand) x86_64.Instruction {
	return x86_64.Instruction{Mnemonic: mnemonic, Operands: operands}
}

func TestEncode_CanonicalForms(t *testing.T) {
	scenarios := []struct {
		name     string
		instr    x86_64.Instruction
		expected []byte
	}{
		{"nop", instruction("NOP"), []byte{0x90}},
		{
			// Rule 2: both 0x89 and 0x8B can express a register-to-register
			// move; the destination-in-rm form is canonical.
			"register move prefers destination in rm",
			instruction("MOV", reg(x86_64.RAX), reg(x86_64.RBX)),
			[]byte{0x48, 0x89, 0xd8},
		},
		{
			// Rule 1: the sign-extendable imm8 form beats the imm32 form.
			"shortest immediate wins",
			instruction("ADD", reg(x86_64.RAX), imm(1, 8)),
			[]byte{0x48, 0x83, 0xc0, 0x01},
		},
		{
			"stored immediate width does not force a longer form",
			instruction("ADD", reg(x86_64.RAX), imm(1, 32)),
			[]byte{0x48, 0x83, 0xc0, 0x01},
		},
		{
			"immediate too wide for imm8 falls back to accumulator immz",
			instruction("CMP", reg(x86_64.EAX), imm(0x12345678, 32)),
			[]byte{0x3d, 0x78, 0x56, 0x34, 0x12},
		},
		{
			"register-in-opcode beats ModR/M at equal immediate width",
			instruction("MOV", reg(x86_64.EAX), imm(1, 8)),
			[]byte{0xb8, 0x01, 0x00, 0x00, 0x00},
		},
		{
			// Rule 4: no REX byte when no bit is set and no uniform
			// low-byte register is named.
			"no redundant REX",
			instruction("MOV", reg(x86_64.EAX), reg(x86_64.EBX)),
			[]byte{0x89, 0xd8},
		},
		{
			"bare REX forced by sil",
			instruction("MOV", reg(x86_64.SIL), imm(5, 8)),
			[]byte{0x40, 0xb6, 0x05},
		},
		{
			"movabs keeps the ten-byte form",
			instruction("MOVABS", reg(x86_64.RCX), imm(0x1234567812345678, 64)),
			[]byte{0x48, 0xb9, 0x78, 0x56, 0x34, 0x12, 0x78, 0x56, 0x34, 0x12},
		},
		{
			"16-bit width derives the operand-size prefix",
			instruction("MOV", mem(t, func(b *x86_64.IndirectBuilder) *x86_64.IndirectBuilder {
				return b.WithBase(x86_64.RBX).WithPointerSize(16)
			}), reg(x86_64.AX)),
			[]byte{0x66, 0x89, 0x03},
		},
		{
			"32-bit addressing derives the address-size prefix",
			instruction("ADD", reg(x86_64.EAX), mem(t, func(b *x86_64.IndirectBuilder) *x86_64.IndirectBuilder {
				return b.WithBase(x86_64.ECX).WithPointerSize(32)
			})),
			[]byte{0x67, 0x03, 0x01},
		},
		{
			// Rule 6: RIP as base with no index selects mod=00 rm=101.
			"rip-relative addressing",
			instruction("MOV", reg(x86_64.RAX), mem(t, func(b *x86_64.IndirectBuilder) *x86_64.IndirectBuilder {
				return b.WithBase(x86_64.RIP).WithDisplacement(0x200, 32).WithPointerSize(64)
			})),
			[]byte{0x48, 0x8b, 0x05, 0x00, 0x02, 0x00, 0x00},
		},
		{
			"rbp base forces a zero disp8",
			instruction("MOV", reg(x86_64.RAX), mem(t, func(b *x86_64.IndirectBuilder) *x86_64.IndirectBuilder {
				return b.WithBase(x86_64.RBP).WithPointerSize(64)
			})),
			[]byte{0x48, 0x8b, 0x45, 0x00},
		},
		{
			"rsp base forces a SIB byte",
			instruction("MOV", reg(x86_64.RAX), mem(t, func(b *x86_64.IndirectBuilder) *x86_64.IndirectBuilder {
				return b.WithBase(x86_64.RSP).WithPointerSize(64)
			})),
			[]byte{0x48, 0x8b, 0x04, 0x24},
		},
		{
			"narrowest displacement is chosen",
			instruction("MOV", reg(x86_64.RAX), mem(t, func(b *x86_64.IndirectBuilder) *x86_64.IndirectBuilder {
				return b.WithBase(x86_64.RBX).WithDisplacement(0x10, 0).WithPointerSize(64)
			})),
			[]byte{0x48, 0x8b, 0x43, 0x10},
		},
		{
			// Rule 5: a 32-bit typed displacement is preserved even when a
			// disp8 would fit.
			"forced displacement width is preserved",
			instruction("MOV", reg(x86_64.RAX), mem(t, func(b *x86_64.IndirectBuilder) *x86_64.IndirectBuilder {
				return b.WithBase(x86_64.RBX).WithDisplacement(0x10, 32).WithPointerSize(64)
			})),
			[]byte{0x48, 0x8b, 0x83, 0x10, 0x00, 0x00, 0x00},
		},
		{
			"scaled index with extension bits",
			instruction("NOP", mem(t, func(b *x86_64.IndirectBuilder) *x86_64.IndirectBuilder {
				return b.WithBase(x86_64.RBX).WithIndex(x86_64.R12, 4).WithDisplacement(0x12345678, 32).WithPointerSize(32)
			})),
			[]byte{0x42, 0x0f, 0x1f, 0x84, 0xa3, 0x78, 0x56, 0x34, 0x12},
		},
		{
			"no-base scaled index takes a forced disp32",
			instruction("MOV", reg(x86_64.EAX), mem(t, func(b *x86_64.IndirectBuilder) *x86_64.IndirectBuilder {
				return b.WithIndex(x86_64.RCX, 4).WithDisplacement(0x8, 32).WithPointerSize(32)
			})),
			[]byte{0x8b, 0x04, 0x8d, 0x08, 0x00, 0x00, 0x00},
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			got, err := encode.Encode(scenario.instr)
			if err != nil {
				t.Fatalf("unexpected encode error: %v", err)
			}
			if !bytesEqual(got, scenario.expected) {
				t.Errorf("expected % x, got % x", scenario.expected, got)
			}
		})
	}
}

func TestEncode_VEXForms(t *testing.T) {
	ymmLoad := instruction("VMOVDQU", reg(x86_64.YMM1), mem(t, func(b *x86_64.IndirectBuilder) *x86_64.IndirectBuilder {
		return b.WithBase(x86_64.RDI).WithPointerSize(256)
	}))

	scenarios := []struct {
		name     string
		instr    x86_64.Instruction
		expected []byte
	}{
		// The two-byte VEX form must be chosen whenever it is legal.
		{"short VEX form preferred", ymmLoad, []byte{0xc5, 0xfe, 0x6f, 0x0f}},
		{
			"three-operand NDS form",
			instruction("VPXOR", reg(x86_64.YMM0), reg(x86_64.YMM1), reg(x86_64.YMM2)),
			[]byte{0xc5, 0xf5, 0xef, 0xc2},
		},
		{
			"three-byte VEX forced by the 0F 38 map",
			instruction("VPMULLD", reg(x86_64.XMM1), reg(x86_64.XMM2), reg(x86_64.XMM3)),
			[]byte{0xc4, 0xe2, 0x69, 0x40, 0xcb},
		},
		{
			"vzeroupper leaves the length bit clear",
			instruction("VZEROUPPER"),
			[]byte{0xc5, 0xf8, 0x77},
		},
		{
			"vzeroall sets the length bit",
			instruction("VZEROALL"),
			[]byte{0xc5, 0xfc, 0x77},
		},
		{
			"EVEX 512-bit form",
			instruction("VPXORD", reg(x86_64.ZMM0), reg(x86_64.ZMM1), reg(x86_64.ZMM2)),
			[]byte{0x62, 0xf1, 0x75, 0x48, 0xef, 0xc2},
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			got, err := encode.Encode(scenario.instr)
			if err != nil {
				t.Fatalf("unexpected encode error: %v", err)
			}
			if !bytesEqual(got, scenario.expected) {
				t.Errorf("expected % x, got % x", scenario.expected, got)
			}
		})
	}
}

func TestEncode_Errors(t *testing.T) {
	scenarios := []struct {
		name  string
		instr x86_64.Instruction
		check func(t *testing.T, err error)
	}{
		{
			"unknown mnemonic",
			instruction("BOGUS"),
			func(t *testing.T, err error) {
				var unknownErr *x86_64.UnknownOpcodeError
				if !errors.As(err, &unknownErr) {
					t.Errorf("expected *UnknownOpcodeError, got %v", err)
				}
			},
		},
		{
			"operand shape no descriptor accepts",
			instruction("NOP", imm(1, 8)),
			func(t *testing.T, err error) {
				var unknownErr *x86_64.UnknownOpcodeError
				if !errors.As(err, &unknownErr) {
					t.Errorf("expected *UnknownOpcodeError, got %v", err)
				}
			},
		},
		{
			"high-byte register alongside a REX-demanding operand",
			instruction("MOV", reg(x86_64.AH), reg(x86_64.SIL)),
			func(t *testing.T, err error) {
				var illegalErr *x86_64.IllegalOperandError
				if !errors.As(err, &illegalErr) {
					t.Errorf("expected *IllegalOperandError, got %v", err)
				}
			},
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			_, err := encode.Encode(scenario.instr)
			if err == nil {
				t.Fatal("expected an encode error, got none")
			}
			scenario.check(t, err)
		})
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
