package decode_test

import (
	"errors"
	"testing"

	"github.com/keurnel/x86codec/architecture/x86_64"
	"github.com/keurnel/x86codec/architecture/x86_64/bytereader"
	"github.com/keurnel/x86codec/architecture/x86_64/decode"
	"github.com/keurnel/x86codec/architecture/x86_64/syntax"
)

func TestDecodeOne_PrintedForms(t *testing.T) {
	scenarios := []struct {
		name     string
		bytes    []byte
		expected string
	}{
		{"single-byte nop", []byte{0x90}, "nop"},
		{"register move with REX.W", []byte{0x48, 0x89, 0xd8}, "mov rax,rbx"},
		{
			"long nop with SIB and disp32",
			[]byte{0x42, 0x0f, 0x1f, 0x84, 0xa3, 0x78, 0x56, 0x34, 0x12},
			"nop DWORD PTR [rbx+r12*4+0x12345678]",
		},
		{"rep-prefixed string move", []byte{0xf3, 0xa5}, "rep movs DWORD PTR es:[rdi],DWORD PTR ds:[rsi]"},
		{
			"64-bit immediate move",
			[]byte{0x48, 0xb9, 0x78, 0x56, 0x34, 0x12, 0x78, 0x56, 0x34, 0x12},
			"movabs rcx,0x1234567812345678",
		},
		{"two-byte VEX load", []byte{0xc5, 0xfe, 0x6f, 0x0f}, "vmovdqu ymm1,YMMWORD PTR [rdi]"},
		{"mandatory-prefix variant of nop", []byte{0xf3, 0x90}, "pause"},
		{"operand-size override", []byte{0x66, 0x89, 0x03}, "mov WORD PTR [rbx],ax"},
		{"address-size override", []byte{0x67, 0x03, 0x01}, "add eax,DWORD PTR [ecx]"},
		{"rip-relative load", []byte{0x48, 0x8b, 0x05, 0x00, 0x02, 0x00, 0x00}, "mov rax,QWORD PTR [rip+0x200]"},
		{"segment override", []byte{0x65, 0x48, 0x8b, 0x43, 0x08}, "mov rax,QWORD PTR gs:[rbx+0x8]"},
		{"no-base scaled index", []byte{0x8b, 0x04, 0x8d, 0x08, 0x00, 0x00, 0x00}, "mov eax,DWORD PTR [rcx*4+0x8]"},
		{"opcode extension group", []byte{0x48, 0xf7, 0xd8}, "neg rax"},
		{"accumulator immediate form", []byte{0x3d, 0x78, 0x56, 0x34, 0x12}, "cmp eax,0x12345678"},
		{"sign-extended imm8 group form", []byte{0x48, 0x83, 0xc0, 0x01}, "add rax,0x1"},
		{"high-byte register without REX", []byte{0x80, 0xc4, 0x01}, "add ah,0x1"},
		{"uniform low-byte register with bare REX", []byte{0x40, 0xb6, 0x05}, "mov sil,0x5"},
		{"three-byte map 0F 38", []byte{0x0f, 0x38, 0xf0, 0x03}, "movbe eax,DWORD PTR [rbx]"},
		{"three-byte map 0F 3A with imm8", []byte{0x66, 0x0f, 0x3a, 0x0f, 0xca, 0x08}, "palignr xmm1,xmm2,0x8"},
		{"three-byte VEX in map 0F 38", []byte{0xc4, 0xe2, 0x69, 0x40, 0xcb}, "vpmulld xmm1,xmm2,xmm3"},
		{"VEX length selects vzeroall", []byte{0xc5, 0xfc, 0x77}, "vzeroall"},
		{"EVEX 512-bit load", []byte{0x62, 0xf1, 0xfe, 0x48, 0x6f, 0x0f}, "vmovdqu64 zmm1,ZMMWORD PTR [rdi]"},
		{"EVEX three-operand xor", []byte{0x62, 0xf1, 0x75, 0x48, 0xef, 0xc2}, "vpxord zmm0,zmm1,zmm2"},
		{"lock prefix retained", []byte{0xf0, 0x48, 0x83, 0x07, 0x01}, "lock add QWORD PTR [rdi],0x1"},
		{"REX.W selects cqo", []byte{0x48, 0x99}, "cqo"},
		{"rel8 jump", []byte{0xeb, 0x10}, "jmp 0x10"},
		{"negative rel32 call", []byte{0xe8, 0x00, 0xfe, 0xff, 0xff}, "call -0x200"},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			instr, err := decode.DecodeOne(bytereader.New(scenario.bytes))
			if err != nil {
				t.Fatalf("unexpected decode error: %v", err)
			}
			if got := syntax.Print(instr); got != scenario.expected {
				t.Errorf("expected %q, got %q", scenario.expected, got)
			}
			if instr.Length != len(scenario.bytes) {
				t.Errorf("expected length %d, got %d", len(scenario.bytes), instr.Length)
			}
		})
	}
}

func TestDecodeOne_StructuralFields(t *testing.T) {
	instr, err := decode.DecodeOne(bytereader.New([]byte{0x42, 0x0f, 0x1f, 0x84, 0xa3, 0x78, 0x56, 0x34, 0x12}))
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}

	if instr.Mnemonic != "NOP" {
		t.Errorf("expected mnemonic NOP, got %s", instr.Mnemonic)
	}
	if len(instr.Operands) != 1 {
		t.Fatalf("expected one operand, got %d", len(instr.Operands))
	}
	mem := instr.Operands[0].Mem
	if instr.Operands[0].Kind != x86_64.OperandKindMem {
		t.Fatalf("expected a memory operand, got %v", instr.Operands[0].Kind)
	}
	if mem.Base == nil || mem.Base.Name != "rbx" {
		t.Errorf("expected base rbx, got %v", mem.Base)
	}
	if mem.Index == nil || mem.Index.Name != "r12" {
		t.Errorf("expected index r12, got %v", mem.Index)
	}
	if mem.Scale != 4 {
		t.Errorf("expected scale 4, got %d", mem.Scale)
	}
	if mem.Displacement != 0x12345678 || mem.DisplacementWidth != 32 {
		t.Errorf("expected disp32 0x12345678, got %#x (width %d)", mem.Displacement, mem.DisplacementWidth)
	}
	if mem.PointerSize != 32 {
		t.Errorf("expected pointer size 32, got %d", mem.PointerSize)
	}
}

func TestDecodeOne_StringOperandSegments(t *testing.T) {
	instr, err := decode.DecodeOne(bytereader.New([]byte{0xf3, 0xa5}))
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}

	if !instr.HasPrefix(x86_64.PrefixRep) {
		t.Error("expected the REP prefix to be retained")
	}
	if len(instr.Operands) != 2 {
		t.Fatalf("expected two operands, got %d", len(instr.Operands))
	}
	dst := instr.Operands[0].Mem
	src := instr.Operands[1].Mem
	if dst.Segment == nil || dst.Segment.Name != "es" || dst.Base.Name != "rdi" {
		t.Errorf("expected ES:[rdi] destination, got %v:[%v]", dst.Segment, dst.Base)
	}
	if src.Segment == nil || src.Segment.Name != "ds" || src.Base.Name != "rsi" {
		t.Errorf("expected DS:[rsi] source, got %v:[%v]", src.Segment, src.Base)
	}
}

func TestDecodeOne_Errors(t *testing.T) {
	scenarios := []struct {
		name  string
		bytes []byte
		check func(t *testing.T, err error)
	}{
		{
			"empty input",
			nil,
			func(t *testing.T, err error) {
				if !errors.Is(err, x86_64.ErrInsufficientBytes) {
					t.Errorf("expected ErrInsufficientBytes, got %v", err)
				}
			},
		},
		{
			"bare prefix",
			[]byte{0xf3},
			func(t *testing.T, err error) {
				if !errors.Is(err, x86_64.ErrInsufficientBytes) {
					t.Errorf("expected ErrInsufficientBytes, got %v", err)
				}
			},
		},
		{
			"truncated immediate",
			[]byte{0x48, 0xb9, 0x78, 0x56},
			func(t *testing.T, err error) {
				if !errors.Is(err, x86_64.ErrInsufficientBytes) {
					t.Errorf("expected ErrInsufficientBytes, got %v", err)
				}
			},
		},
		{
			"truncated ModR/M tail",
			[]byte{0x42, 0x0f, 0x1f, 0x84},
			func(t *testing.T, err error) {
				if !errors.Is(err, x86_64.ErrInsufficientBytes) {
					t.Errorf("expected ErrInsufficientBytes, got %v", err)
				}
			},
		},
		{
			"unassigned opcode",
			[]byte{0x0f, 0x04},
			func(t *testing.T, err error) {
				var unknownErr *x86_64.UnknownOpcodeError
				if !errors.As(err, &unknownErr) {
					t.Errorf("expected *UnknownOpcodeError, got %v", err)
				}
			},
		},
		{
			"register form of a memory-only instruction",
			[]byte{0x48, 0x8d, 0xc3}, // LEA with mod=11
			func(t *testing.T, err error) {
				var reservedErr *x86_64.ReservedEncodingError
				if !errors.As(err, &reservedErr) {
					t.Errorf("expected *ReservedEncodingError, got %v", err)
				}
			},
		},
		{
			"masked EVEX form",
			[]byte{0x62, 0xf1, 0xfe, 0x49, 0x6f, 0x0f}, // k1 mask in aaa
			func(t *testing.T, err error) {
				var reservedErr *x86_64.ReservedEncodingError
				if !errors.As(err, &reservedErr) {
					t.Errorf("expected *ReservedEncodingError, got %v", err)
				}
			},
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			_, err := decode.DecodeOne(bytereader.New(scenario.bytes))
			if err == nil {
				t.Fatal("expected a decode error, got none")
			}
			scenario.check(t, err)
		})
	}
}

func TestDecodeAll(t *testing.T) {
	data := []byte{
		0x90,             // nop
		0x48, 0x89, 0xd8, // mov rax,rbx
		0xc3, // ret
	}
	instructions, err := decode.DecodeAll(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(instructions) != 3 {
		t.Fatalf("expected 3 instructions, got %d", len(instructions))
	}
	expected := []string{"nop", "mov rax,rbx", "ret"}
	for i, instr := range instructions {
		if got := syntax.Print(instr); got != expected[i] {
			t.Errorf("instruction %d: expected %q, got %q", i, expected[i], got)
		}
	}
}

func TestDecodeAll_TruncatedTail(t *testing.T) {
	data := []byte{0x90, 0x48, 0x89}
	instructions, err := decode.DecodeAll(data)
	if !errors.Is(err, x86_64.ErrInsufficientBytes) {
		t.Errorf("expected ErrInsufficientBytes, got %v", err)
	}
	if len(instructions) != 1 {
		t.Errorf("expected the leading nop to survive, got %d instructions", len(instructions))
	}
}

func TestDecodeOne_RestartableAfterError(t *testing.T) {
	r := bytereader.New([]byte{0x0f, 0x04, 0x90})
	if _, err := decode.DecodeOne(r); err == nil {
		t.Fatal("expected an error for the unassigned opcode")
	}
	r.SetOffset(2)
	instr, err := decode.DecodeOne(r)
	if err != nil {
		t.Fatalf("expected a clean restart at a chosen boundary, got %v", err)
	}
	if instr.Mnemonic != "NOP" {
		t.Errorf("expected NOP after restart, got %s", instr.Mnemonic)
	}
}
