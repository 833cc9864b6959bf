// Package opcodetable holds the static opcode descriptor table shared by the
// decoder and the encoder. It follows the same table-as-data idiom as the
// architecture's own InstructionsByMnemonic map (architecture/x86_64's
// instructions.go), but indexed the way a disassembler needs: by opcode map
// and opcode byte rather than by mnemonic. The table and its byte index are
// built lazily and exactly once, guarded by sync.Once, so concurrent callers
// never race on first use and never pay initialisation cost more than once.
package opcodetable

import (
	"sync"

	"github.com/keurnel/x86codec/architecture/x86_64"
	"github.com/keurnel/x86codec/internal/asm"
)

// OperandRole describes where a form's operand value comes from, independent
// of its width.
type OperandRole int

const (
	// RoleModRMReg - the ModR/M reg field (plus REX.R/VEX.R), a register.
	RoleModRMReg OperandRole = iota
	// RoleModRMRM - the ModR/M rm field, a register or memory operand.
	RoleModRMRM
	// RoleOpcodeReg - a register encoded in the low 3 bits of the opcode byte.
	RoleOpcodeReg
	// RoleImm - an immediate value following any ModR/M/SIB/displacement bytes.
	RoleImm
	// RoleVexVvvv - the VEX/EVEX vvvv field, a register.
	RoleVexVvvv
	// RoleImplicitRSI - the implicit source operand of a string instruction,
	// DS:[RSI] unless overridden by a segment prefix.
	RoleImplicitRSI
	// RoleImplicitRDI - the implicit destination operand of a string
	// instruction, always ES:[RDI] (the segment override prefixes never
	// apply to it).
	RoleImplicitRDI
	// RoleImplicitAcc - the accumulator register (AL/AX/EAX/RAX by operand
	// width), named by the opcode itself rather than by any operand byte.
	RoleImplicitAcc
)

// RegisterClass selects which register family a Role{ModRMReg,ModRMRM,
// VexVvvv} operand draws from.
type RegisterClass int

const (
	ClassGPR RegisterClass = iota
	ClassXMMOrYMM           // width decided by VEX.L/EVEX.L'L at decode time
)

// OperandSpec describes one operand slot of an instruction form.
type OperandSpec struct {
	Role  OperandRole
	Class RegisterClass
	// Width is the operand width in bits for GPR operands. 0 means "resolve
	// from context" (REX.W / 0x66 prefix / default 32-bit), used by every
	// general-purpose form whose width is not fixed by the opcode itself.
	Width int
}

// Descriptor is one opcode/ModR/M-reg-extension/mnemonic combination.
type Descriptor struct {
	Mnemonic string
	Map      x86_64.OpcodeMap
	Opcode   byte

	// OpcodeExt, when HasOpcodeExt is set, means the ModR/M reg field
	// disambiguates which instruction this opcode byte encodes (the classic
	// /digit group opcodes, e.g. 0xF7 /0 TEST, /3 NEG, /4 MUL, /5 IMUL,
	// /6 DIV, /7 IDIV). Descriptors without HasOpcodeExt leave the reg field
	// free to name an operand register.
	OpcodeExt    byte
	HasOpcodeExt bool

	ModRM       bool
	RegInOpcode bool // the destination register is encoded in Opcode's low 3 bits
	// MemOnly rejects the mod=11 register form of the rm operand: LEA,
	// MOVBE, and the prefetch hints only accept a memory operand, and a
	// register encoding there is reserved.
	MemOnly  bool
	Operands []OperandSpec
	ImmWidth int // 0 = no immediate; otherwise 8, 16, 32, or 64

	Encoding asm.InstructionEncoding // EncodingLegacy, EncodingVEX, EncodingEVEX

	// VEX/EVEX form constraints. PP: 0 none, 1 0x66, 2 0xF3, 3 0xF2.
	// VEXW: 0 or 1 required, 2 means "ignored" (WIG).
	// VEXL follows the ReqREXW convention: 0 = either length, 1 = VEX.L
	// must be set (256-bit), 2 = VEX.L must be clear (128-bit); needed by
	// the VZEROUPPER/VZEROALL pair, which share an opcode byte and differ
	// only in L.
	VEXPP byte
	VEXW  byte
	VEXL  byte
	// DefaultREXW marks legacy forms that are canonically encoded with
	// REX.W=1 regardless of operand width inference. No descriptor in the
	// table sets it; the 64-bit string forms take REX.W from their QWORD
	// operand width.
	DefaultREXW bool

	// ReqREXW disambiguates legacy descriptors that share an opcode byte but
	// differ by REX.W, the way 0xB8+rd means MOV with a 32-bit immediate
	// without REX.W and MOVABS with a 64-bit immediate with it. 0 = either,
	// 1 = REX.W must be set, 2 = REX.W must be clear.
	ReqREXW byte

	// MandatoryPrefix, when non-zero, is a legacy prefix byte (0x66/0xF2/0xF3)
	// that is part of this opcode's identity rather than a true prefix,
	// the classic SSE "mandatory prefix selects the variant" duality of
	// spec.md §4.3.2. A descriptor with MandatoryPrefix set only matches
	// when that byte was read among the instruction's legacy prefixes, and
	// the byte is consumed as identity, not reported as a Prefix on the
	// decoded Instruction.
	MandatoryPrefix byte
}

// Specificity scores a descriptor for the §4.3.5 tie-break rule: more
// specific descriptors (those constraining /digit, mandatory prefix, or
// REX.W) beat less specific ones sharing the same opcode byte.
func (d *Descriptor) Specificity() int {
	score := 0
	if d.HasOpcodeExt {
		score++
	}
	if d.MandatoryPrefix != 0 {
		score++
	}
	if d.ReqREXW != 0 {
		score++
	}
	return score
}

// ImmWidthFor resolves this descriptor's immediate width in bits against the
// effective operand width of the instruction being decoded/encoded. A fixed
// ImmWidth (8/16/32/64) is returned unchanged; the sentinel -1 ("immz": the
// general-purpose group-1/test/mov-immediate family) resolves to 16 under
// the operand-size override and 32 otherwise, even under REX.W, matching the
// architecture's "no 64-bit immediate except MOVABS" rule.
func (d *Descriptor) ImmWidthFor(operandWidth int) int {
	if d.ImmWidth != -1 {
		return d.ImmWidth
	}
	if operandWidth == 16 {
		return 16
	}
	return 32
}

var (
	once  sync.Once
	flat  []*Descriptor
	index map[x86_64.OpcodeMap]map[byte][]*Descriptor
)

func build() {
	flat = buildDescriptors()
	index = make(map[x86_64.OpcodeMap]map[byte][]*Descriptor)
	for _, d := range flat {
		byOpcode, ok := index[d.Map]
		if !ok {
			byOpcode = make(map[byte][]*Descriptor)
			index[d.Map] = byOpcode
		}
		if d.RegInOpcode {
			for lo := byte(0); lo < 8; lo++ {
				op := d.Opcode | lo
				byOpcode[op] = append(byOpcode[op], d)
			}
			continue
		}
		byOpcode[d.Opcode] = append(byOpcode[d.Opcode], d)
	}
}

// All returns the full descriptor table, building it on first use.
func All() []*Descriptor {
	once.Do(build)
	return flat
}

// Lookup returns every descriptor whose map and opcode byte match. Callers
// narrow further by OpcodeExt (against the decoded ModR/M reg field) and by
// operand-width/encoding constraints.
func Lookup(mapID x86_64.OpcodeMap, opcode byte) []*Descriptor {
	once.Do(build)
	return index[mapID][opcode]
}

// OpcodeForReg returns the opcode byte a RegInOpcode descriptor uses for
// the given register encoding (low 3 bits only; REX.B/wider encodings are
// applied by the caller on top of this byte).
func (d *Descriptor) OpcodeForReg(encoding byte) byte {
	return (d.Opcode &^ 0x07) | (encoding & 0x07)
}
