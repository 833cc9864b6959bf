package x86_64

// OpcodeMap identifies which opcode map a primary opcode byte is drawn from.
type OpcodeMap int

const (
	// MapLegacy - the one-byte primary opcode map.
	MapLegacy OpcodeMap = iota
	// Map0F - the 0F-escaped two-byte opcode map.
	Map0F
	// Map0F38 - the 0F 38-escaped three-byte opcode map.
	Map0F38
	// Map0F3A - the 0F 3A-escaped three-byte opcode map.
	Map0F3A
)

// Instruction is the fully decoded symbolic form of one machine instruction:
// every prefix byte, the opcode identity, and the resolved operands. It
// carries enough detail to be re-encoded byte-for-byte (encoder
// canonicalisation then collapses any non-canonical but legal redundancy,
// such as an unneeded REX prefix or an overlong immediate, back to the
// shortest legal form).
type Instruction struct {
	Mnemonic string
	Operands []Operand

	// Prefixes holds the LOCK/REPNE/REP prefix bytes in the order they
	// were read; a REP/REPNE byte consumed as a mandatory prefix is not
	// kept. Segment-override, operand-size and address-size prefixes are
	// not recorded here: the encoder derives them from the operands.
	Prefixes []Prefix

	REX  byte // 0 if no REX prefix was present
	VEX  *VEXPrefix
	EVEX *EVEXPrefix

	Map     OpcodeMap
	Opcode  byte // the final opcode byte (opcode extension, if any, lives in ModRM.Reg)
	ModRM   *ModRM

	// Length is the total number of bytes this instruction occupied in the
	// stream it was decoded from, including every prefix, the opcode,
	// ModR/M, SIB, displacement, and immediate bytes.
	Length int
}

// ModRM is the decoded addressing-mode byte plus any SIB/displacement it
// pulled in. RegField is always populated (it is either a second register
// operand or an opcode-extension digit); Mem is populated only when Mod != 3.
type ModRM struct {
	Mod      byte
	RegField byte
	RM       byte
	Mem      *Indirect
}

// HasPrefix reports whether the given legacy prefix byte was present.
func (instr Instruction) HasPrefix(p Prefix) bool {
	for _, present := range instr.Prefixes {
		if present == p {
			return true
		}
	}
	return false
}

// HasREX reports whether a REX prefix (of any bit combination, including a
// bare 0x40) was present.
func (instr Instruction) HasREX() bool {
	return instr.REX != 0
}

// Equal reports structural equality between two instructions: same mnemonic,
// same prefixes in the same order, and pairwise-equal operands (including
// displacement width, per Operand.Equal). The raw REX/VEX/EVEX bytes and
// Length are intentionally excluded: they are derived encoding detail, and
// an instruction assembled from Intel syntax never carries them, yet it is
// the same instruction as its decoded twin.
func (instr Instruction) Equal(other Instruction) bool {
	if instr.Mnemonic != other.Mnemonic {
		return false
	}
	if len(instr.Prefixes) != len(other.Prefixes) {
		return false
	}
	for i := range instr.Prefixes {
		if instr.Prefixes[i] != other.Prefixes[i] {
			return false
		}
	}
	if len(instr.Operands) != len(other.Operands) {
		return false
	}
	for i := range instr.Operands {
		if !instr.Operands[i].Equal(other.Operands[i]) {
			return false
		}
	}
	return true
}

// VEXPrefix is the decoded form of a two- or three-byte VEX prefix.
type VEXPrefix struct {
	ThreeByte bool
	R, X, B   bool // inverted in the encoding; stored here already un-inverted
	Map       OpcodeMap
	W         bool
	Vvvv      byte // inverted in the encoding; stored here already un-inverted
	L         bool // 0 = 128-bit, 1 = 256-bit
	PP        byte // 0 = none, 1 = 0x66, 2 = 0xF3, 3 = 0xF2
}

// EVEXPrefix is the decoded form of a four-byte EVEX prefix. R/X/B/Rp/Vp are
// stored un-inverted, like VEXPrefix's bits: true means the extension is in
// effect.
type EVEXPrefix struct {
	R, X, B, Rp bool
	Map         OpcodeMap
	W           bool
	Vvvv        byte
	Vp          bool // vvvv's fifth bit
	PP          byte
	Z           bool
	L           byte // 0 = 128-bit, 1 = 256-bit, 2 = 512-bit
	Broadcast   bool
	Mask        byte
}
