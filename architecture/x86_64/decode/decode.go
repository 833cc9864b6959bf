// Package decode implements the byte-stream-to-Instruction half of the x86-64
// codec: the legacy-prefix/REX/VEX/EVEX state machine, ModR/M+SIB+
// displacement resolution, and opcode table dispatch described in spec.md
// §4.3. DecodeOne and DecodeAll are the two entry points; everything else in
// the package is a private helper they call through.
package decode

import (
	"github.com/keurnel/x86codec/architecture/x86_64"
	"github.com/keurnel/x86codec/architecture/x86_64/bytereader"
	"github.com/keurnel/x86codec/architecture/x86_64/opcodetable"
)

// DecodeAll reads successive instructions from data until every byte has
// been consumed or an error fires. A stream that ends cleanly on an
// instruction boundary is success; a truncated final instruction surfaces
// whatever error DecodeOne produced, alongside the instructions already
// decoded.
func DecodeAll(data []byte) ([]x86_64.Instruction, error) {
	r := bytereader.New(data)
	var out []x86_64.Instruction
	for r.Remaining() > 0 {
		instr, err := DecodeOne(r)
		if err != nil {
			return out, err
		}
		out = append(out, instr)
	}
	return out, nil
}

// DecodeOne decodes exactly one instruction starting at the reader's current
// position, leaving the reader positioned immediately after it.
func DecodeOne(r *bytereader.Reader) (x86_64.Instruction, error) {
	start := r.Offset()

	prefixes, err := readLegacyPrefixes(r)
	if err != nil {
		return x86_64.Instruction{}, err
	}

	rex, err := readREX(r)
	if err != nil {
		return x86_64.Instruction{}, err
	}

	var vex *x86_64.VEXPrefix
	var evex *x86_64.EVEXPrefix
	if rex == 0 {
		vex, err = maybeReadVEX(r)
		if err != nil {
			return x86_64.Instruction{}, err
		}
		if vex == nil {
			evex, err = maybeReadEVEX(r)
			if err != nil {
				return x86_64.Instruction{}, err
			}
		}
	}
	if evex != nil && (evex.Mask != 0 || evex.Z || evex.Broadcast) {
		// Masked, zeroing, and broadcast forms carry state this operand
		// model has no slot for; decoding one would silently drop it and
		// break the byte-for-byte re-encoding contract.
		return x86_64.Instruction{}, &x86_64.ReservedEncodingError{Offset: start, Reason: "masked or broadcast EVEX form"}
	}

	mapID, opcode, err := readOpcodeBytes(r, vex, evex)
	if err != nil {
		return x86_64.Instruction{}, err
	}

	candidates := opcodetable.Lookup(mapID, opcode)
	candidates = filterByEncodingKind(candidates, vex, evex)
	candidates = filterByREXW(candidates, rex)
	candidates = filterByMandatoryPrefix(candidates, prefixes)

	needsModRM := false
	for _, c := range candidates {
		if c.ModRM {
			needsModRM = true
			break
		}
	}

	var raw rawModRM
	var haveModRM bool
	if needsModRM {
		b, err := r.ReadByte()
		if err != nil {
			return x86_64.Instruction{}, err
		}
		raw = parseModRMByte(b)
		haveModRM = true
		candidates = filterByOpcodeExt(candidates, raw.reg)
	} else {
		candidates = filterByOpcodeExt(candidates, 0xFF) // no reg field to match against
	}

	desc := pickMostSpecific(candidates)
	if desc == nil {
		return x86_64.Instruction{}, &x86_64.UnknownOpcodeError{Offset: start, Bytes: snapshot(r, start)}
	}
	if desc.MemOnly && haveModRM && raw.mod == 0x03 {
		return x86_64.Instruction{}, &x86_64.ReservedEncodingError{Offset: start, Reason: desc.Mnemonic + " requires a memory operand"}
	}

	ctx := buildRegContext(rex, vex, evex)
	width := resolveOperandWidth(desc, prefixes, rex)
	vecWidth := resolveVecWidth(vex, evex)
	addrWidth := 64
	if hasPrefix(prefixes, x86_64.PrefixAddressSize) {
		addrWidth = 32
	}

	seg, hasSeg := segmentOverride(prefixes)
	var segPtr *x86_64.Register
	if hasSeg {
		segPtr = &seg
	}

	var modrm *x86_64.ModRM
	var memFromRM *x86_64.Indirect
	if haveModRM {
		modrm = &x86_64.ModRM{Mod: raw.mod, RegField: raw.reg, RM: raw.rm}
	}

	immWidth := desc.ImmWidthFor(width)

	operands := make([]x86_64.Operand, 0, len(desc.Operands))
	for _, spec := range desc.Operands {
		op, mem, err := resolveOperand(r, spec, raw, ctx, width, vecWidth, addrWidth, immWidth, segPtr, opcode, vex, evex)
		if err != nil {
			return x86_64.Instruction{}, err
		}
		operands = append(operands, op)
		if mem != nil {
			memFromRM = mem
		}
	}
	if modrm != nil {
		modrm.Mem = memFromRM
	}

	length := r.Offset() - start
	instr := x86_64.Instruction{
		Mnemonic: desc.Mnemonic,
		Operands: operands,
		Prefixes: normalizePrefixes(prefixes, desc),
		REX:      rex,
		VEX:      vex,
		EVEX:     evex,
		Map:      mapID,
		Opcode:   opcode,
		ModRM:    modrm,
		Length:   length,
	}
	return instr, nil
}

// normalizePrefixes reduces the raw prefix-byte list to the prefixes that
// are part of the instruction's identity: LOCK and the REP family. A REP
// byte the descriptor consumed as its mandatory prefix is identity of the
// opcode, not a prefix; segment overrides live on the memory operand they
// qualify; and the 0x66/0x67 size overrides are re-derived by the encoder
// from the operand widths, the same way REX is.
func normalizePrefixes(prefixes []x86_64.Prefix, desc *opcodetable.Descriptor) []x86_64.Prefix {
	var out []x86_64.Prefix
	consumedMandatory := false
	for _, p := range prefixes {
		switch p {
		case x86_64.PrefixLock, x86_64.PrefixRep, x86_64.PrefixRepNE:
			if byte(p) == desc.MandatoryPrefix && !consumedMandatory {
				consumedMandatory = true
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

func snapshot(r *bytereader.Reader, start int) []byte {
	n := r.Offset() - start
	if n <= 0 {
		return nil
	}
	out := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		if b, ok := r.PeekAt(i - n); ok {
			out = append(out, b)
		}
	}
	return out
}

// readOpcodeBytes consumes the opcode map escape bytes (0x0F, 0x0F 0x38,
// 0x0F 0x3A) when a VEX/EVEX prefix didn't already select the map, then
// returns the map and the single opcode byte that follows.
func readOpcodeBytes(r *bytereader.Reader, vex *x86_64.VEXPrefix, evex *x86_64.EVEXPrefix) (x86_64.OpcodeMap, byte, error) {
	if vex != nil {
		b, err := r.ReadByte()
		return vex.Map, b, err
	}
	if evex != nil {
		b, err := r.ReadByte()
		return evex.Map, b, err
	}

	first, err := r.ReadByte()
	if err != nil {
		return x86_64.MapLegacy, 0, err
	}
	if first != 0x0F {
		return x86_64.MapLegacy, first, nil
	}

	second, err := r.ReadByte()
	if err != nil {
		return x86_64.Map0F, 0, err
	}
	switch second {
	case 0x38:
		b, err := r.ReadByte()
		return x86_64.Map0F38, b, err
	case 0x3A:
		b, err := r.ReadByte()
		return x86_64.Map0F3A, b, err
	default:
		return x86_64.Map0F, second, nil
	}
}

func filterByEncodingKind(in []*opcodetable.Descriptor, vex *x86_64.VEXPrefix, evex *x86_64.EVEXPrefix) []*opcodetable.Descriptor {
	var out []*opcodetable.Descriptor
	for _, d := range in {
		switch {
		case evex != nil:
			if d.Encoding != x86_64.EncodingEVEX {
				continue
			}
			if d.VEXPP != evex.PP {
				continue
			}
			if d.VEXW == 0 && evex.W {
				continue
			}
			if d.VEXW == 1 && !evex.W {
				continue
			}
		case vex != nil:
			if d.Encoding != x86_64.EncodingVEX {
				continue
			}
			if d.VEXPP != vex.PP {
				continue
			}
			if d.VEXW == 0 && vex.W {
				continue
			}
			if d.VEXW == 1 && !vex.W {
				continue
			}
			if d.VEXL == 1 && !vex.L {
				continue
			}
			if d.VEXL == 2 && vex.L {
				continue
			}
		default:
			if d.Encoding != x86_64.EncodingLegacy {
				continue
			}
		}
		out = append(out, d)
	}
	return out
}

func filterByREXW(in []*opcodetable.Descriptor, rex byte) []*opcodetable.Descriptor {
	w := rexW(rex)
	var out []*opcodetable.Descriptor
	for _, d := range in {
		if d.ReqREXW == 1 && !w {
			continue
		}
		if d.ReqREXW == 2 && w {
			continue
		}
		out = append(out, d)
	}
	return out
}

// filterByMandatoryPrefix removes descriptors whose mandatory 66/F2/F3 byte
// was not read. Descriptors with no mandatory prefix always survive: a 66
// or F3 byte that was read may be a genuine operand-size override or REP
// prefix rather than opcode identity, and only the specificity tie-break
// decides retroactively (§4.3.2's prefix/opcode duality): when a mandatory
// variant matches it wins, otherwise the byte stays a true prefix.
func filterByMandatoryPrefix(in []*opcodetable.Descriptor, prefixes []x86_64.Prefix) []*opcodetable.Descriptor {
	has66 := hasPrefix(prefixes, x86_64.PrefixOperandSize)
	hasF2 := hasPrefix(prefixes, x86_64.PrefixRepNE)
	hasF3 := hasPrefix(prefixes, x86_64.PrefixRep)

	var out []*opcodetable.Descriptor
	for _, d := range in {
		switch d.MandatoryPrefix {
		case byte(x86_64.PrefixOperandSize):
			if !has66 {
				continue
			}
		case byte(x86_64.PrefixRepNE):
			if !hasF2 {
				continue
			}
		case byte(x86_64.PrefixRep):
			if !hasF3 {
				continue
			}
		}
		out = append(out, d)
	}
	return out
}

func filterByOpcodeExt(in []*opcodetable.Descriptor, regField byte) []*opcodetable.Descriptor {
	var out []*opcodetable.Descriptor
	for _, d := range in {
		if d.HasOpcodeExt && (regField == 0xFF || d.OpcodeExt != regField) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func pickMostSpecific(in []*opcodetable.Descriptor) *opcodetable.Descriptor {
	var best *opcodetable.Descriptor
	bestScore := -1
	for _, d := range in {
		score := d.Specificity()
		if score > bestScore {
			best = d
			bestScore = score
		}
	}
	return best
}

func buildRegContext(rex byte, vex *x86_64.VEXPrefix, evex *x86_64.EVEXPrefix) regContext {
	switch {
	case evex != nil:
		return regContext{rexPresent: true, extR: evex.R, extX: evex.X, extB: evex.B, extRp: evex.Rp}
	case vex != nil:
		return regContext{rexPresent: true, extR: vex.R, extX: vex.X, extB: vex.B}
	default:
		return regContext{rexPresent: rex != 0, extR: rexR(rex), extX: rexX(rex), extB: rexB(rex)}
	}
}

func resolveOperandWidth(desc *opcodetable.Descriptor, prefixes []x86_64.Prefix, rex byte) int {
	if desc.DefaultREXW || rexW(rex) {
		return 64
	}
	// A 0x66 byte the descriptor consumed as its mandatory prefix is opcode
	// identity, not an operand-size override.
	if desc.MandatoryPrefix != byte(x86_64.PrefixOperandSize) && hasPrefix(prefixes, x86_64.PrefixOperandSize) {
		return 16
	}
	return 32
}

func resolveVecWidth(vex *x86_64.VEXPrefix, evex *x86_64.EVEXPrefix) int {
	switch {
	case evex != nil:
		switch evex.L {
		case 0:
			return 128
		case 1:
			return 256
		default:
			return 512
		}
	case vex != nil:
		if vex.L {
			return 256
		}
		return 128
	default:
		return 128
	}
}

// resolveOperand produces the Operand value for one OperandSpec, returning
// the decoded Indirect (if any) separately so the caller can attach it to
// Instruction.ModRM.Mem.
func resolveOperand(
	r *bytereader.Reader,
	spec opcodetable.OperandSpec,
	raw rawModRM,
	ctx regContext,
	width, vecWidth, addrWidth, immWidth int,
	segOverride *x86_64.Register,
	opcodeByte byte,
	vex *x86_64.VEXPrefix,
	evex *x86_64.EVEXPrefix,
) (x86_64.Operand, *x86_64.Indirect, error) {
	effWidth := spec.Width
	if effWidth == 0 {
		if spec.Class == opcodetable.ClassXMMOrYMM {
			effWidth = vecWidth
		} else {
			effWidth = width
		}
	}

	switch spec.Role {
	case opcodetable.RoleModRMReg:
		reg, err := resolveRegField(raw.reg, ctx, effWidth, spec.Class)
		if err != nil {
			return x86_64.Operand{}, nil, err
		}
		return x86_64.RegOperand(reg), nil, nil

	case opcodetable.RoleModRMRM:
		op, err := resolveModRM(r, raw, ctx, effWidth, addrWidth, spec.Class, segOverride)
		if err != nil {
			return x86_64.Operand{}, nil, err
		}
		if op.Kind == x86_64.OperandKindMem {
			mem := op.Mem
			return op, &mem, nil
		}
		return op, nil, nil

	case opcodetable.RoleOpcodeReg:
		encoding := opcodeByte & 0x07
		if ctx.extB {
			encoding |= 0x08
		}
		reg, err := resolveRegisterByClass(encoding, effWidth, ctx.rexPresent, spec.Class)
		if err != nil {
			return x86_64.Operand{}, nil, err
		}
		return x86_64.RegOperand(reg), nil, nil

	case opcodetable.RoleVexVvvv:
		var vvvv byte
		switch {
		case evex != nil:
			vvvv = evex.Vvvv
			if evex.Vp {
				vvvv |= 0x10
			}
		case vex != nil:
			vvvv = vex.Vvvv
		}
		reg, err := resolveRegisterByClass(vvvv, effWidth, true, spec.Class)
		if err != nil {
			return x86_64.Operand{}, nil, err
		}
		return x86_64.RegOperand(reg), nil, nil

	case opcodetable.RoleImplicitRSI:
		src := x86_64.RSI
		if addrWidth == 32 {
			src = x86_64.ESI
		}
		mem, err := implicitStringOperand(src, effWidth, segOverride)
		if err != nil {
			return x86_64.Operand{}, nil, err
		}
		return x86_64.MemOperand(mem), &mem, nil

	case opcodetable.RoleImplicitRDI:
		// ES:[RDI] never honours a segment-override prefix.
		dst := x86_64.RDI
		if addrWidth == 32 {
			dst = x86_64.EDI
		}
		mem, err := x86_64.NewIndirectBuilder().WithBase(dst).WithPointerSize(effWidth).WithSegment(x86_64.ES).Build()
		if err != nil {
			return x86_64.Operand{}, nil, err
		}
		return x86_64.MemOperand(mem), &mem, nil

	case opcodetable.RoleImplicitAcc:
		reg, err := resolveRegisterByClass(0, effWidth, ctx.rexPresent, spec.Class)
		if err != nil {
			return x86_64.Operand{}, nil, err
		}
		return x86_64.RegOperand(reg), nil, nil

	case opcodetable.RoleImm:
		imm, err := readImmediate(r, immWidth)
		if err != nil {
			return x86_64.Operand{}, nil, err
		}
		return x86_64.ImmOperand(imm), nil, nil

	default:
		return x86_64.Operand{}, nil, &x86_64.IllegalOperandError{Reason: "unhandled operand role"}
	}
}

// implicitStringOperand builds the DS:[rSI] source of a string instruction.
// The segment is always attached (DS when no override prefix was read) so
// the printed form always shows its segment, the way the §6 corpus writes
// string operands.
func implicitStringOperand(base x86_64.Register, width int, segOverride *x86_64.Register) (x86_64.Indirect, error) {
	seg := x86_64.DS
	if segOverride != nil {
		seg = *segOverride
	}
	return x86_64.NewIndirectBuilder().WithBase(base).WithPointerSize(width).WithSegment(seg).Build()
}

func readImmediate(r *bytereader.Reader, width int) (x86_64.Immediate, error) {
	raw, err := r.ReadBytes(width / 8)
	if err != nil {
		return x86_64.Immediate{}, err
	}
	return x86_64.ImmediateFrom(raw), nil
}
