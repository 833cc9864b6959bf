package decode

import (
	"github.com/keurnel/x86codec/architecture/x86_64"
	"github.com/keurnel/x86codec/architecture/x86_64/bytereader"
	"github.com/keurnel/x86codec/architecture/x86_64/opcodetable"
)

// rawModRM is the byte split into its three fields, before any REX/VEX
// extension bits are folded in.
type rawModRM struct {
	mod byte
	reg byte
	rm  byte
}

func parseModRMByte(b byte) rawModRM {
	return rawModRM{
		mod: (b >> 6) & 0x03,
		reg: (b >> 3) & 0x07,
		rm:  b & 0x07,
	}
}

// regContext bundles the REX/VEX extension bits the rm/reg resolvers need,
// so decode.go doesn't have to pass five booleans around individually.
type regContext struct {
	rexPresent bool
	extR       bool // REX.R or VEX.R (already un-inverted)
	extX       bool
	extB       bool
	extRp      bool // EVEX.R', the reg field's fifth bit
}

// resolveRegField returns the register named by a ModR/M reg field,
// honouring the requested width/class.
func resolveRegField(raw byte, ctx regContext, width int, class opcodetable.RegisterClass) (x86_64.Register, error) {
	encoding := raw
	if ctx.extR {
		encoding |= 0x08
	}
	if ctx.extRp {
		encoding |= 0x10
	}
	return resolveRegisterByClass(encoding, width, ctx.rexPresent, class)
}

// resolveModRM reads (and, for memory forms, consumes SIB and displacement
// bytes from r) the operand named by the rm field of a decoded ModR/M byte.
// addrWidth selects the base/index register class: 64-bit normally, 32-bit
// under the 0x67 address-size override.
func resolveModRM(r *bytereader.Reader, raw rawModRM, ctx regContext, width, addrWidth int, class opcodetable.RegisterClass, segOverride *x86_64.Register) (x86_64.Operand, error) {
	if raw.mod == 0x03 {
		encoding := raw.rm
		if ctx.extB {
			encoding |= 0x08
		}
		reg, err := resolveRegisterByClass(encoding, width, ctx.rexPresent, class)
		if err != nil {
			return x86_64.Operand{}, err
		}
		return x86_64.RegOperand(reg), nil
	}

	// PointerSize is always recorded from the resolved operand width, not
	// just when base and index are both absent: real encodings carry no
	// separate size byte, so "DWORD PTR [rbx+r12*4+...]" (§8 scenario 3)
	// gets its size the same way a register sibling operand would.
	builder := x86_64.NewIndirectBuilder().WithPointerSize(width)
	if segOverride != nil {
		builder = builder.WithSegment(*segOverride)
	}

	if raw.rm == 0x04 {
		sibByte, err := r.ReadByte()
		if err != nil {
			return x86_64.Operand{}, err
		}
		scaleBits := (sibByte >> 6) & 0x03
		indexBits := (sibByte >> 3) & 0x07
		baseBits := sibByte & 0x07

		hasIndex := !(indexBits == 0x04 && !ctx.extX)
		if hasIndex {
			indexEncoding := indexBits
			if ctx.extX {
				indexEncoding |= 0x08
			}
			indexReg, err := resolveRegisterByClass(indexEncoding, addrWidth, true, opcodetable.ClassGPR)
			if err != nil {
				return x86_64.Operand{}, err
			}
			builder = builder.WithIndex(indexReg, byte(1)<<scaleBits)
		}

		noBase := baseBits == 0x05 && raw.mod == 0x00
		if !noBase {
			baseEncoding := baseBits
			if ctx.extB {
				baseEncoding |= 0x08
			}
			baseReg, err := resolveRegisterByClass(baseEncoding, addrWidth, true, opcodetable.ClassGPR)
			if err != nil {
				return x86_64.Operand{}, err
			}
			builder = builder.WithBase(baseReg)
		}

		switch {
		case raw.mod == 0x00 && noBase:
			disp, err := readDisplacement(r, 32)
			if err != nil {
				return x86_64.Operand{}, err
			}
			builder = builder.WithDisplacement(disp, 32).WithPointerSize(width)
		case raw.mod == 0x01:
			disp, err := readDisplacement(r, 8)
			if err != nil {
				return x86_64.Operand{}, err
			}
			builder = builder.WithDisplacement(disp, 8)
		case raw.mod == 0x02:
			disp, err := readDisplacement(r, 32)
			if err != nil {
				return x86_64.Operand{}, err
			}
			builder = builder.WithDisplacement(disp, 32)
		}
	} else if raw.mod == 0x00 && raw.rm == 0x05 {
		// RIP-relative addressing: disp32 added to the address of the
		// following instruction, no SIB, no real base register on the wire.
		disp, err := readDisplacement(r, 32)
		if err != nil {
			return x86_64.Operand{}, err
		}
		ip := x86_64.RIP
		if addrWidth == 32 {
			ip = x86_64.EIP
		}
		builder = builder.WithBase(ip).WithDisplacement(disp, 32).WithPointerSize(width)
	} else {
		baseEncoding := raw.rm
		if ctx.extB {
			baseEncoding |= 0x08
		}
		baseReg, err := resolveRegisterByClass(baseEncoding, addrWidth, true, opcodetable.ClassGPR)
		if err != nil {
			return x86_64.Operand{}, err
		}
		builder = builder.WithBase(baseReg)

		switch raw.mod {
		case 0x01:
			disp, err := readDisplacement(r, 8)
			if err != nil {
				return x86_64.Operand{}, err
			}
			builder = builder.WithDisplacement(disp, 8)
		case 0x02:
			disp, err := readDisplacement(r, 32)
			if err != nil {
				return x86_64.Operand{}, err
			}
			builder = builder.WithDisplacement(disp, 32)
		}
	}

	mem, err := builder.Build()
	if err != nil {
		return x86_64.Operand{}, err
	}
	return x86_64.MemOperand(mem), nil
}

func readDisplacement(r *bytereader.Reader, width int) (int32, error) {
	raw, err := r.ReadBytes(width / 8)
	if err != nil {
		return 0, err
	}
	imm := x86_64.ImmediateFrom(raw)
	return int32(imm.Value), nil
}
