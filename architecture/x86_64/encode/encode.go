// Package encode implements the Instruction-to-byte-stream half of the
// x86-64 codec: the structural inverse of package decode, including the
// canonicalisation rules of spec.md §4.4 (shortest immediate/displacement,
// REX-only-when-needed, short-VEX-when-legal).
package encode

import (
	"github.com/keurnel/x86codec/architecture/x86_64"
	"github.com/keurnel/x86codec/architecture/x86_64/opcodetable"
)

// Encode produces the canonical byte sequence for instr. It fails with
// UnknownOpcodeError when no descriptor describes the mnemonic/operand
// shape (the decoder's error type, even though it signals a caller error
// rather than a decode failure), and with IllegalOperandError when the
// operands cannot be encoded together, such as a high-byte register in an
// instruction that needs a REX prefix.
func Encode(instr x86_64.Instruction) ([]byte, error) {
	desc, immWidth, err := selectDescriptor(instr)
	if err != nil {
		return nil, err
	}

	var out []byte
	out = append(out, encodeLegacyPrefixes(instr, desc)...)

	switch desc.Encoding {
	case x86_64.EncodingVEX:
		out = append(out, encodeVEX(instr, desc)...)
	case x86_64.EncodingEVEX:
		out = append(out, encodeEVEX(instr, desc)...)
	default:
		if needsREX, rex := computeREX(instr, desc); needsREX {
			for _, op := range instr.Operands {
				if op.Kind == x86_64.OperandKindReg && op.Reg.IsHighByte() {
					return nil, &x86_64.IllegalOperandError{
						Mnemonic: instr.Mnemonic,
						Reason:   op.Reg.Name + " cannot be encoded alongside a REX prefix",
					}
				}
			}
			out = append(out, rex)
		}
	}

	switch desc.Encoding {
	case x86_64.EncodingVEX, x86_64.EncodingEVEX:
		// The VEX/EVEX prefix already names the opcode map, so only the
		// opcode byte itself follows it.
		out = append(out, desc.Opcode)
	default:
		out = append(out, opcodeBytes(desc)...)
	}

	modrmBytes, regInOpcodeExtra, err := encodeModRMAndOperands(instr, desc)
	if err != nil {
		return nil, err
	}
	if desc.RegInOpcode {
		out[len(out)-1] |= regInOpcodeExtra
	}
	out = append(out, modrmBytes...)

	if immWidth != 0 {
		imm := immOperand(instr)
		out = append(out, narrowImmediateBytes(imm, immWidth)...)
	}

	return out, nil
}

// narrowImmediateBytes re-encodes imm at width bits, even when imm.Width is
// wider: the encoder's job is to emit the canonical (possibly narrower)
// form the descriptor selection already decided on, not imm's own stored
// width.
func narrowImmediateBytes(imm x86_64.Immediate, width int) []byte {
	narrowed := x86_64.Immediate{Value: imm.Value, Width: width}
	return narrowed.Bytes()
}

func immOperand(instr x86_64.Instruction) x86_64.Immediate {
	for _, op := range instr.Operands {
		if op.Kind == x86_64.OperandKindImm {
			return op.Imm
		}
	}
	return x86_64.Immediate{}
}

func opcodeBytes(desc *opcodetable.Descriptor) []byte {
	switch desc.Map {
	case x86_64.Map0F:
		return []byte{0x0F, desc.Opcode}
	case x86_64.Map0F38:
		return []byte{0x0F, 0x38, desc.Opcode}
	case x86_64.Map0F3A:
		return []byte{0x0F, 0x3A, desc.Opcode}
	default:
		return []byte{desc.Opcode}
	}
}
