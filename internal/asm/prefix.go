package asm

// Prefix - a legacy instruction prefix byte (LOCK, REP family, segment
// overrides, operand/address-size overrides). Architectures declare their
// own named constants of this type.
type Prefix byte

// InstructionEncoding - discriminates how an instruction form's leading
// bytes are laid out (legacy, VEX, EVEX, XOP).
type InstructionEncoding int
