package x86_64

import (
	"github.com/keurnel/x86codec/internal/asm"
)

type Assembler struct {
	asm.Architecture
	rawSource string
}

// New - returns a new instance of the x86_64 assembler for the given raw
// assembly source.
func New(rawSource string) *Assembler {
	return &Assembler{
		rawSource: rawSource,
	}
}

// AssemblerNew - returns a new instance of the x86_64 assembler
//
// Deprecated: use New.
func AssemblerNew(rawSource string) *Assembler {
	return New(rawSource)
}

// ArchitectureName - returns the name of the architecture
func (a *Assembler) ArchitectureName() string {
	return "x86_64"
}

// Instructions - returns the declarative instruction table for the architecture
func (a *Assembler) Instructions() map[string]asm.Instruction {
	return InstructionsByMnemonic
}

// IsInstruction - checks if a given line of assembly code is a valid instruction for the architecture
func (a *Assembler) IsInstruction(line string) bool {
	_, ok := InstructionsByMnemonic[line]
	return ok
}

// RegisterSet - returns a list of supported registers for the architecture
func (a *Assembler) RegisterSet() []string {
	names := make([]string, 0, len(RegistersByName))
	for name := range RegistersByName {
		names = append(names, name)
	}
	return names
}

// IsRegister - checks if a given string is a valid register for the architecture
func (a *Assembler) IsRegister(name string) bool {
	_, ok := RegistersByName[toLower(name)]
	return ok
}

// IsOperand - checks if a given piece of Intel-syntax operand text names a
// register, a bracketed memory operand, or a bare immediate.
func (a *Assembler) IsOperand(text string) bool {
	text = trimSpace(text)
	if text == "" {
		return false
	}
	if text[0] == '[' {
		return isMemoryOperandText(text)
	}
	if a.IsRegister(text) {
		return true
	}
	return isImmediateLiteral(text)
}

// OperandTypes - returns a list of supported operand types for the architecture
func (a *Assembler) OperandTypes() []asm.OperandType {
	return []asm.OperandType{
		OperandNone,
		OperandReg8,
		OperandReg16,
		OperandReg32,
		OperandReg64,
		OperandImm8,
		OperandImm16,
		OperandImm32,
		OperandImm64,
		OperandMem,
		OperandMem8,
		OperandMem16,
		OperandMem32,
		OperandMem64,
		OperandRel8,
		OperandRel32,
		OperandRegMem8,
		OperandRegMem16,
		OperandRegMem32,
		OperandRegMem64,
	}
}

// OperandCounts - returns a list of valid operand counts for the architecture
func (a *Assembler) OperandCounts() []int {
	return []int{OperandCountOne, OperandCountTwo, OperandCountThree}
}

// IsValidOperandCount - checks if a given operand count is valid for the architecture
func (a *Assembler) IsValidOperandCount(count int) bool {
	return count >= OperandCountOne && count <= OperandCountThree
}

// SourceOperandSupportsDestination - checks if a given source operand type can be used with a given destination operand type in an instruction
func (a *Assembler) SourceOperandSupportsDestination(sourceType, destType asm.OperandType) bool {
	if sourceType.Type == "immediate" {
		return destType.Type == "register" || destType.Type == "memory" || destType.Type == "register/memory"
	}
	if sourceType.Type == "memory" || sourceType.Type == "register/memory" {
		return destType.Type == "register"
	}
	if sourceType.Type == "register" {
		if destType.Type == "register" || destType.Type == "memory" || destType.Type == "register/memory" {
			return sourceType.Size == destType.Size || destType.Size == 0
		}
	}
	return false
}

// Is8BitInstruction - checks if a given instruction is an 8-bit instruction based on its operand types
func (a *Assembler) Is8BitInstruction(instr asm.Instruction) bool {
	for _, form := range instr.Forms {
		for _, operand := range form.Operands {
			if operand.Size == 8 {
				return true
			}
		}
	}
	return false
}

// RawSource - returns the raw assembly source code
func (a *Assembler) RawSource() string {
	return a.rawSource
}

// PreProcessedSource - returns the raw source with comments stripped,
// per-line whitespace trimmed, and empty lines removed, ready for
// line-by-line parsing.
func (a *Assembler) PreProcessedSource() string {
	source := asm.PreProcessingRemoveComments(a.rawSource)
	source = asm.PreProcessingTrimWhitespace(source)
	return asm.PreProcessingRemoveEmptyLines(source)
}
