// Package syntax is the thin collaborator spec.md §6 calls
// parse_intel_syntax/pretty_print: a textual Intel-syntax parser and
// printer for a single instruction, built on top of the x86_64 operand
// model. It does not touch the byte stream at all; Parse produces an
// x86_64.Instruction by mnemonic and operand text alone, and the
// decode/encode packages remain the only components that know about bytes.
//
// Grammar accepted by Parse, matching the §8 corpus:
//
//	[prefix] mnemonic [operand [, operand]...]
//	operand  := register | immediate | memory
//	memory   := [size PTR] [segment ':'] '[' base-expr ']'
//	base-expr:= term (('+' | '-') term)*
//	term     := register | register '*' scale | displacement
package syntax

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/keurnel/x86codec/architecture/x86_64"
	"github.com/keurnel/x86codec/internal/debugcontext"
)

// ParseError reports a malformed Intel-syntax instruction string. It carries
// a debugcontext.Location so a caller driving the parser from a file (the
// CLI's encode-file/roundtrip commands) can report it the same way the rest
// of the pipeline reports diagnostics.
type ParseError struct {
	Location debugcontext.Location
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("x86_64/syntax: %s: %s", e.Location.String(), e.Reason)
}

var prefixWords = map[string]x86_64.Prefix{
	"lock":   x86_64.PrefixLock,
	"rep":    x86_64.PrefixRep,
	"repe":   x86_64.PrefixRep,
	"repz":   x86_64.PrefixRep,
	"repne":  x86_64.PrefixRepNE,
	"repnz":  x86_64.PrefixRepNE,
}

var sizeWords = map[string]int{
	"byte":    8,
	"word":    16,
	"dword":   32,
	"qword":   64,
	"xmmword": 128,
	"ymmword": 256,
	"zmmword": 512,
}

var sizeNames = map[int]string{
	8: "BYTE", 16: "WORD", 32: "DWORD", 64: "QWORD",
	128: "XMMWORD", 256: "YMMWORD", 512: "ZMMWORD",
}

// Parse converts a single line of Intel-syntax assembly into its symbolic
// Instruction form. loc is attributed to any ParseError raised; callers
// parsing a bare string with no file context may pass the zero Location.
func Parse(text string, loc debugcontext.Location) (x86_64.Instruction, error) {
	fields := splitTopLevel(strings.TrimSpace(text), ' ')
	fields = removeEmpty(fields)
	if len(fields) == 0 {
		return x86_64.Instruction{}, &ParseError{Location: loc, Reason: "empty instruction"}
	}

	var prefixes []x86_64.Prefix
	for len(fields) > 1 {
		p, ok := prefixWords[strings.ToLower(fields[0])]
		if !ok {
			break
		}
		prefixes = append(prefixes, p)
		fields = fields[1:]
	}

	mnemonic := strings.ToUpper(fields[0])
	operandText := strings.Join(fields[1:], " ")

	var operands []x86_64.Operand
	if operandText != "" {
		for _, part := range splitTopLevel(operandText, ',') {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			op, err := parseOperand(part, loc)
			if err != nil {
				return x86_64.Instruction{}, err
			}
			operands = append(operands, op)
		}
	}

	return x86_64.Instruction{
		Mnemonic: mnemonic,
		Operands: operands,
		Prefixes: prefixes,
	}, nil
}

func removeEmpty(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// splitTopLevel splits s on sep, except inside a '[...]' bracket pair, so
// "DWORD PTR [rbx+r12*4]" splits into two space-separated fields and
// "a,[b,c]"-shaped nonsense never arises in valid input but brackets are
// still respected for the comma splitter.
func splitTopLevel(s string, sep byte) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		default:
			if s[i] == sep && depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

func parseOperand(text string, loc debugcontext.Location) (x86_64.Operand, error) {
	lower := strings.ToLower(text)

	for word, bits := range sizeWords {
		if strings.HasPrefix(lower, word+" ptr ") {
			memText := strings.TrimSpace(text[len(word+" ptr "):])
			return parseMemory(memText, bits, loc)
		}
	}

	if strings.HasPrefix(text, "[") || strings.Contains(text, ":[") {
		return parseMemory(text, 0, loc)
	}

	if reg, ok := x86_64.RegistersByName[lower]; ok {
		return x86_64.RegOperand(reg), nil
	}

	if val, ok := parseIntLiteral(text); ok {
		return x86_64.ImmOperand(x86_64.Immediate{Value: val, Width: immWidthFor(val)}), nil
	}

	return x86_64.Operand{}, &ParseError{Location: loc, Reason: "unrecognised operand: " + text}
}

func immWidthFor(v int64) int {
	switch {
	case v >= -128 && v <= 127:
		return 8
	case v >= -32768 && v <= 32767:
		return 16
	case v >= -2147483648 && v <= 2147483647:
		return 32
	default:
		return 64
	}
}

func parseIntLiteral(text string) (int64, bool) {
	neg := false
	if strings.HasPrefix(text, "+") {
		text = text[1:]
	} else if strings.HasPrefix(text, "-") {
		neg = true
		text = text[1:]
	}
	var v int64
	var err error
	if strings.HasPrefix(strings.ToLower(text), "0x") {
		u, e := strconv.ParseUint(text[2:], 16, 64)
		v, err = int64(u), e
	} else {
		v, err = strconv.ParseInt(text, 10, 64)
	}
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}

func parseMemory(text string, pointerSize int, loc debugcontext.Location) (x86_64.Operand, error) {
	var segment *x86_64.Register
	bracket := text
	if idx := strings.IndexByte(text, ':'); idx != -1 && (strings.IndexByte(text, '[') == -1 || idx < strings.IndexByte(text, '[')) {
		segName := strings.ToLower(strings.TrimSpace(text[:idx]))
		reg, ok := x86_64.RegistersByName[segName]
		if !ok || reg.Type != x86_64.RegisterSegment {
			return x86_64.Operand{}, &ParseError{Location: loc, Reason: "unknown segment: " + segName}
		}
		segment = &reg
		bracket = strings.TrimSpace(text[idx+1:])
	}

	if !strings.HasPrefix(bracket, "[") || !strings.HasSuffix(bracket, "]") {
		return x86_64.Operand{}, &ParseError{Location: loc, Reason: "malformed memory operand: " + text}
	}

	inner := bracket[1 : len(bracket)-1]
	builder := x86_64.NewIndirectBuilder()
	if segment != nil {
		builder = builder.WithSegment(*segment)
	}

	haveBaseOrIndex := false
	haveDisp := false
	var disp int32
	var baseName string
	for _, term := range splitSignedTerms(inner) {
		sign := int32(1)
		body := term
		if body != "" && (body[0] == '+' || body[0] == '-') {
			if body[0] == '-' {
				sign = -1
			}
			body = body[1:]
		}
		if body == "" {
			return x86_64.Operand{}, &ParseError{Location: loc, Reason: "empty term in memory operand"}
		}

		if star := strings.IndexByte(body, '*'); star != -1 {
			regName := strings.ToLower(body[:star])
			scaleText := body[star+1:]
			reg, ok := x86_64.RegistersByName[regName]
			if !ok {
				return x86_64.Operand{}, &ParseError{Location: loc, Reason: "unknown index register: " + regName}
			}
			scale, err := strconv.Atoi(scaleText)
			if err != nil {
				return x86_64.Operand{}, &ParseError{Location: loc, Reason: "invalid scale: " + scaleText}
			}
			builder = builder.WithIndex(reg, byte(scale))
			haveBaseOrIndex = true
			continue
		}

		if reg, ok := x86_64.RegistersByName[strings.ToLower(body)]; ok {
			if !haveBaseOrIndex {
				builder = builder.WithBase(reg)
				baseName = reg.Name
			} else {
				builder = builder.WithIndex(reg, 1)
			}
			haveBaseOrIndex = true
			continue
		}

		v, ok := parseIntLiteral(body)
		if !ok {
			return x86_64.Operand{}, &ParseError{Location: loc, Reason: "invalid displacement: " + body}
		}
		disp = sign * int32(v)
		haveDisp = true
	}

	if haveDisp {
		// Absolute, index-only, and RIP-relative forms always encode a
		// 32-bit displacement; a form with a base register takes the
		// narrowest width the value fits, matching the encoder's canonical
		// choice.
		width := 32
		if baseName != "" && baseName != "rip" && baseName != "eip" && disp >= -128 && disp <= 127 {
			width = 8
		}
		builder = builder.WithDisplacement(disp, width)
	}

	if pointerSize != 0 {
		builder = builder.WithPointerSize(pointerSize)
	} else if !haveBaseOrIndex {
		builder = builder.WithPointerSize(64)
	}

	mem, err := builder.Build()
	if err != nil {
		return x86_64.Operand{}, &ParseError{Location: loc, Reason: err.Error()}
	}
	return x86_64.MemOperand(mem), nil
}

// splitSignedTerms splits s on '+'/'-' outside of any nesting, keeping the
// sign with the term that follows it. The leading term carries an implicit
// '+'. Mirrors the architecture package's own helper of the same name used
// by IsOperand's memory-text grammar check.
func splitSignedTerms(s string) []string {
	var terms []string
	start := 0
	for i := 1; i < len(s); i++ {
		if s[i] == '+' || s[i] == '-' {
			terms = append(terms, s[start:i])
			start = i
		}
	}
	terms = append(terms, s[start:])
	return terms
}

// Print renders instr back to Intel syntax. It is the structural inverse of
// Parse for every form Parse accepts: Print(Parse(s)) == s for canonical s
// (the §8 corpus's third invariant).
func Print(instr x86_64.Instruction) string {
	var b strings.Builder
	for _, p := range instr.Prefixes {
		switch p {
		case x86_64.PrefixLock:
			b.WriteString("lock ")
		case x86_64.PrefixRep:
			b.WriteString("rep ")
		case x86_64.PrefixRepNE:
			b.WriteString("repne ")
		}
	}
	b.WriteString(strings.ToLower(instr.Mnemonic))
	for i, op := range instr.Operands {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteByte(',')
		}
		b.WriteString(printOperand(op))
	}
	return b.String()
}

func printOperand(op x86_64.Operand) string {
	switch op.Kind {
	case x86_64.OperandKindReg, x86_64.OperandKindSeg:
		return op.Reg.Name
	case x86_64.OperandKindImm:
		return printImmediate(op.Imm.Value)
	case x86_64.OperandKindMem:
		return printMemory(op.Mem)
	default:
		return ""
	}
}

func printImmediate(v int64) string {
	if v < 0 {
		return "-0x" + strconv.FormatUint(uint64(-v), 16)
	}
	return "0x" + strconv.FormatUint(uint64(v), 16)
}

func printMemory(mem x86_64.Indirect) string {
	var b strings.Builder
	if name, ok := sizeNames[mem.PointerSize]; ok {
		b.WriteString(name)
		b.WriteString(" PTR ")
	}
	if mem.Segment != nil {
		b.WriteString(mem.Segment.Name)
		b.WriteByte(':')
	}
	b.WriteByte('[')
	wrote := false
	if mem.Base != nil {
		b.WriteString(mem.Base.Name)
		wrote = true
	}
	if mem.Index != nil {
		if wrote {
			b.WriteByte('+')
		}
		b.WriteString(mem.Index.Name)
		b.WriteByte('*')
		b.WriteString(strconv.Itoa(int(mem.Scale)))
		wrote = true
	}
	if mem.Displacement != 0 || !wrote {
		if mem.Displacement < 0 {
			b.WriteByte('-')
			b.WriteString("0x" + strconv.FormatUint(uint64(-int64(mem.Displacement)), 16))
		} else {
			if wrote {
				b.WriteByte('+')
			}
			b.WriteString("0x" + strconv.FormatUint(uint64(mem.Displacement), 16))
		}
	}
	b.WriteByte(']')
	return b.String()
}
