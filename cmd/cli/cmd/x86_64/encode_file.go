package x86_64

import (
	"fmt"
	"os"

	arch "github.com/keurnel/x86codec/architecture/x86_64"
	"github.com/keurnel/x86codec/architecture/x86_64/encode"
	"github.com/keurnel/x86codec/architecture/x86_64/syntax"
	"github.com/keurnel/x86codec/internal/assembler_context"
	"github.com/keurnel/x86codec/internal/debugcontext"
	"github.com/spf13/cobra"
)

var EncodeFileCmd = &cobra.Command{
	Use:     "encode-file <assembly-file>",
	GroupID: "file-operations",
	Short:   "Encode a file of Intel-syntax instructions into machine code.",
	Long: `Encode a file of Intel-syntax instructions, one per line, into their
canonical machine-code bytes. ';' starts a comment. Diagnostics for lines
that fail to parse or encode are collected and reported together.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runEncodeFile(cmd, args); err != nil {
			cmd.PrintErrln("Error:", err)
		}
	},
}

func runEncodeFile(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("no assembly file provided")
	}

	sourceBytes, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read assembly file: %w", err)
	}
	source := string(sourceBytes)

	ctx := assembler_context.AssemblerContext{Architecture: arch.New(source)}
	debug := debugcontext.NewDebugContext(args[0])
	debug.SetPhase("encode")

	// Comments are stripped per line rather than through the pre-processing
	// pipeline so line numbers stay aligned with the input file for
	// diagnostics.
	lineNumber := 0
	for _, line := range splitLines(source) {
		lineNumber++
		if idx := indexOfByte(line, ';'); idx != -1 {
			line = line[:idx]
		}
		line = trimSpace(line)
		if line == "" {
			continue
		}

		loc := debug.Loc(lineNumber, 0)
		instr, err := syntax.Parse(line, loc)
		if err != nil {
			debug.Error(loc, err.Error()).WithSnippet(line)
			continue
		}
		if !ctx.Architecture.IsInstruction(instr.Mnemonic) {
			debug.Warning(loc, "mnemonic not in the declarative instruction table: "+instr.Mnemonic).WithSnippet(line)
		}

		data, err := encode.Encode(instr)
		if err != nil {
			debug.Error(loc, err.Error()).WithSnippet(line)
			continue
		}
		cmd.Printf("%-40s ; %s\n", line, formatBytes(data))
	}

	for _, entry := range debug.Entries() {
		cmd.PrintErrln(entry.String())
	}
	if debug.HasErrors() {
		return fmt.Errorf("%d line(s) failed to encode", len(debug.Errors()))
	}
	return nil
}

// splitLines and the helpers below mirror asm.PreProcessing*'s hand-rolled
// line handling; the pipeline variants join lines back together, which
// would lose the line numbers the diagnostics need.
func splitLines(s string) []string {
	var lines []string
	current := ""
	for _, char := range s {
		if char == '\n' {
			lines = append(lines, current)
			current = ""
		} else {
			current += string(char)
		}
	}
	lines = append(lines, current)
	return lines
}

func indexOfByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

func trimSpace(s string) string {
	start := 0
	end := len(s) - 1
	for start <= end && (s[start] == ' ' || s[start] == '\t' || s[start] == '\r') {
		start++
	}
	for end >= start && (s[end] == ' ' || s[end] == '\t' || s[end] == '\r') {
		end--
	}
	if start > end {
		return ""
	}
	return s[start : end+1]
}
