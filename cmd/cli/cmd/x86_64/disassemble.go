package x86_64

import (
	"fmt"
	"os"

	"github.com/keurnel/x86codec/architecture/x86_64/bytereader"
	"github.com/keurnel/x86codec/architecture/x86_64/decode"
	"github.com/keurnel/x86codec/architecture/x86_64/syntax"
	"github.com/spf13/cobra"
)

var DisassembleCmd = &cobra.Command{
	Use:     "disassemble <binary-file>",
	GroupID: "file-operations",
	Short:   "Disassemble a flat binary file into an Intel-syntax listing.",
	Long: `Disassemble a flat binary file into an Intel-syntax listing with byte
offsets. --format selects how the input is read: 'raw' treats the file as
machine code as-is, 'hex' as two-hex-digit text.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDisassemble(cmd, args); err != nil {
			cmd.PrintErrln("Error:", err)
		}
	},
}

var disassembleFormat string

func init() {
	DisassembleCmd.Flags().StringVar(&disassembleFormat, "format", "raw", "input format: raw or hex")
}

func runDisassemble(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("no binary file provided")
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	var data []byte
	switch disassembleFormat {
	case "raw":
		data = content
	case "hex":
		data, err = parseHexArgument(string(content))
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want raw or hex)", disassembleFormat)
	}

	r := bytereader.New(data)
	for r.Remaining() > 0 {
		offset := r.Offset()
		instr, err := decode.DecodeOne(r)
		if err != nil {
			return fmt.Errorf("at offset %#x: %w", offset, err)
		}
		cmd.Printf("%8x:  %-30s %s\n", offset, formatBytes(data[offset:offset+instr.Length]), syntax.Print(instr))
	}
	return nil
}
