package x86_64

import (
	"fmt"
	"strings"

	"github.com/keurnel/x86codec/architecture/x86_64/decode"
	"github.com/keurnel/x86codec/architecture/x86_64/syntax"
	"github.com/spf13/cobra"
)

var DecodeCmd = &cobra.Command{
	Use:     "decode <hex-bytes>",
	GroupID: "codec",
	Short:   "Decode hex-encoded machine code into Intel syntax.",
	Long: `Decode hex-encoded machine code into Intel syntax.

Bytes are given as two-hex-digit values, separated by spaces or run
together: 'x86_64 decode 48 89 d8' and 'x86_64 decode 4889d8' are
equivalent.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDecode(cmd, args); err != nil {
			cmd.PrintErrln("Error:", err)
		}
	},
}

func runDecode(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("no bytes provided")
	}

	data, err := parseHexArgument(strings.Join(args, " "))
	if err != nil {
		return err
	}

	instructions, err := decode.DecodeAll(data)
	for _, instr := range instructions {
		cmd.Println(syntax.Print(instr))
	}
	return err
}

// parseHexArgument reads hex digits from text, ignoring whitespace, and
// pairs them up into bytes.
func parseHexArgument(text string) ([]byte, error) {
	var digits []byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			continue
		case c >= '0' && c <= '9':
			digits = append(digits, c-'0')
		case c >= 'a' && c <= 'f':
			digits = append(digits, c-'a'+10)
		case c >= 'A' && c <= 'F':
			digits = append(digits, c-'A'+10)
		default:
			return nil, fmt.Errorf("invalid hex input at %q", text[i:])
		}
	}
	if len(digits)%2 != 0 {
		return nil, fmt.Errorf("odd number of hex digits")
	}
	out := make([]byte, 0, len(digits)/2)
	for i := 0; i < len(digits); i += 2 {
		out = append(out, digits[i]<<4|digits[i+1])
	}
	return out, nil
}

func formatBytes(data []byte) string {
	var b strings.Builder
	for i, value := range data {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02x", value)
	}
	return b.String()
}
