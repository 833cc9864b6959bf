package x86_64

import (
	"fmt"
	"strings"

	"github.com/keurnel/x86codec/architecture/x86_64/encode"
	"github.com/keurnel/x86codec/architecture/x86_64/syntax"
	"github.com/keurnel/x86codec/internal/debugcontext"
	"github.com/spf13/cobra"
)

var EncodeCmd = &cobra.Command{
	Use:     "encode <intel-syntax-instruction>",
	GroupID: "codec",
	Short:   "Encode one Intel-syntax instruction into machine code.",
	Long:    `Encode one Intel-syntax instruction into its canonical machine-code bytes.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runEncode(cmd, args); err != nil {
			cmd.PrintErrln("Error:", err)
		}
	},
}

func runEncode(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("no instruction provided")
	}

	line := strings.Join(args, " ")
	instr, err := syntax.Parse(line, debugcontext.Loc("<arg>", 1, 0))
	if err != nil {
		return err
	}

	data, err := encode.Encode(instr)
	if err != nil {
		return err
	}

	cmd.Println(formatBytes(data))
	return nil
}
