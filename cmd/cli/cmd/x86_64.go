package cmd

import (
	"github.com/spf13/cobra"

	x8664 "github.com/keurnel/x86codec/cmd/cli/cmd/x86_64"
)

var x8664Cmd = &cobra.Command{
	Use:     "x86_64",
	GroupID: "arch",
	Short:   "x86_64 architecture",
	Long:    `Decode, encode, and round-trip x86_64 machine code.`,
}

func init() {

	x8664Cmd.AddGroup(&cobra.Group{
		ID:    "codec",
		Title: "Codec operations",
	})
	x8664Cmd.AddGroup(&cobra.Group{
		ID:    "file-operations",
		Title: "File operations",
	})

	x8664Cmd.AddCommand(x8664.DecodeCmd)
	x8664Cmd.AddCommand(x8664.EncodeCmd)
	x8664Cmd.AddCommand(x8664.EncodeFileCmd)
	x8664Cmd.AddCommand(x8664.DecodeFileCmd)
	x8664Cmd.AddCommand(x8664.RoundtripCmd)
	x8664Cmd.AddCommand(x8664.DisassembleCmd)
}
