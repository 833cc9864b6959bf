package x86_64

import (
	"fmt"

	"github.com/keurnel/x86codec/architecture/x86_64/bytereader"
	"github.com/keurnel/x86codec/architecture/x86_64/decode"
	"github.com/keurnel/x86codec/architecture/x86_64/encode"
	"github.com/keurnel/x86codec/architecture/x86_64/syntax"
	"github.com/keurnel/x86codec/architecture/x86_64/testvector"
	"github.com/keurnel/x86codec/internal/debugcontext"
	"github.com/spf13/cobra"
)

var RoundtripCmd = &cobra.Command{
	Use:     "roundtrip <vector-file>...",
	GroupID: "file-operations",
	Short:   "Check decode/encode/print round trips over a test-vector file.",
	Long: `Check a test-vector file (Intel syntax '|' hex bytes, one instruction
per line, '#' comments) against all three codec round trips: the bytes must
decode to the printed syntax, the syntax must parse and encode back to the
bytes, and decode followed by encode must reproduce the bytes exactly.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRoundtrip(cmd, args); err != nil {
			cmd.PrintErrln("Error:", err)
		}
	},
}

func runRoundtrip(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("no vector files provided")
	}

	total := 0
	failures := 0
	for _, path := range args {
		vectors, err := testvector.Load(path)
		if err != nil {
			return err
		}
		debug := debugcontext.NewDebugContext(path)
		debug.SetPhase("roundtrip")

		for _, vector := range vectors {
			total++
			checkVector(debug, vector)
		}

		for _, entry := range debug.Entries() {
			cmd.PrintErrln(entry.String())
		}
		failures += len(debug.Errors())
	}

	cmd.Printf("%d vector(s), %d failure(s)\n", total, failures)
	if failures > 0 {
		return fmt.Errorf("%d round-trip failure(s)", failures)
	}
	return nil
}

func checkVector(debug *debugcontext.DebugContext, vector testvector.Vector) {
	loc := debug.Loc(vector.Line, 0)

	decoded, err := decode.DecodeOne(bytereader.New(vector.Bytes))
	if err != nil {
		debug.Error(loc, "decode: "+err.Error()).WithSnippet(vector.Syntax)
		return
	}
	if printed := syntax.Print(decoded); printed != vector.Syntax {
		debug.Error(loc, fmt.Sprintf("print mismatch: got %q", printed)).WithSnippet(vector.Syntax)
		return
	}

	parsed, err := syntax.Parse(vector.Syntax, loc)
	if err != nil {
		debug.Error(loc, "parse: "+err.Error()).WithSnippet(vector.Syntax)
		return
	}
	encoded, err := encode.Encode(parsed)
	if err != nil {
		debug.Error(loc, "encode: "+err.Error()).WithSnippet(vector.Syntax)
		return
	}
	if !bytesEqual(encoded, vector.Bytes) {
		debug.Error(loc, fmt.Sprintf("encode mismatch: got %s", formatBytes(encoded))).WithSnippet(vector.Syntax)
		return
	}

	reencoded, err := encode.Encode(decoded)
	if err != nil {
		debug.Error(loc, "re-encode: "+err.Error()).WithSnippet(vector.Syntax)
		return
	}
	if !bytesEqual(reencoded, vector.Bytes) {
		debug.Error(loc, fmt.Sprintf("re-encode mismatch: got %s", formatBytes(reencoded))).WithSnippet(vector.Syntax)
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
