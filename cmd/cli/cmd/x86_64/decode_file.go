package x86_64

import (
	"fmt"
	"os"
	"sort"

	"github.com/keurnel/x86codec/architecture/x86_64/decode"
	"github.com/keurnel/x86codec/architecture/x86_64/syntax"
	"github.com/spf13/cobra"
)

var DecodeFileCmd = &cobra.Command{
	Use:     "decode-file <hex-file>...",
	GroupID: "file-operations",
	Short:   "Decode files of hex-encoded machine code into Intel syntax.",
	Long: `Decode files of hex-encoded machine code into Intel syntax. Each file
holds two-hex-digit bytes separated by whitespace. Multiple files are
decoded in parallel; each decoder instance works on its own input, so no
synchronisation is needed between them.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDecodeFile(cmd, args); err != nil {
			cmd.PrintErrln("Error:", err)
		}
	},
}

var decodeFileWorkers int

func init() {
	DecodeFileCmd.Flags().IntVar(&decodeFileWorkers, "workers", 0, "number of parallel workers (0 = one per CPU)")
}

type decodeFileResult struct {
	path  string
	lines []string
	err   error
}

func runDecodeFile(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("no input files provided")
	}

	pool := newWorkerPool(decodeFileWorkers)
	results := make([]decodeFileResult, len(args))

	tasks := make([]func(), 0, len(args))
	for i, path := range args {
		i, path := i, path
		tasks = append(tasks, func() {
			results[i] = decodeOneFile(path)
		})
	}
	pool.Run(tasks)

	failed := 0
	decoded := 0
	sort.SliceStable(results, func(i, j int) bool { return results[i].path < results[j].path })
	for _, result := range results {
		cmd.Printf("== %s\n", result.path)
		for _, line := range result.lines {
			cmd.Println(line)
		}
		decoded += len(result.lines)
		if result.err != nil {
			cmd.PrintErrf("%s: %v\n", result.path, result.err)
			failed++
		}
	}
	cmd.Printf("%d file(s), %d instruction(s), %d failure(s)\n", pool.Completed(), decoded, failed)

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed to decode", failed)
	}
	return nil
}

func decodeOneFile(path string) decodeFileResult {
	content, err := os.ReadFile(path)
	if err != nil {
		return decodeFileResult{path: path, err: err}
	}

	data, err := parseHexArgument(string(content))
	if err != nil {
		return decodeFileResult{path: path, err: err}
	}

	instructions, err := decode.DecodeAll(data)
	lines := make([]string, 0, len(instructions))
	for _, instr := range instructions {
		lines = append(lines, syntax.Print(instr))
	}
	return decodeFileResult{path: path, lines: lines, err: err}
}
