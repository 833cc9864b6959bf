package x86_64_test

import (
	"errors"
	"testing"

	"github.com/keurnel/x86codec/architecture/x86_64"
	"github.com/keurnel/x86codec/architecture/x86_64/bytereader"
	"github.com/keurnel/x86codec/architecture/x86_64/decode"
	"github.com/keurnel/x86codec/architecture/x86_64/encode"
	"github.com/keurnel/x86codec/architecture/x86_64/syntax"
	"github.com/keurnel/x86codec/architecture/x86_64/testvector"
	"github.com/keurnel/x86codec/internal/debugcontext"
)

func loadCorpus(t *testing.T) []testvector.Vector {
	t.Helper()
	vectors, err := testvector.Load("testdata/corpus.txt")
	if err != nil {
		t.Fatalf("loading corpus: %v", err)
	}
	if len(vectors) == 0 {
		t.Fatal("corpus is empty")
	}
	return vectors
}

func TestCorpus_DecodePrintsCanonicalSyntax(t *testing.T) {
	for _, vector := range loadCorpus(t) {
		t.Run(vector.Syntax, func(t *testing.T) {
			instr, err := decode.DecodeOne(bytereader.New(vector.Bytes))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if instr.Length != len(vector.Bytes) {
				t.Errorf("expected to consume %d bytes, consumed %d", len(vector.Bytes), instr.Length)
			}
			if got := syntax.Print(instr); got != vector.Syntax {
				t.Errorf("expected %q, got %q", vector.Syntax, got)
			}
		})
	}
}

func TestCorpus_ParseEncodesCanonicalBytes(t *testing.T) {
	for _, vector := range loadCorpus(t) {
		t.Run(vector.Syntax, func(t *testing.T) {
			instr, err := syntax.Parse(vector.Syntax, debugcontext.Location{})
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			got, err := encode.Encode(instr)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if !bytesEqual(got, vector.Bytes) {
				t.Errorf("expected % x, got % x", vector.Bytes, got)
			}
		})
	}
}

func TestCorpus_DecodeEncodeIsIdentity(t *testing.T) {
	for _, vector := range loadCorpus(t) {
		t.Run(vector.Syntax, func(t *testing.T) {
			instr, err := decode.DecodeOne(bytereader.New(vector.Bytes))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			reencoded, err := encode.Encode(instr)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if !bytesEqual(reencoded, vector.Bytes) {
				t.Fatalf("expected % x, got % x", vector.Bytes, reencoded)
			}

			// And decoding what we just produced lands on a structurally
			// equal instruction.
			again, err := decode.DecodeOne(bytereader.New(reencoded))
			if err != nil {
				t.Fatalf("second decode: %v", err)
			}
			if !again.Equal(instr) {
				t.Errorf("decode(encode(i)) differs structurally from i")
			}
		})
	}
}

func TestCorpus_RowsAreDistinct(t *testing.T) {
	seenSyntax := make(map[string]int)
	seenBytes := make(map[string]int)
	for _, vector := range loadCorpus(t) {
		if prev, ok := seenSyntax[vector.Syntax]; ok {
			t.Errorf("lines %d and %d share syntax %q", prev, vector.Line, vector.Syntax)
		}
		seenSyntax[vector.Syntax] = vector.Line

		key := string(vector.Bytes)
		if prev, ok := seenBytes[key]; ok {
			t.Errorf("lines %d and %d share bytes % x", prev, vector.Line, vector.Bytes)
		}
		seenBytes[key] = vector.Line
	}
}

func TestCorpus_BaseAndIndexWidthsAgree(t *testing.T) {
	for _, vector := range loadCorpus(t) {
		instr, err := decode.DecodeOne(bytereader.New(vector.Bytes))
		if err != nil {
			t.Fatalf("%s: decode: %v", vector.Syntax, err)
		}
		for _, op := range instr.Operands {
			if op.Kind != x86_64.OperandKindMem {
				continue
			}
			mem := op.Mem
			if mem.Base != nil && mem.Index != nil && mem.Base.Width() != mem.Index.Width() {
				t.Errorf("%s: base %s and index %s have different widths", vector.Syntax, mem.Base.Name, mem.Index.Name)
			}
		}
	}
}

func TestCorpus_TruncatedPrefixesFail(t *testing.T) {
	// Every proper prefix of a canonical encoding is a truncated
	// instruction; none of the corpus rows has another row as a leading
	// prefix, so each must surface ErrInsufficientBytes.
	for _, vector := range loadCorpus(t) {
		for cut := 1; cut < len(vector.Bytes); cut++ {
			prefix := vector.Bytes[:cut]
			_, err := decode.DecodeOne(bytereader.New(prefix))
			if !errors.Is(err, x86_64.ErrInsufficientBytes) {
				t.Errorf("%s truncated to % x: expected ErrInsufficientBytes, got %v", vector.Syntax, prefix, err)
			}
		}
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
