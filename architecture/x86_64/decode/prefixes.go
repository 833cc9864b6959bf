package decode

import (
	"github.com/keurnel/x86codec/architecture/x86_64"
	"github.com/keurnel/x86codec/architecture/x86_64/bytereader"
)

// legacyPrefixBytes lists every byte value that is a legacy prefix, used to
// decide when to keep consuming prefix bytes before the opcode.
var legacyPrefixBytes = map[byte]x86_64.Prefix{
	byte(x86_64.PrefixLock):        x86_64.PrefixLock,
	byte(x86_64.PrefixRepNE):       x86_64.PrefixRepNE,
	byte(x86_64.PrefixRep):         x86_64.PrefixRep,
	byte(x86_64.PrefixCS):          x86_64.PrefixCS,
	byte(x86_64.PrefixSS):          x86_64.PrefixSS,
	byte(x86_64.PrefixDS):          x86_64.PrefixDS,
	byte(x86_64.PrefixES):          x86_64.PrefixES,
	byte(x86_64.PrefixFS):          x86_64.PrefixFS,
	byte(x86_64.PrefixGS):          x86_64.PrefixGS,
	byte(x86_64.PrefixOperandSize): x86_64.PrefixOperandSize,
	byte(x86_64.PrefixAddressSize): x86_64.PrefixAddressSize,
}

// readLegacyPrefixes consumes every leading legacy prefix byte, in the order
// encountered. The x86-64 architecture permits any legal combination and
// imposes no canonical ordering, so these are simply recorded, not merged.
func readLegacyPrefixes(r *bytereader.Reader) ([]x86_64.Prefix, error) {
	var prefixes []x86_64.Prefix
	for {
		b, ok := r.Peek()
		if !ok {
			return prefixes, nil
		}
		p, isPrefix := legacyPrefixBytes[b]
		if !isPrefix {
			return prefixes, nil
		}
		if _, err := r.ReadByte(); err != nil {
			return nil, err
		}
		prefixes = append(prefixes, p)
	}
}

// readREX consumes a REX prefix byte (0x40-0x4F) if present. It returns 0
// when absent, which is indistinguishable from "REX.W/R/X/B all clear" only
// in the sense that both decode to the same operand resolution; Instruction
// callers use HasREX rather than comparing against 0 directly for clarity.
func readREX(r *bytereader.Reader) (byte, error) {
	b, ok := r.Peek()
	if !ok || b < 0x40 || b > 0x4F {
		return 0, nil
	}
	if _, err := r.ReadByte(); err != nil {
		return 0, err
	}
	return b, nil
}

func rexW(rex byte) bool { return rex&0x08 != 0 }
func rexR(rex byte) bool { return rex&0x04 != 0 }
func rexX(rex byte) bool { return rex&0x02 != 0 }
func rexB(rex byte) bool { return rex&0x01 != 0 }

// hasPrefix reports whether p is among the recorded legacy prefixes.
func hasPrefix(prefixes []x86_64.Prefix, p x86_64.Prefix) bool {
	for _, present := range prefixes {
		if present == p {
			return true
		}
	}
	return false
}

// segmentOverride returns the segment register a DS-relative implicit memory
// operand should use, honouring a CS/SS/DS/ES/FS/GS override prefix if one
// was read. Returns (Register{}, false) when there is no override, meaning
// the default segment implied by the addressing form applies.
func segmentOverride(prefixes []x86_64.Prefix) (x86_64.Register, bool) {
	table := map[x86_64.Prefix]x86_64.Register{
		x86_64.PrefixCS: x86_64.CS,
		x86_64.PrefixSS: x86_64.SS,
		x86_64.PrefixDS: x86_64.DS,
		x86_64.PrefixES: x86_64.ES,
		x86_64.PrefixFS: x86_64.FS,
		x86_64.PrefixGS: x86_64.GS,
	}
	for _, p := range prefixes {
		if reg, ok := table[p]; ok {
			return reg, true
		}
	}
	return x86_64.Register{}, false
}
