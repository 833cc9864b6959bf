package x86_64

// trimSpace trims leading and trailing spaces and tabs from s, mirroring the
// hand-rolled trimming asm.PreProcessingTrimWhitespace does per line.
func trimSpace(s string) string {
	start := 0
	end := len(s) - 1
	for start <= end && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	for end >= start && (s[end] == ' ' || s[end] == '\t') {
		end--
	}
	if start > end {
		return ""
	}
	return s[start : end+1]
}

// toLower lower-cases ASCII letters; register and mnemonic text is always
// ASCII so this avoids pulling in unicode-aware casing.
func toLower(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

func isDecimalDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isHexDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// isNumericLiteral reports whether s (no sign) is a decimal or 0x-prefixed
// hexadecimal literal.
func isNumericLiteral(s string) bool {
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return isHexDigits(s[2:])
	}
	return isDecimalDigits(s)
}

// isImmediateLiteral accepts an optional leading sign in front of a numeric
// literal, e.g. "123" or "-8".
func isImmediateLiteral(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '+' || s[0] == '-' {
		return isNumericLiteral(s[1:])
	}
	return isNumericLiteral(s)
}

// isMemoryOperandText reports whether text is a well-formed bracketed
// Intel-syntax memory operand: "[base]", "[base±disp]", "[base+index]",
// "[base+index*scale±disp]", or a direct address "[disp]". A single pair of
// brackets is required; nested brackets are rejected.
func isMemoryOperandText(text string) bool {
	if len(text) < 2 || text[0] != '[' || text[len(text)-1] != ']' {
		return false
	}
	inner := text[1 : len(text)-1]
	if inner == "" {
		return false
	}
	for i := 0; i < len(inner); i++ {
		if inner[i] == '[' || inner[i] == ']' {
			return false
		}
	}
	return isValidMemoryInner(inner)
}

func isValidMemoryInner(inner string) bool {
	terms := splitSignedTerms(inner)

	if len(terms) == 1 {
		t := terms[0]
		if isRegisterNameText(t) {
			return true
		}
		return isNumericLiteral(t)
	}

	if !isRegisterNameText(terms[0]) {
		return false
	}

	sawDisp := false
	sawIndex := false
	for _, term := range terms[1:] {
		sign := term[0]
		body := term[1:]
		if body == "" {
			return false
		}

		if starIdx := indexOfByte(body, '*'); starIdx != -1 {
			if sawIndex || sign == '-' {
				return false
			}
			regPart := body[:starIdx]
			scalePart := body[starIdx+1:]
			if !isRegisterNameText(regPart) || !isValidScale(scalePart) {
				return false
			}
			sawIndex = true
			continue
		}

		if isRegisterNameText(body) {
			if sawIndex || sign == '-' {
				return false
			}
			sawIndex = true
			continue
		}

		if isNumericLiteral(body) {
			if sawDisp {
				return false
			}
			sawDisp = true
			continue
		}

		return false
	}

	return true
}

// splitSignedTerms splits s on '+'/'-', keeping the sign with the term that
// follows it (the leading term carries no sign). "RBP-8" -> ["RBP", "-8"].
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

func indexOfByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

func isValidScale(s string) bool {
	switch s {
	case "1", "2", "4", "8":
		return true
	default:
		return false
	}
}

func isRegisterNameText(s string) bool {
	_, ok := RegistersByName[toLower(s)]
	return ok
}
