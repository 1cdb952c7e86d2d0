package oracle

// FirstJSONObject finds the first balanced JSON object embedded in the
// given text. Models tend to wrap the requested JSON in prose or markdown
// fences; this cuts it out without caring about the wrapping. Braces
// inside JSON strings (and escaped quotes inside those) do not count.
func FirstJSONObject(text string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range text {
		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}

		switch r {
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		case '"':
			if start >= 0 {
				inString = true
			}
		}
	}

	return "", false
}
