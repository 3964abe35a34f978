package braces

// Scrub blanks out comments and the contents of string, character and text
// block literals. Every removed byte becomes a space except newlines, so byte
// offsets and line structure of the result match the input.
func Scrub(text string) string {
	out := []byte(text)
	blank := func(from, to int) {
		for i := from; i < to && i < len(out); i++ {
			if out[i] != '\n' {
				out[i] = ' '
			}
		}
	}

	i := 0
	n := len(text)
	for i < n {
		c := text[i]
		switch {
		case c == '/' && i+1 < n && text[i+1] == '/':
			end := i
			for end < n && text[end] != '\n' {
				end++
			}
			blank(i, end)
			i = end
		case c == '/' && i+1 < n && text[i+1] == '*':
			end := i + 2
			for end < n && !(text[end] == '*' && end+1 < n && text[end+1] == '/') {
				end++
			}
			if end < n {
				end += 2
			}
			blank(i, end)
			i = end
		case c == '"' && i+2 < n && text[i+1] == '"' && text[i+2] == '"':
			start := i + 3
			end := start
			for end < n && !(text[end] == '"' && end+2 < n && text[end+1] == '"' && text[end+2] == '"') {
				if text[end] == '\\' {
					end++
				}
				end++
			}
			blank(start, end)
			i = min(end+3, n)
		case c == '"' || c == '\'':
			end := skipQuoted(text, i+1, c)
			blank(i+1, end)
			i = end
			if i < n && text[i] == c {
				i++
			}
		default:
			i++
		}
	}
	return string(out)
}

// skipQuoted returns the index of the closing quote, or of the newline or end
// of text when the literal is unterminated.
func skipQuoted(text string, i int, quote byte) int {
	for i < len(text) {
		switch text[i] {
		case '\\':
			if i+1 < len(text) && text[i+1] != '\n' {
				i += 2
				continue
			}
		case quote, '\n':
			return i
		}
		i++
	}
	return i
}
