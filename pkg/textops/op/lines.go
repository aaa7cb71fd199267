package op

import "strings"

// mapLines applies fn to every line of text, leaving the "\n" separators
// in place. A trailing "\r" (CRLF documents) is detached before fn runs
// and re-attached afterwards so terminators survive the transform.
func mapLines(text string, fn func(line string) string) string {
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		crlf := strings.HasSuffix(line, "\r")
		if crlf {
			line = strings.TrimSuffix(line, "\r")
		}

		line = fn(line)
		if crlf {
			line += "\r"
		}

		lines[i] = line
	}

	return strings.Join(lines, "\n")
}
