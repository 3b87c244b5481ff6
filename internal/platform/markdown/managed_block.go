package markdown

import "strings"

// Block is a generated region delimited by HTML comments, e.g. the validation
// report of an exported content item. Text outside it belongs to the user.
type Block struct {
	Name string
}

func (b Block) start() string { return "<!-- cvp:" + b.Name + ":start -->" }
func (b Block) end() string   { return "<!-- cvp:" + b.Name + ":end -->" }

// Replace swaps the block contents in body, appending the block if absent.
func (b Block) Replace(body, generated string) string {
	startMarker, endMarker := b.start(), b.end()
	start := strings.Index(body, startMarker)
	end := strings.Index(body, endMarker)
	block := startMarker + "\n" + strings.TrimRight(generated, "\n") + "\n" + endMarker

	if start >= 0 && end > start {
		end += len(endMarker)
		return body[:start] + block + body[end:]
	}
	if strings.TrimSpace(body) == "" {
		return block + "\n"
	}
	if strings.HasSuffix(body, "\n") {
		return body + "\n" + block + "\n"
	}
	return body + "\n\n" + block + "\n"
}

// Strip removes the block, returning the user owned text.
func (b Block) Strip(body string) string {
	start := strings.Index(body, b.start())
	end := strings.Index(body, b.end())
	if start < 0 || end < start {
		return body
	}
	return strings.TrimRight(body[:start], "\n") + "\n" + strings.TrimLeft(body[end+len(b.end()):], "\n")
}
