package ai

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// Block is a paragraph of a document queued for translation.
type Block struct {
	Index         int    // Original position
	Text          string // Paragraph text
	NeedTranslate bool   // Whether translation is needed
}

// SplitBlocks splits plain text into paragraph blocks on blank lines.
// Blocks without letters or digits (separators, rulers) keep their place but
// are marked as not needing translation.
func SplitBlocks(text string) []Block {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(normalized, "\n\n")

	var blocks []Block
	index := 0
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		blocks = append(blocks, Block{
			Index:         index,
			Text:          trimmed,
			NeedTranslate: hasTranslatableText(trimmed),
		})
		index++
	}
	return blocks
}

func hasTranslatableText(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// HTMLToText strips markup from an HTML fragment, returning its visible text.
func HTMLToText(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return b.String()
}

// CleanForSpeech prepares model output for text-to-speech: markup and
// markdown emphasis read terribly aloud, so both are removed and whitespace
// is collapsed.
func CleanForSpeech(text string) string {
	if strings.ContainsRune(text, '<') {
		text = HTMLToText(text)
	}
	replacer := strings.NewReplacer("**", "", "__", "", "`", "")
	text = replacer.Replace(text)
	return strings.Join(strings.Fields(text), " ")
}
