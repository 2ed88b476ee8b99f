package combine

import (
	"bytes"
	"unicode/utf8"
)

// isText reports whether data can be rendered into a prompt. Content with NUL
// bytes, a high ratio of control characters in the first bytes, or invalid
// UTF-8 is not text.
func isText(data []byte) bool {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}

	if bytes.IndexByte(head, 0) >= 0 {
		return false
	}

	if len(head) > 0 {
		control := 0
		for _, b := range head {
			if isControl(b) {
				control++
			}
		}
		if float64(control)/float64(len(head)) > 0.3 {
			return false
		}
	}

	return utf8.Valid(data)
}

// isControl reports ASCII control bytes other than common whitespace.
func isControl(b byte) bool {
	switch b {
	case '\n', '\r', '\t', '\f', '\v':
		return false
	}
	return b < 32 || b == 127
}
