package extract

import (
	"fmt"
	"unicode/utf8"
)

// decodePlainText returns the bytes verbatim as UTF-8 text. Covers text/plain
// and the generic octet-stream type browsers assign to source-code uploads.
func decodePlainText(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", fmt.Errorf("decode text: invalid UTF-8")
	}
	return string(b), nil
}
