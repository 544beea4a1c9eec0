package fetcher

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// metaCharsetRe finds <meta charset="..."> or the http-equiv form near
// the top of a document.
var metaCharsetRe = regexp.MustCompile(`(?i)<meta[^>]+charset=["']?([a-zA-Z0-9_-]+)`)

// charsetDecoders maps charset labels to their single-byte decoders.
var charsetDecoders = map[string]*charmap.Charmap{
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-2":   charmap.ISO8859_2,
	"iso-8859-15":  charmap.ISO8859_15,
	"windows-1250": charmap.Windows1250,
	"windows-1251": charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"koi8-r":       charmap.KOI8R,
	"macintosh":    charmap.Macintosh,
}

// DecodeBody converts raw response bytes to text. A charset declared in
// the Content-Type header or a meta tag is honored when recognized;
// otherwise valid UTF-8 passes through, malformed sequences are replaced,
// and fully non-UTF-8 bodies fall back to a Windows-1252 read.
func DecodeBody(raw []byte, contentType string) string {
	charset := contentTypeCharset(contentType)
	if charset == "" {
		charset = metaCharset(raw)
	}

	if decoder, ok := charsetDecoders[charset]; ok {
		if decoded := decodeWith(decoder.NewDecoder(), raw); decoded != "" {
			return decoded
		}
	}

	if utf8.Valid(raw) {
		return string(raw)
	}

	// Mostly-valid UTF-8 keeps its good runs; replacement happens only
	// where sequences are broken.
	if looksMostlyUTF8(raw) {
		return strings.ToValidUTF8(string(raw), "�")
	}

	if decoded := decodeWith(charmap.Windows1252.NewDecoder(), raw); decoded != "" {
		return decoded
	}
	return strings.ToValidUTF8(string(raw), "�")
}

// metaCharset reads a charset declaration from the document head.
func metaCharset(raw []byte) string {
	head := raw
	if len(head) > 4096 {
		head = head[:4096]
	}
	if m := metaCharsetRe.FindSubmatch(head); m != nil {
		return strings.ToLower(string(m[1]))
	}
	return ""
}

func decodeWith(decoder *encoding.Decoder, raw []byte) string {
	decoded, err := decoder.Bytes(raw)
	if err != nil {
		return ""
	}
	return string(decoded)
}

// looksMostlyUTF8 samples the byte stream for invalid rune density.
func looksMostlyUTF8(raw []byte) bool {
	invalid := 0
	total := 0
	for i := 0; i < len(raw) && total < 2048; {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size == 1 {
			invalid++
		}
		total++
		i += size
	}
	if total == 0 {
		return true
	}
	return invalid*10 < total
}
