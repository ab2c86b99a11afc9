package reader

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/pdf2md/model"
)

// pageContent is everything recovered from one page's content stream.
type pageContent struct {
	runs   []model.TextRun
	rects  []model.BBox
	images []imagePlacement
}

// imagePlacement records an XObject invocation and where the current
// transform put it on the page.
type imagePlacement struct {
	name string
	bbox model.BBox
}

// tokenKind classifies content stream tokens.
type tokenKind int

const (
	tokNumber tokenKind = iota
	tokString
	tokName
	tokOperator
	tokArrayOpen
	tokArrayClose
	tokDictOpen
	tokDictClose
)

type token struct {
	kind tokenKind
	num  float64
	str  string
}

// lexer tokenizes a decoded content stream. It understands the object
// syntax that appears between operators: numbers, literal and hex
// strings, names, arrays, and inline dictionaries.
type lexer struct {
	data []byte
	pos  int
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isSpace(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		if isSpace(c) {
			l.pos++
			continue
		}
		if c == '%' {
			for l.pos < len(l.data) && l.data[l.pos] != '\n' {
				l.pos++
			}
			continue
		}
		return
	}
}

func (l *lexer) next() (token, bool) {
	l.skipSpace()
	if l.pos >= len(l.data) {
		return token{}, false
	}

	c := l.data[l.pos]
	switch {
	case c == '(':
		l.pos++
		return token{kind: tokString, str: l.readLiteralString()}, true

	case c == '<':
		if l.pos+1 < len(l.data) && l.data[l.pos+1] == '<' {
			l.pos += 2
			return token{kind: tokDictOpen}, true
		}
		l.pos++
		return token{kind: tokString, str: l.readHexString()}, true

	case c == '>':
		if l.pos+1 < len(l.data) && l.data[l.pos+1] == '>' {
			l.pos += 2
			return token{kind: tokDictClose}, true
		}
		l.pos++
		return token{kind: tokDictClose}, true

	case c == '[':
		l.pos++
		return token{kind: tokArrayOpen}, true

	case c == ']':
		l.pos++
		return token{kind: tokArrayClose}, true

	case c == '/':
		l.pos++
		start := l.pos
		for l.pos < len(l.data) && !isSpace(l.data[l.pos]) && !isDelim(l.data[l.pos]) {
			l.pos++
		}
		return token{kind: tokName, str: string(l.data[start:l.pos])}, true

	case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
		start := l.pos
		l.pos++
		for l.pos < len(l.data) {
			d := l.data[l.pos]
			if d == '.' || d == '+' || d == '-' || (d >= '0' && d <= '9') {
				l.pos++
				continue
			}
			break
		}
		num, err := strconv.ParseFloat(string(l.data[start:l.pos]), 64)
		if err != nil {
			return token{kind: tokOperator, str: string(l.data[start:l.pos])}, true
		}
		return token{kind: tokNumber, num: num}, true

	default:
		start := l.pos
		for l.pos < len(l.data) && !isSpace(l.data[l.pos]) && !isDelim(l.data[l.pos]) {
			l.pos++
		}
		if l.pos == start {
			// Lone delimiter we don't model; skip it.
			l.pos++
			return l.next()
		}
		return token{kind: tokOperator, str: string(l.data[start:l.pos])}, true
	}
}

// readLiteralString consumes a (...) string, handling nesting and escape
// sequences, with the opening parenthesis already consumed.
func (l *lexer) readLiteralString() string {
	var sb strings.Builder
	depth := 1
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		switch c {
		case '\\':
			if l.pos >= len(l.data) {
				return sb.String()
			}
			e := l.data[l.pos]
			l.pos++
			switch e {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'b', 'f':
				// Ignored control escapes.
			case '(', ')', '\\':
				sb.WriteByte(e)
			case '\n':
				// Line continuation.
			default:
				if e >= '0' && e <= '7' {
					val := int(e - '0')
					for k := 0; k < 2 && l.pos < len(l.data); k++ {
						d := l.data[l.pos]
						if d < '0' || d > '7' {
							break
						}
						val = val*8 + int(d-'0')
						l.pos++
					}
					sb.WriteByte(byte(val))
				} else {
					sb.WriteByte(e)
				}
			}
		case '(':
			depth++
			sb.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				return sb.String()
			}
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// readHexString consumes a <...> string with the opening bracket already
// consumed. An odd final digit is padded with zero per the PDF spec.
func (l *lexer) readHexString() string {
	var digits []byte
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		if c == '>' {
			break
		}
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') {
			digits = append(digits, c)
		}
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	var sb strings.Builder
	for i := 0; i+1 < len(digits); i += 2 {
		hi := hexVal(digits[i])
		lo := hexVal(digits[i+1])
		sb.WriteByte(hi<<4 | lo)
	}
	return sb.String()
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// matrix is a 2D affine transform in PDF order [a b c d e f].
type matrix [6]float64

func identity() matrix {
	return matrix{1, 0, 0, 1, 0, 0}
}

func (m matrix) mul(n matrix) matrix {
	return matrix{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

// parseContent interprets a page's content stream, tracking just enough
// graphics and text state to position runs, ruling rectangles, and image
// placements. Coordinates are converted from the PDF's bottom-up system
// to the pipeline's top-based one on the way out.
//
// A full glyph-metrics pass is deliberately out of scope: run widths are
// estimated from character count and font size, which is accurate enough
// for reading-order and containment decisions.
func parseContent(data []byte, pageNum int, pageW, pageH float64) *pageContent {
	content := &pageContent{}
	lex := &lexer{data: data}

	var operands []token
	ctm := identity()
	var ctmStack []matrix

	var fontSize float64 = 12
	var scale float64 = 1
	var tx, ty, leading float64

	nums := func(n int) []float64 {
		out := make([]float64, n)
		idx := n - 1
		for i := len(operands) - 1; i >= 0 && idx >= 0; i-- {
			if operands[i].kind == tokNumber {
				out[idx] = operands[i].num
				idx--
			}
		}
		return out
	}

	lastName := func() string {
		for i := len(operands) - 1; i >= 0; i-- {
			if operands[i].kind == tokName {
				return operands[i].str
			}
		}
		return ""
	}

	gatherStrings := func() string {
		var sb strings.Builder
		for _, op := range operands {
			if op.kind == tokString {
				sb.WriteString(op.str)
			}
		}
		return sb.String()
	}

	emit := func(raw string) {
		text := sanitizeText(raw)
		size := fontSize * math.Abs(scale)
		if size <= 0 {
			size = 12
		}
		width := 0.5 * size * float64(len([]rune(text)))
		if text != "" {
			content.runs = append(content.runs, model.TextRun{
				Text:     text,
				FontSize: size,
				BBox:     model.NewBBox(tx, pageH-ty-size, width, size),
				Page:     pageNum,
			})
		}
		tx += width
	}

	for {
		tok, ok := lex.next()
		if !ok {
			break
		}
		if tok.kind != tokOperator {
			operands = append(operands, tok)
			continue
		}

		switch tok.str {
		case "q":
			ctmStack = append(ctmStack, ctm)
		case "Q":
			if n := len(ctmStack); n > 0 {
				ctm = ctmStack[n-1]
				ctmStack = ctmStack[:n-1]
			}
		case "cm":
			v := nums(6)
			ctm = matrix{v[0], v[1], v[2], v[3], v[4], v[5]}.mul(ctm)

		case "BT":
			tx, ty = 0, 0
			scale = 1
		case "Tf":
			v := nums(1)
			if v[0] > 0 {
				fontSize = v[0]
			}
		case "Tm":
			v := nums(6)
			if v[3] != 0 {
				scale = v[3]
			}
			tx, ty = v[4], v[5]
		case "Td":
			v := nums(2)
			tx += v[0]
			ty += v[1]
		case "TD":
			v := nums(2)
			tx += v[0]
			ty += v[1]
			leading = -v[1]
		case "TL":
			leading = nums(1)[0]
		case "T*":
			ty -= leading

		case "Tj", "TJ":
			emit(gatherStrings())
		case "'":
			ty -= leading
			emit(gatherStrings())
		case "\"":
			ty -= leading
			emit(gatherStrings())

		case "re":
			v := nums(4)
			x, y, w, h := v[0], v[1], v[2], v[3]
			if w < 0 {
				x, w = x+w, -w
			}
			if h < 0 {
				y, h = y+h, -h
			}
			if x <= pageW && x+w >= 0 {
				content.rects = append(content.rects, model.NewBBox(x, pageH-y-h, w, h))
			}

		case "Do":
			if name := lastName(); name != "" {
				w := math.Abs(ctm[0])
				h := math.Abs(ctm[3])
				content.images = append(content.images, imagePlacement{
					name: name,
					bbox: model.NewBBox(ctm[4], pageH-ctm[5]-h, w, h),
				})
			}
		}
		operands = operands[:0]
	}

	return content
}

// sanitizeText normalizes a decoded string: NFC form, control characters
// dropped, whitespace runs collapsed to single spaces.
func sanitizeText(s string) string {
	s = norm.NFC.String(s)
	var sb strings.Builder
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !space && sb.Len() > 0 {
				sb.WriteByte(' ')
				space = true
			}
		case unicode.IsPrint(r):
			sb.WriteRune(r)
			space = false
		}
	}
	return strings.TrimRight(sb.String(), " ")
}
