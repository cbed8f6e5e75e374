package render

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatSeconds renders a duration reported by the API as the shortest
// decimal representation followed by "s" (0.5 -> "0.5s")
func FormatSeconds(v float64) string {
	return formatNumber(v) + "s"
}

// FormatTotal renders a+b rounded half-up to two decimals ("0.80s").
// Rounding works on the exact binary value of the sum, so 1.005 stays "1.00".
func FormatTotal(a, b float64) string {
	return FixedDecimals(a+b, 2) + "s"
}

// FixedDecimals formats v with exactly n decimals, rounding ties away from zero
func FixedDecimals(v float64, n int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return formatNumber(v)
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	scale := new(big.Float).SetPrec(256).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil))
	x := new(big.Float).SetPrec(256).SetFloat64(v)
	x.Mul(x, scale)
	x.Add(x, big.NewFloat(0.5))
	digits, _ := x.Int(nil)

	s := digits.String()
	if n == 0 {
		if s == "0" {
			sign = ""
		}
		return sign + s
	}
	if len(s) <= n {
		s = strings.Repeat("0", n-len(s)+1) + s
	}
	if strings.Trim(s, "0") == "" {
		sign = ""
	}
	return sign + s[:len(s)-n] + "." + s[len(s)-n:]
}

func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatMiB renders a byte count as mebibytes with two decimals ("1.50 MB")
func FormatMiB(size int64) string {
	return FixedDecimals(float64(size)/(1024*1024), 2) + " MB"
}

// FormatFileSize renders a byte count with the largest fitting unit and up
// to two decimals ("0 Bytes", "1.5 KB", "10 MB")
func FormatFileSize(size int64) string {
	if size <= 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(size)) / math.Log(1024)))
	if i >= len(units) {
		i = len(units) - 1
	}
	v := float64(size) / math.Pow(1024, float64(i))
	rounded, _ := strconv.ParseFloat(FixedDecimals(v, 2), 64)
	return formatNumber(rounded) + " " + units[i]
}

// Formatter renders locale dependent values
type Formatter struct {
	printer *message.Printer
}

// NewFormatter creates a formatter for a BCP 47 locale such as "pt-BR".
// Unparseable locales fall back to Brazilian Portuguese.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Count renders an integer with locale digit grouping (pt-BR: 50.000)
func (f *Formatter) Count(n int) string {
	return f.printer.Sprintf("%d", n)
}

// Truncate shortens s to fit width terminal cells, marking the cut with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// SanitizeForTerminal strips characters that corrupt a terminal cell grid:
// control characters other than newline and tab, zero-width joiners and BOMs.
// Carriage returns are normalized to newlines and non-breaking spaces to spaces.
func SanitizeForTerminal(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\u00A0', '\u202F':
			b.WriteRune(' ')
		case '\u200B', '\u200C', '\u200D', '\uFEFF', '\u2060', '\u00AD':
			// drop
		case '\t':
			b.WriteString("    ")
		default:
			if unicode.IsControl(r) && r != '\n' {
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
