package report

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// dateLayouts are tried in order. zoned layouts carry an offset and are
// shown in the local calendar; the rest use their own fields.
var dateLayouts = []struct {
	layout string
	zoned  bool
}{
	{time.RFC3339Nano, true},
	{time.RFC3339, true},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02 15:04:05", false},
	{"2006-01-02", false},
}

// FormatDate renders s as DD/MM/YYYY. Empty input gives "" and input that
// does not parse is returned unchanged.
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	for _, dl := range dateLayouts {
		t, err := time.Parse(dl.layout, s)
		if err != nil {
			continue
		}
		if dl.zoned {
			t = t.Local()
		}
		return t.Format("02/01/2006")
	}
	return s
}

var currencyPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatCurrency renders a numeric value with pt-BR grouping and two
// fraction digits, e.g. 1234.5 as "1.234,50". nil gives "" and values that
// are not numeric are returned as text unchanged.
func FormatCurrency(v any) string {
	if v == nil {
		return ""
	}
	d, ok := toDecimal(v)
	if !ok {
		return plainText(v)
	}
	return formatDecimal(d)
}

func formatDecimal(d decimal.Decimal) string {
	return currencyPrinter.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// FormatCPF groups the digits of a CPF (11 digits) or CNPJ (14 digits).
// Separators in the input are ignored. nil or empty input gives "" and
// anything with another digit count is returned unchanged.
func FormatCPF(v any) string {
	if v == nil {
		return ""
	}
	s := plainText(v)
	if s == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	d := b.String()

	switch len(d) {
	case 11:
		return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
	case 14:
		return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
	default:
		return s
	}
}

// toDecimal converts numbers and numeric strings.
func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	default:
		return decimal.Decimal{}, false
	}
}

// plainText is the display form of a defined value: strings verbatim,
// numbers as written, records and lists as compact JSON in payload key
// order.
func plainText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case decimal.Decimal:
		return val.String()
	case Record, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}
