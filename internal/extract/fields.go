// Package extract pulls labelled billing values out of raw bill text.
package extract

import (
	"regexp"
	"strings"

	"billsight/internal/domain"
)

type fieldPattern struct {
	name string
	re   *regexp.Regexp
}

// space matches any Unicode whitespace; RE2's \s is ASCII-only.
const space = `[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`

func compile(pattern string) *regexp.Regexp {
	return regexp.MustCompile(strings.ReplaceAll(pattern, `\s`, space))
}

// Order matches the layout of a typical bill; it only affects FieldNames.
var patterns = []fieldPattern{
	{domain.FieldSupplyAddress, compile(`Supply Address:\s*([^\n]+)`)},
	{domain.FieldTariffName, compile(`Tariff Name\s*([^\n]+)`)},
	{domain.FieldEnergyUsed, compile(`Energy Used\s*([\d,\.]+)\s*kWh`)},
	{domain.FieldUnitRate, compile(`Unit Rate\s*([\d,\.]+)\s*p/kWh`)},
	{domain.FieldStandingCharge, compile(`Standing Charge\s*([\d,\.]+)p/day`)},
	{domain.FieldSubtotalBeforeVAT, compile(`Subtotal of charges before VAT\s*([\d,\.]+)`)},
	{domain.FieldVAT, compile(`VAT @\s*([\d,\.]+)%`)},
	{domain.FieldTotalCharges, compile(`Total Electricity Charges\s*([\d,\.]+)`)},
}

// FieldNames returns the known field names in a stable order.
func FieldNames() []string {
	names := make([]string, len(patterns))
	for i, p := range patterns {
		names[i] = p.name
	}
	return names
}

// Fields returns every known field mapped to the first match of its label, or
// nil when the label is absent. Values are returned verbatim.
func Fields(text string) domain.ExtractedFields {
	out := make(domain.ExtractedFields, len(patterns))
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			out[p.name] = nil
			continue
		}
		v := m[1]
		out[p.name] = &v
	}
	return out
}
