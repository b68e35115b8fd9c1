package domain

import "encoding/json"

// Field names recognised by the bill field extractor.
const (
	FieldSupplyAddress     = "supply_address"
	FieldTariffName        = "tariff_name"
	FieldEnergyUsed        = "energy_used"
	FieldUnitRate          = "unit_rate"
	FieldStandingCharge    = "standing_charge"
	FieldSubtotalBeforeVAT = "subtotal_before_vat"
	FieldVAT               = "vat"
	FieldTotalCharges      = "total_charges"
)

// ObjectRef identifies an object in storage.
type ObjectRef struct {
	Bucket string
	Key    string
}

// ExtractedFields maps each known field name to its matched value, or nil when
// the field's label was not found in the document.
type ExtractedFields map[string]*string

// Get returns the value for name and whether it was matched.
func (f ExtractedFields) Get(name string) (string, bool) {
	v, ok := f[name]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

// TextBlock is a single block of text detected by OCR.
type TextBlock struct {
	BlockType string
	Text      string
}

// AnalysisResult is the persisted output of a document analysis.
type AnalysisResult struct {
	Analysis Analysis `json:"analysis"`
}

// Analysis pairs the raw model response with the regex-extracted fields.
type Analysis struct {
	ModelResponse   json.RawMessage `json:"bedrock_response"`
	ExtractedFields ExtractedFields `json:"extracted_terms"`
}
