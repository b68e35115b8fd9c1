package parser

// BuildBillExtractionPrompt returns the chat-style prompt that lists the bill
// fields and embeds the document text.
func BuildBillExtractionPrompt(documentText string) string {
	return `
You are a document analysis assistant. Please extract the following details from the given document:

- Supply Address: [Extract the supply address]
- Tariff Name: [Extract the tariff name]
- Energy Used (in kWh): [Extract the energy used]
- Unit Rate (p/kWh): [Extract the unit rate]
- Standing Charge (p/day): [Extract the standing charge]
- Subtotal before VAT: [Extract the subtotal before VAT]
- VAT Percentage: [Extract the VAT percentage]
- Total Charges: [Extract the total charges]

Document Text:
` + documentText + "\n"
}

// BillAnalysisInstruction is sent alongside the raw document text to
// completion-style models.
const BillAnalysisInstruction = "Analyze the following electricity bill document text and identify key details such as supply address, " +
	"tariff name, energy consumption, unit rate, standing charge, and total charges. Ensure the values are " +
	"accurate and presented in a structured format. Additionally, provide insights about potential cost-saving " +
	"opportunities if identifiable from the data."
