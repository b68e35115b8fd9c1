package titan

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"

	"billsight/internal/config"
	"billsight/internal/domain"
	"billsight/internal/parser"
	"billsight/internal/port"
)

func init() {
	parser.RegisterProvider(string(domain.BackendTitan), func(cfg *config.BedrockConfig, runtime port.ModelRuntime) (port.DocumentParser, error) {
		return NewParser(cfg, runtime), nil
	})
}

// Parser implements port.DocumentParser with the Titan text-generation body.
type Parser struct {
	runtime       port.ModelRuntime
	model         string
	maxTokenCount int
	temperature   float64
	topP          float64
	stopSequences []string
}

// NewParser creates a Titan-on-Bedrock document parser.
func NewParser(cfg *config.BedrockConfig, runtime port.ModelRuntime) *Parser {
	model := cfg.ModelID
	if model == "" {
		model = "amazon.titan-text-lite-v1"
	}
	p := &Parser{
		runtime:       runtime,
		model:         model,
		maxTokenCount: 512,
		temperature:   0.7,
		topP:          0.9,
		stopSequences: []string{},
	}
	if cfg.MaxTokens > 0 {
		p.maxTokenCount = cfg.MaxTokens
	}
	if cfg.Temperature != nil {
		p.temperature = *cfg.Temperature
	}
	if cfg.TopP > 0 {
		p.topP = cfg.TopP
	}
	if len(cfg.StopSequences) > 0 {
		p.stopSequences = cfg.StopSequences
	}
	return p
}

type generationConfig struct {
	MaxTokenCount int      `json:"maxTokenCount"`
	StopSequences []string `json:"stopSequences"`
	Temperature   float64  `json:"temperature"`
	TopP          float64  `json:"topP"`
}

type requestBody struct {
	InputText            string           `json:"inputText"`
	TextGenerationConfig generationConfig `json:"textGenerationConfig"`
	Prompt               string           `json:"prompt"`
}

func (p *Parser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	body, err := json.Marshal(requestBody{
		InputText: input.DocumentText,
		TextGenerationConfig: generationConfig{
			MaxTokenCount: p.maxTokenCount,
			StopSequences: p.stopSequences,
			Temperature:   p.temperature,
			TopP:          p.topP,
		},
		Prompt: parser.BillAnalysisInstruction,
	})
	if err != nil {
		return nil, eris.Wrap(err, "marshaling request")
	}

	resp, err := p.runtime.InvokeModel(ctx, port.InvokeInput{
		ModelID:     p.model,
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return nil, err
	}

	decoded, err := parser.DecodeResponse(p.model, resp.Body)
	if err != nil {
		return nil, err
	}

	return &port.ParseOutput{
		Response:   decoded,
		ModelUsed:  p.model,
		PromptUsed: parser.BillAnalysisInstruction,
	}, nil
}
