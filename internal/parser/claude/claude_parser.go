package claude

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"

	"billsight/internal/config"
	"billsight/internal/domain"
	"billsight/internal/parser"
	"billsight/internal/port"
)

const anthropicVersion = "bedrock-2023-05-31"

func init() {
	parser.RegisterProvider(string(domain.BackendClaude), func(cfg *config.BedrockConfig, runtime port.ModelRuntime) (port.DocumentParser, error) {
		return NewParser(cfg, runtime), nil
	})
}

// Parser implements port.DocumentParser with the Anthropic Messages body on Bedrock.
type Parser struct {
	runtime       port.ModelRuntime
	model         string
	maxTokens     int
	temperature   float64
	topP          float64
	topK          int
	stopSequences []string
}

// NewParser creates a Claude-on-Bedrock document parser.
func NewParser(cfg *config.BedrockConfig, runtime port.ModelRuntime) *Parser {
	model := cfg.ModelID
	if model == "" {
		model = "anthropic.claude-3-sonnet-20240229-v1:0"
	}
	p := &Parser{
		runtime:       runtime,
		model:         model,
		maxTokens:     2000,
		temperature:   1,
		topP:          0.999,
		topK:          250,
		stopSequences: []string{"\n\nHuman:"},
	}
	if cfg.MaxTokens > 0 {
		p.maxTokens = cfg.MaxTokens
	}
	if cfg.Temperature != nil {
		p.temperature = *cfg.Temperature
	}
	if cfg.TopP > 0 {
		p.topP = cfg.TopP
	}
	if cfg.TopK > 0 {
		p.topK = cfg.TopK
	}
	if len(cfg.StopSequences) > 0 {
		p.stopSequences = cfg.StopSequences
	}
	return p
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type requestBody struct {
	AnthropicVersion string    `json:"anthropic_version"`
	MaxTokens        int       `json:"max_tokens"`
	Temperature      float64   `json:"temperature"`
	TopK             int       `json:"top_k"`
	TopP             float64   `json:"top_p"`
	StopSequences    []string  `json:"stop_sequences"`
	Messages         []message `json:"messages"`
}

func (p *Parser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	prompt := parser.BuildBillExtractionPrompt(input.DocumentText)

	body, err := json.Marshal(requestBody{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        p.maxTokens,
		Temperature:      p.temperature,
		TopK:             p.topK,
		TopP:             p.topP,
		StopSequences:    p.stopSequences,
		Messages:         []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, eris.Wrap(err, "marshaling request")
	}

	resp, err := p.runtime.InvokeModel(ctx, port.InvokeInput{
		ModelID:     p.model,
		ContentType: "application/json",
		Accept:      "application/json",
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
		PromptUsed: prompt,
	}, nil
}
