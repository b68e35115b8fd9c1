package claude_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billsight/internal/config"
	"billsight/internal/domain"
	"billsight/internal/parser"
	"billsight/internal/parser/claude"
	"billsight/internal/port"
	"billsight/mocks"
)

func TestClaudeParser_RequestBody(t *testing.T) {
	runtime := new(mocks.MockModelRuntime)
	p := claude.NewParser(&config.BedrockConfig{}, runtime)

	var captured port.InvokeInput
	runtime.On("InvokeModel", mock.Anything, mock.AnythingOfType("port.InvokeInput")).
		Run(func(args mock.Arguments) { captured = args.Get(1).(port.InvokeInput) }).
		Return(&port.InvokeOutput{Body: []byte(`{"content":[{"text":"ok"}]}`)}, nil)

	out, err := p.Parse(context.Background(), port.ParseInput{DocumentText: "Energy Used 10 kWh"})

	require.NoError(t, err)
	assert.Equal(t, "anthropic.claude-3-sonnet-20240229-v1:0", captured.ModelID)
	assert.Equal(t, "application/json", captured.ContentType)
	assert.Equal(t, "application/json", captured.Accept)

	var body map[string]any
	require.NoError(t, json.Unmarshal(captured.Body, &body))
	assert.Equal(t, "bedrock-2023-05-31", body["anthropic_version"])
	assert.EqualValues(t, 2000, body["max_tokens"])
	assert.EqualValues(t, 1, body["temperature"])
	assert.EqualValues(t, 250, body["top_k"])
	assert.EqualValues(t, 0.999, body["top_p"])
	assert.Equal(t, []any{"\n\nHuman:"}, body["stop_sequences"])

	messages := body["messages"].([]any)
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Contains(t, msg["content"], "Energy Used 10 kWh")

	assert.JSONEq(t, `{"content":[{"text":"ok"}]}`, string(out.Response))
	assert.Equal(t, "anthropic.claude-3-sonnet-20240229-v1:0", out.ModelUsed)
	assert.Equal(t, parser.BuildBillExtractionPrompt("Energy Used 10 kWh"), out.PromptUsed)
	runtime.AssertNumberOfCalls(t, "InvokeModel", 1)
}

func TestClaudeParser_ConfigOverrides(t *testing.T) {
	runtime := new(mocks.MockModelRuntime)
	temperature := 0.2
	p := claude.NewParser(&config.BedrockConfig{
		ModelID:       "anthropic.claude-3-haiku-20240307-v1:0",
		MaxTokens:     500,
		Temperature:   &temperature,
		TopK:          10,
		StopSequences: []string{"END"},
	}, runtime)

	var captured port.InvokeInput
	runtime.On("InvokeModel", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(port.InvokeInput) }).
		Return(&port.InvokeOutput{Body: []byte(`{}`)}, nil)

	_, err := p.Parse(context.Background(), port.ParseInput{DocumentText: "x"})
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(captured.Body, &body))
	assert.Equal(t, "anthropic.claude-3-haiku-20240307-v1:0", captured.ModelID)
	assert.EqualValues(t, 500, body["max_tokens"])
	assert.EqualValues(t, 0.2, body["temperature"])
	assert.EqualValues(t, 10, body["top_k"])
	assert.Equal(t, []any{"END"}, body["stop_sequences"])
}

func TestClaudeParser_ZeroTemperature(t *testing.T) {
	runtime := new(mocks.MockModelRuntime)
	temperature := 0.0
	p := claude.NewParser(&config.BedrockConfig{Temperature: &temperature}, runtime)

	var captured port.InvokeInput
	runtime.On("InvokeModel", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(port.InvokeInput) }).
		Return(&port.InvokeOutput{Body: []byte(`{}`)}, nil)

	_, err := p.Parse(context.Background(), port.ParseInput{DocumentText: "x"})
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(captured.Body, &body))
	assert.EqualValues(t, 0, body["temperature"])
}

func TestClaudeParser_RuntimeErrorPassesThrough(t *testing.T) {
	runtime := new(mocks.MockModelRuntime)
	p := claude.NewParser(&config.BedrockConfig{}, runtime)

	throttled := parser.NewThrottlingError("bedrock", errors.New("rate exceeded"))
	runtime.On("InvokeModel", mock.Anything, mock.Anything).Return(nil, throttled)

	_, err := p.Parse(context.Background(), port.ParseInput{DocumentText: "x"})

	assert.True(t, parser.IsThrottling(err))
}

func TestClaudeParser_InvalidJSON(t *testing.T) {
	runtime := new(mocks.MockModelRuntime)
	p := claude.NewParser(&config.BedrockConfig{}, runtime)

	runtime.On("InvokeModel", mock.Anything, mock.Anything).
		Return(&port.InvokeOutput{Body: []byte("not json")}, nil)

	_, err := p.Parse(context.Background(), port.ParseInput{DocumentText: "x"})

	assert.ErrorIs(t, err, domain.ErrInvalidModelOutput)
	assert.Equal(t, domain.OutcomeTerminalFailure, parser.Classify(err))
}
