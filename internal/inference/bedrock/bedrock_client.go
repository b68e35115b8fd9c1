package bedrock

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/rotisserie/eris"

	"billsight/internal/awsutil"
	"billsight/internal/config"
	"billsight/internal/parser"
	"billsight/internal/port"
)

type runtimeClient struct {
	client *bedrockruntime.Client
}

// NewRuntimeClient creates a Bedrock-backed ModelRuntime.
func NewRuntimeClient(ctx context.Context, cfg *config.BedrockConfig) (port.ModelRuntime, error) {
	awsCfg, err := awsutil.LoadConfig(ctx, awsutil.Options{Region: cfg.Region})
	if err != nil {
		return nil, eris.Wrap(err, "bedrock client")
	}
	return NewFromConfig(awsCfg, cfg.Endpoint), nil
}

// NewFromConfig builds the runtime from an existing aws.Config. The SDK retryer
// is disabled: throttling is retried by parser.RetryingParser, which owns the
// attempt budget.
func NewFromConfig(awsCfg aws.Config, endpoint string) port.ModelRuntime {
	client := bedrockruntime.NewFromConfig(awsCfg, func(o *bedrockruntime.Options) {
		o.Retryer = aws.NopRetryer{}
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return &runtimeClient{client: client}
}

func (c *runtimeClient) InvokeModel(ctx context.Context, input port.InvokeInput) (*port.InvokeOutput, error) {
	req := &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(input.ModelID),
		Body:        input.Body,
		ContentType: aws.String(input.ContentType),
	}
	if input.Accept != "" {
		req.Accept = aws.String(input.Accept)
	}

	resp, err := c.client.InvokeModel(ctx, req)
	if err != nil {
		var throttled *types.ThrottlingException
		if errors.As(err, &throttled) {
			return nil, parser.NewThrottlingError("bedrock", err)
		}
		return nil, eris.Wrapf(err, "bedrock invoke %s", input.ModelID)
	}

	return &port.InvokeOutput{
		Body:        resp.Body,
		ContentType: aws.ToString(resp.ContentType),
	}, nil
}
