package textract

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/rotisserie/eris"

	"billsight/internal/awsutil"
	"billsight/internal/config"
	"billsight/internal/domain"
	"billsight/internal/port"
)

type textractClient struct {
	client *textract.Client
}

// NewTextractClient creates a Textract-backed TextDetector.
func NewTextractClient(ctx context.Context, cfg *config.TextractConfig) (port.TextDetector, error) {
	awsCfg, err := awsutil.LoadConfig(ctx, awsutil.Options{Region: cfg.Region})
	if err != nil {
		return nil, eris.Wrap(err, "textract client")
	}
	return NewFromConfig(awsCfg, cfg.Endpoint), nil
}

// NewFromConfig builds the detector from an existing aws.Config.
func NewFromConfig(awsCfg aws.Config, endpoint string) port.TextDetector {
	client := textract.NewFromConfig(awsCfg, func(o *textract.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return &textractClient{client: client}
}

// DetectText runs DetectDocumentText against an S3 object and returns blocks in
// the order the service produced them.
func (c *textractClient) DetectText(ctx context.Context, bucket, key string) ([]domain.TextBlock, error) {
	resp, err := c.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{
			S3Object: &types.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(key),
			},
		},
	})
	if err != nil {
		return nil, eris.Wrapf(err, "textract detect %s/%s", bucket, key)
	}

	blocks := make([]domain.TextBlock, 0, len(resp.Blocks))
	for _, b := range resp.Blocks {
		blocks = append(blocks, domain.TextBlock{
			BlockType: string(b.BlockType),
			Text:      aws.ToString(b.Text),
		})
	}
	return blocks, nil
}
