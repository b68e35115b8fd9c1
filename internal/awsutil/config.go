// Package awsutil builds the shared aws.Config used by every AWS service client.
package awsutil

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/rotisserie/eris"
)

// Options selects region and, optionally, static credentials.
type Options struct {
	Region    string
	AccessKey string
	SecretKey string
}

// LoadConfig resolves an aws.Config from the default credential chain, or from
// static credentials when both keys are set.
func LoadConfig(ctx context.Context, o Options) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if o.Region != "" {
		opts = append(opts, awsconfig.WithRegion(o.Region))
	}

	if o.AccessKey != "" && o.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, eris.Wrap(err, "loading aws config")
	}
	return cfg, nil
}

// Static returns an aws.Config with fixed credentials and region and no
// external lookups. Used for local endpoints such as test servers.
func Static(region, accessKey, secretKey string) aws.Config {
	return aws.Config{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
	}
}
