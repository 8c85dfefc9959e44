package bedrock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/mcpbridge/pkg/llms"
	"github.com/effective-security/mcpbridge/pkg/llms/bedrock/internal/bedrockclient"
)

// ErrMissingModel is returned when no model ID is configured.
var ErrMissingModel = errors.New("bedrock: model is required")

// LLM is a Bedrock LLM implementation.
type LLM struct {
	modelID string
	client  *bedrockclient.Client
}

var _ llms.Model = (*LLM)(nil)

// New creates a new Bedrock LLM implementation.
func New(opts ...Option) (*LLM, error) {
	o, c, err := newClient(opts...)
	if err != nil {
		return nil, err
	}
	return &LLM{
		client:  c,
		modelID: o.modelID,
	}, nil
}

func newClient(opts ...Option) (*options, *bedrockclient.Client, error) {
	options := &options{}

	for _, opt := range opts {
		opt(options)
	}

	if options.modelID == "" {
		return options, nil, ErrMissingModel
	}

	if options.client == nil {
		var cfgOpts []func(*config.LoadOptions) error
		if options.region != "" {
			cfgOpts = append(cfgOpts, config.WithRegion(options.region))
		}
		cfg, err := config.LoadDefaultConfig(context.Background(), cfgOpts...)
		if err != nil {
			return options, nil, errors.Wrap(err, "bedrock: failed to load AWS config")
		}
		options.client = bedrockruntime.NewFromConfig(cfg)
	}

	return options, bedrockclient.NewClient(options.client), nil
}

// GetName implements the Model interface.
func (l *LLM) GetName() string {
	return l.modelID
}

// GetProviderType implements the Model interface.
func (l *LLM) GetProviderType() llms.ProviderType {
	return llms.ProviderBedrock
}

// GenerateContent implements llms.Model.
func (l *LLM) GenerateContent(ctx context.Context, messages []llms.Message, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.NewCallOptions(l.modelID, options...)

	m, err := processMessages(messages)
	if err != nil {
		return nil, err
	}

	return l.client.CreateCompletion(ctx, opts.Model, m, opts)
}

func processMessages(messages []llms.Message) ([]bedrockclient.Message, error) {
	bedrockMsgs := make([]bedrockclient.Message, 0, len(messages))
	for _, m := range messages {
		if err := m.Role.Validate(); err != nil {
			return nil, errors.WithMessage(err, "bedrock")
		}
		bedrockMsgs = append(bedrockMsgs, bedrockclient.Message{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return bedrockMsgs, nil
}
