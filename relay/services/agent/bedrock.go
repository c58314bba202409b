package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	bartypes "github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
)

// BedrockInvoker calls the Bedrock agent runtime's InvokeAgent API.
type BedrockInvoker struct {
	client       *bedrockagentruntime.Client
	agentID      string
	agentAliasID string
}

func NewBedrockInvoker(ctx context.Context, region, agentID, agentAliasID string) (*BedrockInvoker, error) {
	if region == "" || agentID == "" || agentAliasID == "" {
		return nil, ErrNotConfigured
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &BedrockInvoker{
		client:       bedrockagentruntime.NewFromConfig(awsCfg),
		agentID:      agentID,
		agentAliasID: agentAliasID,
	}, nil
}

func (b *BedrockInvoker) InvokeAgent(ctx context.Context, sessionID, inputText string) (Stream, error) {
	out, err := b.client.InvokeAgent(ctx, &bedrockagentruntime.InvokeAgentInput{
		AgentId:      aws.String(b.agentID),
		AgentAliasId: aws.String(b.agentAliasID),
		SessionId:    aws.String(sessionID),
		InputText:    aws.String(inputText),
	})
	if err != nil {
		return nil, err
	}
	events := out.GetStream()
	if events == nil {
		return nil, errors.New("agent returned no completion stream")
	}
	s := &bedrockStream{events: events, ch: make(chan []byte)}
	go s.pump(ctx)
	return s, nil
}

// bedrockStream adapts the SDK's event stream to the Stream interface.
// pump owns err; closing ch publishes it to the consumer.
type bedrockStream struct {
	events *bedrockagentruntime.InvokeAgentEventStream
	ch     chan []byte
	err    error
}

func (s *bedrockStream) pump(ctx context.Context) {
	defer close(s.ch)
	for event := range s.events.Events() {
		chunk, ok := event.(*bartypes.ResponseStreamMemberChunk)
		if !ok || len(chunk.Value.Bytes) == 0 {
			continue
		}
		select {
		case s.ch <- chunk.Value.Bytes:
		case <-ctx.Done():
			s.err = ctx.Err()
			return
		}
	}
	s.err = s.events.Err()
}

func (s *bedrockStream) Chunks() <-chan []byte { return s.ch }

func (s *bedrockStream) Err() error { return s.err }

func (s *bedrockStream) Close() error { return s.events.Close() }
