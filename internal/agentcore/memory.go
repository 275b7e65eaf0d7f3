package agentcore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StoredMessage is one message held in an AgentCore Memory resource.
type StoredMessage struct {
	ID       string         `json:"id"`
	Role     string         `json:"role"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// RetrieveOptions narrows a message retrieval. A non-empty SemanticQuery
// switches the lookup to semantic search when the resource supports it.
type RetrieveOptions struct {
	Limit         int
	SemanticQuery string
}

// Memory manages AgentCore Memory resources for conversation threads.
// When the service is unreachable and FallbackToDatabase is set, write
// paths degrade instead of failing so the thread keeps working off the
// primary store.
type Memory struct {
	cfg    *Config
	logger *zap.Logger
}

func NewMemory(cfg *Config, logger *zap.Logger) (*Memory, error) {
	if !cfg.MemoryEnabled {
		return nil, fmt.Errorf("memory: %w", ErrServiceDisabled)
	}
	if err := cfg.requireCredentials("Memory"); err != nil {
		return nil, err
	}
	logger.Info("initializing agentcore memory adapter",
		zap.String("environment", string(cfg.Environment)))
	return &Memory{cfg: cfg, logger: logger}, nil
}

// CreateResource provisions a memory resource for a thread. The account
// id scopes the resource for tenant isolation.
func (m *Memory) CreateResource(ctx context.Context, threadID, accountID string) (string, error) {
	if threadID == "" || accountID == "" {
		return "", errors.New("memory: thread id and account id are required")
	}

	// TODO: create the resource via the AgentCore Memory API with the
	// configured retention and semantic-search settings.
	resourceID := fmt.Sprintf("%s-memory-%s", m.cfg.ResourcePrefix(), threadID)

	m.logger.Info("created memory resource",
		zap.String("thread_id", threadID),
		zap.String("resource_id", resourceID),
	)
	return resourceID, nil
}

// StoreMessage persists a message into a memory resource and returns the
// stored message id.
func (m *Memory) StoreMessage(ctx context.Context, resourceID string, msg StoredMessage) (string, error) {
	if resourceID == "" {
		return "", errors.New("memory: resource id is required")
	}
	if msg.Role == "" {
		return "", errors.New("memory: message role is required")
	}

	// TODO: write through the AgentCore Memory API.
	messageID := uuid.NewString()
	m.logger.Debug("stored message",
		zap.String("resource_id", resourceID),
		zap.String("message_id", messageID),
	)
	return messageID, nil
}

// RetrieveMessages reads messages back from a resource, optionally via
// semantic search.
func (m *Memory) RetrieveMessages(ctx context.Context, resourceID string, opts RetrieveOptions) ([]StoredMessage, error) {
	if resourceID == "" {
		return nil, errors.New("memory: resource id is required")
	}
	if opts.Limit <= 0 {
		opts.Limit = 100
	}
	if opts.SemanticQuery != "" && !m.cfg.MemorySemanticSearchEnabled {
		return nil, errors.New("memory: semantic search disabled in configuration")
	}

	m.logger.Debug("retrieving messages",
		zap.String("resource_id", resourceID),
		zap.Int("limit", opts.Limit),
		zap.Bool("semantic", opts.SemanticQuery != ""),
	)
	// TODO: read through the AgentCore Memory API.
	return []StoredMessage{}, nil
}

// DeleteResource removes a memory resource and its messages.
func (m *Memory) DeleteResource(ctx context.Context, resourceID string) error {
	if resourceID == "" {
		return errors.New("memory: resource id is required")
	}
	m.logger.Info("deleting memory resource", zap.String("resource_id", resourceID))
	// TODO: delete via the AgentCore Memory API.
	return nil
}
