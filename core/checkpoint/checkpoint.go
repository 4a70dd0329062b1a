package checkpoint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound is returned by a Backend when no checkpoint exists.
var ErrNotFound = errors.New("checkpoint not found")

// Checkpoint is the resume cursor of a batch operation.
type Checkpoint struct {
	// LastIndex is the index of the next work item to process.
	LastIndex int `json:"last_index"`
	// WorkList is the frozen list of work items for the current pass.
	WorkList json.RawMessage `json:"work_list,omitempty"`
	// State is operation-specific data accumulated across invocations.
	State json.RawMessage `json:"state,omitempty"`
	// SavedAt is when the checkpoint was written.
	SavedAt time.Time `json:"saved_at"`
}

// IsEmpty reports whether the checkpoint describes a fresh start.
func (c *Checkpoint) IsEmpty() bool {
	return c == nil || (c.LastIndex == 0 && len(c.WorkList) == 0)
}

// Backend reads and writes raw checkpoint blobs.
type Backend interface {
	Read(ctx context.Context, namespace string) ([]byte, error)
	Write(ctx context.Context, namespace string, data []byte) error
	Delete(ctx context.Context, namespace string) error
}

// Store loads and saves the checkpoint of one operation.
type Store struct {
	backend   Backend
	namespace string
	logger    *zap.Logger
	now       func() time.Time
}

// NewStore creates a store for the given namespace.
func NewStore(backend Backend, namespace string, logger *zap.Logger) *Store {
	return &Store{
		backend:   backend,
		namespace: namespace,
		logger:    logger.With(zap.String("checkpoint", namespace)),
		now:       time.Now,
	}
}

// Namespace returns the namespace this store operates on.
func (s *Store) Namespace() string {
	return s.namespace
}

// Load returns the stored checkpoint, or an empty one when it is missing or
// cannot be decoded.
func (s *Store) Load(ctx context.Context) *Checkpoint {
	data, err := s.backend.Read(ctx, s.namespace)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Debug("No checkpoint found, starting fresh")
		} else {
			s.logger.Warn("Failed to read checkpoint, starting fresh", zap.Error(err))
		}
		return &Checkpoint{}
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		s.logger.Warn("Corrupt checkpoint, starting fresh", zap.Error(err))
		return &Checkpoint{}
	}
	if cp.LastIndex < 0 {
		s.logger.Warn("Checkpoint has negative index, starting fresh", zap.Int("last_index", cp.LastIndex))
		return &Checkpoint{}
	}

	s.logger.Info("Checkpoint loaded",
		zap.Int("last_index", cp.LastIndex),
		zap.Time("saved_at", cp.SavedAt),
	)
	return &cp
}

// Save writes the checkpoint, stamping SavedAt.
func (s *Store) Save(ctx context.Context, cp *Checkpoint) error {
	cp.SavedAt = s.now().UTC()
	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}
	if err := s.backend.Write(ctx, s.namespace, data); err != nil {
		return fmt.Errorf("failed to write checkpoint %s: %w", s.namespace, err)
	}
	s.logger.Info("Checkpoint saved", zap.Int("last_index", cp.LastIndex))
	return nil
}

// Clear removes the checkpoint. Clearing a missing checkpoint is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.backend.Delete(ctx, s.namespace); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to clear checkpoint %s: %w", s.namespace, err)
	}
	s.logger.Info("Checkpoint cleared")
	return nil
}
