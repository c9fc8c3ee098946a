package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Abdus2609/vizor/internal/apperrors"
	"github.com/Abdus2609/vizor/internal/logging"
	"github.com/Abdus2609/vizor/internal/models"
	"github.com/Abdus2609/vizor/internal/repositories"
)

// ConnectionService owns the single active datasource.
type ConnectionService struct {
	connect Connector
	history repositories.ConnectionHistoryRepository
	logger  *zap.Logger

	mu     sync.RWMutex
	active *Datasource
}

func NewConnectionService(connect Connector, history repositories.ConnectionHistoryRepository, logger *zap.Logger) *ConnectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConnectionService{connect: connect, history: history, logger: logger}
}

// Connect opens a datasource and makes it the active one. The previous
// datasource is retired and closes once its in-flight requests finish. A
// failed attempt leaves the current one in place.
func (s *ConnectionService) Connect(ctx context.Context, details models.ConnectionDetails) (*Datasource, error) {
	details = details.Normalize()
	if err := details.Validate(); err != nil {
		return nil, fmt.Errorf("invalid connection details: %w", err)
	}

	ds, err := s.connect(ctx, details)
	if err != nil {
		s.logger.Warn("Datasource connection failed",
			zap.String("datasource", details.Redacted()),
			zap.String("error", logging.SanitizeError(err)),
		)
		return nil, fmt.Errorf("failed to connect to %s: %w", details.Redacted(), err)
	}

	s.mu.Lock()
	previous := s.active
	s.active = ds
	s.mu.Unlock()

	previous.Retire()

	if s.history != nil {
		if err := s.history.Remember(ctx, details); err != nil {
			s.logger.Warn("Failed to remember connection details", zap.Error(err))
		}
	}

	s.logger.Info("Datasource connected", zap.String("datasource", details.Redacted()))
	return ds, nil
}

// Active returns the connected datasource or apperrors.ErrNotConnected.
func (s *ConnectionService) Active() (*Datasource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.active == nil {
		return nil, apperrors.ErrNotConnected
	}
	return s.active, nil
}

// Acquire returns the active datasource pinned open until release is called.
func (s *ConnectionService) Acquire() (*Datasource, func(), error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.active == nil {
		return nil, nil, apperrors.ErrNotConnected
	}
	ds := s.active
	ds.acquire()
	return ds, ds.release, nil
}

func (s *ConnectionService) IsConnected() bool {
	_, err := s.Active()
	return err == nil
}

// Options returns previously used connection values.
func (s *ConnectionService) Options(ctx context.Context) (models.ConnectionOptions, error) {
	if s.history == nil {
		return models.ConnectionOptions{Usernames: []string{}, Hosts: []string{}, Ports: []string{}, Databases: []string{}}, nil
	}
	return s.history.Options(ctx)
}

func (s *ConnectionService) Close() {
	s.mu.Lock()
	active := s.active
	s.active = nil
	s.mu.Unlock()

	active.Retire()
}
