package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Abdus2609/vizor/internal/apperrors"
	"github.com/Abdus2609/vizor/internal/catalog"
	"github.com/Abdus2609/vizor/internal/models"
)

// CatalogService refreshes the catalog snapshot from the active datasource.
type CatalogService struct {
	store       *catalog.Store
	connections *ConnectionService
	timeout     time.Duration
	logger      *zap.Logger

	// mu orders datasource switches against snapshot installs.
	mu sync.Mutex
}

func NewCatalogService(store *catalog.Store, connections *ConnectionService, timeout time.Duration, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{store: store, connections: connections, timeout: timeout, logger: logger}
}

// Current returns the snapshot in use without refreshing.
func (s *CatalogService) Current() *catalog.Snapshot {
	return s.store.Current()
}

// Refresh introspects the active datasource and replaces the snapshot. On
// failure the previous snapshot is kept. A result for a datasource that is no
// longer active is discarded with apperrors.ErrDatasourceChanged.
func (s *CatalogService) Refresh(ctx context.Context) (*catalog.Snapshot, error) {
	ds, release, err := s.connections.Acquire()
	if err != nil {
		return nil, &apperrors.SchemaIntrospectionError{Err: err}
	}
	defer release()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	tables, err := ds.Schema.Introspect(ctx, ds.Details.Schema)
	if err != nil {
		s.logger.Error("Catalog refresh failed",
			zap.String("datasource", ds.Details.Redacted()),
			zap.Error(err),
		)
		return nil, &apperrors.SchemaIntrospectionError{Err: err}
	}

	s.mu.Lock()
	if active, err := s.connections.Active(); err != nil || active != ds {
		s.mu.Unlock()
		s.logger.Warn("Discarding catalog of inactive datasource",
			zap.String("datasource", ds.Details.Redacted()),
		)
		return nil, &apperrors.SchemaIntrospectionError{Err: apperrors.ErrDatasourceChanged}
	}
	previous := s.store.Current()
	snap := s.store.Replace(tables)
	s.mu.Unlock()

	s.logger.Info("Catalog refreshed",
		zap.Uint64("version", snap.Version),
		zap.Bool("changed", !previous.Equal(snap)),
		zap.Int("tables", len(tables)),
		zap.Duration("duration", time.Since(start)),
	)
	return snap, nil
}

// Reset clears the catalog, used when the datasource changes.
func (s *CatalogService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Reset()
}

// Connect switches to a new datasource and loads its catalog. The old catalog
// is dropped as soon as the new connection is live so it is never classified
// against the wrong database.
func (s *CatalogService) Connect(ctx context.Context, details models.ConnectionDetails) (*catalog.Snapshot, error) {
	s.mu.Lock()
	_, err := s.connections.Connect(ctx, details)
	if err == nil {
		s.store.Reset()
	}
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.Refresh(ctx)
}
