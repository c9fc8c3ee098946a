package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Abdus2609/vizor/internal/apperrors"
	"github.com/Abdus2609/vizor/internal/catalog"
	"github.com/Abdus2609/vizor/internal/logging"
	"github.com/Abdus2609/vizor/internal/models"
	"github.com/Abdus2609/vizor/internal/repositories"
)

// VisualisationService serves discovery (columns first) and exploration
// (chart first) against the current catalog snapshot.
type VisualisationService struct {
	catalog      *CatalogService
	connections  *ConnectionService
	history      repositories.QueryHistoryRepository
	queryTimeout time.Duration
	logger       *zap.Logger
}

func NewVisualisationService(
	catalog *CatalogService,
	connections *ConnectionService,
	history repositories.QueryHistoryRepository,
	queryTimeout time.Duration,
	logger *zap.Logger,
) *VisualisationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VisualisationService{
		catalog:      catalog,
		connections:  connections,
		history:      history,
		queryTimeout: queryTimeout,
		logger:       logger,
	}
}

// Discover classifies a column selection, lists the charts it unlocks and
// fetches the rows for them.
func (s *VisualisationService) Discover(ctx context.Context, req models.DiscoveryRequest) (*models.DiscoveryResponse, error) {
	ds, release, err := s.connections.Acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	sel, err := ResolveSelection(snap, req.TableNames, req.FullColumnNames)
	if err != nil {
		return nil, err
	}

	pattern := Classify(sel)
	options := Recommend(sel, pattern)

	query, err := NewQueryCompiler(ds.Dialect, s.logger).Compile(snap, pattern, sel)
	if err != nil {
		return nil, err
	}

	rows, err := s.execute(ctx, ds, pattern, sel.Table.TableName, query)
	if err != nil {
		return nil, err
	}

	return &models.DiscoveryResponse{Pattern: pattern, Options: options, Rows: rows}, nil
}

// Explore lists every option one chart type offers on one table.
func (s *VisualisationService) Explore(ctx context.Context, req models.ExplorationRequest) (*models.ExplorationResponse, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return Explore(snap, req.VisID, req.Table)
}

func (s *VisualisationService) snapshot() (*catalog.Snapshot, error) {
	snap := s.catalog.Current()
	if snap.IsEmpty() {
		return nil, apperrors.ErrEmptyCatalog
	}
	return snap, nil
}

// FetchForPattern compiles and runs the query for a pattern the caller already
// picked in exploration mode, without classifying the selection again.
func (s *VisualisationService) FetchForPattern(ctx context.Context, req models.ExplorationDataRequest) ([]models.Row, error) {
	pattern, ok := models.ParsePattern(req.Pattern)
	if !ok {
		return nil, apperrors.NewConfigurationError("unknown pattern %q", req.Pattern)
	}

	ds, release, err := s.connections.Acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	sel, err := ResolveSelection(snap, req.TableNames, req.FullColumnNames)
	if err != nil {
		return nil, err
	}

	query, err := NewQueryCompiler(ds.Dialect, s.logger).Compile(snap, pattern, sel)
	if err != nil {
		return nil, err
	}

	return s.execute(ctx, ds, pattern, sel.Table.TableName, query)
}

// Compile returns the query a selection would run, classifying it when no
// pattern is given.
func (s *VisualisationService) Compile(ctx context.Context, req models.CompileRequest) (*models.CompileResponse, error) {
	ds, err := s.connections.Active()
	if err != nil {
		return nil, err
	}

	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	sel, err := ResolveSelection(snap, req.TableNames, req.FullColumnNames)
	if err != nil {
		return nil, err
	}

	pattern := Classify(sel)
	if req.Pattern != "" {
		p, ok := models.ParsePattern(req.Pattern)
		if !ok {
			return nil, apperrors.NewConfigurationError("unknown pattern %q", req.Pattern)
		}
		pattern = p
	}

	query, err := NewQueryCompiler(ds.Dialect, s.logger).Compile(snap, pattern, sel)
	if err != nil {
		return nil, err
	}
	return &models.CompileResponse{Pattern: pattern, Query: query}, nil
}

// History returns the most recent executed queries, newest first.
func (s *VisualisationService) History(ctx context.Context, limit int) ([]models.QueryHistory, error) {
	if s.history == nil {
		return []models.QueryHistory{}, nil
	}
	return s.history.Recent(ctx, limit)
}

func (s *VisualisationService) execute(ctx context.Context, ds *Datasource, pattern models.Pattern, table, query string) ([]models.Row, error) {
	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	start := time.Now()
	rows, err := ds.Data.Query(ctx, query)
	elapsed := time.Since(start)

	entry := &models.QueryHistory{
		Pattern:         pattern,
		TableName:       table,
		QueryText:       query,
		Success:         err == nil,
		RowCount:        len(rows),
		ExecutionTimeMs: elapsed.Milliseconds(),
	}
	if err != nil {
		entry.Error = err.Error()
	}
	s.record(ctx, entry)

	if err != nil {
		s.logger.Error("Visualisation query failed",
			zap.String("pattern", string(pattern)),
			zap.String("query", logging.TruncateQuery(query)),
			zap.Error(err),
		)
		return nil, &apperrors.QueryExecutionError{Query: query, Err: err}
	}

	s.logger.Debug("Visualisation query executed",
		zap.String("pattern", string(pattern)),
		zap.Int("rows", len(rows)),
		zap.Duration("duration", elapsed),
	)
	return rows, nil
}

func (s *VisualisationService) record(ctx context.Context, entry *models.QueryHistory) {
	if s.history == nil {
		return
	}
	// The request context may already be past its deadline after a slow query.
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	if err := s.history.Create(recordCtx, entry); err != nil {
		s.logger.Warn("Failed to record query history", zap.Error(err))
	}
}
