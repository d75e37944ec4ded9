package investigation

//go:generate mockgen -destination=mocks/mock_source.go -package=mocks -source=session.go SheetSource

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/moneytrail/internal/extract"
	"github.com/cleared-dev/moneytrail/internal/graph"
	"github.com/cleared-dev/moneytrail/internal/logger"
	"github.com/cleared-dev/moneytrail/internal/model"
	"github.com/cleared-dev/moneytrail/internal/search"
)

var (
	// ErrNoSession is returned by Session methods called on a nil session.
	ErrNoSession = errors.New("no workbook loaded")
	// ErrEmptyQuery is returned when a search query is blank.
	ErrEmptyQuery = errors.New("empty search query")
	// ErrNodeNotFound is returned by Flow for an unknown node id.
	ErrNodeNotFound = errors.New("node not found")
)

// SheetSource loads the processed sheets of one workbook.
type SheetSource interface {
	Load(ctx context.Context, path string) ([]model.SheetData, error)
}

// Session holds one loaded workbook and the graph built from it. A Session
// is never modified after Open; WithParams returns a new one.
type Session struct {
	Path       string
	Sheets     []model.SheetData
	Extraction *extract.Result
	Params     graph.Params
	Graph      *model.Graph
	Report     *graph.Report

	log zerolog.Logger
}

// Open loads path through source, extracts transactions and builds the graph.
// On any failure no session is returned.
func Open(ctx context.Context, source SheetSource, path string, params graph.Params, log zerolog.Logger) (*Session, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	sheets, err := source.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	log = logger.WithFields(log, map[string]interface{}{
		"workbook":  path,
		"max_layer": params.MaxLayer,
	})
	s := &Session{
		Path:       path,
		Sheets:     sheets,
		Extraction: extract.NewExtractor(log).Extract(sheets),
		log:        log,
	}
	if err := s.build(params); err != nil {
		return nil, err
	}
	return s, nil
}

// WithParams rebuilds the graph from the already extracted records. The
// receiver, including its withdrawals, is left untouched.
func (s *Session) WithParams(params graph.Params) (*Session, error) {
	if s == nil {
		return nil, ErrNoSession
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	ext := *s.Extraction
	ext.Withdrawals = make([]*model.Withdrawal, len(s.Extraction.Withdrawals))
	for i, w := range s.Extraction.Withdrawals {
		cp := *w
		ext.Withdrawals[i] = &cp
	}

	next := &Session{
		Path:       s.Path,
		Sheets:     s.Sheets,
		Extraction: &ext,
		log:        s.log,
	}
	if err := next.build(params); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *Session) build(params graph.Params) error {
	ext := s.Extraction
	g, report, err := graph.NewBuilder(s.log).Build(ext.Transfers, ext.Withdrawals, ext.References, params)
	if err != nil {
		return fmt.Errorf("building graph: %w", err)
	}
	s.Params = params
	s.Graph = g
	s.Report = report
	return nil
}

// Search finds every record touching the account matched by query.
func (s *Session) Search(query string) (search.Results, error) {
	if s == nil {
		return search.Results{}, ErrNoSession
	}
	if strings.TrimSpace(query) == "" {
		return search.Results{}, ErrEmptyQuery
	}
	ext := s.Extraction
	return search.SearchAccount(query, ext.Transfers, ext.Withdrawals, ext.Others), nil
}

// Locate returns the id of the first graph node matching query by account or
// reference.
func (s *Session) Locate(query string) (string, error) {
	if s == nil {
		return "", ErrNoSession
	}
	if strings.TrimSpace(query) == "" {
		return "", ErrEmptyQuery
	}
	nodeID, ok := search.GraphSearch(query, s.Graph)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNodeNotFound, query)
	}
	return nodeID, nil
}

// Flow summarizes the direct money flow through one node.
func (s *Session) Flow(nodeID string) (graph.FlowSummary, error) {
	if s == nil {
		return graph.FlowSummary{}, ErrNoSession
	}
	summary, ok := graph.Flow(s.Graph, nodeID)
	if !ok {
		return graph.FlowSummary{}, fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}
	return summary, nil
}
