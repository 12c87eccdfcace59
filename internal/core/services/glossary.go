package services

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/transync-cli/internal/logger"
)

// Ensure GlossaryService implements the interface.
var _ driving.GlossaryPusher = (*GlossaryService)(nil)

// GlossaryService uploads glossary files in batches.
type GlossaryService struct {
	client  driven.GlossaryClient
	readers *GlossaryReaders
}

// NewGlossaryService creates a glossary service.
func NewGlossaryService(client driven.GlossaryClient, readers *GlossaryReaders) *GlossaryService {
	return &GlossaryService{client: client, readers: readers}
}

// PushGlossary reads the glossary file and pushes it batch by batch.
func (s *GlossaryService) PushGlossary(ctx context.Context, opts domain.GlossaryPushOptions) (*domain.GlossaryPushResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	reader, err := s.readers.ForFile(opts.File)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(opts.File)
	if err != nil {
		return nil, fmt.Errorf("open glossary: %w", err)
	}
	defer f.Close()

	glossary, err := reader.Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("read glossary %s: %w", opts.File, err)
	}

	result := &domain.GlossaryPushResult{DryRun: opts.DryRun, Entries: glossary.Size()}
	logger.Info("pushing glossary %s: %d entries", opts.File, glossary.Size())

	for from := 0; from < glossary.Size(); from += opts.BatchSize {
		to := min(from+opts.BatchSize, glossary.Size())
		batch := &domain.Glossary{Entries: glossary.Entries[from:to]}
		result.Batches = append(result.Batches, batch.Size())

		if opts.DryRun {
			logger.Info("pushing glossary entries %d-%d (skipped due to dry run)", from+1, to)
			continue
		}
		if err := s.client.PushGlossary(ctx, batch); err != nil {
			return result, fmt.Errorf("push glossary entries %d-%d: %w", from+1, to, err)
		}
		logger.Info("pushed %d of %d entries", to, glossary.Size())
	}
	return result, nil
}
