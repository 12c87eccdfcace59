package cli

import (
	"context"
	"io"
	"os"

	"github.com/custodia-labs/transync-cli/internal/adapters/driven/fsscan"
	"github.com/custodia-labs/transync-cli/internal/adapters/driven/rest"
	"github.com/custodia-labs/transync-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/transync-cli/internal/core/services"
	"github.com/custodia-labs/transync-cli/internal/formats/glossary"
	"github.com/custodia-labs/transync-cli/internal/formats/properties"
	"github.com/custodia-labs/transync-cli/internal/logger"
)

// Replaceable collaborators. Tests swap these for in-memory versions.
var (
	// connect opens a server connection.
	connect = func(ctx context.Context, cfg rest.Config) (driven.TranslationServer, error) {
		return rest.NewClient(ctx, cfg)
	}

	// openRunStore opens the run history store.
	openRunStore = func() (driven.RunStore, io.Closer, error) {
		store, err := sqlite.NewStore("")
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	}

	// fsOpener roots local directories for scanning and file I/O.
	fsOpener fsscan.Opener = fsscan.OSOpener

	// stdin feeds confirmation prompts.
	stdin io.Reader = os.Stdin
)

func formatRegistry() *services.FormatRegistry {
	return services.NewFormatRegistry(
		properties.NewLatin1(fsOpener),
		properties.NewUTF8(fsOpener),
	)
}

func glossaryReaders() *services.GlossaryReaders {
	return services.NewGlossaryReaders(glossary.NewCSVReader())
}

// history opens the run history. When the store cannot be opened, runs
// are not recorded and the returned history is nil.
func history(s *settings) (driving.RunHistory, func()) {
	if !s.historyEnabled() {
		return nil, func() {}
	}
	store, closer, err := openRunStore()
	if err != nil {
		logger.Warn("run history unavailable: %v", err)
		return nil, func() {}
	}
	return services.NewHistoryService(store), func() {
		if closer != nil {
			if err := closer.Close(); err != nil {
				logger.Debug("closing run history: %v", err)
			}
		}
	}
}
