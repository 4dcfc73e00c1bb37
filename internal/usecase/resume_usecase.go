package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/user/catalog-crawler/internal/entity"
	"github.com/user/catalog-crawler/internal/repository"
)

// ResumePlanner computes the starting cursor for a run from prior store
// state and operator overrides. It never prompts; obtaining the autoResume
// decision is the CLI's job.
type ResumePlanner interface {
	// Plan returns the cursor to start from, or nil for start-of-sequence.
	Plan(ctx context.Context, explicitStart string, autoResume bool) (*entity.Cursor, error)
}

type resumePlanner struct {
	catalogRepo repository.CatalogRepository
}

// NewResumePlanner creates a new ResumePlanner use case.
func NewResumePlanner(catalogRepo repository.CatalogRepository) ResumePlanner {
	return &resumePlanner{catalogRepo: catalogRepo}
}

// Plan applies the precedence rules: an explicit start wins unconditionally,
// auto-resume derives the cursor from the catalog's maximum stored name, and
// otherwise the walk starts from the beginning.
//
// Resume assumes the remote listing's ordering matches plain string
// comparison of stored names. A remote source with a different collation can
// make resume re-fetch or skip items; that is a documented limitation, not
// something corrected here.
func (p *resumePlanner) Plan(ctx context.Context, explicitStart string, autoResume bool) (*entity.Cursor, error) {
	if explicitStart != "" {
		if autoResume {
			// Advisory only; the explicit start is honored, never rejected.
			slog.Warn("Both explicit start and auto-resume requested, explicit start wins",
				"start", explicitStart)
		}
		slog.Info("Starting from explicit name", "start", explicitStart)
		return &entity.Cursor{From: explicitStart}, nil
	}

	if autoResume {
		lastName, err := p.catalogRepo.MaxName(ctx)
		if errors.Is(err, repository.ErrEmptyCatalog) {
			slog.Info("Catalog is empty, starting from the beginning")
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("plan resume cursor: %w", err)
		}
		slog.Info("Resuming from last stored name", "last_name", lastName)
		return &entity.Cursor{From: lastName}, nil
	}

	return nil, nil
}
