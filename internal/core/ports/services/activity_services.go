package services

import (
	"context"
	"io"

	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/dto"
)

// RawActivitySvc defines ingestion of broker records. Ingestion never touches derived
// data; a regeneration picks the new records up.
type RawActivitySvc interface {
	// AddRawActivity stores one record after checking the account's adapter can normalize it.
	AddRawActivity(ctx context.Context, accountID string, req dto.CreateRawActivityRequest, userID string) (*domain.RawActivity, error)

	// ImportCSV parses a statement export with the account's adapter and stores the records
	// not seen before. It returns how many were parsed and how many were stored.
	ImportCSV(ctx context.Context, accountID string, r io.Reader, userID string) (parsed int, inserted int, err error)

	// ListRawActivities retrieves the records of an account.
	ListRawActivities(ctx context.Context, accountID string, userID string) ([]domain.RawActivity, error)
}

// ActivityReaderSvc defines read operations for canonical activities
type ActivityReaderSvc interface {
	// ListActivities retrieves the canonical activities of an account.
	ListActivities(ctx context.Context, accountID string, userID string) ([]domain.Activity, error)
}

// ActivitySvcFacade combines raw ingestion and activity reads
type ActivitySvcFacade interface {
	RawActivitySvc
	ActivityReaderSvc
}
