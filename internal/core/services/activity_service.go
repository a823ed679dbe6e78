package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/adapters/brokers"
	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/portfolio_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/portfolio_tracker/internal/core/ports/services"
	"github.com/SscSPs/portfolio_tracker/internal/dto"
	"github.com/SscSPs/portfolio_tracker/internal/utils/dates"
	"github.com/google/uuid"
)

// activityService ingests raw broker records. Derived data is only touched by regeneration.
type activityService struct {
	BaseService
	activityRepo portsrepo.ActivityRepositoryFacade
	registry     *brokers.Registry
}

// ActivityServiceOption is a functional option for configuring the activity service
type ActivityServiceOption func(*activityService)

// WithActivityAccountAuthorizer sets the account authorizer for the activity service.
func WithActivityAccountAuthorizer(authorizer portssvc.AccountAuthorizerSvc) ActivityServiceOption {
	return func(s *activityService) {
		s.AccountAuthorizer = authorizer
	}
}

// NewActivityService creates a new activity service with the provided options
func NewActivityService(activityRepo portsrepo.ActivityRepositoryFacade, registry *brokers.Registry, options ...ActivityServiceOption) portssvc.ActivitySvcFacade {
	svc := &activityService{activityRepo: activityRepo, registry: registry}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ActivitySvcFacade = (*activityService)(nil)

func (s *activityService) AddRawActivity(ctx context.Context, accountID string, req dto.CreateRawActivityRequest, userID string) (*domain.RawActivity, error) {
	account, err := s.AuthorizeAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	adapter, err := s.registry.Get(account.Broker)
	if err != nil {
		return nil, err
	}

	tradeDate, err := dates.Parse(req.TradeDate)
	if err != nil {
		return nil, fmt.Errorf("%w: trade date: %v", apperrors.ErrValidation, err)
	}
	raw := domain.RawActivity{
		RawActivityID: uuid.NewString(),
		AccountID:     account.AccountID,
		ExternalID:    req.ExternalID,
		TradeDate:     tradeDate,
		Type:          req.Type,
		Action:        req.Action,
		Symbol:        req.Symbol,
		Currency:      req.Currency,
		Description:   req.Description,
		Quantity:      req.Quantity,
		Price:         req.Price,
		NetAmount:     req.NetAmount,
		Commission:    req.Commission,
		CreatedAt:     time.Now().UTC(),
		CreatedBy:     userID,
	}
	if err := s.checkNormalizes(adapter, raw); err != nil {
		return nil, err
	}

	inserted, err := s.activityRepo.SaveRawActivities(ctx, []domain.RawActivity{raw})
	if err != nil {
		s.LogError(ctx, err, "Failed to save raw activity", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to add raw activity in service: %w", err)
	}
	if inserted == 0 {
		return nil, fmt.Errorf("%w: activity %s was already imported", apperrors.ErrDuplicate, raw.ExternalID)
	}
	return &raw, nil
}

func (s *activityService) ImportCSV(ctx context.Context, accountID string, r io.Reader, userID string) (int, int, error) {
	account, err := s.AuthorizeAccount(ctx, userID, accountID)
	if err != nil {
		return 0, 0, err
	}
	parser, err := s.registry.Parser(account.Broker)
	if err != nil {
		return 0, 0, err
	}
	adapter, err := s.registry.Get(account.Broker)
	if err != nil {
		return 0, 0, err
	}

	raws, err := parser.ParseCSV(r, *account)
	if err != nil {
		s.LogError(ctx, err, "Failed to parse statement", slog.String("account_id", accountID), slog.String("broker", account.Broker))
		if errors.Is(err, apperrors.ErrValidation) {
			return 0, 0, fmt.Errorf("parsing statement: %w", err)
		}
		return 0, 0, fmt.Errorf("%w: parsing statement: %v", apperrors.ErrValidation, err)
	}

	now := time.Now().UTC()
	for i := range raws {
		raws[i].RawActivityID = uuid.NewString()
		raws[i].AccountID = account.AccountID
		raws[i].CreatedAt = now
		raws[i].CreatedBy = userID
		if err := s.checkNormalizes(adapter, raws[i]); err != nil {
			return 0, 0, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	inserted, err := s.activityRepo.SaveRawActivities(ctx, raws)
	if err != nil {
		s.LogError(ctx, err, "Failed to save imported activities", slog.String("account_id", accountID))
		return 0, 0, fmt.Errorf("failed to import activities in service: %w", err)
	}

	s.LogInfo(ctx, "Statement imported",
		slog.String("account_id", accountID),
		slog.Int("parsed", len(raws)),
		slog.Int("inserted", inserted))
	return len(raws), inserted, nil
}

// checkNormalizes rejects records the adapter would fail on at regeneration time.
func (s *activityService) checkNormalizes(adapter brokers.Adapter, raw domain.RawActivity) error {
	if err := brokers.ValidateRaw(raw); err != nil {
		return err
	}
	if _, err := adapter.Normalize(raw); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return err
		}
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}

func (s *activityService) ListRawActivities(ctx context.Context, accountID string, userID string) ([]domain.RawActivity, error) {
	if _, err := s.AuthorizeAccount(ctx, userID, accountID); err != nil {
		return nil, err
	}
	raws, err := s.activityRepo.ListRawActivities(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list raw activities in service: %w", err)
	}
	return raws, nil
}

func (s *activityService) ListActivities(ctx context.Context, accountID string, userID string) ([]domain.Activity, error) {
	if _, err := s.AuthorizeAccount(ctx, userID, accountID); err != nil {
		return nil, err
	}
	activities, err := s.activityRepo.ListActivities(ctx, []string{accountID})
	if err != nil {
		return nil, fmt.Errorf("failed to list activities in service: %w", err)
	}
	return activities, nil
}
