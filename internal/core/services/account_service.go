package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
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

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo  portsrepo.AccountRepositoryFacade
	activityRepo portsrepo.ActivityReader
	registry     *brokers.Registry
}

// NewAccountService creates a new account service. The service authorizes access to
// its own accounts.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, activityRepo portsrepo.ActivityReader, registry *brokers.Registry) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo:  accountRepo,
		activityRepo: activityRepo,
		registry:     registry,
	}
	svc.AccountAuthorizer = svc
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	broker := strings.ToLower(strings.TrimSpace(req.Broker))
	if _, err := s.registry.Get(broker); err != nil {
		s.LogError(ctx, err, "Account uses a broker that is not enabled", slog.String("broker", req.Broker))
		return nil, err
	}

	creationDate := domain.DefaultAccountCreationDate
	if req.CreationDate != "" {
		d, err := dates.Parse(req.CreationDate)
		if err != nil {
			return nil, fmt.Errorf("%w: creation date: %v", apperrors.ErrValidation, err)
		}
		creationDate = d
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       userID,
		Broker:       broker,
		BrokerRef:    strings.TrimSpace(req.BrokerRef),
		DisplayName:  req.DisplayName,
		Taxable:      req.Taxable,
		CreationDate: creationDate,
		AuditFields: domain.NewAuditFields(userID, now),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, fmt.Errorf("failed to create account in service: %w", err)
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("broker", account.Broker))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error) {
	return s.AuthorizeAccount(ctx, userID, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list accounts in service: %w", err)
	}
	return accounts, nil
}

func (s *accountService) LastActivityDate(ctx context.Context, accountID string) (*time.Time, error) {
	last, err := s.activityRepo.LastActivityDate(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get last activity date in service: %w", err)
	}
	return last, nil
}

// AuthorizeAccount hides other users' accounts behind ErrForbidden and unknown ones behind ErrNotFound.
func (s *accountService) AuthorizeAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("account " + accountID)
		}
		return nil, fmt.Errorf("failed to get account in service: %w", err)
	}
	if account.UserID != userID {
		s.LogDebug(ctx, "User does not own account",
			slog.String("user_id", userID),
			slog.String("account_id", accountID))
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrForbidden, accountID)
	}
	return account, nil
}
