package businessflow

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/godigitorw/macss/config"
	"github.com/godigitorw/macss/models"
	"github.com/godigitorw/macss/repository"
	"github.com/godigitorw/macss/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// OwnershipResolver determines which account owns a listing published from a
// submission. Resolution runs before the publication transaction opens so a
// create/create race never poisons that transaction.
type OwnershipResolver interface {
	Resolve(ctx context.Context, submission *models.Submission) (*models.Account, error)
}

// OwnershipResolverImpl implements OwnershipResolver
type OwnershipResolverImpl struct {
	accountRepo repository.AccountRepository
	cfg         config.ModerationConfig
	bcryptCost  int
}

// NewOwnershipResolver creates a new ownership resolver
func NewOwnershipResolver(accountRepo repository.AccountRepository, cfg config.ModerationConfig, bcryptCost int) OwnershipResolver {
	return &OwnershipResolverImpl{
		accountRepo: accountRepo,
		cfg:         cfg,
		bcryptCost:  bcryptCost,
	}
}

// Resolve returns the submission's own account when it has one, otherwise the
// shared fallback account, creating it on first use. Two moderators approving
// concurrently may both attempt the create; the loser of that race re-fetches
// the row the winner inserted.
func (r *OwnershipResolverImpl) Resolve(ctx context.Context, submission *models.Submission) (*models.Account, error) {
	if submission.AccountID != nil {
		account, err := r.accountRepo.ByID(ctx, *submission.AccountID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOwnershipResolutionFailed, err)
		}
		if account == nil {
			return nil, fmt.Errorf("%w: account %d not found", ErrOwnershipResolutionFailed, *submission.AccountID)
		}
		return account, nil
	}

	account, err := r.accountRepo.ByEmail(ctx, r.cfg.FallbackOwnerEmail)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOwnershipResolutionFailed, err)
	}
	if account != nil {
		return account, nil
	}

	account, err = r.createFallbackAccount(ctx)
	if err == nil {
		return account, nil
	}

	if !repository.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: %v", ErrOwnershipResolutionFailed, err)
	}

	// Lost the create race; the row exists now
	account, err = r.accountRepo.ByEmail(ctx, r.cfg.FallbackOwnerEmail)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOwnershipResolutionFailed, err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: fallback account vanished after unique violation", ErrOwnershipResolutionFailed)
	}

	return account, nil
}

func (r *OwnershipResolverImpl) createFallbackAccount(ctx context.Context) (*models.Account, error) {
	password, err := randomPassword()
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash fallback account password: %w", err)
	}

	account := &models.Account{
		UUID:         uuid.New(),
		Email:        r.cfg.FallbackOwnerEmail,
		Name:         r.cfg.FallbackOwnerName,
		PasswordHash: string(hash),
		Role:         models.AccountRoleAdmin,
		IsActive:     utils.ToPtr(true),
	}

	if err := r.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// randomPassword generates an unguessable throwaway password. The fallback
// account is never meant to be logged into through it.
func randomPassword() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random password: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
