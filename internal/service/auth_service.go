package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/session"
)

// AuthService handles signup and login
type AuthService struct {
	userRepo     domain.UserRepository
	ledgerRepo   domain.LedgerRepository
	categoryRepo domain.CategoryRepository
	sessions     *session.Manager
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, ledgerRepo domain.LedgerRepository, categoryRepo domain.CategoryRepository, sessions *session.Manager) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		ledgerRepo:   ledgerRepo,
		categoryRepo: categoryRepo,
		sessions:     sessions,
	}
}

// Signup registers a new user and seeds their first ledger with the
// default category set.
func (s *AuthService) Signup(username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if len(username) < domain.MinUsernameLength {
		return nil, domain.ErrUsernameTooShort
	}
	if len(username) > domain.MaxUsernameLength {
		return nil, domain.ErrNameTooLong
	}
	if len(password) < domain.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(&domain.User{
		Username:     username,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	// Seed the first ledger. A failure here leaves the account usable:
	// the get-or-create user ledger path seeds on first access.
	if _, err := s.seedLedger(user.ID, username); err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to seed first ledger")
	} else {
		log.Info().Str("user_id", user.ID.String()).Str("username", username).Msg("User signed up")
	}

	return user, nil
}

// Login verifies credentials and issues a session token
func (s *AuthService) Login(username, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredential
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredential
	}

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	log.Info().Str("user_id", user.ID.String()).Msg("User logged in")
	return token, user, nil
}

// GetOrCreateUserLedger returns the user's first owned ledger,
// creating and seeding one when none exists.
func (s *AuthService) GetOrCreateUserLedger(userID uuid.UUID) (*domain.Ledger, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	owned, err := s.ledgerRepo.GetOwnedByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(owned) > 0 {
		return owned[0], nil
	}

	ledger, err := s.seedLedger(userID, user.Username)
	if err != nil {
		return nil, err
	}
	log.Info().Str("user_id", userID.String()).Int32("ledger_id", ledger.ID).Msg("Created user ledger on first access")
	return ledger, nil
}

func (s *AuthService) seedLedger(ownerID uuid.UUID, username string) (*domain.Ledger, error) {
	ledger, err := s.ledgerRepo.Create(&domain.Ledger{
		OwnerID:  ownerID,
		Name:     username + "'s Ledger",
		Currency: domain.DefaultCurrency,
	})
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.CreateBatch(ledger.ID, domain.DefaultCategories); err != nil {
		return nil, err
	}
	return ledger, nil
}
