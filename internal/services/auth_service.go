package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/habitquest/habit-quest-api/internal/constants"
	"github.com/habitquest/habit-quest-api/internal/models"
	"github.com/habitquest/habit-quest-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo     repository.UserRepository
	creatureRepo repository.CreatureRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, creatureRepo repository.CreatureRepository) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		creatureRepo: creatureRepo,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Username string
	Password string
}

// Signup creates a new user at level 1 with the base experience threshold
// and grants the starter species.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:            username,
		PasswordHash:        string(hashedPassword),
		Experience:          0,
		Level:               1,
		NextLevelExperience: constants.BaseNextLevelExperience,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, ErrFailedToCreateUser
	}

	s.grantStarter(user)

	return user, nil
}

// grantStarter gives the new user the starter species. Missing seed data
// is tolerated: signup succeeds either way.
func (s *AuthService) grantStarter(user *models.User) {
	starter, err := s.creatureRepo.FindSpeciesByPokedexNumber(constants.StarterPokedexNumber)
	if err != nil {
		log.Printf("starter species not available for user %d: %v", user.ID, err)
		return
	}

	record := &models.UserCreature{
		UserID:    user.ID,
		SpeciesID: starter.ID,
		Amount:    1,
	}
	if err := s.creatureRepo.CreateOwnership(record); err != nil {
		log.Printf("failed to grant starter species to user %d: %v", user.ID, err)
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
