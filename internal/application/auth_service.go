package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
	"github.com/oksasatya/fittrack-api/internal/domain/repository"
	"github.com/oksasatya/fittrack-api/pkg/apperr"
	"github.com/oksasatya/fittrack-api/pkg/helpers"
	"github.com/oksasatya/fittrack-api/pkg/mailer"
	mailtpl "github.com/oksasatya/fittrack-api/pkg/mailer/templates"
)

var ErrInvalidCredentials = apperr.Unauthenticated("invalid email or password")

type AuthService struct {
	Users  repository.UserRepository
	Tokens TokenIssuer
	Index  UserIndex    // optional
	Mail   JobPublisher // optional, nil disables welcome emails
	Logger *logrus.Logger

	AppName    string
	AppURL     string
	SupportURL string

	Now func() time.Time
}

func NewAuthService(users repository.UserRepository, tokens TokenIssuer, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Tokens: tokens, Logger: logger, Now: utcNow}
}

type RegisterInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	Gender      *string
	HeightCm    *float64
	WeightKg    *float64
}

// Register creates a standard, active account. A taken email yields apperr Conflict.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("hash password: %w", err))
	}
	u := &entity.User{
		Email:        entity.NormalizeEmail(in.Email),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         entity.RoleStandard,
		IsActive:     true,
		DateOfBirth:  in.DateOfBirth,
		Gender:       in.Gender,
		HeightCm:     in.HeightCm,
		WeightKg:     in.WeightKg,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}

	if s.Index != nil {
		if err := s.Index.Put(ctx, u); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("index user failed")
		}
	}
	s.queueWelcome(ctx, u)
	return u, nil
}

func (s *AuthService) queueWelcome(ctx context.Context, u *entity.User) {
	if s.Mail == nil {
		return
	}
	data := mailtpl.BuildWelcome(s.AppName, s.AppURL, u.FirstName+" "+u.LastName, u.Email,
		mailtpl.WithTime(u.CreatedAt), mailtpl.WithSupportURL(s.SupportURL))
	job := mailer.NewTemplateJob(u.Email, mailtpl.Welcome, mailtpl.ToMap(data))
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		helpers.LogError(s.Logger, "queue welcome email failed", err, logrus.Fields{"user_id": u.ID})
	}
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// Login checks the password, refreshes last_login_at and issues a token.
// Unknown emails, wrong passwords and inactive accounts are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) || !u.IsActive {
		return nil, ErrInvalidCredentials
	}

	now := s.Now()
	if err := s.Users.TouchLastLogin(ctx, u.ID, now); err != nil {
		return nil, err
	}
	u.LastLoginAt = &now

	token, exp, err := s.Tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("issue token: %w", err))
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}
