// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"time"

	"showreel/config"
	deliverycontext "showreel/internal/delivery/context"
	"showreel/internal/domain/entity"
	domainerrors "showreel/internal/domain/errors"
	"showreel/internal/domain/repository"
	"showreel/internal/domain/service"
	"showreel/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const minPasswordLength = 8

// emailPattern accepts local@domain.tld with no whitespace. Shape check only;
// ownership of the address is not verified.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// credentialService implements the CredentialUsecase interface.
type credentialService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	lockout      repository.LockoutStore
	hasher       service.PasswordHasher
	tokenService service.TokenService
	admin        *config.AdminConfig
	logger       *slog.Logger

	// now is a seam for tests; production uses time.Now.
	now func() time.Time
}

// CredentialServiceParams holds dependencies for credentialService, injected by Fx.
type CredentialServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Lockout      repository.LockoutStore
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewCredentialService is the constructor for credentialService. It receives all dependencies as interfaces.
func NewCredentialService(params CredentialServiceParams) usecase.CredentialUsecase {
	var admin *config.AdminConfig
	if params.Config != nil {
		admin = params.Config.Admin
	}

	return &credentialService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		lockout:      params.Lockout,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		admin:        admin,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *credentialService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete account registration process.
func (srv *credentialService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	// Validation order is fixed: presence, email shape, password length.
	// The rejection cause is logged but never surfaces to the caller.
	if reason := validateRegistration(input); reason != "" {
		srv.log(ctx).Debug("Registration rejected", slog.String("email", input.Email), slog.String("reason", reason))

		return nil, domainerrors.ErrRegistrationRejected.WrapMessage(reason)
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	var registeredUser *entity.User

	// Duplicate check and insert share one transaction; the unique index on
	// email catches the race between two concurrent registrations.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, err := userRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			srv.log(ctx).Debug("Registration rejected", slog.String("email", input.Email), slog.String("reason", "email already registered"))

			return domainerrors.ErrRegistrationRejected.WrapMessage("email already registered")
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to find user by email")
		}

		newCred := &entity.Credential{
			User: entity.User{
				Email: input.Email,
				Name:  input.Name,
				Role:  entity.RoleUser,
			},
			PasswordHash: hashedPassword,
		}

		if err := userRepo.Create(ctx, newCred); err != nil {
			if errors.Is(err, domainerrors.ErrUserAlreadyExists) {
				return domainerrors.ErrRegistrationRejected.WrapMessage("email already registered")
			}

			return errors.WithStack(err)
		}
		registeredUser = newCred.Public()

		return nil
	})

	if err != nil {
		if errors.Is(err, domainerrors.ErrRegistrationRejected) {
			return nil, err
		}
		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	token, err := srv.tokenService.GenerateToken(registeredUser)
	if err != nil {
		srv.log(ctx).Error("Failed to generate session token after registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate session token")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registeredUser.ID))

	return &usecase.AuthOutput{Token: token, User: registeredUser}, nil
}

func validateRegistration(input *usecase.RegisterInput) string {
	switch {
	case input.Email == "" || input.Password == "":
		return "email and password are required"
	case !emailPattern.MatchString(input.Email):
		return "malformed email"
	case len(input.Password) < minPasswordLength:
		return "password too short"
	default:
		return ""
	}
}

// Authenticate orchestrates the login process with per-IP lockout.
func (srv *credentialService) Authenticate(ctx context.Context, input *usecase.AuthenticateInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email), slog.String("clientIP", input.ClientIP))

	// The block check comes first: a blocked caller never reaches the
	// credential lookup, so blocked attempts cost no bcrypt work and
	// reveal nothing about which emails exist.
	if entry, ok := srv.lockout.Status(input.ClientIP); ok && entry.BlockedAt(srv.now()) {
		srv.log(ctx).Warn("Login attempt from blocked IP",
			slog.String("clientIP", input.ClientIP),
			slog.Time("blockedUntil", entry.BlockedUntil))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login blocked")
	}

	cred, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// An unknown email counts as a failure exactly like a wrong
			// password, so the lockout cannot be used to enumerate accounts.
			srv.recordFailure(ctx, input.ClientIP, input.Email)

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, cred.PasswordHash) {
		srv.recordFailure(ctx, input.ClientIP, input.Email)

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	// Success wipes the caller's failure history entirely.
	srv.lockout.Reset(input.ClientIP)

	loggedInUser := cred.Public()
	token, err := srv.tokenService.GenerateToken(loggedInUser)
	if err != nil {
		srv.log(ctx).Error("Failed to generate session token after login", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate session token")
	}

	srv.log(ctx).Debug("Login completed", slog.Any("userID", loggedInUser.ID))

	return &usecase.AuthOutput{Token: token, User: loggedInUser}, nil
}

func (srv *credentialService) recordFailure(ctx context.Context, clientIP, email string) {
	entry := srv.lockout.RecordFailure(clientIP)

	if entry.BlockedAt(srv.now()) {
		srv.log(ctx).Warn("IP blocked after repeated login failures",
			slog.String("clientIP", clientIP),
			slog.Int("failedAttempts", entry.Count),
			slog.Time("blockedUntil", entry.BlockedUntil))

		return
	}

	srv.log(ctx).Debug("Login failure recorded",
		slog.String("email", email),
		slog.String("clientIP", clientIP),
		slog.Int("failedAttempts", entry.Count))
}

// GetUser returns the public projection of an account.
func (srv *credentialService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("account lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}

// EnsureAdminUser creates the configured administrator account if it is not
// present. Repeated startups are no-ops.
func (srv *credentialService) EnsureAdminUser(ctx context.Context) error {
	if srv.admin == nil || srv.admin.Email == "" || srv.admin.Password == "" {
		return errors.New("admin bootstrap credentials must be configured")
	}

	hashedPassword, err := srv.hasher.Hash(srv.admin.Password)
	if err != nil {
		return errors.Wrap(err, "failed to hash admin password")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, err := userRepo.FindByEmail(ctx, srv.admin.Email)
		if err == nil {
			srv.log(ctx).Debug("Admin account already present", slog.String("email", srv.admin.Email))

			return nil
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to find admin account")
		}

		name := srv.admin.Name
		if name == "" {
			name = "Administrator"
		}

		adminCred := &entity.Credential{
			User: entity.User{
				Email: srv.admin.Email,
				Name:  name,
				Role:  entity.RoleAdmin,
			},
			PasswordHash: hashedPassword,
		}

		if err := userRepo.Create(ctx, adminCred); err != nil {
			// A concurrent replica may have won the race; that still
			// leaves the admin account in place.
			if errors.Is(err, domainerrors.ErrUserAlreadyExists) {
				return nil
			}

			return errors.WithStack(err)
		}

		srv.log(ctx).Info("Admin account created", slog.Any("userID", adminCred.ID))

		return nil
	})

	if err != nil {
		return errors.Wrap(err, "failed to execute admin bootstrap transaction")
	}

	return nil
}

// ListBlockedIPs returns the actively blocked addresses, sorted by IP for a
// stable dashboard listing.
func (srv *credentialService) ListBlockedIPs(_ context.Context) []*usecase.BlockedIP {
	entries := srv.lockout.ListBlocked()

	blocked := make([]*usecase.BlockedIP, 0, len(entries))
	for ip, entry := range entries {
		blocked = append(blocked, &usecase.BlockedIP{
			IP:             ip,
			FailedAttempts: entry.Count,
			BlockedUntil:   entry.BlockedUntil,
		})
	}
	sort.Slice(blocked, func(i, j int) bool { return blocked[i].IP < blocked[j].IP })

	return blocked
}

// ClearBlockedIP removes the lockout entry for one address.
func (srv *credentialService) ClearBlockedIP(ctx context.Context, ip string) bool {
	_, found := srv.lockout.Status(ip)
	srv.lockout.Reset(ip)

	if found {
		srv.log(ctx).Info("Lockout entry cleared", slog.String("clientIP", ip))
	}

	return found
}

// ClearAllBlocks empties the lockout table.
func (srv *credentialService) ClearAllBlocks(ctx context.Context) int {
	cleared := len(srv.lockout.ListBlocked())
	srv.lockout.ClearAll()

	srv.log(ctx).Info("Lockout table cleared", slog.Int("activeBlocks", cleared))

	return cleared
}
