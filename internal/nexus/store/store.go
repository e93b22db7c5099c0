package store

import (
	"context"
	"errors"

	"github.com/pixelforge/nexus/internal/nexus/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement it. Sub-repositories keep concerns tidy and let tests fake one
// area without touching the rest.
type Store interface {
	Users() Users
	Roles() Roles
	Projects() Projects
	Documents() Documents

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Use it for
	// multi-step operations that must observe and mutate consistently.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped view of the repositories.
type Tx interface {
	Users() Users
	Roles() Roles
	Projects() Projects
	Documents() Documents
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login step 1.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail resolves lead/developer references supplied by email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the username or email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash replaces the password hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// SetMFATempSecret stores a pending TOTP seed, replacing any prior
	// pending seed. MFA stays disabled.
	SetMFATempSecret(ctx context.Context, userID string, secret string) error

	// PromoteMFASecret atomically promotes the pending seed to the confirmed
	// one, clears the pending seed and enables MFA. It only applies when a
	// pending seed exists, so two concurrent promotions cannot both win;
	// the loser gets ErrNotFound.
	PromoteMFASecret(ctx context.Context, userID string) error
}

type Roles interface {
	// GetRoleByID fetches a role by its id.
	GetRoleByID(ctx context.Context, id string) (domain.Role, error)

	// GetRoleByName fetches a role by its name.
	GetRoleByName(ctx context.Context, name domain.RoleName) (domain.Role, error)

	// ListAll returns every role.
	ListAll(ctx context.Context) ([]domain.Role, error)
}

type Projects interface {
	// GetProjectByID returns a project with its developer set loaded.
	GetProjectByID(ctx context.Context, id string) (domain.Project, error)

	// CreateProject inserts a new project. Returns ErrAlreadyExists when the
	// name is taken.
	CreateProject(ctx context.Context, p domain.Project) error

	// ListActive returns all Active projects, newest first.
	ListActive(ctx context.Context) ([]domain.Project, error)

	// ListActiveByDeveloper returns the Active projects a user is assigned to.
	ListActiveByDeveloper(ctx context.Context, userID string) ([]domain.Project, error)

	// SetStatus updates the project status and bumps updated_at.
	SetStatus(ctx context.Context, projectID string, status domain.ProjectStatus) error

	// AddDeveloper inserts a membership row. Returns ErrAlreadyExists when
	// the developer is already on the project.
	AddDeveloper(ctx context.Context, projectID, userID string) error
}

type Documents interface {
	// CreateDocument inserts a new document record.
	CreateDocument(ctx context.Context, d domain.Document) error

	// GetDocumentByID returns a document record by id.
	GetDocumentByID(ctx context.Context, id string) (domain.Document, error)

	// ListByProject returns all documents for a project, newest first.
	ListByProject(ctx context.Context, projectID string) ([]domain.Document, error)
}
