package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/models"
)

var userColumns = []string{"id", "login", "password_hash", "role", "created_at"}

// userRepository is the SQL implementation of [UserRepository].
// It handles user account creation and lookup against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns it as stored.
//
// Error handling:
//   - unique violation on login → [ErrLoginAlreadyExists].
//   - any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query := r.db.builder.
		Insert(user.TableName()).
		Columns(userColumns...).
		Values(user.ID, user.Login, user.PasswordHash, string(user.Role), user.CreatedAt)

	if _, err := r.db.exec(ctx, query); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")

		if isUniqueViolation(err) {
			return models.User{}, ErrLoginAlreadyExists
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// FindUserByLogin retrieves the user with the given login.
// It returns [ErrNoUserWasFound] when there is none.
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByLogin", sq.Eq{"login": login})
}

// FindUserByID retrieves the user with the given id.
// It returns [ErrNoUserWasFound] when there is none.
func (r *userRepository) FindUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByID", sq.Eq{"id": userID})
}

func (r *userRepository) findOne(ctx context.Context, funcName string, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query := r.db.builder.
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where(where)

	row, err := r.db.queryRow(ctx, query)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building query")
		return models.User{}, err
	}

	var user models.User
	var role string
	if err = row.Scan(&user.ID, &user.Login, &user.PasswordHash, &role, &user.CreatedAt); err != nil {
		log.Err(err).Str("func", funcName).Msg("error scanning user")
		return models.User{}, mapNotFound(err, ErrNoUserWasFound)
	}
	user.Role = models.Role(role)

	return user, nil
}

// UpdateRole sets the role of the user.
func (r *userRepository) UpdateRole(ctx context.Context, userID uuid.UUID, role models.Role) error {
	log := logger.FromContext(ctx)

	query := r.db.builder.
		Update(models.User{}.TableName()).
		Set("role", string(role)).
		Where(sq.Eq{"id": userID})

	result, err := r.db.exec(ctx, query)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateRole").Msg("error updating role")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(result, ErrNoUserWasFound)
}

// ListUsers returns one page of users ordered by registration time.
func (r *userRepository) ListUsers(ctx context.Context, page models.Page) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query := r.db.builder.
		Select(userColumns...).
		From(models.User{}.TableName()).
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(page.Size)).
		Offset(page.Offset())

	rows, err := r.db.query(ctx, query)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error selecting users")
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0, page.Size)
	for rows.Next() {
		var user models.User
		var role string
		if err = rows.Scan(&user.ID, &user.Login, &user.PasswordHash, &role, &user.CreatedAt); err != nil {
			log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error scanning user")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		user.Role = models.Role(role)
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRows, err)
	}

	return users, nil
}
