package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned by lookups that match no user.
var ErrNotFound = errors.New("user not found")

// ErrDuplicate is returned when a unique constraint on email, phone or IC
// number rejects a write. The workflow pre-checks are advisory; this is the
// storage-layer backstop for the check-then-create race.
var ErrDuplicate = errors.New("duplicate user field")

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, user User) error
	FindByID(ctx context.Context, id string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByPhone(ctx context.Context, phone string) (User, error)
	FindByICNumber(ctx context.Context, icNumber string) (User, error)
	Update(ctx context.Context, user User) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, username, email, phone, ic_number, role,
        email_confirmed, phone_confirmed, email_otp, phone_otp,
        email_otp_expiry, phone_otp_expiry, pin_hash, created_at`

// Create inserts a new user.
func (r *PostgresRepository) Create(ctx context.Context, user User) error {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO users (`+userColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		userID, user.Username, user.Email, user.Phone, user.ICNumber, user.Role,
		user.EmailConfirmed, user.PhoneConfirmed, user.EmailOTP, user.PhoneOTP,
		user.EmailOTPExpiry.UTC(), user.PhoneOTPExpiry.UTC(), user.PINHash, user.CreatedAt.UTC())
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// FindByID fetches a user by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return User{}, ErrNotFound
	}
	return r.findBy(ctx, "id", userID)
}

// FindByEmail fetches a user by email address.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	return r.findBy(ctx, "email", email)
}

// FindByPhone fetches a user by phone number.
func (r *PostgresRepository) FindByPhone(ctx context.Context, phone string) (User, error) {
	return r.findBy(ctx, "phone", phone)
}

// FindByICNumber fetches a user by IC number.
func (r *PostgresRepository) FindByICNumber(ctx context.Context, icNumber string) (User, error) {
	return r.findBy(ctx, "ic_number", icNumber)
}

func (r *PostgresRepository) findBy(ctx context.Context, column string, value any) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+column+` = $1`, value)

	var (
		id        uuid.UUID
		user      User
		emailExp  time.Time
		phoneExp  time.Time
		createdAt time.Time
	)
	err := row.Scan(&id, &user.Username, &user.Email, &user.Phone, &user.ICNumber, &user.Role,
		&user.EmailConfirmed, &user.PhoneConfirmed, &user.EmailOTP, &user.PhoneOTP,
		&emailExp, &phoneExp, &user.PINHash, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("query user by %s: %w", column, err)
	}
	user.ID = id.String()
	user.EmailOTPExpiry = emailExp.UTC()
	user.PhoneOTPExpiry = phoneExp.UTC()
	user.CreatedAt = createdAt.UTC()
	return user, nil
}

// Update rewrites the mutable fields of a user record.
func (r *PostgresRepository) Update(ctx context.Context, user User) error {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE users SET
        email_confirmed = $1, phone_confirmed = $2,
        email_otp = $3, phone_otp = $4,
        email_otp_expiry = $5, phone_otp_expiry = $6,
        pin_hash = $7
        WHERE id = $8`,
		user.EmailConfirmed, user.PhoneConfirmed,
		user.EmailOTP, user.PhoneOTP,
		user.EmailOTPExpiry.UTC(), user.PhoneOTPExpiry.UTC(),
		user.PINHash, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
