package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubPool struct {
	queryRowFunc func(ctx context.Context, query string, args ...any) pgx.Row
	queryFunc    func(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	execFunc     func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	beginTxFunc  func(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

func (s *stubPool) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	if s.queryRowFunc != nil {
		return s.queryRowFunc(ctx, query, args...)
	}
	return &stubRow{scan: func(dest ...any) error { return nil }}
}

func (s *stubPool) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	if s.queryFunc != nil {
		return s.queryFunc(ctx, query, args...)
	}
	return nil, errors.New("query not implemented")
}

func (s *stubPool) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	if s.execFunc != nil {
		return s.execFunc(ctx, query, args...)
	}
	return pgconn.CommandTag{}, errors.New("exec not implemented")
}

func (s *stubPool) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	if s.beginTxFunc != nil {
		return s.beginTxFunc(ctx, txOptions)
	}
	return nil, errors.New("begin tx not implemented")
}

type stubRow struct {
	scan func(dest ...any) error
}

func (s *stubRow) Scan(dest ...any) error {
	if s.scan != nil {
		return s.scan(dest...)
	}
	return nil
}

func scanUserInto(id uuid.UUID, email, name, role string, created time.Time) func(dest ...any) error {
	return func(dest ...any) error {
		*dest[0].(*uuid.UUID) = id
		*dest[1].(*string) = email
		*dest[2].(*string) = name
		*dest[3].(*string) = "hashed"
		*dest[4].(*string) = role
		*dest[5].(*time.Time) = created
		*dest[6].(*time.Time) = created.Add(time.Minute)
		return nil
	}
}

func TestPGXUsersRepository_FindByEmail(t *testing.T) {
	repo := &PGXUsersRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			if args[0] != "user@example.com" {
				t.Errorf("unexpected args: %v", args)
			}
			id := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
			return &stubRow{scan: scanUserInto(id, "user@example.com", "Linh", "admin", time.Now())}
		},
	}}

	user, err := repo.FindByEmail(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "user@example.com" || user.Role != "admin" || user.Name != "Linh" {
		t.Fatalf("unexpected user: %+v", user)
	}

	repo.pool = &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				return pgx.ErrNoRows
			}}
		},
	}
	if _, err := repo.FindByEmail(context.Background(), "missing@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPGXUsersRepository_FindByID(t *testing.T) {
	id := uuid.MustParse("cccccccc-cccc-cccc-cccc-cccccccccccc")
	repo := &PGXUsersRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: scanUserInto(id, "user@example.com", "An", "user", time.Now())}
		},
	}}

	user, err := repo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != id {
		t.Fatalf("unexpected user: %+v", user)
	}

	repo.pool = &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error { return errors.New("conn reset") }}
		},
	}
	if _, err := repo.FindByID(context.Background(), id); err == nil || errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected wrapped driver error, got %v", err)
	}
}

func TestPGXUsersRepository_Create(t *testing.T) {
	repo := &PGXUsersRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			if len(args) != 4 || args[1] != "Linh" {
				t.Errorf("unexpected args: %v", args)
			}
			id := uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
			return &stubRow{scan: scanUserInto(id, "user@example.com", "Linh", "user", time.Now())}
		},
	}}

	user, err := repo.Create(context.Background(), "user@example.com", "Linh", "hashed", "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "user@example.com" {
		t.Fatalf("expected created user, got %+v", user)
	}

	repo.pool = &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key", Message: "duplicate key value"}
			}}
		},
	}
	if _, err := repo.Create(context.Background(), "user@example.com", "Linh", "hashed", "user"); !errors.Is(err, ErrEmailDuplicate) {
		t.Fatalf("expected ErrEmailDuplicate, got %v", err)
	}
}
