package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	"github.com/resibilis/backend-resibilis/internal/common"
)

type fakeStore struct {
	users    map[string]UserRow    // keyed by email
	sessions map[string]SessionRow // keyed by token hash
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[string]UserRow{},
		sessions: map[string]SessionRow{},
	}
}

func newPGUUID() pgtype.UUID {
	id := uuid.New()
	var out pgtype.UUID
	copy(out.Bytes[:], id[:])
	out.Valid = true
	return out
}

func (f *fakeStore) CreateUser(_ context.Context, name, email, passwordHash string) (UserRow, error) {
	if _, exists := f.users[email]; exists {
		return UserRow{}, &pgconn.PgError{Code: "23505"}
	}
	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	row := UserRow{
		ID:           newPGUUID(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.users[email] = row
	return row, nil
}

func (f *fakeStore) UserByEmail(_ context.Context, email string) (UserRow, error) {
	row, ok := f.users[email]
	if !ok {
		return UserRow{}, errors.New("no rows")
	}
	return row, nil
}

func (f *fakeStore) UserByID(_ context.Context, id pgtype.UUID) (UserRow, error) {
	for _, row := range f.users {
		if row.ID == id {
			return row, nil
		}
	}
	return UserRow{}, errors.New("no rows")
}

func (f *fakeStore) CreateSession(_ context.Context, userID pgtype.UUID, tokenHash, userAgent, ip string, expiresAt time.Time) (SessionRow, error) {
	row := SessionRow{
		ID:        newPGUUID(),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: pgtype.Timestamptz{Time: expiresAt, Valid: true},
	}
	f.sessions[tokenHash] = row
	return row, nil
}

func (f *fakeStore) SessionByTokenHash(_ context.Context, tokenHash string) (SessionRow, error) {
	row, ok := f.sessions[tokenHash]
	if !ok {
		return SessionRow{}, errors.New("no rows")
	}
	return row, nil
}

func (f *fakeStore) RotateSession(_ context.Context, id pgtype.UUID, tokenHash string, expiresAt time.Time) error {
	for hash, row := range f.sessions {
		if row.ID == id {
			delete(f.sessions, hash)
			row.TokenHash = tokenHash
			row.ExpiresAt = pgtype.Timestamptz{Time: expiresAt, Valid: true}
			f.sessions[tokenHash] = row
			return nil
		}
	}
	return errors.New("no rows")
}

func (f *fakeStore) RevokeSessionByTokenHash(_ context.Context, tokenHash string) error {
	if row, ok := f.sessions[tokenHash]; ok {
		row.RevokedAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}
		f.sessions[tokenHash] = row
	}
	return nil
}

func (f *fakeStore) RevokeSessionsByUser(_ context.Context, userID pgtype.UUID) error {
	for hash, row := range f.sessions {
		if row.UserID == userID {
			row.RevokedAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}
			f.sessions[hash] = row
		}
	}
	return nil
}

func newTestService(t *testing.T, store Store) *Service {
	t.Helper()
	svc, err := NewService(Config{
		Store:           store,
		Secret:          "test-secret-0123456789",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t, newFakeStore())
	ctx := context.Background()

	cases := []struct {
		name     string
		userName string
		email    string
		password string
		code     string
	}{
		{name: "missing name", email: "a@b.ph", password: "password1", code: "VALIDATION_ERROR"},
		{name: "missing email", userName: "Maria", password: "password1", code: "VALIDATION_ERROR"},
		{name: "bad email", userName: "Maria", email: "not-an-email", password: "password1", code: "VALIDATION_ERROR"},
		{name: "disposable email", userName: "Maria", email: "x@mailinator.com", password: "password1", code: "EMAIL_DISPOSABLE"},
		{name: "short password", userName: "Maria", email: "maria@business.ph", password: "short", code: "VALIDATION_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.userName, tc.email, tc.password)
			var appErr *common.AppError
			require.ErrorAs(t, err, &appErr)
			require.Equal(t, tc.code, appErr.Code)
		})
	}
}

func TestRegisterNormalizesEmailAndDetectsDuplicates(t *testing.T) {
	svc := newTestService(t, newFakeStore())
	ctx := context.Background()

	user, err := svc.Register(ctx, "Maria", "  Maria@Business.PH ", "password1")
	require.NoError(t, err)
	require.Equal(t, "maria@business.ph", user.Email)
	require.NotEmpty(t, user.ID)

	_, err = svc.Register(ctx, "Maria", "maria@business.ph", "password1")
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "EMAIL_ALREADY_USED", appErr.Code)
}

func TestLoginAndParseAccessToken(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Maria", "maria@business.ph", "password1")
	require.NoError(t, err)

	result, err := svc.Login(ctx, "maria@business.ph", "password1", "test-agent", "203.0.113.9")
	require.NoError(t, err)
	require.Equal(t, user.ID, result.User.ID)
	require.NotEmpty(t, result.AccessToken)
	require.NotEmpty(t, result.RefreshToken)
	require.Len(t, store.sessions, 1)

	subject, err := svc.ParseAccessToken(result.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, subject)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t, newFakeStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "Maria", "maria@business.ph", "password1")
	require.NoError(t, err)

	for _, attempt := range []struct{ email, password string }{
		{"maria@business.ph", "wrong-password"},
		{"unknown@business.ph", "password1"},
		{"", ""},
	} {
		_, err := svc.Login(ctx, attempt.email, attempt.password, "", "")
		var appErr *common.AppError
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, "INVALID_CREDENTIALS", appErr.Code)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Maria", "maria@business.ph", "password1")
	require.NoError(t, err)
	login, err := svc.Login(ctx, "maria@business.ph", "password1", "", "")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)
	require.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// the old token must no longer resolve
	_, err = svc.Refresh(ctx, login.RefreshToken)
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "UNAUTHORIZED", appErr.Code)

	// the rotated token still works
	_, err = svc.Refresh(ctx, refreshed.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRejectsExpiredSession(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Maria", "maria@business.ph", "password1")
	require.NoError(t, err)
	login, err := svc.Login(ctx, "maria@business.ph", "password1", "", "")
	require.NoError(t, err)

	svc.WithNow(func() time.Time { return time.Now().Add(2 * time.Hour) })
	_, err = svc.Refresh(ctx, login.RefreshToken)
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "UNAUTHORIZED", appErr.Code)
}

func TestLogoutRevokesSession(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Maria", "maria@business.ph", "password1")
	require.NoError(t, err)
	login, err := svc.Login(ctx, "maria@business.ph", "password1", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, login.RefreshToken))
	_, err = svc.Refresh(ctx, login.RefreshToken)
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "UNAUTHORIZED", appErr.Code)
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Maria", "maria@business.ph", "password1")
	require.NoError(t, err)
	login, err := svc.Login(ctx, "maria@business.ph", "password1", "", "")
	require.NoError(t, err)

	svc.WithNow(func() time.Time { return time.Now().Add(time.Hour) })
	_, err = svc.ParseAccessToken(login.AccessToken)
	require.Error(t, err)
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	svc := newTestService(t, newFakeStore())
	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.ParseAccessToken(token)
		require.Error(t, err, "token %q", token)
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Maria", "maria@business.ph", "password1")
	require.NoError(t, err)
	login, err := svc.Login(ctx, "maria@business.ph", "password1", "", "")
	require.NoError(t, err)

	other, err := NewService(Config{Store: store, Secret: "another-secret-value"})
	require.NoError(t, err)
	_, err = other.ParseAccessToken(login.AccessToken)
	require.Error(t, err)
}
