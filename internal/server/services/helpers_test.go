package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type logEntry struct {
	level string
	msg   string
	args  []any
}

// recordingLogger keeps every entry so tests can assert on rejection reasons.
type recordingLogger struct {
	mu      *sync.Mutex
	entries *[]logEntry
}

func newRecordingLogger() recordingLogger {
	return recordingLogger{mu: &sync.Mutex{}, entries: &[]logEntry{}}
}

func (l recordingLogger) add(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.entries = append(*l.entries, logEntry{level: level, msg: msg, args: args})
}

func (l recordingLogger) Debug(_ context.Context, msg string, args ...any) { l.add("debug", msg, args) }
func (l recordingLogger) Info(_ context.Context, msg string, args ...any)  { l.add("info", msg, args) }
func (l recordingLogger) Warn(_ context.Context, msg string, args ...any)  { l.add("warn", msg, args) }
func (l recordingLogger) Error(_ context.Context, msg string, args ...any) { l.add("error", msg, args) }
func (l recordingLogger) With(...any) logging.Logger                       { return l }

// reasons returns the values logged under the "reason" key.
func (l recordingLogger) reasons() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, e := range *l.entries {
		for i := 0; i+1 < len(e.args); i += 2 {
			if e.args[i] == "reason" {
				out = append(out, e.args[i+1].(string))
			}
		}
	}
	return out
}

// fakeRepo wraps a working store; any non-nil hook replaces the call.
type fakeRepo struct {
	users.Repository

	getByEmail func(ctx context.Context, email string) (*models.User, error)
	getByID    func(ctx context.Context, id string) (*models.User, error)
	getByKey   func(ctx context.Context, key string) (*models.User, error)
	create     func(ctx context.Context, u *models.User) (*models.User, error)
	update     func(ctx context.Context, userID, key string) (*models.User, error)
}

func (f *fakeRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getByEmail != nil {
		return f.getByEmail(ctx, email)
	}
	return f.Repository.GetUserByEmail(ctx, email)
}

func (f *fakeRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if f.getByID != nil {
		return f.getByID(ctx, id)
	}
	return f.Repository.GetUserByID(ctx, id)
}

func (f *fakeRepo) GetUserByBiometricKey(ctx context.Context, key string) (*models.User, error) {
	if f.getByKey != nil {
		return f.getByKey(ctx, key)
	}
	return f.Repository.GetUserByBiometricKey(ctx, key)
}

func (f *fakeRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.create != nil {
		return f.create(ctx, u)
	}
	return f.Repository.Create(ctx, u)
}

func (f *fakeRepo) UpdateBiometricKey(ctx context.Context, userID, key string) (*models.User, error) {
	if f.update != nil {
		return f.update(ctx, userID, key)
	}
	return f.Repository.UpdateBiometricKey(ctx, userID, key)
}

type failingIssuer struct{ err error }

func (f failingIssuer) Issue(string) (string, time.Time, error) { return "", time.Time{}, f.err }
func (f failingIssuer) Verify(string) (string, error)           { return "", f.err }

// countingHasher records which comparison path ran.
type countingHasher struct {
	auth.PasswordHasher
	compares, dummies int
	hashErr           error
}

func (h *countingHasher) Hash(p string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return h.PasswordHasher.Hash(p)
}

func (h *countingHasher) Compare(hash, p string) bool {
	h.compares++
	return h.PasswordHasher.Compare(hash, p)
}

func (h *countingHasher) CompareDummy(p string) {
	h.dummies++
	h.PasswordHasher.CompareDummy(p)
}

type fixture struct {
	svc    *AuthService
	repo   *fakeRepo
	issuer *auth.JWTIssuer
	hasher *countingHasher
	log    recordingLogger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:   &fakeRepo{Repository: users.NewMemoryRepository()},
		issuer: auth.NewJWTIssuer([]byte(testSecret), 24*time.Hour),
		hasher: &countingHasher{PasswordHasher: auth.NewBcryptHasher(bcrypt.MinCost)},
		log:    newRecordingLogger(),
	}
	f.svc = NewAuthService(f.repo, f.issuer, f.hasher, f.log)
	return f
}
