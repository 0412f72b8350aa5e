// Package session persists the signed-in user's token and cached profile.
//
// The Store is the only owner of session state. It is injected into the API
// gateway (as token source and 401 clearer) and into the auth service; no
// other component writes the two entries.
//
// Reads never fail: storage errors, undecryptable values and corrupt JSON
// are logged and reported as "absent". Writes return their error so the
// caller can decide whether the enclosing operation failed.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hikelog/internal/client/models"
	"github.com/dmitrijs2005/hikelog/internal/client/repositories/kv"
	"github.com/dmitrijs2005/hikelog/internal/dbx"
	"github.com/dmitrijs2005/hikelog/internal/logging"
)

const (
	TokenKey = "auth.token"
	UserKey  = "auth.user"
)

var ErrNilUser = errors.New("nil user")

// DB is what the store needs from *sql.DB.
type DB interface {
	dbx.DBTX
	dbx.TxBeginner
}

// Sealer protects values at rest. *cryptox.Sealer implements it.
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// Session is a point-in-time view of the store. Either field may be empty.
type Session struct {
	Token string
	User  *models.User
}

type Store struct {
	db     DB
	sealer Sealer
	log    logging.Logger
	now    func() time.Time
}

type Option func(*Store)

// WithClock overrides the time source used by IsExpired.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore builds a Store over db. A nil sealer stores values unsealed.
func NewStore(db DB, sealer Sealer, log logging.Logger, opts ...Option) *Store {
	if log == nil {
		log = logging.Nop()
	}
	s := &Store{db: db, sealer: sealer, log: log.With("component", "session"), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.put(ctx, kv.New(s.db), TokenKey, []byte(token))
}

func (s *Store) GetToken(ctx context.Context) (string, bool) {
	b, ok := s.get(ctx, TokenKey)
	if !ok || len(b) == 0 {
		return "", false
	}
	return string(b), true
}

func (s *Store) ClearToken(ctx context.Context) error {
	return kv.New(s.db).Delete(ctx, TokenKey)
}

func (s *Store) SetUser(ctx context.Context, u *models.User) error {
	return s.putUser(ctx, kv.New(s.db), u)
}

func (s *Store) GetUser(ctx context.Context) (*models.User, bool) {
	b, ok := s.get(ctx, UserKey)
	if !ok {
		return nil, false
	}
	var u models.User
	if err := json.Unmarshal(b, &u); err != nil {
		s.log.Warn(ctx, "stored user is corrupt, ignoring it", "error", err)
		return nil, false
	}
	return &u, true
}

func (s *Store) ClearUser(ctx context.Context) error {
	return kv.New(s.db).Delete(ctx, UserKey)
}

// Save stores token and user together, as after a login.
func (s *Store) Save(ctx context.Context, token string, u *models.User) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.New(tx)
		if err := s.put(ctx, repo, TokenKey, []byte(token)); err != nil {
			return err
		}
		return s.putUser(ctx, repo, u)
	})
}

// ClearAll removes token and user in one transaction. Clearing an empty
// store succeeds.
func (s *Store) ClearAll(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.New(tx)
		if err := repo.Delete(ctx, TokenKey); err != nil {
			return err
		}
		return repo.Delete(ctx, UserKey)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Clear is ClearAll; it lets the gateway clear the session on 401.
func (s *Store) Clear(ctx context.Context) error {
	return s.ClearAll(ctx)
}

// Token returns the stored token or "" and never fails; it is the gateway's
// token source.
func (s *Store) Token(ctx context.Context) (string, error) {
	t, _ := s.GetToken(ctx)
	return t, nil
}

// IsAuthenticated reports token presence only; expiry is checked separately.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.GetToken(ctx)
	return ok
}

func (s *Store) IsExpired(token string) bool {
	return IsExpired(token, s.now())
}

func (s *Store) Session(ctx context.Context) Session {
	var sess Session
	sess.Token, _ = s.GetToken(ctx)
	sess.User, _ = s.GetUser(ctx)
	return sess
}

func (s *Store) putUser(ctx context.Context, repo kv.Repository, u *models.User) error {
	if u == nil {
		return ErrNilUser
	}
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return s.put(ctx, repo, UserKey, b)
}

func (s *Store) put(ctx context.Context, repo kv.Repository, key string, value []byte) error {
	if s.sealer != nil {
		sealed, err := s.sealer.Seal(value)
		if err != nil {
			return fmt.Errorf("seal %s: %w", key, err)
		}
		value = sealed
	}
	return repo.Set(ctx, key, value)
}

func (s *Store) get(ctx context.Context, key string) ([]byte, bool) {
	b, err := kv.New(s.db).Get(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "session read failed, treating as absent", "key", key, "error", err)
		return nil, false
	}
	if b == nil {
		return nil, false
	}
	if s.sealer != nil {
		plain, err := s.sealer.Open(b)
		if err != nil {
			s.log.Warn(ctx, "session value cannot be opened, treating as absent", "key", key, "error", err)
			return nil, false
		}
		b = plain
	}
	return b, true
}
