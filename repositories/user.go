//go:generate go run go.uber.org/mock/mockgen -destination=../mocks/mock_repositories.go -package=mocks chat-relay/repositories IUserRepository,IRoomRepository,IMessageRepository,ISearchIndex
package repositories

import (
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"

	"chat-relay/domain"
	"chat-relay/errors"
)

type IUserRepository interface {
	Create(email, displayName, passwordHash string) (User, error)
	GetByEmail(email string) (User, error)
	GetByID(id domain.UserID) (User, error)
}

// User is the repository-level representation of an account.
type User struct {
	ID           domain.UserID `json:"id"`
	Email        string        `json:"email"`
	DisplayName  string        `json:"display_name"`
	PasswordHash string        `json:"password_hash"`
	CreatedAt    time.Time     `json:"created_at"`
}

type UserRepository struct {
	db  *badger.DB
	seq *badger.Sequence
}

func NewUserRepository(db *badger.DB) (*UserRepository, error) {
	seq, err := db.GetSequence([]byte("seq:user"), 64)
	if err != nil {
		return nil, fmt.Errorf("user id sequence: %w", err)
	}
	return &UserRepository{db: db, seq: seq}, nil
}

// Close releases unused sequence ids back to badger.
func (u *UserRepository) Close() error { return u.seq.Release() }

func userKey(id domain.UserID) []byte {
	return []byte(fmt.Sprintf("user:id:%019d", id))
}

func emailKey(email string) []byte {
	return []byte("user:email:" + email)
}

// Create persists a new account. The email index key doubles as the
// uniqueness guard: both writes happen in one transaction.
func (u *UserRepository) Create(email, displayName, passwordHash string) (User, error) {
	next, err := u.seq.Next()
	if err != nil {
		return User{}, err
	}
	user := User{
		// Sequences start at zero; shift so no user ever gets the zero id.
		ID:           domain.UserID(next + 1),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	data, err := json.Marshal(user)
	if err != nil {
		return User{}, fmt.Errorf("marshal failed: %w", err)
	}

	err = u.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(emailKey(email)); err == nil {
			return errors.ErrUserAlreadyExists
		}
		if err := txn.Set(emailKey(email), userKey(user.ID)); err != nil {
			return err
		}
		return txn.Set(userKey(user.ID), data)
	})
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (u *UserRepository) GetByEmail(email string) (User, error) {
	var key []byte
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(emailKey(email))
		if err != nil {
			return err
		}
		key, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return User{}, errors.ErrUserNotFound
	}
	return u.getByKey(key)
}

func (u *UserRepository) GetByID(id domain.UserID) (User, error) {
	return u.getByKey(userKey(id))
}

func (u *UserRepository) getByKey(key []byte) (User, error) {
	var user User
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})
	if err != nil {
		return User{}, errors.ErrUserNotFound
	}
	return user, nil
}
