package devstore

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/estudos/core/user"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Account is a stored user along with its password hash.
type Account struct {
	user.User
	PasswordHash []byte
}

func (a *Account) SetPassword(pwd string, cost int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), cost)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

func (a *Account) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(pwd))
}

type UserRepository struct {
	db *Table[Account]

	// email uniqueness is checked and written under this lock
	writeMu sync.Mutex
	// Cost is the bcrypt cost; zero means bcrypt.DefaultCost.
	Cost int
}

func (repo *UserRepository) cost() int {
	if repo.Cost == 0 {
		return bcrypt.DefaultCost
	}
	return repo.Cost
}

func (repo *UserRepository) getByEmail(email string) (Account, error) {
	found := repo.db.Filter(func(a Account) bool { return strings.EqualFold(a.Email, email) })
	if len(found) == 0 {
		return Account{}, ErrNotFound
	}
	return found[0], nil
}

func (repo *UserRepository) checkEmailUniqueness(email string, excludedID int) error {
	if acc, err := repo.getByEmail(email); err == nil && acc.ID != excludedID {
		return ErrEmailExists
	}
	return nil
}

func (repo *UserRepository) Create(name, email, pwd string) (user.User, error) {
	repo.writeMu.Lock()
	defer repo.writeMu.Unlock()

	if err := repo.checkEmailUniqueness(email, 0); err != nil {
		return user.User{}, err
	}
	acc := Account{User: user.User{Name: name, Email: email}}
	if err := acc.SetPassword(pwd, repo.cost()); err != nil {
		return user.User{}, errors.Wrap(err, "hashing password")
	}
	acc = repo.db.Insert(acc)
	return acc.User, nil
}

func (repo *UserRepository) GetByID(id int) (user.User, error) {
	acc, err := repo.db.Get(id)
	return acc.User, err
}

// Authenticate returns the user matching the credentials, or ErrInvalidCredentials.
func (repo *UserRepository) Authenticate(email, pwd string) (user.User, error) {
	acc, err := repo.getByEmail(email)
	if err != nil {
		return user.User{}, ErrInvalidCredentials
	}
	if err = acc.CheckPassword(pwd); err != nil {
		return user.User{}, ErrInvalidCredentials
	}
	return acc.User, nil
}

func (repo *UserRepository) UpdateProfile(id int, name, email string) (user.User, error) {
	repo.writeMu.Lock()
	defer repo.writeMu.Unlock()

	if err := repo.checkEmailUniqueness(email, id); err != nil {
		return user.User{}, err
	}
	acc, err := repo.db.Update(id, func(a *Account) error {
		a.Name = name
		a.Email = email
		return nil
	})
	return acc.User, err
}

func (repo *UserRepository) Len() int { return repo.db.Len() }
