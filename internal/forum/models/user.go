package models

import (
	"encoding/json"

	"github.com/dmitrijs2005/forumdesign/internal/validate"
	"github.com/google/uuid"
)

const (
	UserEmailMaxLen = 128
	UserHashLen     = 128
	UserSaltLen     = 64
	UserNameMaxLen  = 32
)

// User is a forum account.
type User struct {
	id    uuid.UUID
	email string
	hash  string
	salt  string
	name  string
}

// NewUser validates every field and returns the user.
func NewUser(id uuid.UUID, email, hash, salt, name string) (*User, error) {
	if err := requireID("user_id", id); err != nil {
		return nil, err
	}
	u := &User{id: id}
	if err := u.SetEmail(email); err != nil {
		return nil, err
	}
	if err := u.SetHash(hash); err != nil {
		return nil, err
	}
	if err := u.SetSalt(salt); err != nil {
		return nil, err
	}
	if err := u.SetName(name); err != nil {
		return nil, err
	}
	return u, nil
}

// RestoreUser rebuilds a user from a stored row without validation.
func RestoreUser(id uuid.UUID, email, hash, salt, name string) *User {
	return &User{id: id, email: email, hash: hash, salt: salt, name: name}
}

func (u *User) ID() uuid.UUID { return u.id }
func (u *User) Email() string { return u.email }
func (u *User) Hash() string  { return u.hash }
func (u *User) Salt() string  { return u.salt }
func (u *User) Name() string  { return u.name }

func (u *User) SetEmail(email string) error {
	v, err := validate.Email("email", email, UserEmailMaxLen)
	if err != nil {
		return err
	}
	u.email = v
	return nil
}

// SetHash stores the hash lower-cased; it must be UserHashLen hex digits.
func (u *User) SetHash(hash string) error {
	v, err := validate.Hex("hash", hash, UserHashLen)
	if err != nil {
		return err
	}
	u.hash = v
	return nil
}

// SetSalt stores the salt lower-cased; it must be UserSaltLen hex digits.
func (u *User) SetSalt(salt string) error {
	v, err := validate.Hex("salt", salt, UserSaltLen)
	if err != nil {
		return err
	}
	u.salt = v
	return nil
}

func (u *User) SetName(name string) error {
	v, err := validate.Text("name", name, UserNameMaxLen)
	if err != nil {
		return err
	}
	u.name = v
	return nil
}

// UserView is the externally visible form of a User.
type UserView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (u *User) View() UserView {
	return UserView{ID: u.id.String(), Email: u.email, Name: u.name}
}

func (u *User) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.View())
}
