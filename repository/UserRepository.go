package repository

import (
	"errors"
	"log"

	"gameZoid/models"

	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	GetUserByEmail(email string) (models.User, bool, error)
	AddNewUser(uModel models.User) (err error)
	EncryptPassword(userPass string) (hashedPassword string, err error)
	VerifyPassword(hashedPassword string, sentPassword string) bool
}

type UserRepo struct {
	rs RecordStore
}

func NewUserRepository(store RecordStore) (UserRepository, error) {
	if store == nil {
		return nil, errors.New("store must be non-nil")
	}
	return &UserRepo{
		rs: store,
	}, nil
}

func (u *UserRepo) GetUserByEmail(email string) (models.User, bool, error) {
	return u.rs.GetUserByEmail(email)
}

func (u *UserRepo) AddNewUser(uModel models.User) (err error) {
	return u.rs.AddUser(uModel)
}

func (u *UserRepo) EncryptPassword(userPass string) (hashedPassword string, err error) {
	var password []byte
	password, err = bcrypt.GenerateFromPassword([]byte(userPass), 8)
	if err != nil {
		log.Printf("EncryptPassword: %v", err)
		err = models.ErrServerError
		return
	}
	hashedPassword = string(password)
	return
}

func (u *UserRepo) VerifyPassword(hashedPassword string, sentPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(sentPassword))
	if err != nil {
		log.Printf("VerifyPassword: %v", err)
	}
	return err == nil
}
