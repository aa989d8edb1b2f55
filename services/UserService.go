package services

import (
	"log"
	"strings"
	"time"

	"gameZoid/models"
	"gameZoid/repository"
)

// The administrator account is provisioned on demand at first login with
// these credentials, never pre-seeded.
const (
	AdminEmail    = "admin@gamezoid.com"
	AdminPassword = "admin123"
)

type UserService struct {
	ur repository.UserRepository
	sr repository.SessionRepository
}

func NewUserService(uRepo repository.UserRepository, sRepo repository.SessionRepository) UserService {
	return UserService{
		ur: uRepo,
		sr: sRepo,
	}
}

func (us *UserService) SignupRequest(creds models.Credentials) (uModel models.User, err error) {
	if creds.Email == "" || creds.Password == "" {
		log.Printf("SignupRequest: missing email or password")
		err = models.ErrBadRequest
		return
	}

	var ex bool
	_, ex, err = us.ur.GetUserByEmail(creds.Email)
	if err != nil {
		return
	}
	if ex {
		log.Printf("SignupRequest: user already exists")
		err = models.ErrDuplicateKey
		return
	}
	hashedPassword, err := us.ur.EncryptPassword(creds.Password)
	if err != nil {
		return
	}
	uModel = models.User{
		Email:     strings.ToLower(creds.Email),
		Name:      creds.Name,
		Password:  hashedPassword,
		CreatedAt: time.Now().UTC(),
	}
	err = us.ur.AddNewUser(uModel)
	return
}

func (us *UserService) SigninRequest(email, password string) (uModel models.User, sessionId string, err error) {
	err = us.provisionAdmin(email, password)
	if err != nil {
		return
	}

	var ex bool
	uModel, ex, err = us.ur.GetUserByEmail(email)
	if err != nil {
		return
	}
	if !ex {
		log.Printf("SigninRequest: user not found")
		err = models.ErrNotAllowed
		return
	}
	if !us.ur.VerifyPassword(uModel.Password, password) {
		log.Printf("SigninRequest: wrong password")
		err = models.ErrUnautorized
		return
	}
	sessionId, err = us.sr.CreateSession(uModel.Email, uModel.IsAdmin)
	return
}

// provisionAdmin creates the fixed administrator account the first time the
// admin credential pair is presented. Repeated logins find the existing
// record and change nothing.
func (us *UserService) provisionAdmin(email, password string) error {
	if !strings.EqualFold(email, AdminEmail) || password != AdminPassword {
		return nil
	}
	_, ex, err := us.ur.GetUserByEmail(AdminEmail)
	if err != nil || ex {
		return err
	}
	hashed, err := us.ur.EncryptPassword(AdminPassword)
	if err != nil {
		return err
	}
	admin := models.User{
		Email:     AdminEmail,
		Name:      "Administrator",
		Password:  hashed,
		IsAdmin:   true,
		CreatedAt: time.Now().UTC(),
	}
	err = us.ur.AddNewUser(admin)
	if err == models.ErrDuplicateKey {
		err = nil
	}
	return err
}

func (us *UserService) CurrentUser(sessionId string) (uModel models.User, ex bool) {
	email, _, exists, err := us.sr.GetUserSessionInfo(sessionId)
	if err != nil || !exists {
		return
	}
	uModel, exists, err = us.ur.GetUserByEmail(email)
	if err != nil || !exists {
		return
	}
	ex = true
	return
}

func (us *UserService) CheckAuth(sessionId string) (bool, error) {
	autorized, err := us.sr.CheckSession(sessionId)
	return autorized, err
}

func (us *UserService) CheckAdmin(sessionId string) (access bool, err error) {
	_, isAdmin, exists, e := us.sr.GetUserSessionInfo(sessionId)
	if e != nil {
		err = e
		return
	}
	if !exists || !isAdmin {
		return
	}
	access = true
	return
}

func (us *UserService) DeleteSessionRequest(sessionId string) (err error) {
	err = us.sr.DeleteSession(sessionId)
	return
}
