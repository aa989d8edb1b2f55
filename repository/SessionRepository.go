package repository

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"gameZoid/entities"
	"gameZoid/models"

	"github.com/google/uuid"
)

// SessionKey holds the single current-session record. Logging in overwrites
// whatever session was there before; there is no session table.
const SessionKey = "currentUser"

type SessionRepository interface {
	CreateSession(userEmail string, isAdmin bool) (sessionId string, err error)
	CheckSession(sessionId string) (bool, error)
	GetUserSessionInfo(sessionId string) (userEmail string, isAdmin bool, exists bool, err error)
	DeleteSession(sessionId string) (err error)
}

type SessionRepo struct {
	be Backend
}

func NewSessionRepository(backend Backend) (SessionRepository, error) {
	if backend == nil {
		return nil, errors.New("backend must be non-nil")
	}
	return &SessionRepo{
		be: backend,
	}, nil
}

func (s *SessionRepo) current() (sess entities.Session, found bool, err error) {
	raw, found, e := s.be.Load(SessionKey)
	if e != nil {
		log.Printf("current: %v", e)
		err = models.ErrServerError
		return
	}
	if !found {
		return
	}
	if e = json.Unmarshal(raw, &sess); e != nil {
		log.Printf("current: unreadable session, discarding: %v", e)
		found = false
	}
	return
}

func (s *SessionRepo) CreateSession(userEmail string, isAdmin bool) (sessionId string, err error) {
	sessionId = uuid.NewString()
	sess := entities.Session{
		SessionId: sessionId,
		UserEmail: userEmail,
		IsAdmin:   isAdmin,
		CreatedAt: time.Now().UTC(),
	}
	raw, e := json.Marshal(sess)
	if e != nil {
		log.Printf("CreateSession: %v", e)
		err = models.ErrServerError
		return
	}
	err = s.be.Save(SessionKey, raw)
	if err != nil {
		log.Printf("CreateSession: %v", err)
		err = models.ErrServerError
	}
	return
}

func (s *SessionRepo) CheckSession(sessionId string) (bool, error) {
	if sessionId == "" {
		return false, nil
	}
	sess, found, err := s.current()
	if err != nil {
		return false, err
	}
	return found && sess.SessionId == sessionId, nil
}

func (s *SessionRepo) GetUserSessionInfo(sessionId string) (userEmail string, isAdmin bool, exists bool, err error) {
	sess, found, e := s.current()
	if e != nil {
		err = e
		return
	}
	if !found || sess.SessionId != sessionId {
		return
	}
	userEmail = sess.UserEmail
	isAdmin = sess.IsAdmin
	exists = true
	return
}

func (s *SessionRepo) DeleteSession(sessionId string) (err error) {
	ok, e := s.CheckSession(sessionId)
	if e != nil {
		err = e
		return
	}
	if !ok {
		return
	}
	err = s.be.Delete(SessionKey)
	if err != nil {
		log.Printf("DeleteSession: %v", err)
		err = models.ErrServerError
	}
	return
}
