package service

import (
	"time"

	"github.com/syncfit/syncfit-backend/internal/domain"
	"github.com/syncfit/syncfit-backend/internal/security"
)

type TokenService struct {
	jwtMgr *security.JWTManager
}

func NewTokenService(jwtMgr *security.JWTManager) *TokenService {
	return &TokenService{jwtMgr: jwtMgr}
}

// Issue signs a session token carrying the user's public identity.
func (s *TokenService) Issue(user *domain.User) (string, time.Time, error) {
	return s.jwtMgr.Sign(user.ID, user.Name, user.Email)
}

func (s *TokenService) Parse(token string) (*security.SessionClaims, error) {
	return s.jwtMgr.Parse(token)
}
