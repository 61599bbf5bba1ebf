package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/Skotchmaster/secure_notes/internal/tokens"
)

// ErrInvalidToken is the single failure class for every bad token: malformed,
// forged, expired, wrong kind or carrying an unusable subject. Callers must
// not learn which one it was.
var ErrInvalidToken = errors.New("invalid token")

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type TokenService struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewTokenService(secret []byte, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		Secret:     secret,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}
}

// IssuePair signs a fresh access+refresh token pair for the given user.
func (ts *TokenService) IssuePair(userID uint) (*TokenPair, error) {
	sub := strconv.FormatUint(uint64(userID), 10)

	accessToken, err := tokens.Sign(sub, tokens.TypeAccess, ts.Secret, ts.AccessTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := tokens.Sign(sub, tokens.TypeRefresh, ts.Secret, ts.RefreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

// DecodeAccess validates an access token and returns the user id it names.
func (ts *TokenService) DecodeAccess(tokenStr string) (uint, error) {
	return ts.decode(tokenStr, tokens.TypeAccess)
}

// DecodeRefresh validates a refresh token and returns the user id it names.
func (ts *TokenService) DecodeRefresh(tokenStr string) (uint, error) {
	return ts.decode(tokenStr, tokens.TypeRefresh)
}

func (ts *TokenService) decode(tokenStr, wantType string) (uint, error) {
	claims, err := tokens.Parse(tokenStr, ts.Secret)
	if err != nil {
		return 0, ErrInvalidToken
	}
	if claims.Type != wantType {
		return 0, ErrInvalidToken
	}
	if claims.Subject == "" {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}
