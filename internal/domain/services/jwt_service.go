package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/jashanpj/janasampark/internal/domain/models"
	"github.com/jashanpj/janasampark/internal/infrastructure/config"
	"github.com/jashanpj/janasampark/utils"
)

// ErrNoSession is returned by ResolveUser for any token that does not map to
// a live, approved account: expired or tampered tokens, deleted accounts,
// accounts whose approval was revoked. Callers treat it as "unauthenticated",
// distinct from a store failure.
var ErrNoSession = errors.New("no valid session")

// ErrInvalidCredentials is returned by Login for an unknown username or a
// wrong password. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// InterfaceJWTService issues and verifies session tokens and resolves them
// to live accounts.
type InterfaceJWTService interface {
	GenerateToken(user *models.User) (string, error)
	ExtractClaims(tokenString string) (*JWTClaims, error)
	ResolveUser(tokenString string) (*models.User, error)
	Login(username, password string) (*LoginResult, error)
}

// LoginResult is the identity summary returned on a successful login.
type LoginResult struct {
	Token      string      `json:"token"`
	UserID     uint        `json:"user_id"`
	Name       string      `json:"name"`
	Username   string      `json:"username"`
	Role       models.Role `json:"role"`
	IsApproved bool        `json:"is_approved"`
	WardNumber int         `json:"ward_number"`
	LocalBody  string      `json:"local_body"`
}

// JWTClaims is the payload embedded in a session token.
type JWTClaims struct {
	UserID     uint        `json:"user_id"`
	Username   string      `json:"username"`
	Role       models.Role `json:"role"`
	IsApproved bool        `json:"is_approved"`
	jwt.RegisteredClaims
}

// JWTService implements InterfaceJWTService against a server-held HMAC
// secret. Tokens are stateless; rotating the secret invalidates every
// outstanding token.
type JWTService struct {
	secretKey     string
	issuer        string
	tokenLifetime time.Duration
	DB            *gorm.DB
}

// NewJWTService creates a new JWT service.
func NewJWTService(cfg *config.Config, db *gorm.DB) InterfaceJWTService {
	return &JWTService{
		secretKey:     cfg.JWTSecretKey,
		issuer:        "janasampark",
		tokenLifetime: cfg.TokenLifetime,
		DB:            db,
	}
}

// GenerateToken issues a signed session token for the user. The token
// carries identity and role and expires after the configured lifetime.
func (s *JWTService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role,
		IsApproved: user.IsApproved,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ExtractClaims verifies signature and expiry and returns the decoded
// claims. Any failure returns an error; the token carries no usable
// identity in that case.
func (s *JWTService) ExtractClaims(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ResolveUser resolves a token to a live, approved account. The store lookup
// makes de-approval and deletion effective immediately for new requests,
// even though the bearer token stays cryptographically valid until expiry.
func (s *JWTService) ResolveUser(tokenString string) (*models.User, error) {
	claims, err := s.ExtractClaims(tokenString)
	if err != nil {
		return nil, ErrNoSession
	}

	var user models.User
	if err := s.DB.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	if !user.IsApproved {
		return nil, ErrNoSession
	}

	return &user, nil
}

// Login authenticates a username/password pair and issues a session token.
// A token is issued even for unapproved accounts; ResolveUser keeps those
// accounts out of protected routes until an admin approves them.
func (s *JWTService) Login(username, password string) (*LoginResult, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:      token,
		UserID:     user.ID,
		Name:       user.Name,
		Username:   user.Username,
		Role:       user.Role,
		IsApproved: user.IsApproved,
		WardNumber: user.WardNumber,
		LocalBody:  user.LocalBody,
	}, nil
}
