package services

import (
	"context"
	"errors"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is what a verified bearer token says about its holder.
type Identity struct {
	UID   string
	Email string
}

type Verifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*Identity, error)
}

type FirebaseVerifier struct {
	client *auth.Client
}

func NewFirebaseVerifier(client *auth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client}
}

func (fv *FirebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	token, err := fv.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	email, _ := token.Claims["email"].(string)
	return &Identity{UID: token.UID, Email: email}, nil
}

var ErrInvalidToken = errors.New("invalid token")

// JWTVerifier accepts HS256 tokens signed with a shared secret. Meant for
// local development and tests where no firebase project is available.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (jv *JWTVerifier) VerifyIDToken(_ context.Context, idToken string) (*Identity, error) {
	token, err := jwt.Parse(idToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return jv.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	uid, err := claims.GetSubject()
	if err != nil || uid == "" {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	return &Identity{UID: uid, Email: email}, nil
}

// SignDevToken mints a token JWTVerifier accepts.
func (jv *JWTVerifier) SignDevToken(uid string, email string) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   uid,
		"email": email,
	}).SignedString(jv.secret)
}
