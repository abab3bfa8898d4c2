// Package token genera y valida los JWT de la aplicación: access (corto),
// refresh (largo, sin rotación) y reset de password (corto y de un solo uso).
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tipos de token. Cada Parse exige el tipo correcto: un refresh no sirve como
// access y un reset no sirve como credencial de login.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
	TypeReset   = "password_reset"
)

// Claims incluye los claims estándar JWT más el tipo de token.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
}

// GenerateAccess genera un token de acceso firmado con HS256.
func GenerateAccess(secret, userID, issuer string, ttl time.Duration) (string, error) {
	return generate(secret, userID, issuer, TypeAccess, ttl)
}

// GenerateRefresh genera un refresh token. No se rota: el mismo refresh sigue
// siendo válido hasta su expiración aunque se emitan nuevos access.
func GenerateRefresh(secret, userID, issuer string, ttl time.Duration) (string, error) {
	return generate(secret, userID, issuer, TypeRefresh, ttl)
}

// GenerateReset genera el token del link de reset de password. Se firma con
// secret + el hash actual del password: al cambiar el password la firma deja
// de validar, lo que hace el token de un solo uso sin lista de revocación.
func GenerateReset(secret, passwordHash, userID, issuer string, ttl time.Duration) (string, error) {
	return generate(secret+passwordHash, userID, issuer, TypeReset, ttl)
}

// ParseAccess valida un token de acceso y devuelve el user id.
func ParseAccess(secret, tokenString string) (string, error) {
	return parse(secret, tokenString, TypeAccess)
}

// ParseRefresh valida un refresh token y devuelve el user id.
func ParseRefresh(secret, tokenString string) (string, error) {
	return parse(secret, tokenString, TypeRefresh)
}

// ParseReset valida un token de reset contra el hash actual del usuario.
func ParseReset(secret, passwordHash, tokenString string) (string, error) {
	return parse(secret+passwordHash, tokenString, TypeReset)
}

func generate(secret, userID, issuer, tokenType string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("token: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    userID,
		TokenType: tokenType,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

func parse(secret, tokenString, wantType string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("token: secret vacío")
	}
	t, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return "", fmt.Errorf("claims inválidos")
	}
	if claims.TokenType != wantType {
		return "", fmt.Errorf("tipo de token inesperado: %q", claims.TokenType)
	}
	return claims.UserID, nil
}
