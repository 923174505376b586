package api

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"
)

const (
	deviceTokenIssuer    = "ovumcalendar"
	deviceSigningKeyInfo = "ovumcalendar.device-session.v1"
)

var errInvalidDeviceToken = errors.New("invalid device token")

type deviceClaims struct {
	DeviceID string `json:"did"`
	jwt.RegisteredClaims
}

func deriveDeviceSigningKey(secretKey []byte) ([]byte, error) {
	if len(secretKey) == 0 {
		return nil, errors.New("device session secret key is required")
	}
	reader := hkdf.New(sha256.New, secretKey, nil, []byte(deviceSigningKeyInfo))
	key := make([]byte, 32)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("derive device signing key: %w", err)
	}
	return key, nil
}

func (handler *Handler) issueDeviceToken(deviceID string, now time.Time) (string, error) {
	claims := deviceClaims{
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    deviceTokenIssuer,
			Subject:   deviceID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(handler.deviceTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.signingKey)
}

// parseDeviceToken returns the device id and expiry of a valid token.
func (handler *Handler) parseDeviceToken(raw string) (string, time.Time, error) {
	if raw == "" {
		return "", time.Time{}, errInvalidDeviceToken
	}

	claims := &deviceClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return handler.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(deviceTokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(handler.now),
	)
	if err != nil || !token.Valid {
		return "", time.Time{}, errInvalidDeviceToken
	}

	parsed, err := uuid.Parse(claims.DeviceID)
	if err != nil {
		return "", time.Time{}, errInvalidDeviceToken
	}
	return parsed.String(), claims.ExpiresAt.Time, nil
}
