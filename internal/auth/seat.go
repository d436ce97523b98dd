package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that are malformed, expired or
// signed with another key.
var ErrInvalidToken = errors.New("invalid seat token")

// Seat identifies a player's place in a room. Holding a signed seat lets a
// client reclaim it after a disconnect.
type Seat struct {
	RoomCode string
	PlayerID string
}

type seatClaims struct {
	Room string `json:"room"`
	jwt.RegisteredClaims
}

// SeatIssuer signs and verifies seat tokens (HS256).
type SeatIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSeatIssuer creates an issuer. An empty secret generates a random one,
// so tokens only survive as long as the process.
func NewSeatIssuer(secret []byte, ttl time.Duration) (*SeatIssuer, error) {
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate seat secret: %w", err)
		}
	}
	return &SeatIssuer{secret: secret, ttl: ttl, now: time.Now}, nil
}

// Issue returns a signed token for the seat.
func (s *SeatIssuer) Issue(seat Seat) (string, error) {
	now := s.now()
	claims := seatClaims{
		Room: seat.RoomCode,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   seat.PlayerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the token and returns the seat it grants.
func (s *SeatIssuer) Verify(token string) (Seat, error) {
	var claims seatClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return Seat{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Room == "" || claims.Subject == "" {
		return Seat{}, ErrInvalidToken
	}
	return Seat{RoomCode: claims.Room, PlayerID: claims.Subject}, nil
}
