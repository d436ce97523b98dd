package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(t *testing.T, secret string) *SeatIssuer {
	t.Helper()
	s, err := NewSeatIssuer([]byte(secret), time.Minute)
	require.NoError(t, err)
	return s
}

func TestSeatIssuer_RoundTrip(t *testing.T) {
	s := newTestIssuer(t, "secret")
	seat := Seat{RoomCode: "ABCD", PlayerID: "player-1"}

	token, err := s.Issue(seat)
	require.NoError(t, err)

	got, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, seat, got)
}

func TestSeatIssuer_RandomSecret(t *testing.T) {
	a, err := NewSeatIssuer(nil, time.Minute)
	require.NoError(t, err)
	b, err := NewSeatIssuer(nil, time.Minute)
	require.NoError(t, err)

	token, err := a.Issue(Seat{RoomCode: "ABCD", PlayerID: "p"})
	require.NoError(t, err)

	_, err = a.Verify(token)
	assert.NoError(t, err)
	_, err = b.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "a token from another process must not verify")
}

func TestSeatIssuer_Rejects(t *testing.T) {
	seat := Seat{RoomCode: "ABCD", PlayerID: "player-1"}

	tests := []struct {
		name  string
		token func(t *testing.T, s *SeatIssuer) string
	}{
		{
			name: "garbage",
			token: func(*testing.T, *SeatIssuer) string {
				return "not-a-token"
			},
		},
		{
			name: "other key",
			token: func(t *testing.T, _ *SeatIssuer) string {
				tok, err := newTestIssuer(t, "other").Issue(seat)
				require.NoError(t, err)
				return tok
			},
		},
		{
			name: "expired",
			token: func(t *testing.T, s *SeatIssuer) string {
				s.now = func() time.Time { return time.Now().Add(-time.Hour) }
				tok, err := s.Issue(seat)
				require.NoError(t, err)
				s.now = time.Now
				return tok
			},
		},
		{
			name: "unsigned",
			token: func(t *testing.T, _ *SeatIssuer) string {
				claims := seatClaims{
					Room: seat.RoomCode,
					RegisteredClaims: jwt.RegisteredClaims{
						Subject:   seat.PlayerID,
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					},
				}
				tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
				require.NoError(t, err)
				return tok
			},
		},
		{
			name: "missing room",
			token: func(t *testing.T, s *SeatIssuer) string {
				tok, err := s.Issue(Seat{PlayerID: "player-1"})
				require.NoError(t, err)
				return tok
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestIssuer(t, "secret")
			_, err := s.Verify(tt.token(t, s))
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
