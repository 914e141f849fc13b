package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
	"github.com/google/uuid"
)

// Seat ticket failures. Both reject the join attempt.
var (
	ErrTicketInvalid  = errors.New("seat ticket invalid")
	ErrTicketMismatch = errors.New("seat ticket issued for another seat")
)

const ticketIssuer = "landlord"

// TicketService signs and checks the short-lived seat tickets handed out by quick_match.
// A ticket binds one user to one match.
type TicketService struct {
	secret string
	ttl    time.Duration
	clock  func() time.Time
}

// NewTicketService returns nil when secret is empty, which disables ticket checks.
func NewTicketService(secret string, ttl time.Duration, clock func() time.Time) *TicketService {
	if secret == "" {
		return nil
	}
	if clock == nil {
		clock = time.Now
	}
	return &TicketService{secret: secret, ttl: ttl, clock: clock}
}

// Enabled reports whether joins must present a ticket.
func (s *TicketService) Enabled() bool {
	return s != nil
}

// Issue returns an HS256 ticket for userID to take a seat in matchID.
func (s *TicketService) Issue(userID, matchID string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("ticket service is not configured")
	}
	if userID == "" || matchID == "" {
		return "", fmt.Errorf("user and match are required")
	}

	now := s.clock()
	claims := jwt.MapClaims{
		"iss": ticketIssuer,
		"sub": userID,
		"mid": matchID,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
		"jti": uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// Verify checks the signature, expiry and binding of a ticket.
func (s *TicketService) Verify(ticket, userID, matchID string) error {
	if s == nil {
		return nil
	}
	if ticket == "" {
		return fmt.Errorf("%w: missing", ErrTicketInvalid)
	}

	token, err := jwt.Parse(ticket, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTicketInvalid, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return ErrTicketInvalid
	}
	if !claims.VerifyExpiresAt(s.clock().Unix(), true) || !claims.VerifyIssuer(ticketIssuer, true) {
		return fmt.Errorf("%w: expired or foreign", ErrTicketInvalid)
	}

	sub, _ := claims["sub"].(string)
	mid, _ := claims["mid"].(string)
	if sub != userID || mid != matchID {
		return ErrTicketMismatch
	}
	return nil
}
