package token

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	ClaimSubject   = "sub"
	ClaimExpiresAt = "exp"
	ClaimType      = "type"

	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrTokenExpired     = errors.New("token expired")
	ErrMissingSubject   = errors.New("missing subject")
)

// header is the fixed first segment of every credential.
type header struct {
	Algorithm string `json:"alg"`
	Type      string `json:"typ"`
}

var (
	segmentEncoding = base64.RawURLEncoding
	// Strict rejects non-zero trailing bits so a flipped bit can never decode to the same MAC.
	signatureEncoding = base64.RawURLEncoding.Strict()

	headerSegment = mustEncodeHeader()
)

func mustEncodeHeader() string {
	raw, err := json.Marshal(header{Algorithm: "HS256", Type: "JWT"})
	if err != nil {
		panic(err)
	}
	return segmentEncoding.EncodeToString(raw)
}

// Config holds the process-wide signing secret and lifetimes.
type Config struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Service issues and verifies bearer credentials. A Service is immutable once
// built and safe for concurrent use.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

type Option func(*Service)

// WithClock replaces the wall clock used for issuing and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService validates cfg and returns a ready Service.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("%w: signing secret is empty", ErrInvalidArgument)
	}
	if cfg.AccessTTL <= 0 {
		return nil, fmt.Errorf("%w: access token lifetime must be positive, got %s", ErrInvalidArgument, cfg.AccessTTL)
	}
	if cfg.RefreshTTL <= 0 {
		return nil, fmt.Errorf("%w: refresh token lifetime must be positive, got %s", ErrInvalidArgument, cfg.RefreshTTL)
	}

	s := &Service{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AccessTTL returns the configured access token lifetime.
func (s *Service) AccessTTL() time.Duration {
	return s.accessTTL
}

// RefreshTTL returns the configured refresh token lifetime.
func (s *Service) RefreshTTL() time.Duration {
	return s.refreshTTL
}

// Issue signs claims with an expiry of now+validity. Any exp already present in
// claims is overwritten; the caller's map is left untouched.
func (s *Service) Issue(claims Claims, validity time.Duration) (string, error) {
	if validity <= 0 {
		return "", fmt.Errorf("%w: validity must be positive, got %s", ErrInvalidArgument, validity)
	}

	payload := make(Claims, len(claims)+1)
	for k, v := range claims {
		payload[k] = v
	}
	payload[ClaimExpiresAt] = unixSeconds(s.now().Add(validity))

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: claims are not serializable: %v", ErrInvalidArgument, err)
	}

	signingInput := headerSegment + "." + segmentEncoding.EncodeToString(raw)
	return signingInput + "." + segmentEncoding.EncodeToString(s.sign(signingInput)), nil
}

// CreateAccessToken issues a short-lived access credential.
func (s *Service) CreateAccessToken(claims Claims) (string, error) {
	return s.CreateAccessTokenWithTTL(claims, s.accessTTL)
}

// CreateAccessTokenWithTTL issues an access credential with an explicit lifetime.
func (s *Service) CreateAccessTokenWithTTL(claims Claims, ttl time.Duration) (string, error) {
	return s.Issue(withType(claims, TypeAccess), ttl)
}

// CreateRefreshToken issues a long-lived refresh credential.
func (s *Service) CreateRefreshToken(claims Claims) (string, error) {
	return s.Issue(withType(claims, TypeRefresh), s.refreshTTL)
}

// VerifyAndDecode checks structure, signature and expiry, in that order, and
// returns the claims of an accepted credential.
func (s *Service) VerifyAndDecode(credential string) (Claims, error) {
	segments := strings.Split(credential, ".")
	if len(segments) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedToken, len(segments))
	}

	signature, err := signatureEncoding.DecodeString(segments[2])
	if err != nil {
		return nil, fmt.Errorf("%w: signature segment: %v", ErrMalformedToken, err)
	}
	expected := s.sign(segments[0] + "." + segments[1])
	if !hmac.Equal(signature, expected) {
		return nil, ErrInvalidSignature
	}

	claims, err := decodeClaims(segments[1])
	if err != nil {
		return nil, err
	}

	exp, ok := claims.expiresAtSeconds()
	if !ok {
		return nil, fmt.Errorf("%w: exp claim missing or not a number", ErrMalformedToken)
	}
	if unixSeconds(s.now()) >= exp {
		return nil, ErrTokenExpired
	}

	return claims, nil
}

// ResolvePrincipal returns the subject of an accepted credential.
func (s *Service) ResolvePrincipal(credential string) (string, error) {
	subject, _, err := s.Resolve(credential)
	return subject, err
}

// Resolve is ResolvePrincipal that also hands back the verified claims, for
// callers that check more than the subject.
func (s *Service) Resolve(credential string) (string, Claims, error) {
	claims, err := s.VerifyAndDecode(credential)
	if err != nil {
		return "", nil, err
	}
	subject, ok := claims.Subject()
	if !ok {
		return "", nil, ErrMissingSubject
	}
	return subject, claims, nil
}

func (s *Service) sign(signingInput string) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(signingInput))
	return mac.Sum(nil)
}

func decodeClaims(segment string) (Claims, error) {
	raw, err := segmentEncoding.DecodeString(segment)
	if err != nil {
		return nil, fmt.Errorf("%w: claims segment: %v", ErrMalformedToken, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var claims Claims
	if err := dec.Decode(&claims); err != nil {
		return nil, fmt.Errorf("%w: claims payload: %v", ErrMalformedToken, err)
	}
	if claims == nil {
		return nil, fmt.Errorf("%w: claims payload is not an object", ErrMalformedToken)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after claims", ErrMalformedToken)
	}
	return claims, nil
}

func withType(claims Claims, kind string) Claims {
	out := make(Claims, len(claims)+1)
	for k, v := range claims {
		out[k] = v
	}
	out[ClaimType] = kind
	return out
}

// unixSeconds keeps sub-second precision, matching the fractional exp values of
// previously issued credentials.
func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// Reason maps a verification error to a short label for logs and metrics.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedToken):
		return "malformed"
	case errors.Is(err, ErrInvalidSignature):
		return "bad_signature"
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrMissingSubject):
		return "missing_subject"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	default:
		return "unknown"
	}
}
