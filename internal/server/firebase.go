package server

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonathan/resume-builder/internal/types"
	"golang.org/x/sync/singleflight"
)

// GoogleCertsURL serves the x509 certificates that sign Firebase ID tokens.
const GoogleCertsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

// defaultCertTTL applies when the cert response carries no max-age.
const defaultCertTTL = time.Hour

// minKeyRefresh bounds how often an unknown key id may refresh a cached set that has not expired.
const minKeyRefresh = time.Minute

var maxAgePattern = regexp.MustCompile(`max-age=(\d+)`)

// TokenVerifier turns an identity-provider ID token into a verified identity.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*types.Identity, error)
}

// FirebaseVerifier checks Firebase ID tokens against Google's published signing certificates.
type FirebaseVerifier struct {
	projectID string
	certsURL  string
	client    *http.Client
	now       func() time.Time

	refresh singleflight.Group

	mu          sync.Mutex
	keys        map[string]*rsa.PublicKey
	expires     time.Time
	lastRefresh time.Time
}

// NewFirebaseVerifier returns a verifier for tokens issued to projectID.
func NewFirebaseVerifier(projectID string, client *http.Client) *FirebaseVerifier {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &FirebaseVerifier{
		projectID: projectID,
		certsURL:  GoogleCertsURL,
		client:    client,
		now:       time.Now,
	}
}

type firebaseClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	jwt.RegisteredClaims
}

// Verify checks signature, audience, issuer and expiry of idToken.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*types.Identity, error) {
	claims := &firebaseClaims{}
	_, err := jwt.ParseWithClaims(idToken, claims, func(token *jwt.Token) (interface{}, error) {
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token has no key id")
		}
		return v.key(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.projectID),
		jwt.WithIssuer("https://securetoken.google.com/"+v.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return nil, &ErrInvalidIDToken{Cause: err}
	}
	if claims.Subject == "" {
		return nil, &ErrInvalidIDToken{Cause: fmt.Errorf("token has no subject")}
	}

	return &types.Identity{
		Subject:       claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
	}, nil
}

// key returns the public key for kid. The cached set is refetched once it expires, or
// when it lacks kid and was last refreshed at least minKeyRefresh ago. Concurrent
// callers share one fetch and the lock is not held while it runs.
func (v *FirebaseVerifier) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.Lock()
	now := v.now()
	fresh := now.Before(v.expires)
	key, ok := v.keys[kid]
	throttled := now.Sub(v.lastRefresh) < minKeyRefresh
	v.mu.Unlock()

	if fresh {
		if ok {
			return key, nil
		}
		if throttled {
			return nil, fmt.Errorf("unknown key id %q", kid)
		}
	}

	if _, err, _ := v.refresh.Do("certs", func() (interface{}, error) {
		return nil, v.refreshKeys(ctx)
	}); err != nil {
		return nil, err
	}

	v.mu.Lock()
	key, ok = v.keys[kid]
	v.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("unknown key id %q", kid)
	}
	return key, nil
}

// refreshKeys replaces the cached set. A failed fetch still counts against minKeyRefresh.
func (v *FirebaseVerifier) refreshKeys(ctx context.Context) error {
	v.mu.Lock()
	v.lastRefresh = v.now()
	v.mu.Unlock()

	keys, ttl, err := v.fetchKeys(ctx)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.keys = keys
	v.expires = v.now().Add(ttl)
	return nil
}

func (v *FirebaseVerifier) fetchKeys(ctx context.Context) (map[string]*rsa.PublicKey, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build certificate request: %w", err)
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch signing certificates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("signing certificates returned status %d", resp.StatusCode)
	}

	var certs map[string]string
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&certs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode signing certificates: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, pemCert := range certs {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemCert))
		if err != nil {
			return nil, 0, fmt.Errorf("failed to parse certificate %s: %w", kid, err)
		}
		keys[kid] = key
	}

	return keys, cacheTTL(resp.Header.Get("Cache-Control")), nil
}

// cacheTTL reads max-age from a Cache-Control header.
func cacheTTL(cacheControl string) time.Duration {
	m := maxAgePattern.FindStringSubmatch(cacheControl)
	if m == nil {
		return defaultCertTTL
	}
	seconds, err := strconv.Atoi(m[1])
	if err != nil || seconds <= 0 {
		return defaultCertTTL
	}
	return time.Duration(seconds) * time.Second
}
