// Command sessionkit-loadtest measures session lifecycle throughput against a
// Redis-backed credential store. With no -redis-addr it runs fully
// self-contained on miniredis.
//
// Each worker owns its own Manager (lifecycle operations are serialized per
// manager, so parallelism comes from running many managers) and loops
// refresh-heavy traffic with periodic logout/login churn.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	sessionkit "github.com/aurawell/sessionkit"
	"github.com/aurawell/sessionkit/credstore"
	"github.com/aurawell/sessionkit/provider"
)

func main() {
	var (
		managers  = flag.Int("managers", 8, "number of concurrent session managers")
		ops       = flag.Int("ops", 2000, "lifecycle operations per manager")
		redisAddr = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix    = flag.String("prefix", "sk-load", "credential store key prefix")
	)
	flag.Parse()

	if *managers <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "managers and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		client = redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		client = redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
		cleanup = func() { _ = client.Close() }
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		latencies []time.Duration
		failures  int
	)

	start := time.Now()
	for i := 0; i < *managers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			email := fmt.Sprintf("load-%d@example.com", worker)
			manager, err := sessionkit.New().
				WithCredentialStore(credstore.NewRedisKV(client, fmt.Sprintf("%s:%d", *prefix, worker))).
				WithPasswordProvider(&loadIdentity{}).
				WithProfileService(&loadProfiles{}).
				WithMetricsEnabled(true).
				Build()
			if err != nil {
				fmt.Fprintf(os.Stderr, "worker %d: build: %v\n", worker, err)
				return
			}
			defer manager.Close()

			manager.Restore(ctx)
			if err := manager.SetRememberMe(ctx, true); err != nil {
				fmt.Fprintf(os.Stderr, "worker %d: remember-me: %v\n", worker, err)
				return
			}
			if _, err := manager.Register(ctx, sessionkit.RegisterInput{
				Email:    email,
				Password: "load-test-password",
			}); err != nil {
				fmt.Fprintf(os.Stderr, "worker %d: register: %v\n", worker, err)
				return
			}

			local := make([]time.Duration, 0, *ops)
			localFailures := 0
			for n := 0; n < *ops; n++ {
				opStart := time.Now()
				var opErr error
				if n%10 == 9 {
					manager.Logout(ctx)
					_, opErr = manager.Login(ctx, email, "load-test-password")
				} else {
					opErr = manager.RefreshSession(ctx)
				}
				if opErr != nil {
					localFailures++
					continue
				}
				local = append(local, time.Since(opStart))
			}

			mu.Lock()
			latencies = append(latencies, local...)
			failures += localFailures
			mu.Unlock()
		}(i)
	}
	wg.Wait()
	elapsed := time.Since(start)

	if len(latencies) == 0 {
		fmt.Fprintln(os.Stderr, "no successful operations")
		os.Exit(1)
	}

	sort.Slice(latencies, func(a, b int) bool { return latencies[a] < latencies[b] })
	total := len(latencies)
	fmt.Printf("managers=%d ops=%d elapsed=%s\n", *managers, total, elapsed.Round(time.Millisecond))
	fmt.Printf("throughput: %.0f ops/sec\n", float64(total)/elapsed.Seconds())
	fmt.Printf("latency p50=%s p95=%s p99=%s max=%s\n",
		latencies[total*50/100],
		latencies[total*95/100],
		latencies[total*99/100],
		latencies[total-1])
	fmt.Printf("failures: %d\n", failures)
}

// loadIdentity is a provider stub tuned for throughput: one account per
// instance, tokens are cheap counters.
type loadIdentity struct {
	mu       sync.Mutex
	email    string
	password string
	seq      int
}

func (s *loadIdentity) issue(email string, newAccount bool) sessionkit.Identity {
	s.seq++
	return sessionkit.Identity{
		ExternalID:   "u-" + email,
		Email:        email,
		IDToken:      fmt.Sprintf("tok-%d", s.seq),
		RefreshToken: fmt.Sprintf("rt-%d", s.seq),
		NewAccount:   newAccount,
	}
}

func (s *loadIdentity) SignIn(_ context.Context, email, password string) (sessionkit.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if email != s.email || password != s.password {
		return sessionkit.Identity{}, provider.E(provider.CodeInvalidCredentials, "bad credentials")
	}
	return s.issue(email, false), nil
}

func (s *loadIdentity) SignUp(_ context.Context, email, password string) (sessionkit.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.email != "" {
		return sessionkit.Identity{}, provider.E(provider.CodeAccountExists, "email taken")
	}
	s.email = email
	s.password = password
	return s.issue(email, true), nil
}

func (s *loadIdentity) UpdateDisplayName(context.Context, string, string) error { return nil }

func (s *loadIdentity) SendPasswordReset(context.Context, string) error { return nil }

func (s *loadIdentity) Reauthenticate(ctx context.Context, email, password string) (sessionkit.Identity, error) {
	return s.SignIn(ctx, email, password)
}

func (s *loadIdentity) ChangePassword(context.Context, string, string) error { return nil }

func (s *loadIdentity) RefreshToken(_ context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", provider.E(provider.CodeTokenExpired, "no refresh token")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return fmt.Sprintf("tok-%d", s.seq), fmt.Sprintf("rt-%d", s.seq), nil
}

func (s *loadIdentity) SignOut(context.Context) error { return nil }

type loadProfiles struct {
	mu      sync.Mutex
	records map[string]sessionkit.UserRecord
}

func (s *loadProfiles) Fetch(_ context.Context, externalID, _ string) (sessionkit.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[externalID]
	if !ok {
		return sessionkit.UserRecord{}, provider.E(provider.CodeAccountNotFound, "no profile")
	}
	return rec, nil
}

func (s *loadProfiles) Create(_ context.Context, np sessionkit.NewProfile, _ string) (sessionkit.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records == nil {
		s.records = map[string]sessionkit.UserRecord{}
	}
	rec := sessionkit.UserRecord{ID: np.ExternalID, Email: np.Email, DisplayName: np.DisplayName}
	s.records[np.ExternalID] = rec
	return rec, nil
}

func (s *loadProfiles) Update(_ context.Context, externalID string, update sessionkit.ProfileUpdate, _ string) (sessionkit.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[externalID]
	if !ok {
		return sessionkit.UserRecord{}, provider.E(provider.CodeAccountNotFound, "no profile")
	}
	rec = update.ApplyTo(rec)
	s.records[externalID] = rec
	return rec, nil
}
