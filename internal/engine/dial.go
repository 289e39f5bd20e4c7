package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/tonhe/flo/internal/creds"
	"github.com/tonhe/flo/internal/dashboard"
)

// ErrNoSource is returned when a target has no credential to dial with.
var ErrNoSource = errors.New("no credential configured for target")

// Dialer opens a Source for a dashboard target.
type Dialer func(ctx context.Context, target dashboard.Target) (Source, error)

// SNMPDialer returns a Dialer that looks up the target's credential in
// provider and connects with gosnmp. Connection attempts are retried with
// exponential backoff up to maxTries times; credential problems are not
// retried.
func SNMPDialer(provider creds.Provider, timeout time.Duration, maxTries uint) Dialer {
	if maxTries == 0 {
		maxTries = 1
	}
	return func(ctx context.Context, target dashboard.Target) (Source, error) {
		src, err := backoff.Retry(ctx, func() (*SNMPSource, error) {
			if target.Identity == "" {
				return nil, backoff.Permanent(fmt.Errorf("%s: %w", target.Host, ErrNoSource))
			}
			cred, err := provider.Get(target.Identity)
			if err != nil {
				return nil, backoff.Permanent(err)
			}
			client, err := newSNMPClient(target.Host, target.Port, cred, timeout)
			if err != nil {
				return nil, backoff.Permanent(err)
			}
			if err := client.Connect(); err != nil {
				return nil, fmt.Errorf("connect to %s: %w", target.Host, err)
			}
			return &SNMPSource{client: client, now: time.Now}, nil
		}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(maxTries))
		if err != nil {
			return nil, err
		}
		return src, nil
	}
}
