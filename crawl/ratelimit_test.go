package crawl_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/natmusissunny/legalrights"
	"github.com/natmusissunny/legalrights/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const labourHost = "www.12333.gov.cn"

// timedWait returns how long one Wait on host took.
func timedWait(t *testing.T, limiter *crawl.DomainLimiter, host string) time.Duration {
	t.Helper()
	start := time.Now()
	require.NoError(t, limiter.Wait(context.Background(), host))
	return time.Since(start)
}

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	var _ legalrights.DomainLimiter = crawl.NewDomainLimiter(1)

	t.Run("first request to a host is immediate", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10)

		assert.Less(t, timedWait(t, limiter, labourHost), 50*time.Millisecond)
	})

	t.Run("second request to the same host waits", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10)
		timedWait(t, limiter, labourHost)

		assert.GreaterOrEqual(t, timedWait(t, limiter, labourHost), 80*time.Millisecond)
	})

	t.Run("hosts are limited independently", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10)
		timedWait(t, limiter, labourHost)

		assert.Less(t, timedWait(t, limiter, "flk.npc.gov.cn"), 50*time.Millisecond)
		assert.Equal(t, 2, limiter.Len())
	})

	t.Run("port and case share the host bucket", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10)
		timedWait(t, limiter, "WWW.12333.gov.cn")

		assert.GreaterOrEqual(t, timedWait(t, limiter, labourHost+":443"), 80*time.Millisecond)
		assert.Equal(t, 1, limiter.Len())
	})

	t.Run("burst admits back-to-back requests", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(1, crawl.WithBurst(3))

		for range 3 {
			assert.Less(t, timedWait(t, limiter, labourHost), 50*time.Millisecond)
		}
	})

	t.Run("returns context error while waiting", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(1)
		timedWait(t, limiter, labourHost)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, labourHost))
	})

	t.Run("evicts least recently used hosts", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(1000)
		for i := range crawl.DefaultMaxDomains + 10 {
			require.NoError(t, limiter.Wait(context.Background(), fmt.Sprintf("host%d.example.com", i)))
		}

		assert.Equal(t, crawl.DefaultMaxDomains, limiter.Len())
	})

	t.Run("concurrent waits all complete", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(100)

		var wg sync.WaitGroup
		errs := make(chan error, 5)
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- limiter.Wait(context.Background(), labourHost)
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			assert.NoError(t, err)
		}
	})
}
