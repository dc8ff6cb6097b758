package httpclient

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"defi_compare/internal/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RetryPolicy parameterizes transient-failure handling for one provider.
// HTTP 202 means the provider is still assembling the result, HTTP 429 means
// we are rate limited; both are retried with their own fixed backoff until
// the attempt budget runs out. Everything else fails the call immediately.
type RetryPolicy struct {
	MaxAttempts       int
	ProcessingBackoff time.Duration // applied after HTTP 202
	RateLimitBackoff  time.Duration // applied after HTTP 429
}

// DefaultRetryPolicy is the policy both providers ship with.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:       3,
		ProcessingBackoff: 3 * time.Second,
		RateLimitBackoff:  5 * time.Second,
	}
}

func (p RetryPolicy) maxAttempts() int {
	if p.MaxAttempts <= 0 {
		return 1
	}
	return p.MaxAttempts
}

// doWithRetry executes one provider request under the retry policy and
// returns a copy of the response body. No state outlives the call.
func doWithRetry(
	ctx context.Context,
	client *fasthttp.Client,
	req *fasthttp.Request,
	timeout time.Duration,
	policy RetryPolicy,
	provider string,
	logger *zap.Logger,
) ([]byte, error) {
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	url := string(req.URI().FullURI())

	for attempt := 1; attempt <= policy.maxAttempts(); attempt++ {
		resp.Reset()

		var err error
		if deadline, ok := ctx.Deadline(); ok {
			err = client.DoDeadline(req, resp, deadline)
		} else {
			err = client.DoTimeout(req, resp, timeout)
		}
		if err != nil {
			metrics.ProviderRequestsTotal.WithLabelValues(provider, "transport_error").Inc()
			logger.Warn("Provider request transport failure",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Error(err))
			return nil, fmt.Errorf("request to %s failed: %w", url, err)
		}

		status := resp.StatusCode()
		switch {
		case status == fasthttp.StatusAccepted:
			metrics.ProviderRetriesTotal.WithLabelValues(provider, "processing").Inc()
			logger.Debug("Provider still processing, backing off",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", policy.ProcessingBackoff))
			if err := sleepCtx(ctx, policy.ProcessingBackoff); err != nil {
				return nil, err
			}
		case status == fasthttp.StatusTooManyRequests:
			metrics.ProviderRetriesTotal.WithLabelValues(provider, "rate_limited").Inc()
			logger.Debug("Provider rate limited, backing off",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", policy.RateLimitBackoff))
			if err := sleepCtx(ctx, policy.RateLimitBackoff); err != nil {
				return nil, err
			}
		case status >= 200 && status < 300:
			metrics.ProviderRequestsTotal.WithLabelValues(provider, "ok").Inc()
			body := make([]byte, len(resp.Body()))
			copy(body, resp.Body())
			return body, nil
		default:
			metrics.ProviderRequestsTotal.WithLabelValues(provider, "error").Inc()
			logger.Warn("Provider request failed",
				zap.String("url", url),
				zap.Int("statusCode", status),
				zap.ByteString("responseBody", resp.Body()))
			return nil, fmt.Errorf("request to %s failed with status %d", url, status)
		}
	}

	metrics.ProviderRequestsTotal.WithLabelValues(provider, "retries_exhausted").Inc()
	return nil, fmt.Errorf("request to %s still pending after %d attempts", url, policy.maxAttempts())
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
