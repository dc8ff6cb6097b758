package httpclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"defi_compare/internal/entity"
)

// ZerionClient talks to the Zerion wallet API. One GET against the
// portfolio-summary endpoint, one against the positions listing; both calls
// cover every chain Zerion indexes, so there is no per-chain partitioning
// on this side.
type ZerionClient interface {
	GetPortfolio(ctx context.Context, address string) (*entity.ZerionPortfolioResponse, error)
	GetPositions(ctx context.Context, address string) (*entity.ZerionPositionsResponse, error)
}

type zerionClientImpl struct {
	client   *fasthttp.Client
	baseURL  string
	authHdr  string
	timeout  time.Duration
	policy   RetryPolicy
	currency string
	logger   *zap.Logger
}

// NewZerionClient creates a Zerion API client. The API key is sent as a
// basic credential with an empty password, per Zerion's auth scheme.
func NewZerionClient(baseURL, apiKey string, timeout time.Duration, policy RetryPolicy, logger *zap.Logger) ZerionClient {
	return &zerionClientImpl{
		client:   &fasthttp.Client{},
		baseURL:  strings.TrimRight(baseURL, "/"),
		authHdr:  "Basic " + base64.StdEncoding.EncodeToString([]byte(apiKey+":")),
		timeout:  timeout,
		policy:   policy,
		currency: "usd",
		logger:   logger.Named("ZerionClient"),
	}
}

// GetPortfolio fetches the provider-computed portfolio total for an address.
func (c *zerionClientImpl) GetPortfolio(ctx context.Context, address string) (*entity.ZerionPortfolioResponse, error) {
	requestURL := fmt.Sprintf("%s/v1/wallets/%s/portfolio?currency=%s", c.baseURL, strings.ToLower(address), c.currency)

	body, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var portfolio entity.ZerionPortfolioResponse
	if err := json.Unmarshal(body, &portfolio); err != nil {
		c.logger.Error("Failed to unmarshal Zerion portfolio response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", body),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal Zerion portfolio response: %w", err)
	}
	return &portfolio, nil
}

// GetPositions fetches the complex-position listing for an address. Simple
// wallet holdings are filtered out upstream so both providers describe the
// same universe of DeFi positions.
func (c *zerionClientImpl) GetPositions(ctx context.Context, address string) (*entity.ZerionPositionsResponse, error) {
	requestURL := fmt.Sprintf(
		"%s/v1/wallets/%s/positions/?filter[positions]=only_complex&currency=%s&sort=value",
		c.baseURL, strings.ToLower(address), c.currency,
	)

	body, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var positions entity.ZerionPositionsResponse
	if err := json.Unmarshal(body, &positions); err != nil {
		c.logger.Error("Failed to unmarshal Zerion positions response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", body),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal Zerion positions response: %w", err)
	}

	c.logger.Debug("Fetched Zerion positions",
		zap.String("address", address),
		zap.Int("positionCount", len(positions.Data)))
	return &positions, nil
}

func (c *zerionClientImpl) get(ctx context.Context, requestURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	req.Header.Set(fasthttp.HeaderAuthorization, c.authHdr)

	return doWithRetry(ctx, c.client, req, c.timeout, c.policy, "zerion", c.logger)
}
