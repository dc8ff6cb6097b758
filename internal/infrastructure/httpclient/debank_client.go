package httpclient

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"defi_compare/internal/entity"
)

const (
	debankClientLocale   = "en"
	debankClientPlatform = "web"
	debankClientVersion  = "1.0.0"
)

// DebankClient talks to the DeBank positions API; the API is partitioned by
// network id, one POST per chain. A client-side rate limiter spaces the
// per-chain calls so concurrent fan-out does not trip the provider's limits.
type DebankClient interface {
	GetChainPositions(ctx context.Context, networkID, address string) ([]entity.DebankProtocol, error)
}

type debankClientImpl struct {
	client    *fasthttp.Client
	baseURL   string
	accessKey string
	timeout   time.Duration
	policy    RetryPolicy
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// NewDebankClient creates a DeBank API client. requestsPerSecond bounds the
// aggregate call rate across all concurrent per-chain fetches.
func NewDebankClient(baseURL, accessKey string, timeout time.Duration, policy RetryPolicy, requestsPerSecond float64, logger *zap.Logger) DebankClient {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 10
	}
	return &debankClientImpl{
		client:    &fasthttp.Client{},
		baseURL:   strings.TrimRight(baseURL, "/"),
		accessKey: accessKey,
		timeout:   timeout,
		policy:    policy,
		limiter:   rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:    logger.Named("DebankClient"),
	}
}

type debankPositionsRequest struct {
	ChainID string `json:"chain_id"`
	ID      string `json:"id"`
}

// GetChainPositions fetches the protocol position entries for one address on
// one network. The response nests entries under a chain-identifier-keyed
// map; only the requested network's entries are returned.
func (c *debankClientImpl) GetChainPositions(ctx context.Context, networkID, address string) ([]entity.DebankProtocol, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	requestURL := c.baseURL + "/v1/user/complex_protocol_list"

	payload, err := json.Marshal(debankPositionsRequest{ChainID: networkID, ID: strings.ToLower(address)})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal DeBank request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+c.accessKey)
	req.Header.Set("X-Request-Id", requestID())
	req.Header.Set("X-Client-Locale", debankClientLocale)
	req.Header.Set("X-Client-Platform", debankClientPlatform)
	req.Header.Set("X-Client-Version", debankClientVersion)
	req.SetBody(payload)

	body, err := doWithRetry(ctx, c.client, req, c.timeout, c.policy, "debank", c.logger)
	if err != nil {
		return nil, err
	}

	var chainResp entity.DebankChainResponse
	if err := json.Unmarshal(body, &chainResp); err != nil {
		c.logger.Error("Failed to unmarshal DeBank chain response",
			zap.String("networkID", networkID),
			zap.ByteString("responseBody", body),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal DeBank response for network %s: %w", networkID, err)
	}

	protocols := chainResp.Data[networkID]
	c.logger.Debug("Fetched DeBank chain positions",
		zap.String("networkID", networkID),
		zap.String("address", address),
		zap.Int("protocolCount", len(protocols)))
	return protocols, nil
}

// requestID builds the per-call identity header value: a 16-byte random hex
// nonce.
func requestID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "00000000000000000000000000000000"
	}
	return hex.EncodeToString(buf)
}
