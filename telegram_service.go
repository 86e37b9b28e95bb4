package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
)

// Local validation failures, distinguishable by errors.Is so the shell can
// pick the right localized message.
var (
	ErrTokenEmpty  = errors.New("token is empty")
	ErrTokenFormat = errors.New("token does not match the bot token format")
)

// Bot tokens are digits, a colon, then word characters or hyphens. This
// mirrors the shape Telegram actually issues.
var tokenPattern = regexp.MustCompile(`^\d+:[\w-]+$`)

// TokenStatus is the outcome of a remote token check.
type TokenStatus int

const (
	// TokenAccepted means the Telegram API confirmed the token.
	TokenAccepted TokenStatus = iota
	// TokenRejected means the API answered with a non-success status.
	TokenRejected
	// TokenNetworkError means the probe never got an HTTP answer.
	TokenNetworkError
)

// String returns the status name for logs.
func (s TokenStatus) String() string {
	switch s {
	case TokenAccepted:
		return "accepted"
	case TokenRejected:
		return "rejected"
	case TokenNetworkError:
		return "network error"
	default:
		return fmt.Sprintf("TokenStatus(%d)", int(s))
	}
}

const telegramAPIBase = "https://api.telegram.org"

// TelegramService validates bot tokens: a local shape check first, then a
// single best-effort getMe probe against the live API. No retry, no rate
// limiting, and no request timeout beyond the client's defaults (a hung
// probe blocks the submit until the transport gives up).
type TelegramService struct {
	// APIBase is overridable for tests; production keeps the real endpoint.
	APIBase string
	client  *http.Client
	logger  func(string)
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(logger func(string)) *TelegramService {
	return &TelegramService{
		APIBase: telegramAPIBase,
		client:  &http.Client{},
		logger:  logger,
	}
}

// Name returns the service name.
func (ts *TelegramService) Name() string {
	return "telegram"
}

// Initialize prepares the service (no-op).
func (ts *TelegramService) Initialize(ctx context.Context) error {
	return nil
}

// Shutdown closes the service (no-op).
func (ts *TelegramService) Shutdown() error {
	return nil
}

// ValidateFormat performs the local, offline check. Rejected input never
// reaches the network.
func (ts *TelegramService) ValidateFormat(token string) error {
	if strings.TrimSpace(token) == "" {
		return WrapError("telegram", "ValidateFormat", ErrTokenEmpty)
	}
	if !tokenPattern.MatchString(token) {
		return WrapError("telegram", "ValidateFormat", ErrTokenFormat)
	}
	return nil
}

// CheckToken issues GET <base>/bot<token>/getMe. Any success status counts
// as accepted; any other status as rejected; a transport failure as a
// network error. The caller decides whether rejection and network failure
// are reported differently (the launcher collapses them into one message).
func (ts *TelegramService) CheckToken(ctx context.Context, token string) TokenStatus {
	url := fmt.Sprintf("%s/bot%s/getMe", ts.APIBase, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return TokenNetworkError
	}

	resp, err := ts.client.Do(req)
	if err != nil {
		ts.log("getMe probe failed: " + err.Error())
		return TokenNetworkError
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return TokenAccepted
	}
	ts.log(fmt.Sprintf("getMe answered %d", resp.StatusCode))
	return TokenRejected
}

func (ts *TelegramService) log(msg string) {
	if ts.logger != nil {
		ts.logger(msg)
	}
}
