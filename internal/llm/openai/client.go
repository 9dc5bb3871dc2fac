// Package openai implements the register extraction contract against any
// OpenAI-compatible chat completions endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/modbus-extractor/internal/common"
	"github.com/joseph-ayodele/modbus-extractor/internal/entity"
	"github.com/joseph-ayodele/modbus-extractor/internal/llm"
)

// Client talks to a chat completions endpoint over plain HTTP. No SDK;
// the request surface we need is two fields deep.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

var _ llm.RegisterExtractor = (*Client)(nil)

// NewClient builds a Client. The logger must not be nil.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// ExtractRegisters sends one assembled context and parses the reply into
// validated registers. The raw reply content is returned for auditing.
func (c *Client) ExtractRegisters(ctx context.Context, req llm.ExtractRequest) (entity.RegisterList, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()
	c.logger.Info("llm.extract.start",
		"rid", rid,
		"model", c.cfg.Model,
		"pages", req.PageRange,
		"context_chars", len(req.Context))

	content, err := c.complete(ctx, rid, req)
	if err != nil {
		c.logger.Error("llm.extract.fail",
			"rid", rid,
			"pages", req.PageRange,
			"elapsed_ms", time.Since(start).Milliseconds(),
			"error", err)
		return nil, nil, err
	}

	regs, err := llm.ParseReply(content, c.logger.With("rid", rid))
	if err != nil {
		c.logger.Error("llm.extract.unparseable",
			"rid", rid,
			"pages", req.PageRange,
			"reply_chars", len(content))
		return nil, []byte(content), err
	}

	c.logger.Info("llm.extract.ok",
		"rid", rid,
		"pages", req.PageRange,
		"registers", len(regs),
		"elapsed_ms", time.Since(start).Milliseconds())
	return regs, []byte(content), nil
}

// complete performs the chat completions call, retrying transient
// failures. Cancellation is never retried.
func (c *Client) complete(ctx context.Context, rid string, req llm.ExtractRequest) (string, error) {
	body := chatRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		Messages: []chatMessage{
			{Role: "system", Content: llm.BuildSystemPrompt()},
			{Role: "user", Content: llm.BuildUserPrompt(req.Context)},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", common.WrapError(err, "marshal chat request")
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("llm.extract.retry", "rid", rid, "attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * 2 * time.Second):
			}
		}
		content, retryable, err := c.post(ctx, payload)
		if err == nil {
			return content, nil
		}
		if common.IsCancellation(err) || !retryable {
			return "", err
		}
		lastErr = err
	}
	return "", lastErr
}

func (c *Client) post(ctx context.Context, payload []byte) (content string, retryable bool, err error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", false, common.WrapError(err, "build request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if common.IsCancellation(err) || ctx.Err() != nil {
			if ctx.Err() != nil {
				return "", false, ctx.Err()
			}
			return "", false, err
		}
		return "", true, common.WrapError(err, "chat completions request")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return "", true, common.WrapError(err, "read response body")
	}

	// 429 and 5xx are worth retrying; everything else 4xx is not.
	if resp.StatusCode != http.StatusOK {
		transient := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return "", transient, common.NewAppError("LLM_HTTP",
			fmt.Sprintf("chat completions returned %d", resp.StatusCode), common.ErrInternal)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", false, common.WrapError(err, "decode chat response")
	}
	if parsed.Error != nil {
		return "", false, common.NewAppError("LLM_API", parsed.Error.Message, common.ErrInternal)
	}
	if len(parsed.Choices) == 0 {
		return "", false, common.NewAppError("LLM_API", "no choices in response", common.ErrInternal)
	}
	return parsed.Choices[0].Message.Content, false, nil
}
