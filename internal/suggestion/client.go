package suggestion

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/frahmantamala/access-console/internal"
	"github.com/frahmantamala/access-console/internal/catalog"
)

// Client asks a language model which catalog systems fit a job title.
type Client struct {
	model   llms.Model
	timeout time.Duration
	logger  *slog.Logger
}

func NewClient(model llms.Model, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

// Suggest makes a single model call. Provider errors are logged and
// reported as ErrSuggestionFailed.
func (c *Client) Suggest(ctx context.Context, title string, systems []catalog.System) ([]string, error) {
	if strings.TrimSpace(title) == "" {
		return nil, internal.ErrTitleRequired
	}

	ctx, cancel := internal.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	text, err := llms.GenerateFromSinglePrompt(ctx, c.model, BuildPrompt(title, systems), llms.WithJSONMode())
	if err != nil {
		c.logger.Error("suggestion model call failed", "title", title, "duration", time.Since(start), "error", err)
		return nil, internal.ErrSuggestionFailed.WithCause(err)
	}

	ids := ParseResponse(text, systems, c.logger)
	c.logger.Debug("suggestion model call finished", "title", title, "duration", time.Since(start), "suggested", len(ids))
	return ids, nil
}
