package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
)

// PushGlossary uploads glossary entries.
func (c *Client) PushGlossary(ctx context.Context, glossary *domain.Glossary) error {
	req := c.http.R().
		SetHeader("Content-Type", "application/json").
		SetBody(glossaryToDTO(glossary))
	if _, err := c.do(ctx, req, http.MethodPut, "rest/glossary"); err != nil {
		return fmt.Errorf("push glossary: %w", err)
	}
	return nil
}
