package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
)

func translationsPath(project, version, docName, locale string) string {
	return documentPath(project, version, docName) + "/translations/" + url.PathEscape(locale)
}

// GetTranslations fetches the translations of one document for one locale.
func (c *Client) GetTranslations(ctx context.Context, project, version, docName, locale string, exts domain.ExtensionSet) (*domain.TranslationsResource, error) {
	var dto translationsDTO
	req := c.http.R().SetQueryParamsFromValues(extParams(exts)).SetResult(&dto)
	if _, err := c.do(ctx, req, http.MethodGet, translationsPath(project, version, docName, locale)); err != nil {
		return nil, fmt.Errorf("get translations %s [%s]: %w", docName, locale, err)
	}
	return dto.toDomain(), nil
}

// PutTranslations uploads translations. The server answers with one
// warning per line, e.g. for unknown text flow IDs.
func (c *Client) PutTranslations(ctx context.Context, project, version, docName, locale string, tr *domain.TranslationsResource, exts domain.ExtensionSet, merge domain.MergeType) ([]string, error) {
	params := extParams(exts)
	params.Set("merge", string(merge))

	req := c.http.R().
		SetQueryParamsFromValues(params).
		SetHeader("Content-Type", "application/json").
		SetBody(translationsToDTO(tr))
	resp, err := c.do(ctx, req, http.MethodPut, translationsPath(project, version, docName, locale))
	if err != nil {
		return nil, fmt.Errorf("put translations %s [%s]: %w", docName, locale, err)
	}
	return splitWarnings(resp.String()), nil
}

func splitWarnings(body string) []string {
	var warnings []string
	for _, line := range strings.Split(body, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			warnings = append(warnings, line)
		}
	}
	return warnings
}
