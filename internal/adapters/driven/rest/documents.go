package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
)

// ListDocuments returns every document of the project version.
func (c *Client) ListDocuments(ctx context.Context, project, version string) ([]domain.ResourceMeta, error) {
	var metas []resourceMetaDTO
	if _, err := c.do(ctx, c.http.R().SetResult(&metas), http.MethodGet, projectPath(project, version)); err != nil {
		return nil, fmt.Errorf("list documents of %s/%s: %w", project, version, err)
	}

	docs := make([]domain.ResourceMeta, 0, len(metas))
	for _, m := range metas {
		docs = append(docs, m.toDomain())
	}
	return docs, nil
}

// GetSource fetches a source document.
func (c *Client) GetSource(ctx context.Context, project, version, docName string, exts domain.ExtensionSet) (*domain.Resource, error) {
	var dto resourceDTO
	req := c.http.R().SetQueryParamsFromValues(extParams(exts)).SetResult(&dto)
	if _, err := c.do(ctx, req, http.MethodGet, documentPath(project, version, docName)); err != nil {
		return nil, fmt.Errorf("get source %s: %w", docName, err)
	}
	return dto.toDomain(), nil
}

// PutSource creates or replaces a source document.
func (c *Client) PutSource(ctx context.Context, project, version string, res *domain.Resource, exts domain.ExtensionSet, copyTrans bool) error {
	params := extParams(exts)
	params.Set("copyTrans", strconv.FormatBool(copyTrans))

	req := c.http.R().
		SetQueryParamsFromValues(params).
		SetHeader("Content-Type", "application/json").
		SetBody(resourceToDTO(res))
	if _, err := c.do(ctx, req, http.MethodPut, documentPath(project, version, res.Name)); err != nil {
		return fmt.Errorf("put source %s: %w", res.Name, err)
	}
	return nil
}

// DeleteSource removes a source document and its translations.
func (c *Client) DeleteSource(ctx context.Context, project, version, docName string) error {
	if _, err := c.do(ctx, c.http.R(), http.MethodDelete, documentPath(project, version, docName)); err != nil {
		return fmt.Errorf("delete %s: %w", docName, err)
	}
	return nil
}
