package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Masterminds/semver/v3"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/logger"
)

func copyTransPath(project, version, docName string) string {
	return "rest/copytrans/proj/" + url.PathEscape(project) + "/iter/" + url.PathEscape(version) + "/doc/" + docID(docName)
}

// StartCopyTrans starts a copy-translations job for one document.
func (c *Client) StartCopyTrans(ctx context.Context, project, version, docName string) error {
	if _, err := c.do(ctx, c.http.R(), http.MethodPost, copyTransPath(project, version, docName)); err != nil {
		return fmt.Errorf("start copy-trans for %s: %w", docName, err)
	}
	return nil
}

// CopyTransStatus returns the status of the document's copy-translations job.
func (c *Client) CopyTransStatus(ctx context.Context, project, version, docName string) (domain.CopyTransStatus, error) {
	var dto copyTransStatusDTO
	if _, err := c.do(ctx, c.http.R().SetResult(&dto), http.MethodGet, copyTransPath(project, version, docName)); err != nil {
		return domain.CopyTransStatus{}, fmt.Errorf("copy-trans status for %s: %w", docName, err)
	}
	return domain.CopyTransStatus{
		InProgress:         dto.InProgress,
		PercentageComplete: dto.PercentageComplete,
	}, nil
}

// CompareServerVersion returns -1, 0 or 1 as the server version is older
// than, equal to or newer than version. A server version that does not
// parse is treated as newer.
func (c *Client) CompareServerVersion(ctx context.Context, version string) (int, error) {
	want, err := semver.NewVersion(version)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid version %q", domain.ErrInvalidConfig, version)
	}

	server := c.ServerVersion()
	if server == "" {
		info, err := c.fetchVersion(ctx)
		if err != nil {
			return 0, err
		}
		server = info.VersionNo
	}

	have, err := semver.NewVersion(server)
	if err != nil {
		logger.Debug("unrecognised server version %q, assuming newer than %s", server, version)
		return 1, nil
	}
	return have.Compare(want), nil
}
