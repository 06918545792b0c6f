// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog queries a CKAN open-data catalog's action API.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/dataqa/internal/httputil"
	"github.com/pdiddy/dataqa/pkg/types"
)

// Client issues read-only calls against a CKAN action API root.
type Client struct {
	BaseURL   string
	UserAgent string
	HTTP      *http.Client
}

// New builds a catalog client from configuration.
func New(cfg types.CatalogConfig) *Client {
	return &Client{
		BaseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		UserAgent: cfg.UserAgent,
		HTTP:      httputil.NewClient(cfg.HTTPConfig),
	}
}

// searchEnvelope wraps the package_search response. CKAN nests the payload
// under "result"; an absent result decodes to the zero value.
type searchEnvelope struct {
	Result types.PackageSearchResult `json:"result"`
}

type showEnvelope struct {
	Result types.Package `json:"result"`
}

// SearchPackages runs a package_search query and returns the unwrapped
// result. A non-2xx response or malformed JSON is an error.
func (c *Client) SearchPackages(ctx context.Context, query string) (types.PackageSearchResult, error) {
	params := url.Values{"q": {query}}
	reqURL := c.BaseURL + "/package_search?" + params.Encode()

	var env searchEnvelope
	if err := httputil.GetJSON(ctx, c.HTTP, reqURL, c.UserAgent, &env); err != nil {
		return types.PackageSearchResult{}, fmt.Errorf("package_search: %w", err)
	}
	return env.Result, nil
}

// ShowPackage fetches the full details of one dataset by id.
func (c *Client) ShowPackage(ctx context.Context, id string) (types.Package, error) {
	params := url.Values{"id": {id}}
	reqURL := c.BaseURL + "/package_show?" + params.Encode()

	var env showEnvelope
	if err := httputil.GetJSON(ctx, c.HTTP, reqURL, c.UserAgent, &env); err != nil {
		return types.Package{}, fmt.Errorf("package_show: %w", err)
	}
	return env.Result, nil
}

// IsCSVResource reports whether the resource's declared format is "csv"
// (case-insensitive) and its URL ends in ".csv". Both must hold.
func IsCSVResource(r types.Resource) bool {
	return strings.EqualFold(r.Format, "csv") && strings.HasSuffix(r.URL, ".csv")
}

// HasCSVResource reports whether the package carries at least one resource
// satisfying IsCSVResource.
func HasCSVResource(p types.Package) bool {
	for _, r := range p.Resources {
		if IsCSVResource(r) {
			return true
		}
	}
	return false
}

// FirstCSVResource returns the first resource satisfying IsCSVResource,
// preserving the original resource order.
func FirstCSVResource(resources []types.Resource) (types.Resource, bool) {
	for _, r := range resources {
		if IsCSVResource(r) {
			return r, true
		}
	}
	return types.Resource{}, false
}
