// Package client implements the HTTP client that internal services use to
// issue bucket-management calls against a stow API server. Every outbound
// request gets a Date header, a generated x-stow-request-id, and a STOW
// Authorization header computed from the request exactly as it will be sent.
// The transport, TLS setup, and the semantics of the bucket operations
// themselves belong to the server; this client only signs, sends, and checks
// status codes.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stowhouse/server-auth/credentials"
	"github.com/stowhouse/server-auth/sig"
)

// ErrBucketNotFound indicates that the named bucket doesn't exist on the
// server.
var ErrBucketNotFound = errors.New("bucket not found")

// Client issues signed bucket-management requests against a single stow API
// server. It's stateless apart from its configuration and safe for concurrent
// use.
type Client struct {
	baseURL    string
	provider   credentials.Provider
	httpClient *http.Client
}

// New returns a Client for the API server at baseURL, signing with the
// credential resolved through provider on each call. A nil httpClient falls
// back to http.DefaultClient.
func New(baseURL string, provider credentials.Provider, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		provider:   provider,
		httpClient: httpClient,
	}
}

// CreateBucket provisions a new bucket with the given name.
func (c *Client) CreateBucket(ctx context.Context, name string) error {
	resource, err := bucketResource(name, "")
	if err != nil {
		return err
	}
	res, err := c.do(ctx, http.MethodPut, resource, nil)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		return fmt.Errorf("failed to create bucket %s: got status %d", name, res.StatusCode)
	}
	return nil
}

// DeleteBucket removes the named bucket.
func (c *Client) DeleteBucket(ctx context.Context, name string) error {
	resource, err := bucketResource(name, "")
	if err != nil {
		return err
	}
	res, err := c.do(ctx, http.MethodDelete, resource, nil)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return ErrBucketNotFound
	}
	if res.StatusCode/100 != 2 {
		return fmt.Errorf("failed to delete bucket %s: got status %d", name, res.StatusCode)
	}
	return nil
}

// BucketExists reports whether the named bucket exists.
func (c *Client) BucketExists(ctx context.Context, name string) (bool, error) {
	resource, err := bucketResource(name, "")
	if err != nil {
		return false, err
	}
	res, err := c.do(ctx, http.MethodHead, resource, nil)
	if err != nil {
		return false, err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if res.StatusCode/100 != 2 {
		return false, fmt.Errorf("failed to check bucket %s: got status %d", name, res.StatusCode)
	}
	return true, nil
}

// SetBucketACL updates the access policy on the named bucket, carrying the
// requested ACL in a signed vendor header.
func (c *Client) SetBucketACL(ctx context.Context, name, acl string) error {
	resource, err := bucketResource(name, "acl")
	if err != nil {
		return err
	}
	header := make(http.Header)
	header.Set(sig.HeaderPrefix+"acl", acl)
	res, err := c.do(ctx, http.MethodPut, resource, header)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return ErrBucketNotFound
	}
	if res.StatusCode/100 != 2 {
		return fmt.Errorf("failed to set ACL on bucket %s: got status %d", name, res.StatusCode)
	}
	return nil
}

// do sends one signed request. The Authorization header is computed last so
// that it covers every header the request will carry on the wire.
func (c *Client) do(ctx context.Context, method, resource string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+resource, nil)
	if err != nil {
		return nil, err
	}
	for name, values := range header {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}
	if req.Header.Get(sig.HeaderRequestId) == "" {
		req.Header.Set(sig.HeaderRequestId, uuid.NewString())
	}
	req.Header.Set("Date", time.Now().UTC().Format(http.TimeFormat))

	credential, err := c.provider.GetAdminCredential(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve admin credential: %w", err)
	}
	req.Header.Set("Authorization", sig.BuildAuthHeader(method, req.Header, resource, credential))

	return c.httpClient.Do(req)
}

func bucketResource(name, subresource string) (string, error) {
	if name == "" || strings.ContainsAny(name, "/?") {
		return "", fmt.Errorf("invalid bucket name %q", name)
	}
	resource := "/" + name
	if subresource != "" {
		resource += "?" + subresource
	}
	return resource, nil
}
