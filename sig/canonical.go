package sig

import (
	"bytes"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// paramsToSign lists the query subresources that belong to the signed
// resource. Any other query parameter is excluded from the canonical string.
var paramsToSign = map[string]bool{
	"acl":        true,
	"delete":     true,
	"location":   true,
	"logging":    true,
	"policy":     true,
	"uploadId":   true,
	"uploads":    true,
	"versionId":  true,
	"versioning": true,
	"versions":   true,
}

// Canonical assembles the exact byte sequence that gets signed for a request:
// the verb, the content-md5 and content-type values (empty when absent), the
// Date header value, and the vendor header block, joined by newlines and
// followed by the resource. When the vendor date header is present the
// standard date line is forced empty, since the vendor header is already
// covered by the custom-header block.
//
// The result may contain header values supplied by the peer; it must never be
// logged.
func Canonical(method string, header http.Header, resource string) []byte {
	h := Normalize(header)

	date := h.Get("date")
	if h.Has(HeaderDate) {
		date = ""
	}

	var b bytes.Buffer
	b.WriteString(method)
	b.WriteByte('\n')
	b.WriteString(h.Get("content-md5"))
	b.WriteByte('\n')
	b.WriteString(h.Get("content-type"))
	b.WriteByte('\n')
	b.WriteString(date)
	b.WriteByte('\n')
	b.WriteString(h.CustomLines(HeaderPrefix))
	b.WriteString(resource)
	return b.Bytes()
}

// CanonicalResource derives the signed resource for a request URL: the
// escaped path, plus any signed query subresources sorted by name. Query
// parameters outside the subresource list don't participate in the signature.
func CanonicalResource(u *url.URL) string {
	resource := u.EscapedPath()
	if resource == "" {
		resource = "/"
	}

	query := u.Query()
	names := make([]string, 0, len(query))
	for name := range query {
		if paramsToSign[name] {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return resource
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		for _, value := range query[name] {
			if value == "" {
				parts = append(parts, name)
			} else {
				parts = append(parts, name+"="+value)
			}
		}
	}
	return resource + "?" + strings.Join(parts, "&")
}
