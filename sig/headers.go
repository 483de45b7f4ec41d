package sig

import (
	"net/http"
	"slices"
	"sort"
	"strings"
)

const (
	// AuthScheme is the literal tag that identifies this signing scheme at
	// the start of an Authorization header value
	AuthScheme = "STOW"

	// HeaderPrefix is the reserved name prefix for vendor headers: every
	// header carrying it is folded into the canonical string's custom-header
	// block and therefore covered by the signature
	HeaderPrefix = "x-stow-"

	// HeaderDate is the vendor date header; when present it supersedes the
	// standard Date header in the canonical string
	HeaderDate = "x-stow-date"

	// HeaderRequestId is the name of the header that carries a unique ID
	// generated for an outbound request; it has the vendor prefix, so it is
	// signed like any other vendor header
	HeaderRequestId = "x-stow-request-id"
)

// Header is a single header (name, value) pair with its name lowercased.
type Header struct {
	Name  string
	Value string
}

// Headers is a normalized header set: names lowercased, exact (name, value)
// repeats removed, entries ordered by name and then by value so that the set
// has exactly one representation regardless of how the transport delivered
// the headers.
type Headers []Header

// Normalize flattens a raw header map into a Headers set. Names are
// lowercased, values are left untouched. Normalizing the output again yields
// the same set.
func Normalize(header http.Header) Headers {
	h := make(Headers, 0, len(header))
	for name, values := range header {
		lower := strings.ToLower(name)
		for _, value := range values {
			h = append(h, Header{Name: lower, Value: value})
		}
	}
	sort.Slice(h, func(i, j int) bool {
		if h[i].Name != h[j].Name {
			return h[i].Name < h[j].Name
		}
		return h[i].Value < h[j].Value
	})
	return slices.Compact(h)
}

// Get returns the first value held for the given lowercase name, or "" if the
// name is absent.
func (h Headers) Get(name string) string {
	for _, header := range h {
		if header.Name == name {
			return header.Value
		}
	}
	return ""
}

// Has reports whether the set holds at least one value for the given
// lowercase name.
func (h Headers) Has(name string) bool {
	for _, header := range h {
		if header.Name == name {
			return true
		}
	}
	return false
}

// CustomLines renders the subset of h whose names start with prefix as
// "name:value\n" lines, in the order already established by Normalize. A name
// that appears with several distinct values is combined into a single line
// with the values comma-joined, matching the reference combination rule for
// repeated headers. An empty subset renders as the empty string.
func (h Headers) CustomLines(prefix string) string {
	var sb strings.Builder
	for i := 0; i < len(h); {
		if !strings.HasPrefix(h[i].Name, prefix) {
			i++
			continue
		}
		name := h[i].Name
		sb.WriteString(name)
		sb.WriteByte(':')
		sb.WriteString(h[i].Value)
		i++
		for i < len(h) && h[i].Name == name {
			sb.WriteByte(',')
			sb.WriteString(h[i].Value)
			i++
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
