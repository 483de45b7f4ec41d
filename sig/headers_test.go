package sig

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Normalize(t *testing.T) {
	t.Run("names are lowercased and entries sorted by name then value", func(t *testing.T) {
		raw := make(http.Header)
		raw.Set("Content-Type", "image/jpeg")
		raw.Add("X-Stow-Meta-Reviewedby", "joe@example.com")
		raw.Add("X-Stow-Meta-Reviewedby", "jane@example.com")
		raw.Set("Date", "Tue, 27 Mar 2007 21:06:08 +0000")

		h := Normalize(raw)
		assert.Equal(t, Headers{
			{"content-type", "image/jpeg"},
			{"date", "Tue, 27 Mar 2007 21:06:08 +0000"},
			{"x-stow-meta-reviewedby", "jane@example.com"},
			{"x-stow-meta-reviewedby", "joe@example.com"},
		}, h)
	})

	t.Run("headers differing only in name casing normalize to the same entry", func(t *testing.T) {
		// Build the map directly so the two spellings survive as distinct keys
		raw := http.Header{
			"X-Stow-Meta-Foo": {"bar"},
			"x-STOW-meta-foo": {"bar"},
		}
		h := Normalize(raw)
		assert.Equal(t, Headers{{"x-stow-meta-foo", "bar"}}, h)
	})

	t.Run("exact (name, value) repeats are deduplicated", func(t *testing.T) {
		raw := make(http.Header)
		raw.Add("X-Stow-Acl", "public-read")
		raw.Add("X-Stow-Acl", "public-read")
		raw.Add("X-Stow-Acl", "private")

		h := Normalize(raw)
		assert.Equal(t, Headers{
			{"x-stow-acl", "private"},
			{"x-stow-acl", "public-read"},
		}, h)
	})

	t.Run("normalization is idempotent", func(t *testing.T) {
		raw := make(http.Header)
		raw.Set("Content-MD5", "4gJE4saaMU4BqNR0kLY+lw==")
		raw.Add("X-Stow-Meta-Reviewedby", "joe@example.com")
		raw.Add("X-Stow-Meta-Reviewedby", "jane@example.com")
		raw.Add("X-Stow-Meta-Reviewedby", "jane@example.com")

		once := Normalize(raw)
		reassembled := make(http.Header)
		for _, header := range once {
			reassembled.Add(header.Name, header.Value)
		}
		assert.Equal(t, once, Normalize(reassembled))
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, Normalize(make(http.Header)))
		assert.Empty(t, Normalize(nil))
	})
}

func Test_CustomLines(t *testing.T) {
	t.Run("renders vendor-prefixed headers in normalized order", func(t *testing.T) {
		raw := make(http.Header)
		raw.Set("Content-Type", "application/x-download")
		raw.Set("X-Stow-Meta-Checksumalgorithm", "crc32")
		raw.Set("X-Stow-Acl", "public-read")
		raw.Set("Date", "Tue, 27 Mar 2007 21:06:08 +0000")

		lines := Normalize(raw).CustomLines(HeaderPrefix)
		assert.Equal(t, "x-stow-acl:public-read\nx-stow-meta-checksumalgorithm:crc32\n", lines)
	})

	t.Run("repeated names are combined into one comma-joined line", func(t *testing.T) {
		raw := make(http.Header)
		raw.Add("X-Stow-Meta-Reviewedby", "joe@example.com")
		raw.Add("X-Stow-Meta-Reviewedby", "jane@example.com")

		lines := Normalize(raw).CustomLines(HeaderPrefix)
		assert.Equal(t, "x-stow-meta-reviewedby:jane@example.com,joe@example.com\n", lines)
	})

	t.Run("an empty subset renders as the empty string", func(t *testing.T) {
		raw := make(http.Header)
		raw.Set("Content-Type", "image/jpeg")
		raw.Set("Host", "stow.internal")

		assert.Equal(t, "", Normalize(raw).CustomLines(HeaderPrefix))
		assert.Equal(t, "", Headers{}.CustomLines(HeaderPrefix))
	})
}
