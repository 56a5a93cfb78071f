package cache

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// KeySeparator delimits the segments of a cache key.
const KeySeparator = ":"

// listSegment namespaces every cached list under its own sub-tree so the
// whole namespace can be pattern-deleted without touching primary or
// secondary-index entries.
const listSegment = "find-many"

// maxKeyLength caps generated keys. Memcached rejects keys over 250 bytes
// and very long Redis keys waste memory, so longer keys have their parameter
// tail replaced by a hash.
const maxKeyLength = 250

// KeyBuilder generates the cache keys for one entity namespace. Keys are
// deterministic: the same lookup always produces the same key regardless of
// call-site argument ordering.
type KeyBuilder struct {
	prefix string
}

// NewKeyBuilder creates a key builder for the given entity prefix, e.g.
// "users" or "refresh-tokens".
func NewKeyBuilder(prefix string) KeyBuilder {
	return KeyBuilder{prefix: sanitizeSegment(prefix)}
}

// Prefix returns the entity namespace this builder generates keys for.
func (k KeyBuilder) Prefix() string {
	return k.prefix
}

// Primary returns the key holding an entity's canonical encoding:
// {prefix}:{id}.
func (k KeyBuilder) Primary(id string) string {
	return k.prefix + KeySeparator + sanitizeSegment(id)
}

// Index returns the secondary-index key for a lookup field:
// {prefix}:{field}:{value}. The value stored under an index key is always
// identical to the one under the primary key.
func (k KeyBuilder) Index(field, value string) string {
	return k.prefix + KeySeparator + sanitizeSegment(field) + KeySeparator + sanitizeSegment(value)
}

// List returns the key for a paginated query result. Parameters are sorted
// alphabetically by name before concatenation so semantically identical
// queries share a key: {prefix}:find-many:{k1}:{v1}:{k2}:{v2}...
func (k KeyBuilder) List(params map[string]string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(k.prefix)
	b.WriteString(KeySeparator)
	b.WriteString(listSegment)
	for _, name := range names {
		b.WriteString(KeySeparator)
		b.WriteString(sanitizeSegment(name))
		b.WriteString(KeySeparator)
		b.WriteString(sanitizeSegment(params[name]))
	}

	key := b.String()
	if len(key) <= maxKeyLength {
		return key
	}

	// Hash the parameter tail but keep the namespace so ListPattern still
	// matches the key.
	head := k.prefix + KeySeparator + listSegment + KeySeparator
	return head + fmt.Sprintf("%016x", xxhash.Sum64String(key))
}

// ListPattern returns the glob matching every list key in this namespace.
func (k KeyBuilder) ListPattern() string {
	return k.prefix + KeySeparator + listSegment + KeySeparator + "*"
}

// sanitizeSegment makes an arbitrary value safe to embed in a key. The
// separator would corrupt the key structure and glob metacharacters would
// make pattern deletion over-match, so both are rewritten. Whitespace is
// rewritten because memcached forbids it.
func sanitizeSegment(s string) string {
	if s == "" {
		return "_"
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == ':' || r == '*' || r == '?' || r == '[' || r == ']':
			b.WriteByte('_')
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
