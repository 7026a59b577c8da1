package cache

import (
	"strconv"
	"strings"
)

// Fingerprint builds a cache key from the parameters that determine a
// response. A namespace, a subject and the active locale are required at
// construction; sub-selectors and mode flags are appended in call order.
//
// Every parameter that can change the expected output must be part of the
// fingerprint. Two requests with equal fingerprints are served the same
// payload.
type Fingerprint struct {
	namespace string
	subject   string
	locale    string
	selectors []string
	flags     []string
}

func NewFingerprint(namespace, subject, locale string) Fingerprint {
	return Fingerprint{namespace: namespace, subject: subject, locale: locale}
}

// With appends sub-selectors (category, length, ...). They are placed
// between the subject and the locale.
func (f Fingerprint) With(selectors ...string) Fingerprint {
	f.selectors = append(append([]string(nil), f.selectors...), selectors...)
	return f
}

// Flag appends a boolean mode after the locale.
func (f Fingerprint) Flag(on bool) Fingerprint {
	f.flags = append(append([]string(nil), f.flags...), strconv.FormatBool(on))
	return f
}

func (f Fingerprint) String() string {
	parts := make([]string, 0, 3+len(f.selectors)+len(f.flags))
	parts = append(parts, f.namespace, f.subject)
	parts = append(parts, f.selectors...)
	parts = append(parts, f.locale)
	parts = append(parts, f.flags...)
	return strings.Join(parts, "_")
}
