package analyzer

import "strings"

// Tag categories. Every meta tag with a resolvable identity lands in exactly
// one of these buckets.
const (
	CategoryBasic     = "basic"
	CategoryOpenGraph = "openGraph"
	CategoryTwitter   = "twitter"
	CategoryRobots    = "robots"
	CategoryOther     = "other"
)

// Categories lists all bucket names in their canonical order.
var Categories = []string{
	CategoryBasic,
	CategoryOpenGraph,
	CategoryTwitter,
	CategoryRobots,
	CategoryOther,
}

// IdentityKind says which attribute identifies a meta tag.
type IdentityKind int

const (
	IdentityNone IdentityKind = iota
	IdentityProperty
	IdentityName
	IdentityHTTPEquiv
	IdentityCharset
)

// TagIdentity is the resolved identity of a meta tag: which attribute names
// it, and that attribute's value. A tag with none of the identifying
// attributes is Unidentified and contributes nothing downstream.
type TagIdentity struct {
	Kind  IdentityKind
	Value string
}

// Identify resolves a tag's identity with the fixed attribute priority:
// property, then name, then http-equiv, then charset.
func Identify(t MetaTag) TagIdentity {
	switch {
	case t.Property != "":
		return TagIdentity{Kind: IdentityProperty, Value: t.Property}
	case t.Name != "":
		return TagIdentity{Kind: IdentityName, Value: t.Name}
	case t.HTTPEquiv != "":
		return TagIdentity{Kind: IdentityHTTPEquiv, Value: t.HTTPEquiv}
	case t.Charset != "":
		return TagIdentity{Kind: IdentityCharset}
	default:
		return TagIdentity{Kind: IdentityNone}
	}
}

// Key returns the tag map key for an identity. Charset tags collapse to the
// literal key "charset"; unidentified tags have no key.
func (id TagIdentity) Key() string {
	switch id.Kind {
	case IdentityCharset:
		return "charset"
	case IdentityNone:
		return ""
	default:
		return id.Value
	}
}

// Categorize places a tag into its category bucket. The checks run in a fixed
// priority order: og:/twitter: property prefixes first, then the robots
// names, then anything carrying a name, http-equiv or charset attribute.
// A tag whose property fails the prefix checks and that has no other
// identifying attribute falls to "other"; its property is never re-examined.
func Categorize(t MetaTag) string {
	switch {
	case t.Property != "" && strings.HasPrefix(t.Property, "og:"):
		return CategoryOpenGraph
	case t.Property != "" && strings.HasPrefix(t.Property, "twitter:"):
		return CategoryTwitter
	case t.Name == "robots" || t.Name == "googlebot":
		return CategoryRobots
	case t.Name != "" || t.HTTPEquiv != "" || t.Charset != "":
		return CategoryBasic
	default:
		return CategoryOther
	}
}
