package datamodel

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Keyword classifies a synthetic suffix that was requested on an element lacking it.
type Keyword int

const (
	NotKeyword Keyword = iota
	CountKeyword
	ChildrenKeyword
	VersionKeyword
)

func (k Keyword) String() string {
	switch k {
	case CountKeyword:
		return "_count"
	case ChildrenKeyword:
		return "_children"
	case VersionKeyword:
		return "_version"
	default:
		return "none"
	}
}

const (
	SuffixCount    = "._count"
	SuffixChildren = "._children"
	SuffixVersion  = "._version"
)

const indexSegment = `(0|[1-9][0-9]*)`

// resolver builds a descriptor from the submatches of its pattern.
type resolver func(m []string) (Descriptor, bool)

type rule struct {
	pattern *regexp.Regexp
	resolve resolver
}

// Parser resolves names for one SCORM version. It is safe for concurrent use.
type Parser struct {
	version  Version
	roots    []string
	static   map[string]Descriptor
	rules    []rule
	fallback Descriptor
}

// New returns the parser for v.
func New(v Version) (*Parser, error) {
	switch v {
	case Scorm12:
		return scorm12Parser, nil
	case Scorm2004:
		return scorm2004Parser, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVersion, v)
	}
}

// MustNew is New for package-level wiring with a known version.
func MustNew(v Version) *Parser {
	p, err := New(v)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Parser) Version() Version {
	return p.version
}

// Parse returns the descriptor for name. Names outside the reserved roots resolve to a
// permissive read/write string so content can store vendor extensions.
func (p *Parser) Parse(name string) (Descriptor, bool) {
	if !p.reserved(name) {
		return p.fallback.clone(), true
	}
	if d, ok := p.static[name]; ok {
		return d.clone(), true
	}
	for _, r := range p.rules {
		m := r.pattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		return r.resolve(m)
	}
	return Descriptor{}, false
}

// ClassifyUnknown reports whether a name that failed Parse is a _count, _children or
// _version request on an element that exists but does not support it.
func (p *Parser) ClassifyUnknown(name string) Keyword {
	for suffix, kind := range map[string]Keyword{
		SuffixCount:    CountKeyword,
		SuffixChildren: ChildrenKeyword,
		SuffixVersion:  VersionKeyword,
	} {
		base, ok := strings.CutSuffix(name, suffix)
		if !ok || base == "" {
			continue
		}
		if _, ok := p.Parse(base); ok && p.reserved(base) {
			return kind
		}
		if _, ok := p.Parse(base + SuffixChildren); ok {
			return kind
		}
	}
	return NotKeyword
}

func (p *Parser) reserved(name string) bool {
	for _, root := range p.roots {
		if name == root || strings.HasPrefix(name, root+".") {
			return true
		}
	}
	return false
}

// index parses a collection index. Digit runs too long for an int clamp to
// math.MaxInt so they report as out of range rather than undefined.
func index(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) && n > 0 {
		return n, true
	}
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
