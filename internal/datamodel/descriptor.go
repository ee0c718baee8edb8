// Package datamodel resolves SCORM data-model element names into descriptors.
//
// A descriptor is a pure function of the name: permissions, the value type, optional range,
// the collection indexes the name implies and the sibling elements that must be set first.
// SCORM 1.2 and SCORM 2004 each have their own table.
package datamodel

import (
	"slices"

	"github.com/danmuck/rtectl/internal/validate"
)

// Version selects the SCORM edition a parser, site or API serves.
type Version string

const (
	Scorm12   Version = "1.2"
	Scorm2004 Version = "2004"
)

func (v Version) Valid() bool {
	return v == Scorm12 || v == Scorm2004
}

// DataType is either a fixed validator tag or a tag derived from the current value of a
// sibling element. Derived types are resolved as Prefix + value(Sibling).
type DataType struct {
	Tag     string
	Sibling string
	Prefix  string
}

func Fixed(tag string) DataType {
	return DataType{Tag: tag}
}

// FromSibling builds a type resolved through the sibling's stored value, e.g. the
// learner_response grammar is "response." + cmi.interactions.n.type.
func FromSibling(sibling, prefix string) DataType {
	return DataType{Sibling: sibling, Prefix: prefix}
}

func (t DataType) Derived() bool {
	return t.Sibling != ""
}

// Resolve returns the concrete tag given the sibling's value.
func (t DataType) Resolve(siblingValue string) string {
	if !t.Derived() {
		return t.Tag
	}
	return t.Prefix + siblingValue
}

// IndexRequirement says the element lives at Index of Collection; Collection._count gates access.
type IndexRequirement struct {
	Collection string
	Index      int
}

type Descriptor struct {
	CanRead           bool
	CanWrite          bool
	IsKeyword         bool
	Type              DataType
	Range             validate.Range
	IndexRequirements []IndexRequirement
	Dependencies      []string
	Default           string
	HasDefault        bool
	// UniqueIn names the collection whose other members' .id must differ from the value.
	UniqueIn string
}

// IndexIn returns the element's index within collection.
func (d Descriptor) IndexIn(collection string) (int, bool) {
	for _, req := range d.IndexRequirements {
		if req.Collection == collection {
			return req.Index, true
		}
	}
	return 0, false
}

func (d Descriptor) clone() Descriptor {
	d.IndexRequirements = slices.Clone(d.IndexRequirements)
	d.Dependencies = slices.Clone(d.Dependencies)
	return d
}

func readOnly(tag string) Descriptor {
	return Descriptor{CanRead: true, Type: Fixed(tag)}
}

func readWrite(tag string) Descriptor {
	return Descriptor{CanRead: true, CanWrite: true, Type: Fixed(tag)}
}

func writeOnly(tag string) Descriptor {
	return Descriptor{CanWrite: true, Type: Fixed(tag)}
}

func derived(sibling, prefix string) Descriptor {
	return Descriptor{CanRead: true, CanWrite: true, Type: FromSibling(sibling, prefix)}
}

func children(list string) Descriptor {
	return Descriptor{CanRead: true, IsKeyword: true, Type: Fixed(validate.TagKeyword), Default: list, HasDefault: true}
}

func count() Descriptor {
	return Descriptor{CanRead: true, IsKeyword: true, Type: Fixed(validate.TagKeyword), Default: "0", HasDefault: true}
}

func version(literal string) Descriptor {
	return Descriptor{CanRead: true, IsKeyword: true, Type: Fixed(validate.TagKeyword), Default: literal, HasDefault: true}
}

func (d Descriptor) withDefault(v string) Descriptor {
	d.Default = v
	d.HasDefault = true
	return d
}

func (d Descriptor) withRange(r validate.Range) Descriptor {
	d.Range = r
	return d
}

func (d Descriptor) within(collection string, index int) Descriptor {
	d.IndexRequirements = append(slices.Clone(d.IndexRequirements), IndexRequirement{Collection: collection, Index: index})
	return d
}

func (d Descriptor) dependsOn(names ...string) Descriptor {
	d.Dependencies = append(slices.Clone(d.Dependencies), names...)
	return d
}

func (d Descriptor) uniqueIn(collection string) Descriptor {
	d.UniqueIn = collection
	return d
}
