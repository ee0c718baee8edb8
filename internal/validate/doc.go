// Package validate owns the lexical type checks for SCORM data-model values.
//
// Ownership boundary:
// - SCORM 1.2 CMI* type predicates
// - SCORM 2004 type predicates, including interaction response/pattern grammars
// - numeric range checks applied after the type check
//
// Every predicate is a pure function of its input string.
package validate
