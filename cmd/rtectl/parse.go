package main

import (
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/danmuck/rtectl/internal/datamodel"
)

type elementView struct {
	Element      string         `yaml:"element"`
	Version      string         `yaml:"version"`
	Known        bool           `yaml:"known"`
	Keyword      bool           `yaml:"keyword,omitempty"`
	Reserved     string         `yaml:"reserved,omitempty"`
	Readable     bool           `yaml:"readable"`
	Writable     bool           `yaml:"writable"`
	Type         string         `yaml:"type,omitempty"`
	Sibling      string         `yaml:"sibling,omitempty"`
	Prefix       string         `yaml:"prefix,omitempty"`
	Range        string         `yaml:"range,omitempty"`
	Indexes      map[string]int `yaml:"indexes,omitempty"`
	Dependencies []string       `yaml:"dependencies,omitempty"`
	Default      *string        `yaml:"default,omitempty"`
	UniqueIn     string         `yaml:"unique_in,omitempty"`
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <version> <element>",
		Short: "Show how a data model element name resolves",
		Example: `  rtectl parse 2004 cmi.interactions.3.correct_responses.0.pattern
  rtectl parse 1.2 cmi.core.lesson_status`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := describeElement(datamodel.Version(args[0]), args[1])
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), view)
		},
	}
}

func describeElement(v datamodel.Version, name string) (elementView, error) {
	p, err := datamodel.New(v)
	if err != nil {
		return elementView{}, err
	}
	view := elementView{Element: name, Version: string(p.Version())}
	d, ok := p.Parse(name)
	if !ok {
		if kw := p.ClassifyUnknown(name); kw != datamodel.NotKeyword {
			view.Reserved = kw.String()
		}
		return view, nil
	}
	view.Known = true
	view.Readable = d.CanRead
	view.Writable = d.CanWrite
	view.Keyword = d.IsKeyword
	view.Type = d.Type.Tag
	view.Sibling = d.Type.Sibling
	view.Prefix = d.Type.Prefix
	view.Range = string(d.Range)
	view.Dependencies = d.Dependencies
	view.UniqueIn = d.UniqueIn
	if d.HasDefault {
		def := d.Default
		view.Default = &def
	}
	if len(d.IndexRequirements) > 0 {
		view.Indexes = make(map[string]int, len(d.IndexRequirements))
		for _, req := range d.IndexRequirements {
			view.Indexes[req.Collection] = req.Index
		}
	}
	return view, nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
