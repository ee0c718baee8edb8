package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danmuck/rtectl/internal/datamodel"
	"github.com/danmuck/rtectl/internal/validate"
)

func newValidateCmd() *cobra.Command {
	var rng string
	cmd := &cobra.Command{
		Use:   "validate <version> <tag> <value>",
		Short: "Check a value against a SCORM data type",
		Example: `  rtectl validate 2004 real 0.5 --range ZeroToOne
  rtectl validate 1.2 CMITimespan 0001:30:00`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := checkValue(datamodel.Version(args[0]), args[1], args[2], validate.Range(rng))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%q is not a valid %s", args[2], args[1])
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	cmd.Flags().StringVar(&rng, "range", "", "numeric range checked after the type (e.g. ZeroToOne)")
	return cmd
}

func checkValue(v datamodel.Version, tag, value string, rng validate.Range) (bool, error) {
	var validator validate.Validator
	switch v {
	case datamodel.Scorm12:
		validator = validate.Scorm12()
	case datamodel.Scorm2004:
		validator = validate.Scorm2004()
	default:
		return false, fmt.Errorf("%w: %q", datamodel.ErrUnknownVersion, v)
	}
	ok, err := validator.Validate(value, tag)
	if err != nil || !ok {
		return false, err
	}
	return validate.InRange(value, rng), nil
}
