package hints

import (
	"fmt"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/errors"
)

const runCommand = "run"

// Default returns a registry with the cortex2jstore providers registered.
func Default() *Registry {
	r := NewRegistry(3)
	r.Register(duplicateKeysProvider)
	r.Register(droppedNamesProvider)
	r.Register(unmatchedProvider)
	r.Register(unsupportedFormatProvider)
	r.Register(missingInputProvider)
	r.Register(missingFieldProvider)
	return r
}

func duplicateKeysProvider(ctx Context) []*Hint {
	if ctx.Command != runCommand || !ctx.Succeeded || ctx.DuplicateKeys == 0 {
		return nil
	}
	return []*Hint{New(fmt.Sprintf(
		"%d Cortex records share a file name with a later record and were ignored", ctx.DuplicateKeys,
	)).WithTags("warning")}
}

func droppedNamesProvider(ctx Context) []*Hint {
	if ctx.Command != runCommand || !ctx.Succeeded || ctx.NamesDropped == 0 {
		return nil
	}
	return []*Hint{NewCommand(
		fmt.Sprintf("%d names could not be formatted and were left out", ctx.NamesDropped),
		"cortex2jstore names --list \"<people field value>\"",
	).WithTags("names")}
}

func unmatchedProvider(ctx Context) []*Hint {
	if ctx.Command != runCommand || !ctx.Succeeded || ctx.Unmatched == 0 {
		return nil
	}
	if ctx.MatchedOnly {
		return []*Hint{New(fmt.Sprintf(
			"%d of %d JStore records had no Cortex match and were left out", ctx.Unmatched, ctx.Targets,
		)).WithTags("matching")}
	}
	return []*Hint{NewCommand(
		fmt.Sprintf("%d of %d JStore records had no Cortex match and were kept unchanged", ctx.Unmatched, ctx.Targets),
		"cortex2jstore run --matched-only",
	).WithTags("matching")}
}

func unsupportedFormatProvider(ctx Context) []*Hint {
	if ctx.Succeeded || !errors.IsUnsupportedFormat(ctx.Err) {
		return nil
	}
	return []*Hint{New("Save the workbook as .xlsx or .csv and point the command at the new file").WithTags("input")}
}

func missingInputProvider(ctx Context) []*Hint {
	if ctx.Succeeded || !errors.IsNotFound(ctx.Err) {
		return nil
	}
	return []*Hint{NewCommand(
		"Point the run at your exports, or set CORTEX2JSTORE_CORTEX and CORTEX2JSTORE_JSTORE",
		"cortex2jstore run --cortex <export.csv> --jstore <jstore.xlsx>",
	).WithTags("input")}
}

func missingFieldProvider(ctx Context) []*Hint {
	if ctx.Succeeded || !errors.IsMissingField(ctx.Err) {
		return nil
	}
	return []*Hint{New(
		"The field mapping names a column the input files do not have; check --mapping and keep --clean-headers on for Cortex exports",
	).WithTags("mapping")}
}
