package syscallmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteJSON writes calls together with the calling convention of arch.
func WriteJSON(w io.Writer, arch Architecture, calls []SystemCall) error {
	archMap, err := NewArchitectureMapping(arch, calls)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(archMap)
}

// WriteTable writes one row per call with the parameters laid out under the
// registers that carry them on arch.
func WriteTable(w io.Writer, arch Architecture, calls []SystemCall) error {
	callingConv, err := ConventionFor(arch)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 4, 8, 3, ' ', 0)
	header := fmt.Sprintf("Name\tReturn(%s)\t", callingConv.Return)
	for i, reg := range callingConv.Args() {
		header += fmt.Sprintf("Arg%d(%s)\t", i, reg)
	}
	if _, err := fmt.Fprintln(tw, header); err != nil {
		return err
	}

	for _, call := range calls {
		var args [MaxArgs]string
		for i, param := range call.Params {
			if i == MaxArgs {
				break
			}
			args[i] = param.String()
		}
		row := call.Name + "\t" + call.ReturnType + "\t"
		for _, arg := range args {
			row += arg + "\t"
		}
		if _, err := fmt.Fprintln(tw, row); err != nil {
			return err
		}
	}
	return tw.Flush()
}
