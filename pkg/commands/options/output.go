package options

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/unsched/pkg/printers"
)

// OutputOptions
type OutputOptions struct {
	Output string
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().StringVarP(&po.Output, "output", "o", "",
		"Output format. One of 'text', 'json' or 'yaml'.")
}

// Encoding validates the flag value.
func (o *OutputOptions) Encoding() (string, error) {
	return printers.ParseEncoding(o.Output)
}

// HandleError prints err in the requested encoding and swallows it. Text
// output leaves err to cobra.
func (o *OutputOptions) HandleError(err error) error {
	if err == nil {
		return nil
	}
	enc, encErr := o.Encoding()
	if encErr != nil || enc == printers.EncodingText {
		return err
	}
	out := map[string]string{
		"error": err.Error(),
	}
	if encErr := printers.Encode(color.Output, enc, out); encErr != nil {
		return fmt.Errorf("%w (encoding error: %v)", err, encErr)
	}
	return nil
}
