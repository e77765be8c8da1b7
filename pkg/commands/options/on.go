package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutISO = "2006-1-2"
)

// AnchorOptions
type AnchorOptions struct {
	AnchorString string
}

func AddAnchorArgs(cmd *cobra.Command, o *AnchorOptions) {
	cmd.Flags().StringVar(&o.AnchorString, "anchor", "",
		`Monday that starts week A, example: --anchor="2024-1-1". Defaults to the anchor config key.`)
}

// GetAnchor returns the flag date in loc, or def when the flag is unset.
func (o *AnchorOptions) GetAnchor(def time.Time, loc *time.Location) (time.Time, error) {
	if o.AnchorString == "" {
		return def, nil
	}
	t, err := time.ParseInLocation(layoutISO, o.AnchorString, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("anchor %q: %w", o.AnchorString, err)
	}
	if t.Weekday() != time.Monday {
		return time.Time{}, fmt.Errorf("anchor %q is a %s, expected a Monday", o.AnchorString, t.Weekday())
	}
	return t, nil
}
