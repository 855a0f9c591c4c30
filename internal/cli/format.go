package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	countdown "github.com/d093w1z/countdown/api"
)

func newFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format DURATION",
		Short: "Print a duration as HH:MM:SS",
		Long:  "Print a duration as HH:MM:SS. DURATION is a Go duration (90s, 1h2m3s) or a plain number of milliseconds.",
		Example: `  countdown format 3723000   # 01:02:03
  countdown format 25m`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDuration(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), countdown.FormatHMS(d))
			return nil
		},
	}
}

func parseDuration(text string) (time.Duration, error) {
	if ms, err := strconv.ParseInt(text, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", countdown.ErrInvalidTime, text)
	}
	return d, nil
}
