package cli

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/yanqian/trip-advisor/internal/domain/advisor"
)

// NewRootCommand builds the tripctl command tree on top of an advisor.
// Results are written as JSON to the command's output stream.
func NewRootCommand(svc advisor.Service) *cobra.Command {
	var compact bool

	root := &cobra.Command{
		Use:           "tripctl",
		Short:         "Plan a trip from weather, flight and hotel trade-offs",
		Long:          `tripctl runs the travel advisor locally: it inspects traveler profiles, generates the synthetic forecast and produces a recommendation with its confidence, alternatives and rejected options.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&compact, "compact", false, "Emit single-line JSON")

	emit := func(cmd *cobra.Command, v any) error {
		return writeJSON(cmd.OutOrStdout(), v, !compact)
	}

	root.AddCommand(
		newProfilesCommand(svc, emit),
		newForecastCommand(svc, emit),
		newWindowsCommand(svc, emit),
		newRecommendCommand(svc, emit),
	)
	return root
}

type emitFunc func(cmd *cobra.Command, v any) error

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
