package cli

import (
	"github.com/spf13/cobra"

	"github.com/yanqian/trip-advisor/internal/domain/advisor"
)

func newProfilesCommand(svc advisor.Service, emit emitFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles [id]",
		Short: "List traveler ids, or show one profile",
		Example: `  tripctl profiles
  tripctl profiles alex`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 1 {
				p, err := svc.GetProfile(ctx, args[0])
				if err != nil {
					return err
				}
				return emit(cmd, p)
			}
			ids, err := svc.ListProfiles(ctx)
			if err != nil {
				return err
			}
			return emit(cmd, map[string][]string{"profiles": ids})
		},
	}
}

func newForecastCommand(svc advisor.Service, emit emitFunc) *cobra.Command {
	var req advisor.ForecastRequest

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Generate the synthetic daily forecast",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := svc.GetForecast(cmd.Context(), req)
			if err != nil {
				return err
			}
			return emit(cmd, resp)
		},
	}
	cmd.Flags().StringVar(&req.Location, "location", "", "Destination name (default from config)")
	cmd.Flags().StringVar(&req.StartDate, "start", "", "First forecast day, YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&req.Days, "days", 0, "Forecast horizon in days (default from config)")
	return cmd
}

func newWindowsCommand(svc advisor.Service, emit emitFunc) *cobra.Command {
	var (
		forecastReq advisor.ForecastRequest
		length      int
	)

	cmd := &cobra.Command{
		Use:   "windows",
		Short: "Find the generic best and worst travel windows",
		RunE: func(cmd *cobra.Command, _ []string) error {
			forecast, err := svc.GetForecast(cmd.Context(), forecastReq)
			if err != nil {
				return err
			}
			resp, err := svc.FindWindows(cmd.Context(), advisor.WindowsRequest{Forecasts: forecast.Days, TripLength: length})
			if err != nil {
				return err
			}
			return emit(cmd, resp)
		},
	}
	cmd.Flags().StringVar(&forecastReq.Location, "location", "", "Destination name (default from config)")
	cmd.Flags().StringVar(&forecastReq.StartDate, "start", "", "First forecast day, YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&forecastReq.Days, "days", 0, "Forecast horizon in days (default from config)")
	cmd.Flags().IntVar(&length, "length", 7, "Trip length in days")
	return cmd
}

func newRecommendCommand(svc advisor.Service, emit emitFunc) *cobra.Command {
	var req advisor.RecommendRequest

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend a travel window with supporting flight and hotel",
		Example: `  tripctl recommend --user alex --start 2025-07-10
  tripctl recommend --user sam --origin LAX --days 21`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec, err := svc.Recommend(cmd.Context(), req)
			if err != nil {
				return err
			}
			return emit(cmd, rec)
		},
	}
	cmd.Flags().StringVarP(&req.UserID, "user", "u", "", "Traveler id")
	cmd.Flags().StringVar(&req.Location, "location", "", "Destination name (default from config)")
	cmd.Flags().StringVar(&req.Origin, "origin", "", "Origin airport (default from config)")
	cmd.Flags().StringVar(&req.StartDate, "start", "", "First forecast day, YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&req.Days, "days", 0, "Forecast horizon in days (default from config)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
