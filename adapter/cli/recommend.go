package cli

import (
	"errors"
	"fmt"

	"github.com/cadencehq/cadence/internal/analysis/application/queries"
	"github.com/cadencehq/cadence/internal/analysis/domain"
	"github.com/spf13/cobra"
)

var recommendRange string

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Get workflow recommendations",
	Long: `Derive actionable recommendations from the latest analysis.

Examples:
  cadence recommend
  cadence recommend --range month`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, userID, err := Resolve()
		if err != nil {
			return err
		}

		rng, ok := domain.ParseNamedRange(recommendRange)
		if !ok {
			return fmt.Errorf("invalid range %q (use day, week or month)", recommendRange)
		}

		recommendations, err := c.GetRecommendationsHandler.Handle(cmd.Context(), queries.GetRecommendationsQuery{
			UserID: userID,
			Range:  rng,
		})
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientData) {
				fmt.Printf("\n  Not enough task events in the last %s for recommendations.\n", rng)
				return nil
			}
			return fmt.Errorf("failed to get recommendations: %w", err)
		}

		fmt.Printf("\n  RECOMMENDATIONS (%s)\n\n", rng)
		for i, rec := range recommendations {
			fmt.Printf("  %d. %s\n", i+1, rec)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	recommendCmd.Flags().StringVarP(&recommendRange, "range", "r", "week", "analysis range (day, week, month)")
	AddCommand(recommendCmd)
}
