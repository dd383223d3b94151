package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/cadencehq/cadence/internal/scheduling/domain"
	"github.com/spf13/cobra"
)

var (
	slotsDate string
	slotsBusy []string
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Find available focus slots",
	Long: `Find the focus blocks that fit into the working day around your
busy intervals.

Examples:
  cadence slots
  cadence slots --date 2026-09-01
  cadence slots --busy 10:00-11:00 --busy 14:00-15:30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := Resolve()
		if err != nil {
			return err
		}

		date := time.Now()
		if slotsDate != "" {
			date, err = time.Parse("2006-01-02", slotsDate)
			if err != nil {
				return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
			}
		}

		busy := make([]domain.Interval, 0, len(slotsBusy))
		for _, raw := range slotsBusy {
			interval, err := parseBusyInterval(date, raw)
			if err != nil {
				return err
			}
			busy = append(busy, interval)
		}

		slots := c.DateCalculator.AvailableSlots(date, busy)

		fmt.Printf("\n  FOCUS SLOTS for %s\n", date.Format("Mon, Jan 2, 2006"))
		fmt.Println(strings.Repeat("-", 44))
		if len(slots) == 0 {
			fmt.Println("  No focus slots available.")
		}
		for _, s := range slots {
			fmt.Printf("  %s - %s (%d min)\n",
				s.Start.Format("15:04"), s.End.Format("15:04"),
				int(s.Duration().Minutes()))
		}
		fmt.Println()
		return nil
	},
}

func parseBusyInterval(date time.Time, raw string) (domain.Interval, error) {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return domain.Interval{}, fmt.Errorf("invalid busy interval %q (use HH:MM-HH:MM)", raw)
	}
	start, err := time.Parse("15:04", strings.TrimSpace(parts[0]))
	if err != nil {
		return domain.Interval{}, fmt.Errorf("invalid busy interval %q: %w", raw, err)
	}
	end, err := time.Parse("15:04", strings.TrimSpace(parts[1]))
	if err != nil {
		return domain.Interval{}, fmt.Errorf("invalid busy interval %q: %w", raw, err)
	}
	if !end.After(start) {
		return domain.Interval{}, fmt.Errorf("invalid busy interval %q: end must be after start", raw)
	}
	anchor := func(t time.Time) time.Time {
		return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
	}
	return domain.Interval{Start: anchor(start), End: anchor(end)}, nil
}

func init() {
	slotsCmd.Flags().StringVarP(&slotsDate, "date", "d", "", "date to plan (YYYY-MM-DD, defaults to today)")
	slotsCmd.Flags().StringArrayVar(&slotsBusy, "busy", nil, "busy interval (HH:MM-HH:MM, repeatable)")
	AddCommand(slotsCmd)
}
