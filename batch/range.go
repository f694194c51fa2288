package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/joe-black-jb/mops-revenue/internal/mops"
	"github.com/joe-black-jb/mops-revenue/internal/revenue"
)

var (
	rangeMarket string
	rangeFrom   string
	rangeTo     string
	rangeDelay  time.Duration
)

var rangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Download every month between --from and --to",
	Long: `Download every month between --from and --to (inclusive), one request
at a time. Months that fail are logged and skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		market, err := parseMarketFlag(rangeMarket)
		if err != nil {
			return err
		}
		from, err := mops.ParsePeriod(rangeFrom)
		if err != nil {
			return err
		}
		to, err := mops.ParsePeriod(rangeTo)
		if err != nil {
			return err
		}
		delay := rangeDelay
		if !cmd.Flags().Changed("delay") {
			delay = cfg.BatchDelay
		}

		ctx := cmd.Context()
		s, err := newSaver(ctx)
		if err != nil {
			return err
		}
		saved, err := newDownloader().DownloadMultipleMonths(ctx, from, to, market, delay, s.save(market))
		for _, path := range saved {
			cmd.Println(path)
		}
		if err != nil {
			return err
		}
		cmd.Printf("%d file(s) saved for %s %s..%s\n", len(saved), market, from, to)
		return nil
	},
}

func init() {
	rangeCmd.Flags().StringVar(&rangeMarket, "market", string(revenue.MarketListed), "market type (sii or otc)")
	rangeCmd.Flags().StringVar(&rangeFrom, "from", "", "first month, e.g. 113/1")
	rangeCmd.Flags().StringVar(&rangeTo, "to", "", "last month, e.g. 113/6")
	rangeCmd.Flags().DurationVar(&rangeDelay, "delay", 2*time.Second, "wait between requests (default BATCH_DELAY)")
	_ = rangeCmd.MarkFlagRequired("from")
	_ = rangeCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(rangeCmd)
}
