package main

import (
	"github.com/spf13/cobra"

	"github.com/joe-black-jb/mops-revenue/internal/mops"
	"github.com/joe-black-jb/mops-revenue/internal/revenue"
)

var (
	downloadMarket string
	downloadYear   int
	downloadMonth  int
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download one month of revenue data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		market, err := parseMarketFlag(downloadMarket)
		if err != nil {
			return err
		}
		p := mops.Period{Year: downloadYear, Month: downloadMonth}
		if err := p.Validate(); err != nil {
			return err
		}

		ctx := cmd.Context()
		s, err := newSaver(ctx)
		if err != nil {
			return err
		}
		table, err := newDownloader().DownloadRevenueData(ctx, p.Year, p.Month, market)
		if err != nil {
			return err
		}
		path, err := s.save(market)(ctx, table, p)
		if err != nil {
			return err
		}
		cmd.Printf("%s: %d rows saved to %s\n", p, table.Len(), path)
		return nil
	},
}

func init() {
	downloadCmd.Flags().StringVar(&downloadMarket, "market", string(revenue.MarketListed), "market type (sii or otc)")
	downloadCmd.Flags().IntVar(&downloadYear, "year", 0, "ROC year, e.g. 113")
	downloadCmd.Flags().IntVar(&downloadMonth, "month", 0, "month (1-12)")
	_ = downloadCmd.MarkFlagRequired("year")
	_ = downloadCmd.MarkFlagRequired("month")
	rootCmd.AddCommand(downloadCmd)
}
