package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag string
	rootCmd = &cobra.Command{
		Use:   "eventctl",
		Short: "CLI client for the event finder REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Event finder base URL")

	// search subcommand
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Search the event catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			query, _ := cmd.Flags().GetString("query")
			location, _ := cmd.Flags().GetString("location")
			theme, _ := cmd.Flags().GetString("theme")
			mood, _ := cmd.Flags().GetString("mood")
			upcoming, _ := cmd.Flags().GetBool("upcoming")
			topk, _ := cmd.Flags().GetInt("topk")
			return runSearch(apiFlag, query, location, theme, mood, upcoming, topk, os.Stdout)
		},
	}
	searchCmd.Flags().StringP("query", "q", "", "Search query text")
	searchCmd.Flags().StringP("location", "l", "", "Filter by location substring")
	searchCmd.Flags().StringP("theme", "t", "", "Filter by theme")
	searchCmd.Flags().StringP("mood", "m", "", "Filter by mood")
	searchCmd.Flags().Bool("upcoming", false, "Only upcoming events")
	searchCmd.Flags().IntP("topk", "k", 0, "Number of top results to return (0 uses the server default)")
	rootCmd.AddCommand(searchCmd)

	// similar subcommand
	similarCmd := &cobra.Command{
		Use:   "similar <eventID>",
		Short: "List events similar to a given event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topk, _ := cmd.Flags().GetInt("topk")
			return runSimilar(apiFlag, args[0], topk, os.Stdout)
		},
	}
	similarCmd.Flags().IntP("topk", "k", 0, "Number of results to return (0 uses the server default)")
	rootCmd.AddCommand(similarCmd)

	// recommend subcommand
	recommendCmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend events for a set of themes and moods",
		RunE: func(cmd *cobra.Command, args []string) error {
			themes, _ := cmd.Flags().GetStringSlice("themes")
			moods, _ := cmd.Flags().GetStringSlice("moods")
			topk, _ := cmd.Flags().GetInt("topk")
			if len(themes) == 0 && len(moods) == 0 {
				return fmt.Errorf("--themes or --moods required")
			}
			return runRecommend(apiFlag, themes, moods, topk, os.Stdout)
		},
	}
	recommendCmd.Flags().StringSlice("themes", nil, "Preferred themes (comma separated)")
	recommendCmd.Flags().StringSlice("moods", nil, "Preferred moods (comma separated)")
	recommendCmd.Flags().IntP("topk", "k", 0, "Number of results to return (0 uses the server default)")
	rootCmd.AddCommand(recommendCmd)

	// rate subcommand
	rateCmd := &cobra.Command{
		Use:   "rate <eventID>",
		Short: "Submit a rating for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rating, _ := cmd.Flags().GetInt("rating")
			comment, _ := cmd.Flags().GetString("comment")
			return runRate(apiFlag, args[0], rating, comment, os.Stdout)
		},
	}
	rateCmd.Flags().IntP("rating", "r", 0, "Rating from 1 to 5 (required)")
	rateCmd.Flags().StringP("comment", "c", "", "Optional comment")
	_ = rateCmd.MarkFlagRequired("rating")
	rootCmd.AddCommand(rateCmd)

	// rating subcommand
	ratingCmd := &cobra.Command{
		Use:   "rating <eventID>",
		Short: "Show the aggregated rating for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRating(apiFlag, args[0], os.Stdout)
		},
	}
	rootCmd.AddCommand(ratingCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
