package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/qhuang/xiehouyu-arena/internal/config"
	"github.com/qhuang/xiehouyu-arena/internal/dependencies/random"
	"github.com/qhuang/xiehouyu-arena/internal/model"
	"github.com/qhuang/xiehouyu-arena/internal/services/riddle"
	"github.com/qhuang/xiehouyu-arena/internal/storage/memory"
)

func newExploreCmd(configPath *string) *cobra.Command {
	var datasetPath string

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Explore the riddle dataset",
	}

	cmd.PersistentFlags().StringVar(&datasetPath, "data", "", "path to the dataset JSON file (overrides config)")

	cmd.AddCommand(newExploreStatsCmd(configPath, &datasetPath))
	cmd.AddCommand(newExploreLookupCmd(configPath, &datasetPath))
	cmd.AddCommand(newExploreSearchCmd(configPath, &datasetPath))
	cmd.AddCommand(newExploreRandomCmd(configPath, &datasetPath))

	return cmd
}

// loadDataset builds a standalone riddle service over the local dataset file.
// Exploration never touches a shared backend, so a throwaway memory store is fine.
func loadDataset(configPath, datasetPath string) (*riddle.Service, error) {
	path := datasetPath
	if path == "" {
		cfg := config.Default()
		if configPath != "" {
			loaded, err := config.Load(configPath)
			if err != nil {
				return nil, err
			}
			cfg = loaded
		}
		path = cfg.Dataset.Path
	}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	service := riddle.New(memory.New(), random.New(), logger)
	if err := service.LoadFromFile(context.Background(), path); err != nil {
		return nil, err
	}
	return service, nil
}

func newExploreStatsCmd(configPath, datasetPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print summary statistics for the dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := loadDataset(*configPath, *datasetPath)
			if err != nil {
				return err
			}

			stats := service.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "entries:          %d\n", stats.Total)
			fmt.Fprintf(out, "unique riddles:   %d\n", stats.UniqueRiddles)
			fmt.Fprintf(out, "unique answers:   %d\n", stats.UniqueAnswers)
			fmt.Fprintf(out, "multi-answer:     %d\n", stats.MultiAnswer)
			fmt.Fprintf(out, "avg riddle runes: %.1f\n", stats.AvgRiddleLength)
			fmt.Fprintf(out, "avg answer runes: %.1f\n", stats.AvgAnswerLength)
			return nil
		},
	}
}

func newExploreLookupCmd(configPath, datasetPath *string) *cobra.Command {
	var byAnswer bool

	cmd := &cobra.Command{
		Use:   "lookup <text>",
		Short: "Look up the answer for an exact riddle, or riddles for an exact answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := loadDataset(*configPath, *datasetPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if byAnswer {
				riddles := service.LookupByAnswer(args[0])
				if len(riddles) == 0 {
					return fmt.Errorf("no riddle found with answer %q", args[0])
				}
				for _, r := range riddles {
					fmt.Fprintln(out, r)
				}
				return nil
			}

			answer, ok := service.LookupByRiddle(args[0])
			if !ok {
				return fmt.Errorf("riddle %q not found", args[0])
			}
			fmt.Fprintln(out, answer)
			return nil
		},
	}

	cmd.Flags().BoolVar(&byAnswer, "by-answer", false, "treat the argument as an answer instead of a riddle")
	return cmd
}

func newExploreSearchCmd(configPath, datasetPath *string) *cobra.Command {
	var field string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search entries containing a keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := loadDataset(*configPath, *datasetPath)
			if err != nil {
				return err
			}

			var results []model.RiddleEntry
			switch field {
			case "riddle":
				results = service.SearchRiddles(args[0], limit)
			case "answer":
				results = service.SearchAnswers(args[0], limit)
			default:
				return fmt.Errorf("invalid --field %q: must be 'riddle' or 'answer'", field)
			}

			printEntries(cmd.OutOrStdout(), results)
			return nil
		},
	}

	cmd.Flags().StringVar(&field, "field", "riddle", "which field to search: riddle or answer")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of results")
	return cmd
}

func newExploreRandomCmd(configPath, datasetPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "random [count]",
		Short: "Print random entries from the dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("invalid count %q", args[0])
				}
				count = n
			}

			service, err := loadDataset(*configPath, *datasetPath)
			if err != nil {
				return err
			}

			printEntries(cmd.OutOrStdout(), service.Sample(count))
			return nil
		},
	}
}

func printEntries(out io.Writer, entries []model.RiddleEntry) {
	for _, e := range entries {
		fmt.Fprintf(out, "%s —— %s\n", e.Riddle, e.Answer)
	}
}
