// Package cli implements the taggin query surface: subcommands that load
// a persisted structured log and run one search against it.
package cli

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ESPR3SS0/Taggin/storage"
	"github.com/ESPR3SS0/Taggin/store"
)

// NewRootCmd assembles the command tree. Output goes through the cobra
// command's streams so tests can capture it.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "taggin",
		Short:         "Search persisted taggin structured logs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newByDateCmd(), newByTagCmd(), newFuzzyCmd(), newTagsCmd())
	return root
}

func newByDateCmd() *cobra.Command {
	var startStr, endStr string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "by-date PATH",
		Short: "Records within an inclusive timestamp range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(args[0])
			if err != nil {
				return err
			}
			start, err := parseTimeArg(startStr)
			if err != nil {
				return err
			}
			end, err := parseTimeArg(endStr)
			if err != nil {
				return err
			}
			return printRecords(cmd, st.SearchByDate(start, end), jsonOut)
		},
	}
	cmd.Flags().StringVar(&startStr, "start", "", "inclusive lower bound (ISO8601)")
	cmd.Flags().StringVar(&endStr, "end", "", "inclusive upper bound (ISO8601)")
	cmd.Flags().BoolVar(&jsonOut, "json-output", false, "emit a JSON array")
	return cmd
}

func newByTagCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "by-tag PATH PATTERN",
		Short: "Records whose tag matches a glob pattern",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(args[0])
			if err != nil {
				return err
			}
			hits, err := st.SearchByTag(args[1])
			if err != nil {
				return err
			}
			return printRecords(cmd, hits, jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json-output", false, "emit a JSON array")
	return cmd
}

func newFuzzyCmd() *cobra.Command {
	var threshold float64
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "fuzzy PATH TEXT",
		Short: "Records whose message approximately matches TEXT",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(args[0])
			if err != nil {
				return err
			}
			var hits []store.Record
			if cmd.Flags().Changed("limit") {
				hits = st.SearchFuzzyN(args[1], threshold, limit)
			} else {
				hits = st.SearchFuzzy(args[1], threshold)
			}
			return printRecords(cmd, hits, jsonOut)
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", 0.55, "minimum similarity score in [0,1]")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results")
	cmd.Flags().BoolVar(&jsonOut, "json-output", false, "emit a JSON array")
	return cmd
}

func newTagsCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "tags PATH",
		Short: "Tag frequencies, most frequent first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(args[0])
			if err != nil {
				return err
			}
			return printTagCounts(cmd, store.SortedTagCounts(st.TagCounts()), jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json-output", false, "emit a JSON array")
	return cmd
}

func loadStore(path string) (*store.Store, error) {
	records, err := storage.Load(path)
	if err != nil {
		return nil, err
	}
	return store.FromRecords(records), nil
}

// parseTimeArg parses an ISO8601 bound. Blank strings mean unbounded, as
// does an all-whitespace value. Zoneless values are taken in local time;
// an explicit RFC3339 offset is honored.
func parseTimeArg(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339, "2006-01-02"} {
		if ts, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, errors.Errorf("invalid date %q", s)
}
