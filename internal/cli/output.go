package cli

import (
	"encoding/json"
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/ESPR3SS0/Taggin/storage"
	"github.com/ESPR3SS0/Taggin/store"
)

const outTimeLayout = "2006-01-02T15:04:05.999999999"

type recordJSON struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Name      string `json:"name"`
	Tag       string `json:"tag"`
	Message   string `json:"message"`
}

type tagCountJSON struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

func printRecords(cmd *cobra.Command, records []store.Record, jsonOut bool) error {
	out := cmd.OutOrStdout()
	if !jsonOut {
		for _, rec := range records {
			fmt.Fprintln(out, storage.FormatLine(rec))
		}
		return nil
	}

	rows := make([]recordJSON, 0, len(records))
	for _, rec := range records {
		rows = append(rows, recordJSON{
			Timestamp: rec.Time.Format(outTimeLayout),
			Level:     rec.Level.String(),
			Name:      rec.Name,
			Tag:       rec.Tag,
			Message:   rec.Message,
		})
	}
	return writeJSON(cmd, rows)
}

func printTagCounts(cmd *cobra.Command, counts []store.TagCount, jsonOut bool) error {
	out := cmd.OutOrStdout()
	if !jsonOut {
		table := uitable.New()
		table.AddRow("Tag", "Count")
		for _, tc := range counts {
			table.AddRow(tc.Tag, tc.Count)
		}
		fmt.Fprintln(out, table)
		return nil
	}

	rows := make([]tagCountJSON, 0, len(counts))
	for _, tc := range counts {
		rows = append(rows, tagCountJSON{Tag: tc.Tag, Count: tc.Count})
	}
	return writeJSON(cmd, rows)
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
