package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

type EventRow struct {
	ID         string `json:"_id" yaml:"id"`
	RequestID  string `json:"request_id" yaml:"request_id"`
	Author     string `json:"author" yaml:"author"`
	Action     string `json:"action" yaml:"action"`
	FromBranch string `json:"from_branch" yaml:"from_branch"`
	ToBranch   string `json:"to_branch" yaml:"to_branch"`
	Timestamp  string `json:"timestamp" yaml:"timestamp"`
}

func printResult(v interface{}) {
	switch output {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(v)
		return
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		enc.Encode(v)
		enc.Close()
		return
	}
	printTable(v)
}

func printTable(v interface{}) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	switch data := v.(type) {
	case []EventRow:
		if len(data) == 0 {
			fmt.Println("No events found.")
			return
		}
		fmt.Fprintln(w, "ACTION\tAUTHOR\tFROM\tTO\tREQUEST ID\tTIMESTAMP")
		for _, e := range data {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", e.Action, e.Author, e.FromBranch, e.ToBranch, truncate(e.RequestID, 12), e.Timestamp)
		}
	default:
		json.NewEncoder(os.Stdout).Encode(v)
	}
	w.Flush()
}

// describe renders an event as one sentence, the way dashboards show it.
func describe(e EventRow) string {
	switch e.Action {
	case "PUSH":
		return fmt.Sprintf("%q pushed to %q on %s", e.Author, e.ToBranch, e.Timestamp)
	case "PULL_REQUEST":
		return fmt.Sprintf("%q submitted a pull request from %q to %q on %s", e.Author, e.FromBranch, e.ToBranch, e.Timestamp)
	case "MERGE":
		return fmt.Sprintf("%q merged branch %q to %q on %s", e.Author, e.FromBranch, e.ToBranch, e.Timestamp)
	}
	return fmt.Sprintf("%q %s on %s", e.Author, e.Action, e.Timestamp)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
