package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/lzjever/ledger-audit/internal/api"
)

func printResult(v interface{}) {
	writeResult(os.Stdout, output, v)
}

func writeResult(out io.Writer, format string, v interface{}) {
	if format == "json" {
		json.NewEncoder(out).Encode(v)
		return
	}
	writeTable(out, v)
}

func writeTable(out io.Writer, v interface{}) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	switch data := v.(type) {
	case api.HealthResponse:
		fmt.Fprintf(w, "Status:\t%s\n", data.Status)
		fmt.Fprintf(w, "Timestamp:\t%s\n", data.Timestamp)
	case api.VersionResponse:
		fmt.Fprintf(w, "Service:\t%s\n", data.Service)
		fmt.Fprintf(w, "Version:\t%s\n", data.Version)
		fmt.Fprintf(w, "Language:\t%s\n", data.Language)
	case api.ReadyResponse:
		fmt.Fprintf(w, "Ready:\t%t\n", data.Ready)
		names := make([]string, 0, len(data.Checks))
		for name := range data.Checks {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %s:\t%s\n", name, data.Checks[name])
		}
	case api.RecordResponse:
		fmt.Fprintf(w, "Status:\t%s\n", data.Status)
		fmt.Fprintf(w, "Audit ID:\t%s\n", data.AuditID)
	default:
		json.NewEncoder(out).Encode(v)
	}
	w.Flush()
}
