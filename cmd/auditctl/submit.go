package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lzjever/ledger-audit/internal/api"
	"github.com/lzjever/ledger-audit/internal/core"
)

var (
	submitAction   string
	submitActor    string
	submitResource string
	submitFields   []string
	submitFile     string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit an audit event",
	Long: `Submit an audit event built from flags, or send a JSON file verbatim with --file
("-" reads stdin).`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			body []byte
			err  error
		)
		if submitFile != "" {
			body, err = readEventFile(submitFile)
		} else {
			body, err = buildEvent(cmd, submitFields)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		client := NewClient(apiURL)
		var resp api.RecordResponse
		if err := client.Post("/audit", body, &resp); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printResult(resp)
	},
}

// buildEvent assembles the event from flags. Required fields are only set
// when their flag was given.
func buildEvent(cmd *cobra.Command, fields []string) ([]byte, error) {
	ev := core.NewEvent()
	for _, f := range []struct {
		flag, key string
		value     *string
	}{
		{"action", core.FieldAction, &submitAction},
		{"actor", core.FieldActor, &submitActor},
		{"resource", core.FieldResource, &submitResource},
	} {
		if cmd.Flags().Changed(f.flag) {
			if err := ev.Set(f.key, *f.value); err != nil {
				return nil, err
			}
		}
	}

	for _, kv := range fields {
		key, value, err := parseField(kv)
		if err != nil {
			return nil, err
		}
		if err := ev.Set(key, value); err != nil {
			return nil, err
		}
	}
	return json.Marshal(ev)
}

// parseField splits key=value. Values that parse as JSON keep their type,
// anything else is sent as a string.
func parseField(kv string) (string, interface{}, error) {
	key, raw, ok := strings.Cut(kv, "=")
	if !ok || key == "" {
		return "", nil, fmt.Errorf("field %q: want key=value", kv)
	}
	if !json.Valid([]byte(raw)) {
		return key, raw, nil
	}
	return key, json.RawMessage(raw), nil
}

func readEventFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read event file: %w", err)
	}
	return b, nil
}

func init() {
	submitCmd.Flags().StringVar(&submitAction, "action", "", "Action being audited")
	submitCmd.Flags().StringVar(&submitActor, "actor", "", "Identity performing the action")
	submitCmd.Flags().StringVar(&submitResource, "resource", "", "Target of the action")
	submitCmd.Flags().StringArrayVarP(&submitFields, "field", "f", nil, "Extra field as key=value (repeatable)")
	submitCmd.Flags().StringVar(&submitFile, "file", "", "Send this JSON file instead of building from flags")
	for _, name := range []string{"action", "actor", "resource", "field"} {
		submitCmd.MarkFlagsMutuallyExclusive("file", name)
	}
	rootCmd.AddCommand(submitCmd)
}
