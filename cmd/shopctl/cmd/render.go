package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/shopforge/shopctl/internal/api"
)

// table writes rows as an aligned table. Row values are printed with %v so
// callers can pass whatever the column holds.
func table(w io.Writer, header []string, rows [][]any) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprintf("%v", v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

// printPaging writes the pagination footer under a table.
func printPaging(w io.Writer, p api.Paging) {
	if p.TotalPages <= 1 && p.Total == 0 {
		return
	}
	fmt.Fprintf(w, "\npage %d of %d (%d total)\n", p.Page, p.TotalPages, p.Total)
}

// confirm returns the mutation gate for a command: with --yes it always
// passes, otherwise it prompts on the command's streams and accepts y/yes.
func confirm(cmd *cobra.Command, prompt string) func() bool {
	if assumeYes {
		return func() bool { return true }
	}
	return func() bool {
		fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	}
}

// promptLine reads one line interactively, returning it trimmed.
func promptLine(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// friendly turns a client error into the message a person should see.
// The raw error is already on the debug log by the time this runs.
func friendly(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s", api.UserMessage(err))
}

// fmtTime renders a timestamp for table output, blank when zero.
func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04")
}
