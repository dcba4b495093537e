package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/spec-kit/ticket-intake/internal/client"
	"github.com/spec-kit/ticket-intake/internal/intakeui"
)

var (
	serverURL string
	timeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:          "ticketform",
	Short:        "Submit support tickets from the terminal",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		model := intakeui.NewModel(client.New(serverURL, timeout), timeout)
		_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every submitted ticket",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tickets, err := client.New(serverURL, timeout).ListTickets(cmd.Context())
		if err != nil {
			return err
		}
		if len(tickets) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No tickets yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tTEAM\tISSUE TYPE\tNAME\tEMAIL")
		for _, t := range tickets {
			fmt.Fprintf(w, "#%d\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Status, t.Team, t.IssueType, t.Name, t.Email)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:3001", "intake API base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", client.DefaultTimeout, "request timeout")
	rootCmd.AddCommand(listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
