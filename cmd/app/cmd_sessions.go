package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/akyairhashvil/spiritualpath/internal/config"
	"github.com/akyairhashvil/spiritualpath/internal/models"
	"github.com/akyairhashvil/spiritualpath/internal/tui"
	"github.com/akyairhashvil/spiritualpath/internal/util"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
)

var (
	historyJSON  bool
	historyLimit int
	historyTag   string
	reportOut    string
	exportOut    string
)

// historyEnvelope is the JSON shape of `history --json`.
type historyEnvelope struct {
	Success  bool             `json:"success"`
	Sessions []models.Session `json:"sessions"`
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded sessions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, env *appEnv) error {
			return printHistory(ctx, env, cmd.OutOrStdout())
		})
	},
}

func printHistory(ctx context.Context, env *appEnv, w io.Writer) error {
	var (
		sessions []models.Session
		err      error
	)
	if historyTag != "" {
		sessions, err = env.db.GetSessionsByTag(ctx, env.cfg.UserID, historyTag)
		if err == nil && historyLimit > 0 && len(sessions) > historyLimit {
			sessions = sessions[:historyLimit]
		}
	} else {
		sessions, err = env.db.GetSessionsForUser(ctx, env.cfg.UserID, historyLimit)
	}
	if err != nil {
		return err
	}

	if historyJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(historyEnvelope{Success: true, Sessions: sessions})
	}

	stats, err := env.db.GetSessionStats(ctx, env.cfg.UserID)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s, %s total\n", tui.FormatSessionCount(stats.Count), tui.FormatDuration(time.Duration(stats.TotalSeconds)*time.Second))
	if len(sessions) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCOMPLETED\tLENGTH\tMEDITATION\tNOTES")
	for _, s := range sessions {
		kind := "-"
		if s.GuidedID != nil {
			kind = *s.GuidedID
		}
		note := ansi.Truncate(strings.Join(strings.Fields(util.Deref(s.Notes)), " "), config.MaxNotePreview, config.TruncationSuffix)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.CompletedAt.Local().Format("2006-01-02 15:04"), tui.FormatClock(s.DurationSeconds), kind, note)
	}
	return tw.Flush()
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a PDF practice report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, env *appEnv) error {
			path, err := writeReport(ctx, env, reportOut, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "PDF report generated: %s\n", path)
			return nil
		})
	},
}

func writeReport(ctx context.Context, env *appEnv, out string, now time.Time) (string, error) {
	sessions, err := env.db.GetSessionsForUser(ctx, env.cfg.UserID, 0)
	if err != nil {
		return "", err
	}
	stats, err := env.db.GetSessionStats(ctx, env.cfg.UserID)
	if err != nil {
		return "", err
	}
	if out == "" {
		out = filepath.Join(util.ReportsDir(config.AppName), tui.ReportFileName(now))
	}
	return tui.GeneratePDFReport(out, tui.ReportData{
		UserID:      env.cfg.UserID,
		GeneratedAt: now,
		Stats:       stats,
		Sessions:    sessions,
	})
}

var guidedCmd = &cobra.Command{
	Use:   "guided",
	Short: "List guided meditations",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printGuided(cmd.OutOrStdout())
	},
}

func printGuided(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tLENGTH\tDESCRIPTION")
	for _, g := range config.GuidedMeditations {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", g.ID, g.Title, tui.FormatClock(config.GuidedDuration(g.ID)), g.Description)
	}
	_ = tw.Flush()
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sessions as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, env *appEnv) error {
			payload, err := env.db.ExportSessions(ctx, env.cfg.UserID)
			if err != nil {
				return err
			}
			if exportOut == "" {
				_, err = cmd.OutOrStdout().Write(append(payload, '\n'))
				return err
			}
			if err := os.WriteFile(exportOut, payload, 0o600); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", exportOut)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import sessions from a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import: %w", err)
		}
		return withEnv(cmd, func(ctx context.Context, env *appEnv) error {
			n, err := env.db.ImportSessions(ctx, payload)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d sessions\n", n)
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a recorded session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, env *appEnv) error {
			if err := env.db.DeleteSession(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		})
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "print {success, sessions} JSON")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "maximum sessions (0 for all)")
	historyCmd.Flags().StringVarP(&historyTag, "tag", "t", "", "only sessions whose notes carry #tag")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "output path (default in the documents dir)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
}
