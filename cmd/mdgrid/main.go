// Command mdgrid edits a Markdown file in the terminal, with tables
// edited as grids.
//
// Click a row or column handle in the gutter around a table to select
// it and drag it to reorder. Click on a boundary between handles to
// insert a row or column there. Drag across cells to select a range.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile  string
	logFile     string
	sessionFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mdgrid: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mdgrid [file.md]",
	Short: "Edit Markdown tables in the terminal",
	Long: `mdgrid edits a Markdown file in the terminal, with tables edited as grids.

Keys:
  Tab, Shift+Tab       next and previous cell
  Shift+arrows         move the selected row or column
  Backspace, Delete    clear the selected cells or delete the selected row or column
  Ctrl+T               insert a 3x3 table
  Ctrl+R, Ctrl+L       insert a row below or a column right of the caret
  Ctrl+D               delete the table holding the caret
  Ctrl+C, Ctrl+X, Ctrl+V
                       copy, cut and paste; cell ranges copy as tab separated text
  Ctrl+Z, Ctrl+Y       undo and redo
  Ctrl+S, Ctrl+Q       save and quit`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configFile)
		if err != nil {
			return err
		}
		logger, closer, err := openLog(logFile)
		if err != nil {
			return err
		}
		defer closer.Close()

		ed := newEditor(cfg, systemClipboard{}, logger, 80, 24)
		if len(args) > 0 {
			if err := ed.open(args[0]); err != nil {
				return err
			}
		}
		if sessionFile != "" {
			switch err := ed.loadSession(sessionFile); {
			case errors.Is(err, fs.ErrNotExist):
			case err != nil:
				return err
			}
		}

		if err := runTerminal(ed); err != nil {
			return err
		}
		if sessionFile != "" {
			if err := ed.saveSession(sessionFile); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML configuration file")
	rootCmd.Flags().StringVar(&logFile, "log", "", "append diagnostics to this file")
	rootCmd.Flags().StringVar(&sessionFile, "session", "", "restore the editing session from this dump file and save it on exit")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openLog returns the diagnostics logger. Without a file nothing is
// logged; the terminal belongs to the editor.
func openLog(file string) (*log.Logger, io.Closer, error) {
	if file == "" {
		return log.New(io.Discard, "", 0), nopCloser{}, nil
	}
	f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log: %w", err)
	}
	return log.New(f, "mdgrid: ", log.LstdFlags|log.Lmicroseconds), f, nil
}
