/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/gnames/exiodb/internal/iodb"
	"github.com/gnames/exiodb/internal/iofs"
	"github.com/gnames/exiodb/internal/ioload"
	"github.com/gnames/exiodb/pkg/exio"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getUpdateCmd returns the update command.
func getUpdateCmd() *cobra.Command {
	var table, input string

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Update values of a table by year",
		Long: `Overwrite the value column of a table from a CSV file.

The file has two columns, value and year; an optional header line is
skipped. Every row of the table with a matching year gets the new value,
so the command is meant for tables that keep one row per year.

Examples:
  exiodb update --table fr_dpba_totals --input totals.csv
  exiodb update -t fr_dpba_totals -i totals.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runUpdate(table, input)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	updateCmd.Flags().StringVarP(&table, "table", "t", "",
		"table to update")
	updateCmd.Flags().StringVarP(&input, "input", "i", "",
		"CSV file with value,year rows")
	_ = updateCmd.MarkFlagRequired("table")
	_ = updateCmd.MarkFlagRequired("input")

	return updateCmd
}

func runUpdate(table, input string) error {
	ctx := context.Background()

	if _, err := exio.SafeIdent(table); err != nil {
		return err
	}

	rows, err := iofs.ReadYearValues(input)
	if err != nil {
		return err
	}

	op := iodb.NewPgxOperator()
	if err = op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	n, err := ioload.New(op.Pool()).UpdateValues(ctx, table, rows)
	if err != nil {
		return err
	}

	gn.Info("Updated <em>%s</em> rows of <em>%s</em> from %s values",
		humanize.Comma(n), table, humanize.Comma(int64(len(rows))))
	return nil
}
