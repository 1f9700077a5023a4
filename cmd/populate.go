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
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/gnames/exiodb/internal/iodb"
	"github.com/gnames/exiodb/internal/iopopulate"
	"github.com/gnames/exiodb/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getPopulateCmd returns the populate command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getPopulateCmd() *cobra.Command {
	populateCmd := &cobra.Command{
		Use:   "populate",
		Short: "Populate database with EXIOBASE data",
		Long: `Import EXIOBASE satellite accounts into per-region tables.

This command:
  1. Resolves the latest EXIOBASE release on Zenodo
  2. Stops if the release did not change since the last run
  3. For every year downloads IOT_{year}_{system}.zip into staging
  4. Reads D_cba.txt and D_pba.txt, reshapes them into long records
  5. Replaces {region}_dcba and {region}_dpba tables
  6. Updates regions and sectors reference tables
  7. Removes staged files of years loaded without errors

Failure of one year does not stop the others. The run fails if no year
was loaded.

Examples:
  # Load the current and the previous year if a new release exists
  exiodb populate

  # Load specific years even if the release did not change
  exiodb populate --years 2019,2020 --force

  # Keep downloaded archives
  exiodb populate -y 2019 -k`,
		Aliases: []string{"add"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runPopulate(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	populateCmd.Flags().IntSliceP(
		"years", "y", []int{},
		"years to import (empty = current and previous year)",
	)
	populateCmd.Flags().BoolP(
		"force", "f", false,
		"run even if the EXIOBASE version did not change",
	)
	populateCmd.Flags().BoolP(
		"keep-staging", "k", false,
		"keep downloaded and extracted files",
	)

	return populateCmd
}

func runPopulate(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if populateOpts := populateOptions(cmd); len(populateOpts) > 0 {
		cfg.Update(populateOpts)
	}

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	populator := iopopulate.New(cfg, op)
	res, err := populator.Populate(ctx)
	if err != nil {
		return err
	}
	if res.Skipped {
		return nil
	}

	for _, yr := range res.Years {
		if yr.OK() {
			continue
		}
		if yr.Err != nil {
			gn.Warn("Year <em>%d</em> failed: %s", yr.Year, yr.Err)
			continue
		}
		var failed int
		for _, v := range yr.Loads {
			failed += len(v.Failed)
		}
		gn.Warn("Year <em>%d</em> is incomplete: %s failed regions, staged files kept",
			yr.Year, humanize.Comma(int64(failed)))
	}

	gn.Info(`Next steps:
  - Run '<em>exiodb serve</em>' to query the data`)
	return nil
}

// populateOptions converts explicitly set flags to config options.
func populateOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := cmd.Flags()

	if flags.Changed("years") {
		years, _ := flags.GetIntSlice("years")
		res = append(res, config.OptPopulateYears(years))
	}
	if flags.Changed("force") {
		force, _ := flags.GetBool("force")
		res = append(res, config.OptPopulateForce(force))
	}
	if flags.Changed("keep-staging") {
		keep, _ := flags.GetBool("keep-staging")
		res = append(res, config.OptPopulateKeepStaging(keep))
	}
	return res
}
