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

	"github.com/gnames/exiodb/internal/ioapi"
	"github.com/gnames/exiodb/internal/iodb"
	"github.com/gnames/exiodb/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getServeCmd returns the serve command.
func getServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the query service",
		Long: `Serve read-only HTTP lookups over the loaded tables.

Endpoints:
  GET /regions                   all regions
  GET /sectors                   all sectors
  GET /{lens}/{region}           lens is consumption or production,
                                 filters: year, stressor, sector
  GET /metrics                   prometheus metrics

Examples:
  exiodb serve
  exiodb serve --port 9000
  curl 'localhost:8080/production/fr?year=2019&stressor=co2'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runServe(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	serveCmd.Flags().IntP("port", "p", 0, "port of the query service")

	return serveCmd
}

func runServe(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cmd.Flags().Changed("port") {
		port, _ := cmd.Flags().GetInt("port")
		cfg.Update([]config.Option{config.OptServerPort(port)})
	}

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	db, err := iodb.SQLDB(op)
	if err != nil {
		return err
	}
	defer db.Close()

	gn.Info("Serving EXIOBASE data on port <em>%d</em>", cfg.Server.Port)
	return ioapi.New(db).Run(ctx, cfg.Server.Port)
}
