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
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gnames/exiodb/internal/iodb"
	"github.com/gnames/exiodb/internal/ioschema"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCreateCmd() *cobra.Command {
	var forceCreate bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create database schema",
		Long: `Create the exiodb reference tables in PostgreSQL.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Checks for existing tables and prompts for confirmation
  3. Creates the regions and sectors tables using GORM AutoMigrate

Per-region tables ({region}_dcba, {region}_dpba) are created by
'exiodb populate'.

Use --force to skip confirmation and drop existing tables.

Examples:
  exiodb create
  exiodb create --force
  exiodb create -f`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCreate(cmd, forceCreate)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	createCmd.Flags().BoolVarP(&forceCreate, "force", "f",
		false, "drop existing tables without confirmation")

	return createCmd
}

func runCreate(cmd *cobra.Command, force bool) error {
	ctx := context.Background()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}

	if hasTables {
		if !force {
			gn.Warn("Database contains existing tables.")
			gn.Warn("Creating schema will drop ALL existing tables and data.")
			ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				gn.Warn("Failed to read user input")
				return err
			}
			if !ok {
				gn.Info("Aborted. No changes made.")
				return nil
			}
		}

		gn.Info("Dropping all existing tables...")
		if err := op.DropAllTables(ctx); err != nil {
			return err
		}
		gn.Info("All tables dropped")
	}

	sm := ioschema.NewManager(op)

	gn.Info("Creating schema using GORM AutoMigrate...")
	if err := sm.Create(ctx, cfg); err != nil {
		return err
	}

	gn.Info(`Database schema creation complete!
Next steps:
  - Run '<em>exiodb populate</em>' to load EXIOBASE data
  - Run '<em>exiodb serve</em>' to start the query service`)

	return nil
}

// confirm asks the user to continue, only "yes" or "y" agree.
func confirm(in io.Reader, out io.Writer) (bool, error) {
	fmt.Fprint(out, "\nDo you want to continue? (yes/no): ")

	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y", nil
}
