package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fulldump/dataform/bootstrap"
	"github.com/fulldump/dataform/configuration"
	"github.com/fulldump/dataform/form"
	"github.com/fulldump/dataform/service"
)

// app holds the persistent flags and what is built from them.
type app struct {
	filename string
	journal  string
	atomic   bool
	logLevel string

	logger  *zap.Logger
	service *service.Service
}

func newRootCmd() *cobra.Command {

	defaults := configuration.Default()
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "dataform",
		Short: "Keep personal records in a flat file",
		Long: `dataform stores personal records (full name, id, gender, province and
date of birth) one per line in a comma separated text file.

Example:
  dataform add --name "Alice Smith" --id A1 --gender Female --province Ontario --dob 1990-05-01
  dataform find A1
  dataform delete A1`,
		Version:      bootstrap.VERSION,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := bootstrap.NewLogger(a.logLevel, "console")
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.filename, "file", defaults.Filename, "records file")
	rootCmd.PersistentFlags().StringVar(&a.journal, "journal", defaults.Journal, "operation journal file, empty to disable")
	rootCmd.PersistentFlags().BoolVar(&a.atomic, "atomic", defaults.AtomicRewrite, "rewrite the records file through a temporary file on delete")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newAddCmd(a),
		newFindCmd(a),
		newDeleteCmd(a),
		newListCmd(a),
		newSearchCmd(a),
		newExportCmd(a),
		newHistoryCmd(a),
		newServeCmd(a),
	)

	return rootCmd
}

// open loads the records file.
func (a *app) open() (*service.Service, error) {

	if a.service != nil {
		return a.service, nil
	}

	logger := a.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := service.NewService(&service.Config{
		Filename:      a.filename,
		Journal:       a.journal,
		AtomicRewrite: a.atomic,
	}, logger)

	err := s.Load()
	if err != nil {
		return nil, fmt.Errorf("load '%s': %w", a.filename, err)
	}

	a.service = s
	return s, nil
}

func (a *app) form() (*form.Form, error) {
	s, err := a.open()
	if err != nil {
		return nil, err
	}
	return form.New(s.FormStore(), a.logger), nil
}

type noticeError struct {
	notice form.Notice
}

func (e *noticeError) Error() string {
	return e.notice.String()
}

// report prints the notice. Error notices become the command error.
func report(cmd *cobra.Command, notice form.Notice) error {
	if notice.Kind == form.KindError {
		return &noticeError{notice: notice}
	}
	fmt.Fprintln(cmd.OutOrStdout(), notice.String())
	return nil
}
