package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docguard-ph/docguard/internal/cli"
	"github.com/docguard-ph/docguard/internal/policy"
	"github.com/docguard-ph/docguard/internal/reminder"
)

func remindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind <id>",
		Short: "Compose a missing-documents reminder",
		Long: `Compose a reminder message for a transaction's missing documents and
print the sms: and mailto: links that open it in a messaging app.

A custom template may use {DOCS} as a placeholder for the document list;
set reminder.template in the config to change the default.`,
		Args: cobra.ExactArgs(1),
		RunE: runRemind,
	}

	cmd.Flags().String("phone", "", "recipient phone number for the sms: link")
	cmd.Flags().String("template", "", "message template ({DOCS} is substituted)")

	return cmd
}

func runRemind(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	eng, store, err := initEngine(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	txn, err := store.GetTransactionByID(ctx, args[0])
	if err != nil {
		return err
	}

	verdict := policy.Evaluate(*txn, eng.Policy())
	if len(verdict.Missing) == 0 {
		fmt.Println(cli.FormatSuccess("Nothing to remind about; all documents are in."))
		return nil
	}

	template, _ := cmd.Flags().GetString("template")
	if template == "" {
		template = viper.GetString("reminder.template")
	}

	message := reminder.Compose(*txn, verdict.Missing, template)

	fmt.Println(cli.RenderBox("Reminder "+cli.BellIcon, message))

	if phone, _ := cmd.Flags().GetString("phone"); phone != "" {
		fmt.Printf("%s %s\n", cli.BoldStyle.Render("SMS:"), reminder.SMSURL(phone, message))
	}
	fmt.Printf("%s %s\n", cli.BoldStyle.Render("Email:"), reminder.EmailURL(message))
	return nil
}
