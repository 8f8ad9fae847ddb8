package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docguard-ph/docguard/internal/cli"
	"github.com/docguard-ph/docguard/internal/policy"
)

func policyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Inspect or change the document-requirement policy",
		Long: `The policy decides which documents each (type, subtype) pair needs and
when Form 2307 kicks in. Changing the policy does not touch the stored
status of existing transactions; only a checklist edit re-evaluates them.`,
	}

	cmd.AddCommand(policyShowCmd())
	cmd.AddCommand(policyImportCmd())
	cmd.AddCommand(policyResetCmd())

	return cmd
}

func policyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active policy as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			p, err := loadPolicy(ctx, store)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(p, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal policy: %w", err)
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

func policyImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the policy with the JSON in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read policy file: %w", err)
			}

			var p policy.Policy
			if err := json.Unmarshal(data, &p); err != nil {
				return fmt.Errorf("invalid policy JSON: %w", err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SavePolicy(ctx, p); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Policy updated"))
			fmt.Println(cli.FormatInfo("Existing transactions keep their stored status until their checklist changes."))
			return nil
		},
	}
}

func policyResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default policy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SavePolicy(ctx, policy.Default()); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Policy reset to defaults"))
			return nil
		},
	}
}
