package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docguard-ph/docguard/internal/cli"
	"github.com/docguard-ph/docguard/internal/vendor"
)

func vendorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendors",
		Short: "Manage remembered vendor profiles",
	}

	cmd.AddCommand(vendorsListCmd())
	cmd.AddCommand(vendorsSetCmd())
	cmd.AddCommand(vendorsShowCmd())

	return cmd
}

func vendorsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all vendor profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			profiles, err := store.GetAllVendorProfiles(ctx)
			if err != nil {
				return err
			}

			if len(profiles) == 0 {
				fmt.Println(cli.FormatInfo("No vendor profiles yet. They are created when you record transactions with a TIN."))
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Vendors (%d)", len(profiles))))
			for _, p := range profiles {
				fmt.Printf("%-30s %-20s %s\n",
					truncate(p.DisplayName, 30),
					p.TIN,
					cli.SubtleStyle.Render(p.DefaultExpenseAccount))
			}
			return nil
		},
	}
}

func vendorsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one vendor profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			resolver := vendor.NewResolver(store)
			profile, err := resolver.Lookup(ctx, args[0])
			if err != nil {
				return err
			}

			content := fmt.Sprintf("%s %s\n%s %s\n%s %s\n%s %s",
				cli.BoldStyle.Render("Name:"), profile.DisplayName,
				cli.BoldStyle.Render("TIN:"), profile.TIN,
				cli.BoldStyle.Render("Account:"), profile.DefaultExpenseAccount,
				cli.BoldStyle.Render("Updated:"), profile.LastUpdated.Format("Jan 2, 2006"))
			fmt.Println(cli.RenderBox("Vendor", content))
			return nil
		},
	}
}

func vendorsSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Create or update a vendor profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			tin, _ := cmd.Flags().GetString("tin")
			account, _ := cmd.Flags().GetString("account")

			resolver := vendor.NewResolver(store)
			err = resolver.Upsert(ctx, args[0], vendor.ProfilePatch{
				DisplayName:           args[0],
				TIN:                   tin,
				DefaultExpenseAccount: account,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Vendor profile saved: " + args[0]))
			return nil
		},
	}

	cmd.Flags().String("tin", "", "vendor TIN")
	cmd.Flags().String("account", "", "default expense account")

	return cmd
}
