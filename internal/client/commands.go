// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/spf13/cobra"
)

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "vault",
		Short:             "Local encrypted password vault",
		Long:              "vault keeps site credentials in a local file, encrypted under a key unlocked by your master passphrase.",
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.prepare,
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		a.newInitCommand(),
		a.newAddCommand(),
		a.newSearchCommand(),
		a.newDeleteCommand(),
		a.newListCommand(),
		a.newGenerateCommand(),
		a.newRotateCommand(),
		a.newVersionCommand(),
	)
	return root
}

func (a *App) newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a new vault protected by a master passphrase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.openVault(); err != nil {
				return err
			}
			if a.services.AuthService.Initialized(ctx) {
				return service.ErrAlreadyInitialized
			}

			passphrase, err := a.readNewPassphrase("New master passphrase: ")
			if err != nil {
				return err
			}
			if err := a.services.AuthService.Initialize(ctx, passphrase); err != nil {
				return err
			}

			fmt.Fprintln(a.out, "Vault initialized")
			return nil
		},
	}
}

func (a *App) newAddCommand() *cobra.Command {
	var (
		password string
		generate bool
		length   int
	)

	cmd := &cobra.Command{
		Use:   "add <site> <email>",
		Short: "Store a password for a site",
		Long:  "Store a password for a site. Several accounts may be stored under one site; they are kept in the order they were added.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			site, email := args[0], args[1]

			if password != "" && generate {
				return fmt.Errorf("%w: --password and --generate cannot be used together", service.ErrValidation)
			}

			if err := a.unlock(ctx); err != nil {
				return err
			}

			switch {
			case generate:
				if !cmd.Flags().Changed("length") {
					length = a.cfg.App.PasswordLength
				}
				generated, err := a.services.VaultService.GeneratePassword(length)
				if err != nil {
					return err
				}
				password = generated
			case password == "":
				entered, err := a.prompter.ReadSecret(fmt.Sprintf("Password for %s: ", email))
				if err != nil {
					return err
				}
				password = entered
			}

			if err := a.services.VaultService.SavePassword(ctx, site, email, password); err != nil {
				return err
			}

			if generate {
				fmt.Fprintf(a.out, "Generated password: %s\n", password)
			}
			fmt.Fprintf(a.out, "Saved credentials for %s\n", site)
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password to store (prompted when omitted)")
	cmd.Flags().BoolVarP(&generate, "generate", "g", false, "generate a random password")
	cmd.Flags().IntVarP(&length, "length", "l", 0, "generated password length (default from config)")
	return cmd
}

func (a *App) newSearchCommand() *cobra.Command {
	var copyIndex int

	cmd := &cobra.Command{
		Use:   "search <site>",
		Short: "Show the credentials stored for a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.unlock(ctx); err != nil {
				return err
			}

			creds, err := a.services.VaultService.SearchPassword(ctx, args[0])
			if err != nil {
				return err
			}

			if copyIndex == 0 {
				for i, c := range creds {
					fmt.Fprintf(a.out, "%d. %s  %s\n", i+1, c.Email, c.Password)
				}
				return nil
			}

			if copyIndex < 0 || copyIndex > len(creds) {
				return fmt.Errorf("%w: --copy must be between 1 and %d", service.ErrValidation, len(creds))
			}
			for i, c := range creds {
				fmt.Fprintf(a.out, "%d. %s\n", i+1, c.Email)
			}
			if err := a.clipboard.WriteAll(creds[copyIndex-1].Password); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Password %d copied to clipboard\n", copyIndex)
			return nil
		},
	}

	cmd.Flags().IntVar(&copyIndex, "copy", 0, "copy the Nth password to the clipboard instead of printing it")
	return cmd
}

func (a *App) newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <site>",
		Short: "Remove every credential stored for a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.unlock(ctx); err != nil {
				return err
			}

			removed, err := a.services.VaultService.DeletePassword(ctx, args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(a.out, "Site %s not found\n", args[0])
				return nil
			}
			fmt.Fprintf(a.out, "Deleted %s\n", args[0])
			return nil
		},
	}
}

func (a *App) newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored site names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.unlock(ctx); err != nil {
				return err
			}

			sites, err := a.services.VaultService.ListSites(ctx)
			if err != nil {
				return err
			}
			if len(sites) == 0 {
				fmt.Fprintln(a.out, "Vault is empty")
				return nil
			}
			for _, site := range sites {
				fmt.Fprintln(a.out, site)
			}
			return nil
		},
	}
}

func (a *App) newGenerateCommand() *cobra.Command {
	var (
		length int
		toClip bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("length") {
				length = a.cfg.App.PasswordLength
			}

			password, err := a.generator.Generate(length)
			if err != nil {
				return err
			}

			if !toClip {
				fmt.Fprintln(a.out, password)
				return nil
			}
			if err := a.clipboard.WriteAll(password); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Password copied to clipboard")
			return nil
		},
	}

	cmd.Flags().IntVarP(&length, "length", "l", 0, "password length (default from config)")
	cmd.Flags().BoolVar(&toClip, "copy", false, "copy the password to the clipboard instead of printing it")
	return cmd
}

func (a *App) newRotateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate-master",
		Short: "Change the master passphrase",
		Long:  "Change the master passphrase. Stored credentials stay readable: only the wrapped vault key is rewritten.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.openVault(); err != nil {
				return err
			}
			if !a.services.AuthService.Initialized(ctx) {
				return service.ErrNotInitialized
			}

			current, err := a.prompter.ReadSecret("Current master passphrase: ")
			if err != nil {
				return err
			}
			newValue, err := a.readNewPassphrase("New master passphrase: ")
			if err != nil {
				return err
			}

			if err := a.services.AuthService.Rotate(ctx, current, newValue); err != nil {
				return err
			}

			fmt.Fprintln(a.out, "Master passphrase changed")
			return nil
		},
	}
}

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := a.buildInfo
			if appInfo, err := service.NewAppInfoService(a.buildInfo, a.logger); err == nil {
				info = appInfo.GetBuildInfo(cmd.Context())
			}

			fmt.Fprintf(a.out, "Build version: %s\n", orNA(info.BuildVersion()))
			fmt.Fprintf(a.out, "Build date: %s\n", orNA(info.BuildDate()))
			fmt.Fprintf(a.out, "Build commit: %s\n", orNA(info.BuildCommit()))
			return nil
		},
	}
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
