package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/adoptme/service-adoption/pkg/client"
)

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.api.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("API unreachable: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", h.Service, h.Status)
			return nil
		},
	}
}

func newLoginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.session.Login(cmd.Context(), email, password)
			if err != nil {
				if client.IsStatus(err, http.StatusUnauthorized) {
					return errors.New("invalid email or password")
				}
				return fmt.Errorf("sign in failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s!\n", user.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.session.Register(cmd.Context(), name, email, password)
			if err != nil {
				if client.IsStatus(err, http.StatusConflict) {
					return errors.New("an account with this email already exists")
				}
				return fmt.Errorf("registration failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s!\n", user.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (at least 8 characters)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out (the wishlist is kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user := a.session.User()
			if user == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
}

func newWishlistCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Manage saved pets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printPets(cmd.OutOrStdout(), a.session.Wishlist(), "Your wishlist is empty.")
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <pet-id>",
		Short: "Save a pet (requires sign-in)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.RequireAuth(); err != nil {
				return err
			}
			p, err := a.api.GetPet(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("could not load pet: %w", err)
			}
			added, err := a.session.AddToWishlist(cmd.Context(), *p)
			if err != nil {
				return err
			}
			if added {
				fmt.Fprintf(cmd.OutOrStdout(), "%s added to your wishlist!\n", p.Name)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already in your wishlist.\n", p.Name)
			}
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <pet-id>",
		Short: "Remove a saved pet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.RemoveFromWishlist(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Pet removed from your wishlist.")
			return nil
		},
	}

	cmd.AddCommand(add, remove)
	return cmd
}
