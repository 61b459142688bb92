package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adoptme/service-adoption/pkg/client"
)

func newContactCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Get in touch with the organisation",
	}

	var in client.ContactMessageInput
	send := &cobra.Command{
		Use:   "send",
		Short: "Send a message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.ErrOrStderr(), "Sending...")
			res, err := a.api.SendContactMessage(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("could not send message: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
	send.Flags().StringVar(&in.Name, "name", "", "Your name")
	send.Flags().StringVar(&in.Email, "email", "", "Your email")
	send.Flags().StringVar(&in.Phone, "phone", "", "Your phone")
	send.Flags().StringVar(&in.Subject, "subject", "general", "general, adoption, missing, shelter, donation, volunteer or other")
	send.Flags().StringVarP(&in.Message, "message", "m", "", "Message")

	info := &cobra.Command{
		Use:   "info",
		Short: "Show contact details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ci, err := a.api.GetContactInfo(cmd.Context())
			if err != nil {
				return fmt.Errorf("could not load contact details: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ci.OrganizationName)
			if ci.Tagline != "" {
				fmt.Fprintln(out, ci.Tagline)
			}
			fmt.Fprintf(out, "\nPhone:   %s\n", ci.PhonePrimary)
			fmt.Fprintf(out, "Email:   %s\n", ci.EmailPrimary)
			fmt.Fprintf(out, "Address: %s, %s, %s, %s\n", ci.AddressLine1, ci.City, ci.District, ci.Province)
			if ci.OfficeHours != "" {
				fmt.Fprintf(out, "Hours:   %s\n", ci.OfficeHours)
			}
			if ci.EmergencyPhone != "" {
				fmt.Fprintf(out, "Emergency: %s\n", ci.EmergencyPhone)
			}
			return nil
		},
	}

	cmd.AddCommand(send, info)
	return cmd
}

func newSheltersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shelters",
		Short: "Browse partner shelters",
	}

	var params client.ShelterParams
	list := &cobra.Command{
		Use:   "list",
		Short: "List shelters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.ErrOrStderr(), "Loading shelters...")
			page, err := a.api.ListShelters(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("could not load shelters: %w", err)
			}
			printShelters(cmd.OutOrStdout(), page.Items)
			printPagination(cmd.OutOrStdout(), page.Pagination)
			return nil
		},
	}
	list.Flags().StringVarP(&params.Search, "search", "s", "", "Match name, description or city")
	list.Flags().StringVar(&params.City, "city", "", "City")
	list.Flags().BoolVar(&params.Verified, "verified", false, "Only verified shelters")
	list.Flags().IntVar(&params.Page, "page", 0, "Page number")

	show := &cobra.Command{
		Use:   "show <shelter-id>",
		Short: "Show one shelter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.api.GetShelter(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("could not load shelter: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, s.Name)
			if s.Description != "" {
				fmt.Fprintln(out, s.Description)
			}
			fmt.Fprintf(out, "\nLocation: %s\n", s.Location)
			fmt.Fprintf(out, "Phone:    %s\n", s.Phone)
			fmt.Fprintf(out, "Email:    %s\n", s.Email)
			if s.Website != "" {
				fmt.Fprintf(out, "Website:  %s\n", s.Website)
			}
			fmt.Fprintf(out, "Verified: %s\n", yesNo(s.IsVerified))
			return nil
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}
