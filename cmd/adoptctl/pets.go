package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/adoptme/service-adoption/pkg/client"
)

// listFlags are shared by the pets and missing listings.
type listFlags struct {
	province   string
	district   string
	city       string
	size       string
	vaccinated bool
	neutered   bool
	ordering   string
	page       int
	limit      int

	search  string
	petType string
	breed   string
	gender  string
	facets  bool
}

func (f *listFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.province, "province", "", "Province code, e.g. bagmati")
	fs.StringVar(&f.district, "district", "", "District")
	fs.StringVar(&f.city, "city", "", "City")
	fs.StringVar(&f.size, "size", "", "small, medium, large or extra_large")
	fs.BoolVar(&f.vaccinated, "vaccinated", false, "Only vaccinated pets")
	fs.BoolVar(&f.neutered, "neutered", false, "Only neutered pets")
	fs.StringVar(&f.ordering, "ordering", "", "Sort field, prefix with - for descending")
	fs.IntVar(&f.page, "page", 0, "Page number")
	fs.IntVar(&f.limit, "limit", 0, "Page size")
	fs.StringVarP(&f.search, "search", "s", "", "Match name, breed or location")
	fs.StringVarP(&f.petType, "type", "t", "", "Pet type (all for any)")
	fs.StringVar(&f.breed, "breed", "", "Exact breed")
	fs.StringVar(&f.gender, "gender", "", "Exact gender")
	fs.BoolVar(&f.facets, "facets", false, "Print the available types, breeds and genders")
}

func (f *listFlags) serverFilters() client.PetFilters {
	pf := client.PetFilters{
		Province: f.province,
		District: f.district,
		City:     f.city,
		Size:     f.size,
		Ordering: f.ordering,
		Page:     f.page,
		Limit:    f.limit,
	}
	if f.vaccinated {
		pf.IsVaccinated = &f.vaccinated
	}
	if f.neutered {
		pf.IsNeutered = &f.neutered
	}
	return pf
}

func (f *listFlags) localFilter() client.Filter {
	return client.Filter{Search: f.search, Type: f.petType, Breed: f.breed, Gender: f.gender}
}

func newPetsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pets",
		Short: "Browse pets available for adoption",
	}
	cmd.AddCommand(newPetsListCmd(a), newPetsShowCmd(a), newPetsCreateCmd(a))
	return cmd
}

func newPetsListCmd(a *app) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pets available for adoption",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(cmd.ErrOrStderr(), "Loading pets...")

			page, err := a.api.ListPets(cmd.Context(), flags.serverFilters())
			if err != nil {
				return fmt.Errorf("could not load pets: %w", err)
			}
			renderListing(out, page, &flags, "No pets match your search.")
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func newPetsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <pet-id>",
		Short: "Show one pet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.api.GetPet(cmd.Context(), args[0])
			if err != nil {
				if client.IsStatus(err, 404) {
					return fmt.Errorf("pet %s was not found", args[0])
				}
				return fmt.Errorf("could not load pet: %w", err)
			}
			printPet(cmd.OutOrStdout(), p)
			if a.session.InWishlist(p.ID) {
				fmt.Fprintln(cmd.OutOrStdout(), "\nThis pet is in your wishlist.")
			}
			return nil
		},
	}
}

// petInputFlags binds the fields of a pet profile.
func petInputFlags(cmd *cobra.Command, in *client.PetInput) {
	fs := cmd.Flags()
	fs.StringVar(&in.Name, "name", "", "Pet name (required)")
	fs.StringVar(&in.PetType, "type", "", "dog, cat, bird, rabbit or other")
	fs.StringVar(&in.Breed, "breed", "", "Breed")
	fs.IntVar(&in.AgeMonths, "age-months", 0, "Age in months")
	fs.StringVar(&in.Gender, "gender", "", "male, female or unknown")
	fs.StringVar(&in.Size, "size", "", "small, medium, large or extra_large")
	fs.StringVar(&in.Color, "color", "", "Color")
	fs.StringVar(&in.Description, "description", "", "Description")
	fs.StringVar(&in.Personality, "personality", "", "Personality")
	fs.BoolVar(&in.IsVaccinated, "vaccinated", false, "Pet is vaccinated")
	fs.BoolVar(&in.IsNeutered, "neutered", false, "Pet is neutered")
	fs.StringVar(&in.Province, "province", "", "Province code (required)")
	fs.StringVar(&in.District, "district", "", "District (required)")
	fs.StringVar(&in.City, "city", "", "City (required)")
	fs.StringVar(&in.ContactPhone, "phone", "", "Contact phone")
	fs.StringVar(&in.ContactEmail, "email", "", "Contact email")
	fs.StringVar(&in.ImageURL, "image-url", "", "Photo URL")
}

func newPetsCreateCmd(a *app) *cobra.Command {
	var in client.PetInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "List a pet for adoption (requires sign-in)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.RequireAuth(); err != nil {
				return err
			}
			var p *client.Pet
			err := a.authorized(cmd.Context(), func() (err error) {
				p, err = a.api.CreatePet(cmd.Context(), in)
				return err
			})
			if err != nil {
				return fmt.Errorf("could not list pet: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now listed for adoption (id %s).\n", p.Name, p.ID)
			return nil
		},
	}
	petInputFlags(cmd, &in)
	return cmd
}

func newMissingCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "missing",
		Short: "Browse and report missing pets",
	}
	cmd.AddCommand(newMissingListCmd(a), newMissingReportCmd(a))
	return cmd
}

func newMissingListCmd(a *app) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pets reported missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.ErrOrStderr(), "Loading missing pets...")
			page, err := a.api.ListMissingPets(cmd.Context(), flags.serverFilters())
			if err != nil {
				return fmt.Errorf("could not load missing pets: %w", err)
			}
			renderListing(cmd.OutOrStdout(), page, &flags, "No missing pets reported.")
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func newMissingReportCmd(a *app) *cobra.Command {
	var (
		in       client.MissingPetInput
		lastSeen string
		reward   float64
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report a missing pet (requires sign-in)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.RequireAuth(); err != nil {
				return err
			}
			if lastSeen != "" {
				t, err := time.Parse("2006-01-02", lastSeen)
				if err != nil {
					return fmt.Errorf("--last-seen-date must be YYYY-MM-DD")
				}
				in.LastSeenDate = &t
			}
			in.RewardOfferedCents = int64(reward*100 + 0.5)

			var p *client.Pet
			err := a.authorized(cmd.Context(), func() (err error) {
				p, err = a.api.ReportMissingPet(cmd.Context(), in)
				return err
			})
			if err != nil {
				return fmt.Errorf("could not file report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Missing report filed for %s (id %s).\n", p.Name, p.ID)
			return nil
		},
	}
	petInputFlags(cmd, &in.PetInput)
	cmd.Flags().StringVar(&in.LastSeenLocation, "last-seen", "", "Where the pet was last seen (required)")
	cmd.Flags().StringVar(&lastSeen, "last-seen-date", "", "Date last seen, YYYY-MM-DD")
	cmd.Flags().Float64Var(&reward, "reward", 0, "Reward offered")
	return cmd
}

func renderListing(out io.Writer, page *client.Page[client.Pet], flags *listFlags, empty string) {
	pets := client.FilterPets(page.Items, flags.localFilter())
	if flags.facets {
		fv := client.Facets(page.Items)
		fmt.Fprintf(out, "Types:   %s\n", strings.Join(fv.Types, ", "))
		fmt.Fprintf(out, "Breeds:  %s\n", strings.Join(fv.Breeds, ", "))
		fmt.Fprintf(out, "Genders: %s\n\n", strings.Join(fv.Genders, ", "))
	}
	printPets(out, pets, empty)
	printPagination(out, page.Pagination)
}
