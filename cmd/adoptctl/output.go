package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/adoptme/service-adoption/pkg/client"
)

func printPets(w io.Writer, pets []client.Pet, empty string) {
	if len(pets) == 0 {
		fmt.Fprintln(w, empty)
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tBREED\tAGE\tGENDER\tLOCATION\tSTATUS")
	for _, p := range pets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.PetType, dash(p.Breed), formatAge(p.AgeMonths), p.Gender, p.LocationDisplay, p.Status)
	}
	_ = tw.Flush()
}

func printPet(w io.Writer, p *client.Pet) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	row := func(k, v string) {
		if v != "" {
			fmt.Fprintf(tw, "%s:\t%s\n", k, v)
		}
	}
	row("ID", p.ID)
	row("Name", p.Name)
	row("Type", p.PetType)
	row("Breed", p.Breed)
	row("Age", formatAge(p.AgeMonths))
	row("Gender", p.Gender)
	row("Size", p.Size)
	row("Color", p.Color)
	row("Location", p.LocationDisplay)
	row("Status", p.Status)
	row("Vaccinated", yesNo(p.IsVaccinated))
	row("Neutered", yesNo(p.IsNeutered))
	row("Health", p.HealthStatus)
	row("Personality", p.Personality)
	row("Description", p.Description)
	if p.IsMissing {
		row("Last seen", p.LastSeenLocation)
		if p.LastSeenDate != nil {
			row("Last seen on", p.LastSeenDate.Format("2006-01-02"))
		}
		if p.RewardOfferedCents > 0 {
			row("Reward", formatMoney(p.RewardOfferedCents))
		}
	}
	row("Contact phone", p.ContactPhone)
	row("Contact email", p.ContactEmail)
	row("Image", p.ImageURL)
	_ = tw.Flush()
}

func printShelters(w io.Writer, shelters []client.Shelter) {
	if len(shelters) == 0 {
		fmt.Fprintln(w, "No shelters found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLOCATION\tPHONE\tVERIFIED")
	for _, s := range shelters {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Location, s.Phone, yesNo(s.IsVerified))
	}
	_ = tw.Flush()
}

func printPagination(w io.Writer, p client.Pagination) {
	if p.TotalPages > 1 {
		fmt.Fprintf(w, "\nPage %d of %d (%d total)\n", p.Page, p.TotalPages, p.Total)
	}
}

func formatAge(months int) string {
	switch {
	case months <= 0:
		return "-"
	case months < 12:
		return fmt.Sprintf("%d mo", months)
	case months%12 == 0:
		return fmt.Sprintf("%d yr", months/12)
	default:
		return fmt.Sprintf("%d yr %d mo", months/12, months%12)
	}
}

func formatMoney(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
