package pet

import (
	"fmt"
	"strings"
)

// PetType is the species of a pet.
type PetType string

const (
	TypeDog    PetType = "dog"
	TypeCat    PetType = "cat"
	TypeBird   PetType = "bird"
	TypeRabbit PetType = "rabbit"
	TypeOther  PetType = "other"
)

// IsValid reports whether t is a known pet type.
func (t PetType) IsValid() bool {
	switch t {
	case TypeDog, TypeCat, TypeBird, TypeRabbit, TypeOther:
		return true
	}
	return false
}

// Gender of a pet.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// IsValid reports whether g is a known gender.
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderUnknown
}

// Size class of a pet.
type Size string

const (
	SizeSmall      Size = "small"
	SizeMedium     Size = "medium"
	SizeLarge      Size = "large"
	SizeExtraLarge Size = "extra_large"
)

// IsValid reports whether s is a known size.
func (s Size) IsValid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge:
		return true
	}
	return false
}

// Province is one of Nepal's seven provinces.
type Province string

const (
	ProvinceKoshi         Province = "province_1"
	ProvinceMadhesh       Province = "madhesh"
	ProvinceBagmati       Province = "bagmati"
	ProvinceGandaki       Province = "gandaki"
	ProvinceLumbini       Province = "lumbini"
	ProvinceKarnali       Province = "karnali"
	ProvinceSudurpashchim Province = "sudurpashchim"
)

var provinceNames = map[Province]string{
	ProvinceKoshi:         "Province 1",
	ProvinceMadhesh:       "Madhesh Province",
	ProvinceBagmati:       "Bagmati Province",
	ProvinceGandaki:       "Gandaki Province",
	ProvinceLumbini:       "Lumbini Province",
	ProvinceKarnali:       "Karnali Province",
	ProvinceSudurpashchim: "Sudurpashchim Province",
}

// IsValid reports whether p is a known province.
func (p Province) IsValid() bool {
	_, ok := provinceNames[p]
	return ok
}

// DisplayName returns the human readable province name.
func (p Province) DisplayName() string {
	if name, ok := provinceNames[p]; ok {
		return name
	}
	return string(p)
}

// ParsePetType parses a pet type case-insensitively.
func ParsePetType(s string) (PetType, error) {
	t := PetType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("invalid pet type: %s", s)
	}
	return t, nil
}
