package app

import (
	"fmt"
	"strings"

	"monopoly_report/internal/domain"
)

// CompleteColorRent states the rent for an owner holding the whole colour
// group with no houses built: base rent doubled.
func CompleteColorRent(p domain.PropertyRecord) (string, error) {
	rent, err := amount(p, "rent", p.Rent)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("The rent when having a complete property set and no houses is $%d.", rent*2), nil
}

// DistanceFromGo states how many spaces separate the property from Go.
// Only a distance of exactly 1 is singular; 0 is plural.
func DistanceFromGo(p domain.PropertyRecord) (string, error) {
	if p.Name == "" {
		return "", fieldErr(p, "name", "missing")
	}
	if p.SiteLocation == nil {
		return "", fieldErr(p, "siteLocation", "missing or non-numeric")
	}
	if *p.SiteLocation < 1 {
		return "", fieldErr(p, "siteLocation", fmt.Sprintf("must be at least 1, got %d", *p.SiteLocation))
	}
	distance := *p.SiteLocation - 1
	if distance == 1 {
		return fmt.Sprintf("%s is %d space from Go.", p.Name, distance), nil
	}
	return fmt.Sprintf("%s is %d spaces from Go.", p.Name, distance), nil
}

// RentWithHousesLog returns one terminated line per house count, 1 to NumOfHouses.
func RentWithHousesLog(p domain.PropertyRecord) (string, error) {
	lines, err := houseLines(p)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// RentWithHousesFragment builds a list node holding one item per house count.
// Nothing is created on d when the record is malformed.
func RentWithHousesFragment(d domain.Display, p domain.PropertyRecord) (domain.NodeHandle, error) {
	lines, err := houseLines(p)
	if err != nil {
		return 0, err
	}
	return houseList(d, lines), nil
}

func houseList(d domain.Display, lines []string) domain.NodeHandle {
	list := d.CreateSection(domain.KindList, "")
	for _, l := range lines {
		d.AppendChild(list, d.CreateSection(domain.KindListItem, l))
	}
	return list
}

func houseLines(p domain.PropertyRecord) ([]string, error) {
	if len(p.RentWithHouses) < domain.NumOfHouses {
		return nil, fieldErr(p, "rentWithHouses",
			fmt.Sprintf("has %d entries, need %d", len(p.RentWithHouses), domain.NumOfHouses))
	}
	out := make([]string, 0, domain.NumOfHouses)
	for i := 0; i < domain.NumOfHouses; i++ {
		r := p.RentWithHouses[i]
		if r < 0 {
			return nil, fieldErr(p, "rentWithHouses", fmt.Sprintf("entry %d is negative", i))
		}
		out = append(out, fmt.Sprintf("With %d houses, the rent is $%d.", i+1, r))
	}
	return out, nil
}

/********** shared sentences **********/

func introSentence(p domain.PropertyRecord) string {
	return fmt.Sprintf("%s is a %s property in Monopoly.", p.Name, p.Color)
}

func colorSentence(p domain.PropertyRecord) string {
	return fmt.Sprintf("The color of the property is %s.", p.Color)
}

func baseRentSentence(rent int) string {
	return fmt.Sprintf("The rent when you land on that property is $%d.", rent)
}

func buildCostSentence(cost int) string {
	return fmt.Sprintf("Each upgrade costs $%d, and the rent for additional house is:", cost)
}

func hotelSentence(rent int) string {
	return fmt.Sprintf("With a hotel, the rent is $%d.", rent)
}

func hotelPrerequisiteSentence() string {
	return fmt.Sprintf("To get a hotel, you need %d houses on the property first.", domain.NumOfHouses)
}

/********** tiny helpers **********/

func amount(p domain.PropertyRecord, field string, v *int) (int, error) {
	if v == nil {
		return 0, fieldErr(p, field, "missing or non-numeric")
	}
	if *v < 0 {
		return 0, fieldErr(p, field, fmt.Sprintf("must be non-negative, got %d", *v))
	}
	return *v, nil
}

func fieldErr(p domain.PropertyRecord, field, reason string) *domain.FieldError {
	return &domain.FieldError{Name: p.Name, Field: field, Reason: reason}
}
