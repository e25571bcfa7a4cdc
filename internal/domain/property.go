package domain

// NumOfHouses is the number of houses a property holds before a hotel replaces them.
const NumOfHouses = 4

// PropertyRecord is one board space's static reference data.
// Numeric fields are pointers so a missing or non-numeric value in the
// source document stays distinguishable from zero.
type PropertyRecord struct {
	Name           string
	Color          string
	Rent           *int
	BuildCost      *int
	RentWithHouses []int // index i is the rent with i+1 houses
	RentWithHotel  *int
	SiteLocation   *int // 1-based position on the board track, Go is 1
}
