package models

// PropertyStatus tracks a listing through the review workflow.
type PropertyStatus string

const (
	StatusPending  PropertyStatus = "pending"
	StatusApproved PropertyStatus = "approved"
	StatusRejected PropertyStatus = "rejected"
)

// Valid reports whether the status is one of the three workflow states.
func (s PropertyStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Property represents a rental listing. The ID is assigned by the store and
// the ManagerID is fixed at creation.
type Property struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Location    string         `json:"location"`
	Price       int            `json:"price"`
	BHK         string         `json:"bhk"`
	Area        float64        `json:"area"`
	Description string         `json:"description"`
	Images      []string       `json:"images"`
	Status      PropertyStatus `json:"status"`
	ManagerID   string         `json:"managerId"`
	Amenities   []string       `json:"amenities,omitempty"`
}

// PriceBand is a named monthly-rent range used for browse filtering.
type PriceBand string

const (
	BandAll       PriceBand = "all"
	BandUnder20K  PriceBand = "0-20000"
	Band20KTo50K  PriceBand = "20000-50000"
	Band50KTo100K PriceBand = "50000-100000"
	BandAbove100K PriceBand = "100000+"
)

// Matches reports whether the given monthly price falls inside the band.
// "all", the empty string and unrecognised band names impose no constraint.
func (b PriceBand) Matches(price int) bool {
	switch b {
	case BandUnder20K:
		return price < 20000
	case Band20KTo50K:
		return price >= 20000 && price < 50000
	case Band50KTo100K:
		return price >= 50000 && price < 100000
	case BandAbove100K:
		return price >= 100000
	default:
		return true
	}
}

// BrowseFilter combines the two independent browse predicates. Empty values
// disable the corresponding predicate.
type BrowseFilter struct {
	Location string
	Band     PriceBand
}

// SubmitPropertyRequest carries the manager-supplied listing fields. Any
// status value a caller sneaks in is ignored by the workflow.
type SubmitPropertyRequest struct {
	Title       string   `json:"title" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Price       int      `json:"price" validate:"required,gt=0"`
	BHK         string   `json:"bhk" validate:"required"`
	Area        float64  `json:"area" validate:"required,gt=0"`
	Description string   `json:"description" validate:"required"`
	Images      []string `json:"images" validate:"required,min=1"`
	Status      string   `json:"status,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
}
