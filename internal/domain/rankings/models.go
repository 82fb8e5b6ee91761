package rankings

// Direction is the week-over-week movement of a ranked quarterback.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionSame Direction = "same"
)

// Badge is an optional marker shown next to a ranking entry.
type Badge string

const BadgeNew Badge = "NEW"

// MaxRank is the size of the weekly list.
const MaxRank = 10

// Movement captures direction and magnitude. Spots is always 0 when Dir is same.
type Movement struct {
	Dir   Direction `json:"dir"`
	Spots int       `json:"spots"`
}

// Entry is one row of the weekly top ten.
type Entry struct {
	Rank       int      `json:"rank"`
	Name       string   `json:"name"`
	Team       Team     `json:"team"`
	Commentary string   `json:"commentary"`
	Movement   Movement `json:"movement"`
	Slug       string   `json:"slug"`
	Badge      Badge    `json:"badge,omitempty"`
}

// DroppedEntry is a quarterback who fell out of the list. Prev is 0 when unknown.
type DroppedEntry struct {
	Name string `json:"name"`
	Prev int    `json:"prev"`
	Slug string `json:"slug"`
}

// WorstRecord is the singleton "worst QB of the week".
type WorstRecord struct {
	Name       string `json:"name"`
	Team       Team   `json:"team"`
	Commentary string `json:"commentary"`
	Slug       string `json:"slug"`
}

// HistoryPoint is a player's rank in one week, keyed by the short week label.
type HistoryPoint struct {
	Week string `json:"week"`
	Rank int    `json:"rank"`
}

// ArchiveWeek summarizes a past week by its top three last names.
type ArchiveWeek struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Date  string   `json:"date"`
	Top3  []string `json:"top3"`
}

// NoWorstSelected is used when the worst-QB tab has no usable row.
func NoWorstSelected() WorstRecord {
	return WorstRecord{
		Name:       "TBD",
		Team:       UnknownTeam,
		Commentary: "No worst QB selected.",
		Slug:       "tbd",
	}
}
