package providers

// Tabs names the four sheet tabs read on every refresh.
type Tabs struct {
	Rankings string
	Dropped  string
	Worst    string
	Log      string
}

// DefaultTabs matches the tab names of the published rankings sheet.
func DefaultTabs() Tabs {
	return Tabs{
		Rankings: "Rankings",
		Dropped:  "Dropped Out",
		Worst:    "Worst QB",
		Log:      "Log",
	}
}

// All lists the tab names in fetch order.
func (t Tabs) All() []string {
	return []string{t.Rankings, t.Dropped, t.Worst, t.Log}
}
