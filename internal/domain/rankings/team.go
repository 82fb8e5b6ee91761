package rankings

import "strings"

// Team is an NFL team abbreviation as it appears in the rankings sheet.
type Team string

// UnknownTeam marks a team cell that did not match any known abbreviation.
const UnknownTeam Team = "—"

// NFC
const (
	TeamARI Team = "ARI"
	TeamATL Team = "ATL"
	TeamCAR Team = "CAR"
	TeamCHI Team = "CHI"
	TeamDAL Team = "DAL"
	TeamDET Team = "DET"
	TeamGB  Team = "GB"
	TeamLAR Team = "LAR"
	TeamMIN Team = "MIN"
	TeamNO  Team = "NO"
	TeamNYG Team = "NYG"
	TeamPHI Team = "PHI"
	TeamSF  Team = "SF"
	TeamSEA Team = "SEA"
	TeamTB  Team = "TB"
	TeamWAS Team = "WAS"
)

// AFC
const (
	TeamBAL Team = "BAL"
	TeamBUF Team = "BUF"
	TeamCIN Team = "CIN"
	TeamCLE Team = "CLE"
	TeamDEN Team = "DEN"
	TeamHOU Team = "HOU"
	TeamIND Team = "IND"
	TeamJAX Team = "JAX"
	TeamKC  Team = "KC"
	TeamLAC Team = "LAC"
	TeamLV  Team = "LV"
	TeamMIA Team = "MIA"
	TeamNE  Team = "NE"
	TeamNYJ Team = "NYJ"
	TeamPIT Team = "PIT"
	TeamTEN Team = "TEN"
)

var knownTeams = map[Team]struct{}{
	TeamARI: {}, TeamATL: {}, TeamCAR: {}, TeamCHI: {}, TeamDAL: {}, TeamDET: {}, TeamGB: {}, TeamLAR: {},
	TeamMIN: {}, TeamNO: {}, TeamNYG: {}, TeamPHI: {}, TeamSF: {}, TeamSEA: {}, TeamTB: {}, TeamWAS: {},
	TeamBAL: {}, TeamBUF: {}, TeamCIN: {}, TeamCLE: {}, TeamDEN: {}, TeamHOU: {}, TeamIND: {}, TeamJAX: {},
	TeamKC: {}, TeamLAC: {}, TeamLV: {}, TeamMIA: {}, TeamNE: {}, TeamNYJ: {}, TeamPIT: {}, TeamTEN: {},
}

// ParseTeam matches raw against the 32 team abbreviations, ignoring case and
// surrounding whitespace. Unknown input yields UnknownTeam and false.
func ParseTeam(raw string) (Team, bool) {
	t := Team(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := knownTeams[t]; ok {
		return t, true
	}
	return UnknownTeam, false
}

