package shipping

import (
	"strconv"
	"strings"
)

// MatchRank orders coverage matches by geographic specificity.
type MatchRank int

const (
	RankNational MatchRank = iota + 1
	RankState
	RankZip
)

func (r MatchRank) String() string {
	switch r {
	case RankZip:
		return "zip"
	case RankState:
		return "state"
	case RankNational:
		return "national"
	}
	return "none"
}

// CoverageMatch reports which coverage token matched and how specific it is.
type CoverageMatch struct {
	Rank  MatchRank
	Token string
}

const (
	tokenNational    = "national"
	stateTokenPrefix = "state_"
)

// stateAbbr maps normalized Mexican state names to the abbreviation used in
// state_<ABBR> coverage tokens. Accented and plain spellings both resolve.
var stateAbbr = map[string]string{
	"aguascalientes":      "AGS",
	"baja california":     "BC",
	"baja california sur": "BCS",
	"campeche":            "CAMP",
	"chiapas":             "CHIS",
	"chihuahua":           "CHIH",
	"ciudad de mexico":    "CDMX",
	"cdmx":                "CDMX",
	"distrito federal":    "CDMX",
	"coahuila":            "COAH",
	"colima":              "COL",
	"durango":             "DGO",
	"estado de mexico":    "MEX",
	"mexico":              "MEX",
	"guanajuato":          "GTO",
	"guerrero":            "GRO",
	"hidalgo":             "HGO",
	"jalisco":             "JAL",
	"michoacan":           "MICH",
	"morelos":             "MOR",
	"nayarit":             "NAY",
	"nuevo leon":          "NL",
	"oaxaca":              "OAX",
	"puebla":              "PUE",
	"queretaro":           "QRO",
	"quintana roo":        "QROO",
	"san luis potosi":     "SLP",
	"sinaloa":             "SIN",
	"sonora":              "SON",
	"tabasco":             "TAB",
	"tamaulipas":          "TAMPS",
	"tlaxcala":            "TLAX",
	"veracruz":            "VER",
	"yucatan":             "YUC",
	"zacatecas":           "ZAC",
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u", "Ñ", "n",
)

// StateAbbreviation translates a free-text state name to its coverage
// abbreviation. Comparison is accent- and case-insensitive.
func StateAbbreviation(name string) (string, bool) {
	normalized := strings.Join(strings.Fields(accentReplacer.Replace(strings.ToLower(name))), " ")
	abbr, ok := stateAbbr[normalized]
	return abbr, ok
}

// MatchCoverage decides whether the rule geographically covers the address
// and with which specificity. Inactive rules never match. A false return is
// the normal "does not apply" outcome, not an error.
func MatchCoverage(rule Rule, addr Address) (CoverageMatch, bool) {
	if !rule.Active {
		return CoverageMatch{}, false
	}

	stateAbbrev := ""
	if abbr, ok := StateAbbreviation(addr.State); ok {
		stateAbbrev = stateTokenPrefix + abbr
	}

	best := CoverageMatch{}
	for _, token := range rule.Coverage {
		token = strings.TrimSpace(token)
		switch {
		case zipTokenMatches(token, addr.Zip):
			// Most specific possible, nothing can beat it.
			return CoverageMatch{Rank: RankZip, Token: token}, true
		case stateAbbrev != "" && strings.EqualFold(token, stateAbbrev):
			if best.Rank < RankState {
				best = CoverageMatch{Rank: RankState, Token: token}
			}
		case strings.EqualFold(token, tokenNational):
			if best.Rank < RankNational {
				best = CoverageMatch{Rank: RankNational, Token: token}
			}
		}
	}
	if best.Rank == 0 {
		return CoverageMatch{}, false
	}
	return best, true
}

// zipTokenMatches handles both literal 5-digit tokens and inclusive
// "start-end" range tokens.
func zipTokenMatches(token, zip string) bool {
	if zip == "" {
		return false
	}
	if start, end, ok := strings.Cut(token, "-"); ok {
		z, err := strconv.Atoi(zip)
		if err != nil {
			return false
		}
		lo, err := strconv.Atoi(strings.TrimSpace(start))
		if err != nil {
			return false
		}
		hi, err := strconv.Atoi(strings.TrimSpace(end))
		if err != nil {
			return false
		}
		return z >= lo && z <= hi
	}
	return token == zip
}
