package keywords

import "slices"

// OrgKeyword is a regular expression hinting at an organization, together
// with the plain text it stands for. A candidate equal to the plain text is
// the bare keyword itself and does not count.
type OrgKeyword struct {
	Pattern string
	Literal string
}

func orgKeys(pairs ...string) []OrgKeyword {
	out := make([]OrgKeyword, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, OrgKeyword{Pattern: pairs[i], Literal: pairs[i+1]})
	}
	return out
}

// OrgTrueKeys are matched against the lowercased candidate
func OrgTrueKeys() []OrgKeyword {
	return orgKeys(
		`bv`, "bv",
		`b\.v`, "b.v",
		`congregatie`, "congregatie",
		`fonds\b`, "fonds",
		`fondsen\b`, "fondsen",
		`fund\b`, "fund",
		`ministerie`, "ministerie",
		`umc`, "umc",
		`nederland\b`, "nederland",
	)
}

// OrgTrueCapKeys are matched as whole words against the candidate in its original casing
func OrgTrueCapKeys() []OrgKeyword {
	return orgKeys(
		`Association`, "Association",
		`Coöperatie`, "Coöperatie",
		`CBF`, "CBF",
		`Firma`, "Firma",
		`Foundation`, "Foundation",
		`Hospice`, "Hospice",
		`Hogeschool`, "Hogeschool",
		`Holding`, "Holding",
		`Institute`, "Institute",
		`Instituut`, "Instituut",
		`Inc\.`, "Inc.",
		`Koninklijk Nederlands`, "Koninklijk Nederlands",
		`Koninklijke Nederlandse`, "Koninklijke Nederlandse",
		`Loterij`, "Loterij",
		`LLP`, "LLP",
		`Medisch Centrum`, "Medisch Centrum",
		`Museum`, "Museum",
		`NV`, "NV",
		`N\.V`, "N.V",
		`Stichting`, "Stichting",
		`Trust`, "Trust",
		`U\.A`, "U.A",
		`Universiteit`, "Universiteit",
		`University`, "University",
		`Vereniging`, "Vereniging",
		`Ziekenhuis`, "Ziekenhuis",
		`Ziekenhuizen`, "Ziekenhuizen",
	)
}

var orgFalseKeys = []string{`abonnement`, `activa`, `afdeling`, `akkoord`, `assembly`,
	`baten`, `bedrijfsvoering`, `begroting`, `beleid`, `bestuur`, `board`,
	`cao`, `commissie`, `commissaris`, `committee`, `congres`, `corona`, `council`,
	`covid`, `directeur`, `directie`, `docent`, `emeritus`,
	`fonds op naam`, `fondsen op naam`, `functie`, `fy2`, `interim`,
	`jaarrekening`, `jaarverslag`, `jury`, `lid\b`, `kosten`,
	`magazine`, `manager`, `managing`, `netwerk`,
	`overhead`, `overige`, `passiva`, `penningmeester`, `portefeuille`, `premie`,
	`president`,
	`raad`, `regeling`, `reserve`, `review`, `richtlijn`, `rj640`, `rj 640`,
	`rj 650`, `rj 2016`, `saldo`, `startdatum`, `\btbv\b`, `traineeship`,
	`van toezicht`, `verkiezing`,
	`voorzitter`, `www\.`, `\.nl`, `\.com`}

// OrgFalseKeys are patterns that disqualify a lowercased candidate
func OrgFalseKeys() []string {
	return slices.Clone(orgFalseKeys)
}

var orgFalseTerms = []string{"aandelen", "ab", "agile", "algemeen nut beogende instelling", "anbi", "arbo",
	"avg", "beheer & administratie", "beheer en administratie", "beweging", "bhv",
	"bic", "b&a", "bw", "ceo", "cfo", "cio", "corporate", "country offices",
	"crm", "customer relationship management", "cto",
	"db", "derden", "ebola", "eindredactie", "eur",
	"finance & operations", "financiën", "finance", "fondsenwerving",
	"fonds", "fondsen", "fte", "fundraising",
	"gdpr", "great fundraising", "good governance", "governance",
	"hr", "hrm", "huisvesting", "human resources", "iban", "ict", "industrie",
	"integrity", "leasing", "lobby", "lobbyen",
	"managementteam", "management team", "management", "marketing", "mt",
	"naam", "national organization",
	"national organizations", "pensioenfonds", "pensioenfondsen",
	"personeelsopbouw", "program offices", "project offices", "p&o",
	"risk and audit", "rj", "rvt", "rvb", "sar", "sars", "sv", "tv",
	"vgba", "vio", "vog", "war"}

// OrgFalseTerms are whole lowercase candidates that are never organizations
func OrgFalseTerms() []string {
	return slices.Clone(orgFalseTerms)
}

var (
	stripPositions = []string{"adviseur", "bestuurslid", "ceo", "cfo", "chief technology officer", "cio",
		"commissaris", "cto", "directeur", "lid", "penningmeester", "secretaris",
		"vice voorzitter", "vicevoorzitter", "vice-voorzitter", "voorzitter"}
	stripArticles   = []string{`van\b`, `voor\b`, `bij\b`, `in\b`, `v\.`, `en\b`, `de\b`, `het\b`, `een\b`}
	stripCouncil    = []string{"raad"}
	stripCommittees = []string{"wetenschappelijke adviesraad", "maatschappelijke adviesraad", "bestuur",
		"toezicht", "advies", "commissarissen", "adviesraad", "rvt", "rvc", "rvb"}
	stripFunctions = []string{"hoofdfuncties", "hoofdfunctie", "nevenfuncties", "nevenfunctie"}
)

// StripPositions are person functions removed from the start of a candidate
func StripPositions() []string { return slices.Clone(stripPositions) }

// StripArticles are case-sensitive patterns for Dutch articles and prepositions
func StripArticles() []string { return slices.Clone(stripArticles) }

// StripCouncil is the council word removed from the start of a candidate
func StripCouncil() []string { return slices.Clone(stripCouncil) }

// StripCommittees are committee phrases removed from the start of a candidate
func StripCommittees() []string { return slices.Clone(stripCommittees) }

// StripFunctions are suffixes removed from the end of a candidate
func StripFunctions() []string { return slices.Clone(stripFunctions) }

// SearchStrip lists the words whose presence makes a candidate worth stripping
func SearchStrip() []string {
	return append(StripPositions(), stripCommittees...)
}
