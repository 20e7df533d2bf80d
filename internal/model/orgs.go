package model

// Decision is the verdict of the organization decision tree
type Decision int

const (
	DecisionFalse Decision = iota
	DecisionTrue
	// DecisionNo marks a single-mention candidate with contradicting evidence
	DecisionNo
	// DecisionMaybe queues the candidate for the single-organization check
	DecisionMaybe
)

func (d Decision) String() string {
	switch d {
	case DecisionTrue:
		return "true"
	case DecisionNo:
		return "no"
	case DecisionMaybe:
		return "maybe"
	default:
		return "false"
	}
}

// NotMentioned is the percentage reported for a candidate that was tagged but
// never found in the text it was tagged in
const NotMentioned = -10.0

// OrgCandidate carries the evidence gathered for one candidate organization
type OrgCandidate struct {
	Name string `json:"name"`

	// PercentC and MentionsC are measured on the comma-joined variant
	PercentC  float64 `json:"percent_c"`
	MentionsC int     `json:"mentions_c"`

	// PercentP and MentionsP are measured on the period-joined variant
	PercentP  float64 `json:"percent_p"`
	MentionsP int     `json:"mentions_p"`

	InVariantC  bool `json:"in_variant_c"`
	InVariantPP bool `json:"in_variant_pp"`
}

// ANBIRecord is a registered public benefit institution
type ANBIRecord struct {
	RSIN              string `json:"rsin"`
	StatutoryName     string `json:"statutory_name"`
	ShortBusinessName string `json:"short_business_name,omitempty"`
}

// OrgMention is a confirmed related organization with its mention count
type OrgMention struct {
	Name     string      `json:"name"`
	Mentions int         `json:"mentions"`
	Matched  string      `json:"matched_anbi,omitempty"`
	ANBI     *ANBIRecord `json:"anbi,omitempty"`
}
