// Package keywords holds the fixed Dutch vocabularies used to recognize
// roles, names and organizations. Every accessor returns a fresh copy, so
// callers can never mutate the shared tables.
package keywords

import (
	"slices"

	"github.com/ppiankov/nedextract/internal/model"
)

// Category is an ordered keyword list voting for one role tag
type Category struct {
	Tag   string
	Words []string
}

// Categories is an ordered list of categories. Order is significant: ties are
// broken in favour of the earlier category.
type Categories []Category

// Tags returns the category tags in order
func (cs Categories) Tags() []string {
	tags := make([]string, len(cs))
	for i, c := range cs {
		tags[i] = c.Tag
	}
	return tags
}

// Index returns the position of the category with the given tag, or -1
func (cs Categories) Index(tag string) int {
	for i, c := range cs {
		if c.Tag == tag {
			return i
		}
	}
	return -1
}

// Without returns a copy with the given tags removed, order preserved
func (cs Categories) Without(tags ...string) Categories {
	out := make(Categories, 0, len(cs))
	for _, c := range cs {
		if !slices.Contains(tags, c.Tag) {
			out = append(out, c)
		}
	}
	return out
}

// Words returns all words of all categories, in order
func (cs Categories) Words() []string {
	var out []string
	for _, c := range cs {
		out = append(out, c.Words...)
	}
	return out
}

var (
	director         = []string{"directeur", "directrice", "directie", "bestuurder", "directeuren", "directeur-bestuurder"}
	executiveBoard   = []string{"bestuur", "db", "ab", "rvb", "bestuurslid", "bestuursleden", "hoofdbestuur", "bestuursvoorzitter"}
	supervisoryBoard = []string{"rvt", "raad van toezicht", "raad v. toezicht", "auditcommissie", "audit commissie"}
	memberCouncil    = []string{"ledenraad", "ledenraadsvoorzitter", "ledenraadpresidium"}
	auditCommittee   = []string{"kascommissie"}
	controlCommittee = []string{"controlecommissie"}
	ambassador       = []string{"ambassadeur", "ambassadeurs"}

	viceChair    = []string{"vice-voorzitter", "vicevoorzitter", "vice voorzitter"}
	chair        = []string{"voorzitter"}
	treasurer    = []string{"penningmeester"}
	secretary    = []string{"secretaris", "secretariaat"}
	commissioner = []string{"commissaris", "commissariaat"}
	member       = []string{"lid", "leden", "bestuurslid", "bestuursleden"}
	advisor      = []string{"adviseur", "adviseurs"}
)

func category[T ~string](tag T, words []string) Category {
	return Category{Tag: string(tag), Words: slices.Clone(words)}
}

// MainJobs returns the main-role categories, most telling first
func MainJobs() Categories {
	return Categories{
		category(model.RoleDirector, director),
		category(model.RoleExecutiveBoard, executiveBoard),
		category(model.RoleSupervisoryBoard, supervisoryBoard),
		category(model.RoleMemberCouncil, memberCouncil),
		category(model.RoleAuditCommittee, auditCommittee),
		category(model.RoleControlCommittee, controlCommittee),
		category(model.RoleAmbassador, ambassador),
	}
}

// MainJobsNoAmbassador returns the main-role categories without ambassador
func MainJobsNoAmbassador() Categories {
	return MainJobs().Without(string(model.RoleAmbassador))
}

// MainJobsBackup returns the categories a demoted director can fall back to
func MainJobsBackup() Categories {
	return MainJobs().Without(string(model.RoleDirector))
}

// MainJobsBackupNoAmbassador is MainJobsBackup without ambassador
func MainJobsBackupNoAmbassador() Categories {
	return MainJobs().Without(string(model.RoleDirector), string(model.RoleAmbassador))
}

// SubJobs returns the sub-role categories in tie-break order
func SubJobs() Categories {
	return Categories{
		category(model.SubDirector, director),
		category(model.SubViceChair, viceChair),
		category(model.SubChair, chair),
		category(model.SubTreasurer, treasurer),
		category(model.SubSecretary, secretary),
		category(model.SubCommissioner, commissioner),
		category(model.SubMember, member),
		category(model.SubAdvisor, advisor),
	}
}

// RoleWords returns every main and sub role keyword
func RoleWords() []string {
	return append(MainJobs().Words(), SubJobs().Words()...)
}

var particles = []string{"'s", "'m", "'t", "aan", "af", "al", "am", "auf", "ben", "bij", "bin",
	"boven", "da", "dal", "dal'", "dalla", "das", "de", "deca", "degli", "dei",
	"del", "della", "dem", "den", "der", "des", "di", "die", "do", "don", "dos",
	"du", "el", "gen", "het", "im", "in", "la", "las", "le", "les", "lo", "los",
	"of", "onder", "op", "over", "te", "ten", "ter", "tho", "thoe", "thor", "to",
	"toe", "tot", "uijt", "uit", "unter", "van", "ver", "vom", "von", "voor",
	"vor", "zu", "zum", "zur"}

// Particles returns the name particles (tussenvoegsels) found in Dutch surnames.
// One-letter particles are omitted.
func Particles() []string {
	return slices.Clone(particles)
}

var titles = []string{"prof.", "dr.", "mr.", "ir.", "drs.", "bacc.", "kand.", "dr.h.c.", "ing.", "bc.",
	"phd", "phd.", "dhr.", "mevr.", "mw.", "ds.", "mgr.", "mevrouw", "meneer", "jhr.",
	"pastor", "pastoor", "dominee", "priester", "imam", "rabbi", "rabbijn"}

// Titles returns the lowercase titles stripped from person names
func Titles() []string {
	return slices.Clone(titles)
}
