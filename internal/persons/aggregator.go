// Package persons finds the people with a position in a document and files
// them under one role each, correcting for implausible populations such as
// too many directors or oversized boards.
package persons

import (
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/nedextract/internal/keywords"
	"github.com/ppiankov/nedextract/internal/model"
	"github.com/ppiankov/nedextract/internal/names"
	"github.com/ppiankov/nedextract/internal/roles"
	"github.com/ppiankov/nedextract/internal/textutil"
)

// Aggregator extracts persons and their roles from documents
type Aggregator struct {
	matcher    *names.Matcher
	classifier *roles.Classifier
	roleWords  []string
	logger     logrus.FieldLogger
}

// NewAggregator creates an aggregator with the Dutch vocabularies. A nil
// logger discards all output.
func NewAggregator(logger logrus.FieldLogger) *Aggregator {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Aggregator{
		matcher:    names.NewDutchMatcher(),
		classifier: roles.NewClassifier(),
		roleWords:  keywords.RoleWords(),
		logger:     logger,
	}
}

// ExtractPersons runs a default aggregator over doc
func ExtractPersons(doc *model.Document, persons []string) model.PersonsResult {
	return NewAggregator(nil).Extract(doc, persons)
}

// candidate is a person waiting for a population check
type candidate struct {
	name  string
	sub   model.SubRole
	count int
	role  model.RoleAssignment
}

// Extract classifies every identity group that appears near a role keyword
// and returns the confirmed people per role.
func (a *Aggregator) Extract(doc *model.Document, persons []string) model.PersonsResult {
	var (
		res         model.PersonsResult
		directors   []candidate
		supervisory []candidate
		executive   []candidate
	)

	for _, group := range a.PotentialPeople(doc, persons) {
		ra := a.classifier.Classify(doc, group)
		name := group.Canonical()

		a.logger.WithField("action", "classify_person").
			WithField("person", name).
			WithField("main", ra.Main).
			WithField("sub", ra.Sub).
			Debug("classified person")

		switch ra.Main {
		case model.RoleNone:
			continue
		case model.RoleAmbassador:
			res.Ambassadors = append(res.Ambassadors, name)
			continue
		}

		res.Positions = append(res.Positions, position(name, ra.Main, ra.Sub))
		switch ra.Main {
		case model.RoleDirector:
			directors = append(directors, candidate{name: name, sub: ra.Sub, count: ra.DirectorDirect, role: ra})
		case model.RoleSupervisoryBoard:
			supervisory = append(supervisory, candidate{name: name, sub: ra.Sub, count: ra.SupervisorySurrounding, role: ra})
		case model.RoleExecutiveBoard:
			executive = append(executive, candidate{name: name, sub: ra.Sub, count: ra.ExecutiveSurrounding, role: ra})
		default:
			res.Add(ra.Main, name)
		}
	}

	confirmed, demoted := checkDirectors(directors)
	for _, d := range confirmed {
		res.Directors = append(res.Directors, d.name)
	}
	for _, d := range demoted {
		res.Positions = remove(res.Positions, position(d.name, model.RoleDirector, d.sub))

		backup := d.role.Backup
		a.logger.WithField("action", "demote_director").
			WithField("person", d.name).
			WithField("backup", backup).
			Debug("director not plausible, using backup role")

		switch backup {
		case model.RoleNone:
			continue
		case model.RoleSupervisoryBoard:
			supervisory = append(supervisory, candidate{name: d.name, sub: d.role.BackupSub, count: d.role.SupervisorySurrounding, role: d.role})
		case model.RoleExecutiveBoard:
			executive = append(executive, candidate{name: d.name, sub: d.role.BackupSub, count: d.role.ExecutiveSurrounding, role: d.role})
		case model.RoleAmbassador:
			res.Ambassadors = append(res.Ambassadors, d.name)
			continue
		default:
			res.Add(backup, d.name)
		}
		res.Positions = append(res.Positions, position(d.name, backup, d.role.BackupSub))
	}

	res.SupervisoryBoard = a.confirmCommittee(&res, model.RoleSupervisoryBoard, supervisory)
	res.ExecutiveBoard = a.confirmCommittee(&res, model.RoleExecutiveBoard, executive)
	return res
}

func (a *Aggregator) confirmCommittee(res *model.PersonsResult, role model.MainRole, cands []candidate) []string {
	kept, dropped := checkCommittee(cands)
	for _, c := range dropped {
		res.Positions = remove(res.Positions, position(c.name, role, c.sub))
	}
	if len(dropped) > 0 {
		a.logger.WithField("action", "check_committee").
			WithField("role", role).
			WithField("dropped", len(dropped)).
			Debug("dropped weakly supported members")
	}

	var out []string
	for _, c := range kept {
		out = append(out, c.name)
	}
	return out
}

// PotentialPeople returns the identity groups of persons with at least one
// spelling that occurs in a sentence holding a role keyword
func (a *Aggregator) PotentialPeople(doc *model.Document, persons []string) []model.IdentityGroup {
	blank := strings.NewReplacer(",", " ", ".", " ")

	potential := make(map[string]bool)
	for _, s := range doc.Sentences {
		text := blank.Replace(strings.ToLower(s.Text))
		if !textutil.ContainsAnyWord(text, a.roleWords) {
			continue
		}
		for _, m := range s.Entities {
			if m.Type == model.EntityPerson {
				potential[m.Text] = true
			}
		}
	}

	for p := range potential {
		if slices.Contains(a.roleWords, strings.ToLower(p)) ||
			photographer(doc.Text, p) ||
			utf8.RuneCountInString(p) == 1 {
			delete(potential, p)
		}
	}

	var groups []model.IdentityGroup
	for _, g := range a.matcher.FindDuplicatePersons(persons) {
		if slices.ContainsFunc(g, func(n string) bool { return potential[n] }) {
			groups = append(groups, model.IdentityGroup(g))
		}
	}
	return groups
}

// photographer reports whether name is credited as "©name" or "© name"
func photographer(text, name string) bool {
	for _, credit := range []string{"©" + name, "© " + name} {
		for from := 0; ; {
			idx := strings.Index(text[from:], credit)
			if idx < 0 {
				break
			}
			end := from + idx + len(credit)
			if textutil.Boundary(text, end) {
				return true
			}
			from += idx + len("©")
		}
	}
	return false
}

// checkDirectors splits director candidates into confirmed and demoted
// ones. A single candidate is always confirmed. With more, a candidate is
// demoted if its director count is weak compared to the strongest one, or
// if it is not referred to as director right next to its name.
func checkDirectors(cands []candidate) (confirmed, demoted []candidate) {
	if len(cands) < 2 {
		return cands, nil
	}

	top := 0
	for _, c := range cands {
		top = max(top, c.count)
	}

	for _, c := range cands {
		if (len(cands) > 5 && c.count <= 3 && top > 5) ||
			(c.count <= 1 && top > 2) ||
			c.sub != model.SubDirector {
			demoted = append(demoted, c)
		} else {
			confirmed = append(confirmed, c)
		}
	}
	return confirmed, demoted
}

// checkCommittee drops weakly supported members from large boards: with 12
// or more candidates those counted 3 times or less, with 8 or more those
// counted once.
func checkCommittee(cands []candidate) (kept, dropped []candidate) {
	n := len(cands)
	for _, c := range cands {
		switch {
		case n >= 12 && c.count <= 3:
			dropped = append(dropped, c)
		case n >= 8 && c.count == 1:
			dropped = append(dropped, c)
		default:
			kept = append(kept, c)
		}
	}
	return kept, dropped
}

func position(name string, main model.MainRole, sub model.SubRole) string {
	return name + " - " + string(main) + " - " + string(sub)
}

func remove(list []string, s string) []string {
	return slices.DeleteFunc(list, func(v string) bool { return v == s })
}
