package model

// MainRole is the organizational role a person is assigned to.
// The values double as the Dutch tags used in output strings.
type MainRole string

const (
	RoleNone             MainRole = ""
	RoleDirector         MainRole = "directeur"
	RoleExecutiveBoard   MainRole = "bestuur"
	RoleSupervisoryBoard MainRole = "rvt"
	RoleMemberCouncil    MainRole = "ledenraad"
	RoleAuditCommittee   MainRole = "kascommissie"
	RoleControlCommittee MainRole = "controlecommissie"
	RoleAmbassador       MainRole = "ambassadeur"
)

// SubRole is the function a person holds within a role
type SubRole string

const (
	SubNone         SubRole = ""
	SubDirector     SubRole = "directeur"
	SubViceChair    SubRole = "vicevoorzitter"
	SubChair        SubRole = "voorzitter"
	SubTreasurer    SubRole = "penningmeester"
	SubSecretary    SubRole = "secretaris"
	SubCommissioner SubRole = "commissaris"
	SubMember       SubRole = "lid"
	SubAdvisor      SubRole = "adviseur"
)

// IdentityGroup holds the spellings believed to denote one person.
// The canonical spelling is always first.
type IdentityGroup []string

// Canonical returns the display name of the group
func (g IdentityGroup) Canonical() string {
	if len(g) == 0 {
		return ""
	}
	return g[0]
}

// RoleAssignment is the classification of one identity group together with
// the evidence counts the plausibility passes need
type RoleAssignment struct {
	Main      MainRole `json:"main"`
	Sub       SubRole  `json:"sub"`
	BackupSub SubRole  `json:"backup_sub,omitempty"`

	// Backup is the role a director falls back to when demoted
	Backup MainRole `json:"backup,omitempty"`

	// DirectorDirect counts director keywords in sentences naming the person
	DirectorDirect int `json:"director_direct"`
	// ExecutiveSurrounding counts executive-board keywords around the person
	ExecutiveSurrounding int `json:"executive_surrounding"`
	// SupervisorySurrounding counts supervisory-board keywords around the person
	SupervisorySurrounding int `json:"supervisory_surrounding"`
}

// PersonsResult is the outcome of person extraction for one document
type PersonsResult struct {
	Ambassadors      []string `json:"ambassadors"`
	Positions        []string `json:"positions"`
	Directors        []string `json:"directors"`
	SupervisoryBoard []string `json:"supervisory_board"`
	ExecutiveBoard   []string `json:"executive_board"`
	MemberCouncil    []string `json:"member_council"`
	AuditCommittee   []string `json:"audit_committee"`
	ControlCommittee []string `json:"control_committee"`
}

// Board returns every confirmed board member, role lists concatenated
func (r PersonsResult) Board() []string {
	var out []string
	out = append(out, r.Directors...)
	out = append(out, r.ExecutiveBoard...)
	out = append(out, r.SupervisoryBoard...)
	out = append(out, r.MemberCouncil...)
	out = append(out, r.AuditCommittee...)
	out = append(out, r.ControlCommittee...)
	return out
}

// Implausible reports whether the result looks like a segmentation failure:
// oversized boards, no boards at all, or hardly any positions.
func (r PersonsResult) Implausible() bool {
	return len(r.SupervisoryBoard) > 12 ||
		len(r.ExecutiveBoard) > 12 ||
		(len(r.SupervisoryBoard) == 0 && len(r.ExecutiveBoard) == 0) ||
		len(r.Positions) <= 3
}

// Add files name under role. Names for roles without a list are ignored.
func (r *PersonsResult) Add(role MainRole, name string) {
	switch role {
	case RoleAmbassador:
		r.Ambassadors = append(r.Ambassadors, name)
	case RoleDirector:
		r.Directors = append(r.Directors, name)
	case RoleSupervisoryBoard:
		r.SupervisoryBoard = append(r.SupervisoryBoard, name)
	case RoleExecutiveBoard:
		r.ExecutiveBoard = append(r.ExecutiveBoard, name)
	case RoleMemberCouncil:
		r.MemberCouncil = append(r.MemberCouncil, name)
	case RoleAuditCommittee:
		r.AuditCommittee = append(r.AuditCommittee, name)
	case RoleControlCommittee:
		r.ControlCommittee = append(r.ControlCommittee, name)
	}
}
