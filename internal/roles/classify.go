package roles

import (
	"github.com/ppiankov/nedextract/internal/keywords"
	"github.com/ppiankov/nedextract/internal/model"
)

// Classifier assigns roles to identity groups using the fixed keyword tables
type Classifier struct {
	main               keywords.Categories
	mainNoAmbassador   keywords.Categories
	backup             keywords.Categories
	backupNoAmbassador keywords.Categories
	sub                keywords.Categories
}

// NewClassifier creates a classifier with the Dutch role vocabulary
func NewClassifier() *Classifier {
	return &Classifier{
		main:               keywords.MainJobs(),
		mainNoAmbassador:   keywords.MainJobsNoAmbassador(),
		backup:             keywords.MainJobsBackup(),
		backupNoAmbassador: keywords.MainJobsBackupNoAmbassador(),
		sub:                keywords.SubJobs(),
	}
}

// Classify determines the main and sub role of one person in doc.
//
// A sub role contradicts an ambassador role, so an ambassador with a sub
// role is classified again without the ambassador category. Directors also
// get a backup role, chosen without the director category; ambassador is
// left out of that choice when any sub role was seen.
func (c *Classifier) Classify(doc *model.Document, group model.IdentityGroup) model.RoleAssignment {
	direct, surrounding := RelevantSentences(doc, group)

	job := DetermineMainJob(c.main, direct, surrounding)
	sub, backupSub := DetermineSubJob(c.sub, group, direct, job.Role)

	if job.Role == model.RoleAmbassador && sub != model.SubNone {
		job.Role = DetermineMainJob(c.mainNoAmbassador, direct, surrounding).Role
		sub, backupSub = DetermineSubJob(c.sub, group, direct, job.Role)
	}

	ra := model.RoleAssignment{
		Main:                   job.Role,
		Sub:                    sub,
		BackupSub:              backupSub,
		DirectorDirect:         job.DirectorDirect,
		ExecutiveSurrounding:   job.ExecutiveSurrounding,
		SupervisorySurrounding: job.SupervisorySurrounding,
	}

	if job.Role == model.RoleDirector {
		table := c.backup
		if sub != model.SubNone || backupSub != model.SubNone {
			table = c.backupNoAmbassador
		}
		ra.Backup = DetermineMainJob(table, direct, surrounding).Role
	}
	return ra
}
