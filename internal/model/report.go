package model

import (
	"fmt"
	"strings"
	"time"
)

// Task selects which extraction steps run on a document
type Task string

const (
	TaskAll     Task = "all"
	TaskPeople  Task = "people"
	TaskOrgs    Task = "orgs"
	TaskSectors Task = "sectors"
)

// Tasks is a set of requested tasks
type Tasks []Task

// Has reports whether t was requested, either directly or through "all"
func (ts Tasks) Has(t Task) bool {
	for _, x := range ts {
		if x == t || x == TaskAll {
			return true
		}
	}
	return false
}

// ParseTasks validates task names. An empty list means all tasks.
func ParseTasks(names []string) (Tasks, error) {
	var ts Tasks
	for _, n := range names {
		for _, part := range strings.Split(n, ",") {
			t := Task(strings.ToLower(strings.TrimSpace(part)))
			switch t {
			case "":
				continue
			case TaskAll, TaskPeople, TaskOrgs, TaskSectors:
				ts = append(ts, t)
			default:
				return nil, fmt.Errorf("unknown task %q (supported: all, people, orgs, sectors)", part)
			}
		}
	}
	if len(ts) == 0 {
		ts = Tasks{TaskAll}
	}
	return ts, nil
}

// SectorsOnly reports whether only sector classification was requested
func (ts Tasks) SectorsOnly() bool {
	return len(ts) > 0 && !ts.Has(TaskPeople) && !ts.Has(TaskOrgs)
}

// Report is the extraction result for a single input document
type Report struct {
	File         string    `json:"file"`
	Source       string    `json:"source,omitempty"`
	ProcessedAt  time.Time `json:"processed_at"`
	Organization string    `json:"organization"`

	Persons     []string      `json:"persons,omitempty"`
	People      PersonsResult `json:"people"`
	Retried     bool          `json:"retried,omitempty"`
	RelatedOrgs []OrgMention  `json:"related_orgs,omitempty"`
	Sector      string        `json:"sector,omitempty"`

	Errors []string `json:"errors,omitempty"`
}

// AddError records a non-fatal problem for this document
func (r *Report) AddError(err error) {
	if err != nil {
		r.Errors = append(r.Errors, err.Error())
	}
}
