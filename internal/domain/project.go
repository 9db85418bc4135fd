package domain

import (
	"fmt"
	"strings"
	"time"
)

type ProjectID string

type Project struct {
	ID          ProjectID
	Name        string
	Description string
	TargetWords int
	CreatedAt   time.Time
}

// ResolveProject matches ref against project ids first, then names ignoring case.
// A blank ref means no project.
func ResolveProject(projects []Project, ref string) (ProjectID, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", nil
	}

	for _, project := range projects {
		if string(project.ID) == ref {
			return project.ID, nil
		}
	}
	for _, project := range projects {
		if strings.EqualFold(project.Name, ref) {
			return project.ID, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrProjectNotFound, ref)
}
