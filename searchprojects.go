package todoist

type projectPredicate func(*Project) bool

type ProjectScan struct {
	snapshot   *Snapshot
	predicates []projectPredicate
}

// Active keeps projects that are neither archived nor deleted.
func (s *ProjectScan) Active() *ProjectScan {
	s.predicates = append(s.predicates, func(p *Project) bool {
		return !p.IsArchived && !p.IsDeleted
	})
	return s
}

// WithName keeps projects whose name satisfies match.
func (s *ProjectScan) WithName(match func(string) bool) *ProjectScan {
	s.predicates = append(s.predicates, func(p *Project) bool {
		return match(p.Name)
	})
	return s
}

func (s *ProjectScan) Results() []*Project {
	var results []*Project
	for _, project := range s.snapshot.Projects {
		if s.match(project) {
			results = append(results, project)
		}
	}
	return results
}

// First returns the first project in snapshot order satisfying all predicates.
func (s *ProjectScan) First() (*Project, bool) {
	for _, project := range s.snapshot.Projects {
		if s.match(project) {
			return project, true
		}
	}
	return nil, false
}

func (s *ProjectScan) match(project *Project) bool {
	for _, match := range s.predicates {
		if !match(project) {
			return false
		}
	}
	return true
}

func (s *Snapshot) SearchProjects() *ProjectScan {
	return &ProjectScan{
		snapshot: s,
	}
}
