package todoist

import "time"

type taskPredicate func(*Task) bool

func negate(p taskPredicate) taskPredicate {
	return func(task *Task) bool {
		return !p(task)
	}
}

// TaskScan filters the tasks of a snapshot. Results keep snapshot order.
type TaskScan struct {
	snapshot   *Snapshot
	predicates []taskPredicate
}

// Not negates the last predicate added.  It will panic if no predicates were added.
func (s *TaskScan) Not() *TaskScan {
	i := len(s.predicates) - 1
	s.predicates[i] = negate(s.predicates[i])
	return s
}

// Open keeps tasks that are neither completed nor deleted.
func (s *TaskScan) Open() *TaskScan {
	s.predicates = append(s.predicates, func(task *Task) bool {
		return task.Open()
	})
	return s
}

// WithProjectID looks for tasks in any of the given project IDs, that is, arguments are ORed together.
func (s *TaskScan) WithProjectID(value ...string) *TaskScan {
	s.predicates = append(s.predicates, func(task *Task) bool {
		for _, pid := range value {
			if task.ProjectID == pid {
				return true
			}
		}
		return false
	})
	return s
}

// DueOn keeps tasks due on the calendar date of day. Tasks without a due date, or with one that does not parse,
// are dropped.
func (s *TaskScan) DueOn(day time.Time) *TaskScan {
	s.predicates = append(s.predicates, func(task *Task) bool {
		return task.Due.On(day)
	})
	return s
}

// WithContent keeps tasks whose content satisfies match.
func (s *TaskScan) WithContent(match func(string) bool) *TaskScan {
	s.predicates = append(s.predicates, func(task *Task) bool {
		return match(task.Content)
	})
	return s
}

func (s *TaskScan) Results() []*Task {
	var results []*Task
	for _, task := range s.snapshot.Tasks {
		if s.match(task) {
			results = append(results, task)
		}
	}
	return results
}

func (s *TaskScan) match(task *Task) bool {
	for _, match := range s.predicates {
		if !match(task) {
			return false
		}
	}
	return true
}

func (s *Snapshot) SearchTasks() *TaskScan {
	return &TaskScan{
		snapshot: s,
	}
}
