package domain

// Forest indexes a flat task set by id and parent so any task can be expanded
// into its full subtree. Expansion tracks the current path and skips a child
// already on it, so rows forming a cycle cannot recurse forever.
type Forest struct {
	order    []uint64
	byID     map[uint64]Task
	children map[uint64][]uint64
}

// BuildForest keeps the order of tasks for siblings and of comments within a task.
func BuildForest(tasks []Task, assignments []Assignment, comments []Comment) *Forest {
	f := &Forest{
		order:    make([]uint64, 0, len(tasks)),
		byID:     make(map[uint64]Task, len(tasks)),
		children: make(map[uint64][]uint64),
	}

	assignees := make(map[uint64][]User)
	for _, a := range assignments {
		assignees[a.TaskID] = append(assignees[a.TaskID], a.User)
	}
	commentsByTask := make(map[uint64][]Comment)
	for _, c := range comments {
		commentsByTask[c.TaskID] = append(commentsByTask[c.TaskID], c)
	}

	for _, task := range tasks {
		task.Assignees = assignees[task.ID]
		task.Comments = commentsByTask[task.ID]
		task.Subtasks = nil
		f.order = append(f.order, task.ID)
		f.byID[task.ID] = task
	}
	for _, id := range f.order {
		task := f.byID[id]
		if task.ParentTaskID == nil {
			continue
		}
		parentID := *task.ParentTaskID
		if parent, ok := f.byID[parentID]; ok {
			title := parent.Title
			task.ParentTaskTitle = &title
			f.byID[id] = task
		}
		f.children[parentID] = append(f.children[parentID], id)
	}

	return f
}

func (f *Forest) Task(id uint64) (Task, bool) {
	if _, ok := f.byID[id]; !ok {
		return Task{}, false
	}
	return f.expand(id, map[uint64]bool{}), true
}

// All returns every task, each expanded with its subtree.
func (f *Forest) All() []Task {
	tasks := make([]Task, 0, len(f.order))
	for _, id := range f.order {
		tasks = append(tasks, f.expand(id, map[uint64]bool{}))
	}
	return tasks
}

func (f *Forest) Roots() []Task {
	tasks := make([]Task, 0)
	for _, id := range f.order {
		if f.byID[id].ParentTaskID == nil {
			tasks = append(tasks, f.expand(id, map[uint64]bool{}))
		}
	}
	return tasks
}

func (f *Forest) Children(id uint64) []Task {
	tasks := make([]Task, 0, len(f.children[id]))
	for _, childID := range f.children[id] {
		tasks = append(tasks, f.expand(childID, map[uint64]bool{id: true}))
	}
	return tasks
}

func (f *Forest) expand(id uint64, path map[uint64]bool) Task {
	task := f.byID[id]
	path[id] = true
	defer delete(path, id)

	for _, childID := range f.children[id] {
		if path[childID] {
			continue
		}
		task.Subtasks = append(task.Subtasks, f.expand(childID, path))
	}
	return task
}

// Descendants returns the ids below id, breadth first, without id itself.
// Ids already visited are skipped, so a cyclic relation still terminates.
func Descendants(id uint64, childrenOf func(uint64) ([]uint64, error)) ([]uint64, error) {
	seen := map[uint64]bool{id: true}
	queue := []uint64{id}
	var out []uint64
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		children, err := childrenOf(current)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if seen[child] {
				continue
			}
			seen[child] = true
			out = append(out, child)
			queue = append(queue, child)
		}
	}
	return out, nil
}
