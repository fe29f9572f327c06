package command

import (
	"fmt"

	"github.com/harrisonrobin/taskbot/pkg/task"
)

// Entry is a task shown to the user with its 1-based list number.
type Entry struct {
	Number int
	Task   task.Task
}

// Result describes the outcome of a command for rendering.
type Result struct {
	Message string
	Entries []Entry
	Lines   []string
	// Changed is set when the list was mutated and needs saving.
	Changed bool
	Exit    bool
}

// Usage lists every command with a short description.
var Usage = []string{
	"todo <description>                   add a task",
	"deadline <description> /by <time>    add a task with a deadline",
	"event <description> /at <time>       add an event",
	"do <description> /after <time>       add a task to do after something",
	"list                                 show all tasks",
	"done <number>                        mark a task as done",
	"delete <number>                      delete a task",
	"find <keyword>                       search task descriptions",
	"help                                 show this message",
	"bye                                  save and exit",
	"",
	"Times written as dd/mm/yyyy HHMM or yyyy-mm-dd HH:MM are understood as dates.",
}

// Execute applies cmd to list.
func Execute(cmd Command, list *task.List) (Result, error) {
	switch c := cmd.(type) {
	case Add:
		if c.Task == nil {
			return Result{}, fmt.Errorf("add: no task given")
		}
		list.Add(c.Task)
		return Result{
			Message: fmt.Sprintf("Got it. I've added this task (now %s in the list):", countTasks(list.Len())),
			Entries: []Entry{{Number: list.Len(), Task: c.Task}},
			Changed: true,
		}, nil
	case Done:
		t, err := list.MarkDone(c.Index)
		if err != nil {
			return Result{}, err
		}
		return Result{
			Message: "Nice! I've marked this task as done:",
			Entries: []Entry{{Number: c.Index + 1, Task: t}},
			Changed: true,
		}, nil
	case Delete:
		t, err := list.Delete(c.Index)
		if err != nil {
			return Result{}, err
		}
		return Result{
			Message: fmt.Sprintf("Noted. I've removed this task (now %s in the list):", countTasks(list.Len())),
			Entries: []Entry{{Number: c.Index + 1, Task: t}},
			Changed: true,
		}, nil
	case List:
		if list.Len() == 0 {
			return Result{Message: "Your task list is empty."}, nil
		}
		entries := make([]Entry, 0, list.Len())
		for i, t := range list.All() {
			entries = append(entries, Entry{Number: i + 1, Task: t})
		}
		return Result{Message: "Here are the tasks in your list:", Entries: entries}, nil
	case Find:
		matches := list.Find(c.Query)
		if len(matches) == 0 {
			return Result{Message: fmt.Sprintf("No tasks match %q.", c.Query)}, nil
		}
		entries := make([]Entry, 0, len(matches))
		for _, m := range matches {
			entries = append(entries, Entry{Number: m.Index + 1, Task: m.Task})
		}
		return Result{Message: "Here are the matching tasks in your list:", Entries: entries}, nil
	case Help:
		return Result{Message: "Commands:", Lines: Usage}, nil
	case Exit:
		return Result{Message: "Bye. Hope to see you again soon!", Exit: true}, nil
	default:
		return Result{}, fmt.Errorf("unsupported command %T", cmd)
	}
}

func countTasks(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}
