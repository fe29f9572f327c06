// Package command defines the commands understood by taskbot and applies
// them to a task list.
package command

import "github.com/harrisonrobin/taskbot/pkg/task"

// Command is a parsed user intent. The concrete types below are the only
// implementations.
type Command interface {
	command()
}

// Add appends a task to the list.
type Add struct {
	Task task.Task
}

// Done marks the task at the 0-based Index as done.
type Done struct {
	Index int
}

// Delete removes the task at the 0-based Index.
type Delete struct {
	Index int
}

// List shows every task with its 1-based number.
type List struct{}

// Find searches task descriptions for Query.
type Find struct {
	Query string
}

// Help shows the usage of every command.
type Help struct{}

// Exit ends the session.
type Exit struct{}

func (Add) command()    {}
func (Done) command()   {}
func (Delete) command() {}
func (List) command()   {}
func (Find) command()   {}
func (Help) command()   {}
func (Exit) command()   {}
