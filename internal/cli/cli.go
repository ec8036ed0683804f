// Package cli parses command arguments, asks for the confirmations the
// destructive commands need, and renders results. All task semantics
// live in the app package; this layer only collects input and presents
// output.
package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"taskdeck/internal/app"
	"taskdeck/internal/models"
	"taskdeck/internal/query"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

// CLI dispatches subcommands against an App.
type CLI struct {
	app *app.App
	in  io.Reader
	out io.Writer

	// AssumeYes skips remove/clear confirmations (the -yes flag).
	AssumeYes bool
}

// New creates a CLI reading confirmations from in and writing to out.
func New(a *app.App, in io.Reader, out io.Writer) *CLI {
	return &CLI{app: a, in: in, out: out}
}

// Run executes one subcommand.
func (c *CLI) Run(args []string) error {
	if len(args) < 1 {
		c.printUsage()
		return errors.New("no command provided")
	}

	switch args[0] {
	case "add":
		return c.add(args[1:])
	case "list":
		return c.list(args[1:])
	case "update":
		return c.update(args[1:])
	case "complete":
		return c.complete(args[1:])
	case "remove":
		return c.remove(args[1:])
	case "clear":
		return c.clear(args[1:])
	case "help":
		c.printUsage()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func (c *CLI) add(args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(c.out)
	title := fs.String("title", "", "Task title.")
	desc := fs.String("desc", "", "Task description.")
	due := fs.String("due", "", "Due date (YYYY-MM-DD).")
	prio := fs.Int("priority", int(models.Medium), "Priority: 1 high, 2 medium, 3 low.")
	if err := fs.Parse(args); err != nil {
		return err
	}

	date, err := models.ParseDate(*due)
	if err != nil {
		return err
	}
	priority, err := models.ParsePriority(*prio)
	if err != nil {
		return err
	}

	task, err := c.app.Add(*title, *desc, date, priority)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Added task %s (id %s, due %s)\n", bold(task.Title), task.ID, task.DueDate)
	return nil
}

func (c *CLI) list(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(c.out)
	sortKey := fs.String("sort", string(query.ByDueDate), "Sort key: dueDate, priority, createdAt or completed.")
	all := fs.Bool("all", false, "Include completed tasks.")
	if err := fs.Parse(args); err != nil {
		return err
	}

	key, err := query.ParseSortKey(*sortKey)
	if err != nil {
		return err
	}

	tasks := c.app.List(key, *all)
	if len(tasks) == 0 {
		fmt.Fprintln(c.out, "No tasks found.")
		return nil
	}
	c.renderTable(tasks)
	return nil
}

func (c *CLI) update(args []string) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		return errors.New("usage: update <id> [-title ...] [-desc ...] [-due ...] [-priority ...]")
	}
	id := args[0]

	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(c.out)
	title := fs.String("title", "", "New title.")
	desc := fs.String("desc", "", "New description.")
	due := fs.String("due", "", "New due date (YYYY-MM-DD).")
	prio := fs.Int("priority", 0, "New priority: 1 high, 2 medium, 3 low.")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	// Only flags the user actually set become part of the update;
	// everything else keeps its stored value.
	var upd app.TaskUpdate
	var parseErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			upd.Title = title
		case "desc":
			upd.Description = desc
		case "due":
			date, err := models.ParseDate(*due)
			if err != nil {
				parseErr = err
				return
			}
			upd.DueDate = &date
		case "priority":
			priority, err := models.ParsePriority(*prio)
			if err != nil {
				parseErr = err
				return
			}
			upd.Priority = &priority
		}
	})
	if parseErr != nil {
		return parseErr
	}

	task, err := c.app.Update(id, upd)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Updated task %s (%s)\n", bold(task.Title), task.ID)
	return nil
}

func (c *CLI) complete(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: complete <id>")
	}
	task, err := c.app.Complete(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Completed task %s\n", bold(task.Title))
	return nil
}

func (c *CLI) remove(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: remove <id>")
	}
	id := args[0]

	if !c.confirm(fmt.Sprintf("Remove task %s?", id)) {
		fmt.Fprintln(c.out, "Cancelled.")
		return nil
	}
	if err := c.app.Remove(id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Removed task %s\n", id)
	return nil
}

func (c *CLI) clear(args []string) error {
	if !c.confirm("Remove all completed tasks?") {
		fmt.Fprintln(c.out, "Cancelled.")
		return nil
	}
	n, err := c.app.ClearCompleted()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Cleared %d completed tasks\n", n)
	return nil
}

// confirm asks a yes/no question on c.in. Anything but y/yes is a no.
func (c *CLI) confirm(prompt string) bool {
	if c.AssumeYes {
		return true
	}
	fmt.Fprintf(c.out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (c *CLI) renderTable(tasks []models.Task) {
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tDUE\tPRIORITY\tSTATUS")
	for _, t := range tasks {
		due := t.DueDate.String()
		if t.IsOverdue() {
			due = red(due)
		}
		status := yellow("pending")
		title := t.Title
		if t.Completed {
			status = green("done")
			title = faint(title)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, title, due, colorPriority(t.Priority), status)
	}
	w.Flush()
}

func colorPriority(p models.Priority) string {
	switch p {
	case models.High:
		return red(p.String())
	case models.Medium:
		return yellow(p.String())
	default:
		return green(p.String())
	}
}

func (c *CLI) printUsage() {
	fmt.Fprintln(c.out, `Usage: taskdeck <command> [options]

Commands:
  add       -title <t> -due <YYYY-MM-DD> [-desc <d>] [-priority 1|2|3]
  list      [-sort dueDate|priority|createdAt|completed] [-all]
  update    <id> [-title <t>] [-desc <d>] [-due <date>] [-priority 1|2|3]
  complete  <id>
  remove    <id>
  clear
  help`)
}
