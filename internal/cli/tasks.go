package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/store"
)

var errUsage = errors.New("invalid arguments")

// parseSubtask reads "title|description|category|status".
func parseSubtask(raw string) (model.Subtask, error) {
	parts := strings.Split(raw, "|")
	if len(parts) != 4 {
		return model.Subtask{}, fmt.Errorf("%w: subtask %q must look like title|description|category|status", errUsage, raw)
	}
	category, _ := model.ParseSubtaskCategory(parts[2])
	return model.Subtask{
		Title:       strings.TrimSpace(parts[0]),
		Description: strings.TrimSpace(parts[1]),
		Category:    category,
		Status:      strings.TrimSpace(parts[3]),
	}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTaskLine(w io.Writer, t model.Task) {
	line := fmt.Sprintf("%s  %s  %-13s  %s", t.ID, t.Date, t.Category, t.Title)
	if n := len(t.Subtasks); n > 0 {
		line += fmt.Sprintf(" (%d subtasks)", n)
	}
	fmt.Fprintln(w, line)
}

func printTasks(w io.Writer, tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "no tasks")
		return
	}
	for _, t := range tasks {
		printTaskLine(w, t)
	}
}

func printTask(w io.Writer, t model.Task) {
	fmt.Fprintf(w, "id:           %s\n", t.ID)
	fmt.Fprintf(w, "date:         %s\n", t.Date)
	fmt.Fprintf(w, "title:        %s\n", t.Title)
	fmt.Fprintf(w, "category:     %s\n", t.Category)
	fmt.Fprintf(w, "has subtasks: %s\n", t.SubtaskRadio)
	fmt.Fprintf(w, "description:\n  %s\n", strings.ReplaceAll(t.Description, "\n", "\n  "))
	for i, st := range t.Subtasks {
		fmt.Fprintf(w, "subtask %d:    %s [%s] status: %s\n", i+1, st.Title, st.Category, st.Status)
		if st.Description != "" {
			fmt.Fprintf(w, "              %s\n", st.Description)
		}
	}
}

func newAddCommand(opts *rootOptions) *cobra.Command {
	var (
		d        model.TaskDraft
		category string
		subtasks []string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Example: `  taskboard add --title "Buy milk" --description "2 litres" --category Urgent
  taskboard add --title "Plan trip" --description "summer" --category Important \
    --subtask "flights|compare prices|Basic|open"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d.Category, _ = model.ParseCategory(category)
			d.SubtaskRadio = model.SubtaskChoiceNo
			for _, raw := range subtasks {
				st, err := parseSubtask(raw)
				if err != nil {
					return err
				}
				d.Subtasks = append(d.Subtasks, st)
			}
			if len(d.Subtasks) > 0 {
				d.SubtaskRadio = model.SubtaskChoiceYes
			}

			a, err := openApp(cmd.Context(), cmd, opts, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			task, err := a.store.Create(cmd.Context(), d)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), task)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Task has been created")
			printTaskLine(cmd.OutOrStdout(), task)
			return nil
		},
	}
	cmd.Flags().StringVar(&d.Date, "date", time.Now().Format(time.DateOnly), "task date")
	cmd.Flags().StringVarP(&d.Title, "title", "t", "", "task title")
	cmd.Flags().StringVarP(&d.Description, "description", "d", "", "task description")
	cmd.Flags().StringVar(&category, "category", "", "one of Important, Not Important, Urgent, Not Urgent, Completed, Not Completed, Favourites")
	cmd.Flags().StringArrayVar(&subtasks, "subtask", nil, "subtask as title|description|category|status (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the created task as JSON")
	return cmd
}

func newListCommand(opts *rootOptions) *cobra.Command {
	var (
		category string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in creation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter model.Category
			if strings.TrimSpace(category) != "" {
				c, ok := model.ParseCategory(category)
				if !ok {
					return fmt.Errorf("%w: unknown category %q", errUsage, category)
				}
				filter = c
			}

			a, err := openApp(cmd.Context(), cmd, opts, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			tasks := a.store.List(cmd.Context())
			if filter != "" {
				tasks = store.FilterByCategory(tasks, filter)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), nonNil(tasks))
			}
			printTasks(cmd.OutOrStdout(), tasks)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only show this category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func nonNil(tasks []model.Task) []model.Task {
	if tasks == nil {
		return []model.Task{}
	}
	return tasks
}

func newShowCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cmd, opts, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			task, ok := a.store.FindByID(cmd.Context(), args[0])
			if !ok {
				return fmt.Errorf("%w: %s", store.ErrNotFound, args[0])
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), task)
			}
			printTask(cmd.OutOrStdout(), task)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newSearchCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search titles, descriptions, categories, dates and subtasks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cmd, opts, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			tasks := a.store.Search(cmd.Context(), strings.Join(args, " "))
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), nonNil(tasks))
			}
			printTasks(cmd.OutOrStdout(), tasks)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newEditCommand(opts *rootOptions) *cobra.Command {
	var title, description, category, date string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cmd, opts, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			task, ok := a.store.FindByID(cmd.Context(), args[0])
			if !ok {
				return fmt.Errorf("%w: %s", store.ErrNotFound, args[0])
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				task.Title = title
			}
			if flags.Changed("description") {
				task.Description = description
			}
			if flags.Changed("date") {
				task.Date = date
			}
			if flags.Changed("category") {
				task.Category, _ = model.ParseCategory(category)
			}

			updated, err := a.store.Update(cmd.Context(), args[0], task)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Task has been updated")
			printTaskLine(cmd.OutOrStdout(), updated)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&category, "category", "", "new category")
	cmd.Flags().StringVar(&date, "date", "", "new date")
	return cmd
}

func newRemoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"delete"},
		Short:   "Delete tasks; unknown ids are ignored",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cmd, opts, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			for _, id := range args {
				if err := a.store.Remove(cmd.Context(), id); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Task has been deleted")
			return nil
		},
	}
}

func newSummaryCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the dashboard numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cmd, opts, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			summary := a.store.Summary(cmd.Context(), a.cfg.UI.RecentLimit)
			if asJSON {
				summary.Recent = nonNil(summary.Recent)
				return writeJSON(cmd.OutOrStdout(), summary)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "total tasks:   %d\n", summary.Total)
			fmt.Fprintf(w, "with subtasks: %d\n", summary.WithSubtasks)
			for _, c := range summary.Categories {
				fmt.Fprintf(w, "  %-14s %d\n", c.Category, c.Count)
			}
			fmt.Fprintln(w, "recent:")
			printTasks(w, summary.Recent)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
