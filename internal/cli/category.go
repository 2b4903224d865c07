package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewCategoryCommand creates the category command group.
func NewCategoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories in creation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategoryList(rootOpts, cmd)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Long: `Create a category with the given name.

Names are trimmed; blank names are rejected.

Examples:
  todoey category add Groceries
  todoey category add "Side projects" --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategoryAdd(rootOpts, cmd, args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <category>",
		Aliases: []string{"delete"},
		Short:   "Delete a category and all of its items",
		Long: `Delete a category and all of its items.

<category> is a category id or an unambiguous name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategoryRemove(rootOpts, cmd, args[0])
		},
	})

	return cmd
}

func runCategoryList(opts *RootOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	out := opts.formatter(cmd)

	pc, err := opts.openStore()
	if err != nil {
		return out.Fail("failed to open database", err)
	}
	defer pc.Close()

	cats, err := opts.categoryStore(pc).LoadAll(ctx)
	if err != nil {
		return out.Fail("failed to load categories", err)
	}

	list := CategoryList{Categories: make([]CategoryView, 0, len(cats))}
	for _, c := range cats {
		list.Categories = append(list.Categories, newCategoryView(c))
	}
	return out.Success(list)
}

func runCategoryAdd(opts *RootOptions, cmd *cobra.Command, name string) error {
	ctx := commandContext(cmd)
	out := opts.formatter(cmd)

	pc, err := opts.openStore()
	if err != nil {
		return out.Fail("failed to open database", err)
	}
	defer pc.Close()

	cats := opts.categoryStore(pc)
	cat, err := cats.Create(name)
	if err != nil {
		return out.Fail("failed to create category", err)
	}
	if _, err := cats.Commit(ctx); err != nil {
		return out.Fail("failed to save category", err)
	}

	out.VerboseLog("created category %s", cat.ID)
	return out.Success(CategoryChange{Action: "Created", Category: newCategoryView(cat)})
}

func runCategoryRemove(opts *RootOptions, cmd *cobra.Command, ref string) error {
	ctx := commandContext(cmd)
	out := opts.formatter(cmd)

	pc, err := opts.openStore()
	if err != nil {
		return out.Fail("failed to open database", err)
	}
	defer pc.Close()

	cats := opts.categoryStore(pc)
	if _, err := cats.LoadAll(ctx); err != nil {
		return out.Fail("failed to load categories", err)
	}
	cat, err := cats.Resolve(ref)
	if err != nil {
		return out.Fail("failed to find category", err)
	}

	cats.Delete(cat)
	if _, err := cats.Commit(ctx); err != nil {
		return out.Fail("failed to delete category", err)
	}
	return out.Success(CategoryChange{Action: "Deleted", Category: newCategoryView(cat)})
}

// commandContext returns the command's context, or Background when run
// without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
