package cli

import (
	"github.com/spf13/cobra"

	"github.com/JeanCesca/app-Todoey/internal/model"
	"github.com/JeanCesca/app-Todoey/internal/store"
	"github.com/JeanCesca/app-Todoey/internal/todo"
)

// ItemListOptions holds flags for the item list command.
type ItemListOptions struct {
	*RootOptions
	Search string
}

// NewItemCommand creates the item command group.
func NewItemCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage the items of a category",
		Long: `Manage the items of a category.

<category> is a category id or an unambiguous name. With --scope name,
items are matched by their category's name, so same-named categories
share one list.`,
	}

	listOpts := &ItemListOptions{RootOptions: rootOpts}
	list := &cobra.Command{
		Use:   "list <category>",
		Short: "List items in creation order, or search them",
		Long: `List the items of a category in creation order.

With --search, only items whose title contains the text are listed,
ignoring case and accents, sorted alphabetically by title.

Examples:
  todoey item list Groceries
  todoey item list Groceries --search milk`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItemList(listOpts, cmd, args[0])
		},
	}
	list.Flags().StringVarP(&listOpts.Search, "search", "s", "", "only list items whose title contains this text")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "add <category> <title>",
		Short: "Add an item to a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItemAdd(rootOpts, cmd, args[0], args[1])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "toggle <category> <item-id>",
		Aliases: []string{"check"},
		Short:   "Flip an item between done and not done",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItemToggle(rootOpts, cmd, args[0], args[1])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <category> <item-id>",
		Aliases: []string{"delete"},
		Short:   "Delete an item",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItemRemove(rootOpts, cmd, args[0], args[1])
		},
	})

	return cmd
}

// itemSession is an open database with a resolved category and its loaded
// item list.
type itemSession struct {
	pc       *store.Context
	category *model.Category
	items    *todo.ItemStore
}

// openItemSession opens the database, resolves ref and loads the category's
// items with the given search text.
func openItemSession(opts *RootOptions, cmd *cobra.Command, out *OutputFormatter, ref, search string) (*itemSession, error) {
	ctx := commandContext(cmd)

	pc, err := opts.openStore()
	if err != nil {
		return nil, out.Fail("failed to open database", err)
	}

	cats := opts.categoryStore(pc)
	if _, err := cats.LoadAll(ctx); err != nil {
		pc.Close()
		return nil, out.Fail("failed to load categories", err)
	}
	cat, err := cats.Resolve(ref)
	if err != nil {
		pc.Close()
		return nil, out.Fail("failed to find category", err)
	}

	items := opts.itemStore(pc)
	if _, err := items.LoadForCategory(ctx, cat, search); err != nil {
		pc.Close()
		return nil, out.Fail("failed to load items", err)
	}
	return &itemSession{pc: pc, category: cat, items: items}, nil
}

func runItemList(opts *ItemListOptions, cmd *cobra.Command, ref string) error {
	out := opts.formatter(cmd)

	s, err := openItemSession(opts.RootOptions, cmd, out, ref, opts.Search)
	if err != nil {
		return err
	}
	defer s.pc.Close()

	loaded := s.items.Items()
	list := ItemList{
		Category: newCategoryView(s.category),
		Search:   s.items.Filter(),
		Items:    make([]ItemView, 0, len(loaded)),
	}
	for _, it := range loaded {
		list.Items = append(list.Items, newItemView(it))
	}
	return out.Success(list)
}

func runItemAdd(opts *RootOptions, cmd *cobra.Command, ref, title string) error {
	out := opts.formatter(cmd)

	s, err := openItemSession(opts, cmd, out, ref, "")
	if err != nil {
		return err
	}
	defer s.pc.Close()

	item, err := s.items.Create(title, s.category)
	if err != nil {
		return out.Fail("failed to create item", err)
	}
	if _, err := s.items.Commit(commandContext(cmd)); err != nil {
		return out.Fail("failed to save item", err)
	}

	out.VerboseLog("created item %s", item.ID)
	return out.Success(ItemChange{Action: "Added", Category: newCategoryView(s.category), Item: newItemView(item)})
}

func runItemToggle(opts *RootOptions, cmd *cobra.Command, ref, id string) error {
	out := opts.formatter(cmd)

	s, err := openItemSession(opts, cmd, out, ref, "")
	if err != nil {
		return err
	}
	defer s.pc.Close()

	item, err := s.items.Find(id)
	if err != nil {
		return out.Fail("failed to find item", err)
	}
	s.items.ToggleDone(item)
	if _, err := s.items.Commit(commandContext(cmd)); err != nil {
		return out.Fail("failed to save item", err)
	}
	return out.Success(ItemChange{Action: "Toggled", Category: newCategoryView(s.category), Item: newItemView(item)})
}

func runItemRemove(opts *RootOptions, cmd *cobra.Command, ref, id string) error {
	out := opts.formatter(cmd)

	s, err := openItemSession(opts, cmd, out, ref, "")
	if err != nil {
		return err
	}
	defer s.pc.Close()

	item, err := s.items.Find(id)
	if err != nil {
		return out.Fail("failed to find item", err)
	}
	s.items.Delete(item)
	if _, err := s.items.Commit(commandContext(cmd)); err != nil {
		return out.Fail("failed to delete item", err)
	}
	return out.Success(ItemChange{Action: "Deleted", Category: newCategoryView(s.category), Item: newItemView(item)})
}
