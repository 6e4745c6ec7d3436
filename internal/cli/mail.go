package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lu-zhengda/mailpane/internal/app"
	"github.com/lu-zhengda/mailpane/internal/config"
	"github.com/lu-zhengda/mailpane/internal/domain"
	"github.com/lu-zhengda/mailpane/internal/mailbox"
	"github.com/lu-zhengda/mailpane/internal/store"
)

func newListCmd() *cobra.Command {
	var folderFlag string
	var categoryFlag string
	var allFlag bool
	var unreadFlag bool
	var searchFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List messages",
		Long:  "Fetch messages once and list those in a folder or category (defaults to ui.default_folder).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			sel, err := listSelection(cfg, folderFlag, categoryFlag, allFlag)
			if err != nil {
				return err
			}

			msgs, err := fetchMessages(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			visible := mailbox.Search(mailbox.Filter(msgs, sel, unreadFlag), searchFlag)

			out := cmd.OutOrStdout()
			if jsonFlag {
				return fprintJSON(out, toJSONMessages(visible))
			}

			if len(visible) == 0 {
				fmt.Fprintln(out, "No messages")
				return nil
			}

			w := newTabWriter(out)
			fmt.Fprintln(w, "UNREAD\tFROM\tSUBJECT\tFOLDER\tCATEGORY\tDATE\tID")
			for _, m := range visible {
				unread := " "
				if !m.Read {
					unread = "*"
				}
				date := "-"
				if m.HasDate() {
					date = m.CreatedAt.Format("Jan 2, 2006")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					unread,
					truncateCell(m.From, 30),
					truncateCell(m.Subject, 50),
					orDash(string(m.Folder)),
					orDash(m.Category),
					date, m.ID,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&folderFlag, "folder", "", "folder to list (Inbox, Drafts, Sent, Junk, Trash, Archive)")
	cmd.Flags().StringVar(&categoryFlag, "category", "", "category to list")
	cmd.Flags().BoolVar(&allFlag, "all", false, "list all mail regardless of folder and category")
	cmd.Flags().BoolVar(&unreadFlag, "unread", false, "only unread messages")
	cmd.Flags().StringVar(&searchFlag, "search", "", "only messages whose sender, subject or body contains the text")
	cmd.MarkFlagsMutuallyExclusive("folder", "category", "all")
	return cmd
}

// listSelection resolves the list flags into a navigation selection.
func listSelection(cfg *config.Config, folder, category string, all bool) (mailbox.Selection, error) {
	sel := mailbox.NewSelection()
	switch {
	case all:
		sel.SelectAll()
	case folder != "":
		f, ok := domain.ParseFolder(folder)
		if !ok {
			return sel, fmt.Errorf("unknown folder %q", folder)
		}
		sel.SelectFolder(f)
	case category != "":
		sel.SelectCategory(category)
	default:
		sel.SelectFolder(cfg.StartFolder())
	}
	return sel, nil
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List message categories",
		Long:  "Fetch messages once and list their categories in first-seen order with message counts.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			msgs, err := fetchMessages(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			cats := mailbox.Categories(msgs)

			out := cmd.OutOrStdout()
			if jsonFlag {
				return fprintJSON(out, toJSONCategories(cats))
			}

			if len(cats) == 0 {
				fmt.Fprintln(out, "No categories")
				return nil
			}

			w := newTabWriter(out)
			fmt.Fprintln(w, "CATEGORY\tMESSAGES")
			for _, c := range cats {
				fmt.Fprintf(w, "%s\t%d\n", c.Label(), c.Count)
			}
			return w.Flush()
		},
	}
}

func newAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List configured accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			accounts := cfg.AccountList()

			out := cmd.OutOrStdout()
			if jsonFlag {
				return fprintJSON(out, toJSONAccounts(accounts))
			}

			if len(accounts) == 0 {
				fmt.Fprintln(out, "No accounts configured")
				return nil
			}

			w := newTabWriter(out)
			fmt.Fprintln(w, "LABEL\tEMAIL")
			for _, a := range accounts {
				fmt.Fprintf(w, "%s\t%s\n", orDash(a.Label), orDash(a.Email))
			}
			return w.Flush()
		},
	}
}

// fetchMessages runs a single load and, unlike the TUI, reports a failed
// fetch as an error.
func fetchMessages(ctx context.Context, cfg *config.Config) ([]domain.Message, error) {
	src, err := newSource(cfg)
	if err != nil {
		return nil, err
	}
	res := app.NewLoader(store.NewMessages(), src).Load(ctx)
	if res.Err != nil {
		return nil, fmt.Errorf("failed to load messages from %s: %w", cfg.API.BaseURL, res.Err)
	}
	return res.Messages, nil
}
