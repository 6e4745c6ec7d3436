package mailbox

import "github.com/lu-zhengda/mailpane/internal/domain"

// AllMailTitle is the list title when neither a folder nor a category is selected.
const AllMailTitle = "All Mail"

// State names which kind of navigation entry is selected.
type State int

const (
	StateNone State = iota
	StateFolder
	StateCategory
)

// Selection tracks the navigation selection and the message open in the
// detail pane. Folder and Category are never both set; use the setters.
type Selection struct {
	Folder    domain.Folder
	Category  string
	MessageID string
}

// NewSelection starts on the Inbox folder with no open message.
func NewSelection() Selection {
	return Selection{Folder: domain.FolderInbox}
}

// SelectFolder selects f and clears any category. FolderNone selects All Mail.
func (s *Selection) SelectFolder(f domain.Folder) {
	s.Folder = f
	s.Category = ""
}

// SelectCategory selects name and clears any folder.
func (s *Selection) SelectCategory(name string) {
	s.Category = name
	s.Folder = domain.FolderNone
}

// SelectAll clears both folder and category.
func (s *Selection) SelectAll() {
	s.Folder = domain.FolderNone
	s.Category = ""
}

// SelectMessage opens the message with the given ID.
func (s *Selection) SelectMessage(id string) {
	s.MessageID = id
}

// ClearMessage closes the open message.
func (s *Selection) ClearMessage() {
	s.MessageID = ""
}

// HasMessage reports whether a message is open.
func (s Selection) HasMessage() bool {
	return s.MessageID != ""
}

// State reports which kind of navigation entry is selected. StateNone
// means All Mail.
func (s Selection) State() State {
	switch {
	case s.Folder != domain.FolderNone:
		return StateFolder
	case s.Category != "":
		return StateCategory
	default:
		return StateNone
	}
}

// Title returns the heading shown above the message list.
func (s Selection) Title() string {
	switch s.State() {
	case StateFolder:
		return string(s.Folder)
	case StateCategory:
		return s.Category
	default:
		return AllMailTitle
	}
}

// Reconcile closes the open message when it is not part of visible and
// reports whether it did.
func (s *Selection) Reconcile(visible []domain.Message) bool {
	if s.MessageID == "" {
		return false
	}
	for i := range visible {
		if visible[i].ID == s.MessageID {
			return false
		}
	}
	s.MessageID = ""
	return true
}
