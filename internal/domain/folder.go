package domain

import "strings"

// Folder is one of the fixed mailbox classifications.
type Folder string

const (
	FolderNone    Folder = ""
	FolderInbox   Folder = "Inbox"
	FolderDrafts  Folder = "Drafts"
	FolderSent    Folder = "Sent"
	FolderJunk    Folder = "Junk"
	FolderTrash   Folder = "Trash"
	FolderArchive Folder = "Archive"
)

// Folders lists every folder in navigation order.
var Folders = []Folder{
	FolderInbox,
	FolderDrafts,
	FolderSent,
	FolderJunk,
	FolderTrash,
	FolderArchive,
}

// ParseFolder matches s against the folder enumeration, ignoring case and
// surrounding whitespace. ok is false for anything outside the enumeration.
func ParseFolder(s string) (Folder, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FolderNone, true
	}
	for _, f := range Folders {
		if strings.EqualFold(string(f), s) {
			return f, true
		}
	}
	return FolderNone, false
}

func (f Folder) String() string {
	return string(f)
}
