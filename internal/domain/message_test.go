package domain

import (
	"testing"
	"time"
)

func TestMessage_Sender(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{"name and email", Message{From: "William Smith", Email: "williamsmith@example.com"}, "William Smith <williamsmith@example.com>"},
		{"name only", Message{From: "William Smith"}, "William Smith"},
		{"unknown sender with email", Message{From: UnknownSender, Email: "ws@example.com"}, "ws@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.msg.Sender(); got != tt.want {
				t.Errorf("Sender() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMessage_Initials(t *testing.T) {
	tests := []struct {
		from string
		want string
	}{
		{"William Smith", "WS"},
		{"alice", "A"},
		{"  emily  davis  jones", "ED"},
		{"", "?"},
	}
	for _, tt := range tests {
		m := Message{From: tt.from}
		if got := m.Initials(); got != tt.want {
			t.Errorf("Initials(%q) = %q, want %q", tt.from, got, tt.want)
		}
	}
}

func TestMessage_HasDate(t *testing.T) {
	m := Message{}
	if m.HasDate() {
		t.Error("expected HasDate() = false for zero CreatedAt")
	}
	m.CreatedAt = time.Date(2023, 10, 22, 9, 0, 0, 0, time.UTC)
	if !m.HasDate() {
		t.Error("expected HasDate() = true")
	}
}

func TestParseFolder(t *testing.T) {
	tests := []struct {
		in     string
		want   Folder
		wantOK bool
	}{
		{"Inbox", FolderInbox, true},
		{"junk", FolderJunk, true},
		{" Archive ", FolderArchive, true},
		{"", FolderNone, true},
		{"Spam", FolderNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseFolder(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseFolder(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestAccount_String(t *testing.T) {
	if got := (Account{Label: "Alicia Koch", Email: "alicia@example.com"}).String(); got != "Alicia Koch" {
		t.Errorf("String() = %q, want %q", got, "Alicia Koch")
	}
	if got := (Account{Email: "alicia@gmail.com"}).String(); got != "alicia@gmail.com" {
		t.Errorf("String() = %q, want %q", got, "alicia@gmail.com")
	}
}

func TestAccount_Initials(t *testing.T) {
	if got := (Account{Label: "Alicia Koch"}).Initials(); got != "AK" {
		t.Errorf("Initials() = %q, want %q", got, "AK")
	}
	if got := (Account{}).Initials(); got != "?" {
		t.Errorf("Initials() = %q, want %q", got, "?")
	}
}
