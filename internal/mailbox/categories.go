package mailbox

import "github.com/lu-zhengda/mailpane/internal/domain"

// UncategorizedLabel is how the entry for messages without a category is shown.
const UncategorizedLabel = "Uncategorized"

// CategoryCount is one entry of the category navigation.
type CategoryCount struct {
	// Name is empty for the group of messages without a category.
	Name  string
	Count int
}

// Label returns the navigation label for the category.
func (c CategoryCount) Label() string {
	if c.Name == "" {
		return UncategorizedLabel
	}
	return c.Name
}

// Categories groups msgs by category in first-seen order.
func Categories(msgs []domain.Message) []CategoryCount {
	var out []CategoryCount
	index := make(map[string]int)
	for _, m := range msgs {
		i, ok := index[m.Category]
		if !ok {
			i = len(out)
			index[m.Category] = i
			out = append(out, CategoryCount{Name: m.Category})
		}
		out[i].Count++
	}
	return out
}

// DistinctCategories returns the category names of msgs in first-seen order.
func DistinctCategories(msgs []domain.Message) []string {
	cats := Categories(msgs)
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	return names
}
