package attrs

// Key collapses a (list name, title) pair into a single opaque string key.
// The NUL separator cannot appear in either field, so the join is
// reversible and keys from different lists never collide. Two reminders
// with the same title in the same list share a key and therefore share
// one attribute set; that is a known limitation of the join, not a bug.
func Key(listName, title string) string {
	return listName + "\x00" + title
}
