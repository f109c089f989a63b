package notify

// DefaultToastLimit caps how many toasts are kept on screen.
const DefaultToastLimit = 3

// Toast is an ephemeral notice waiting to be dismissed.
type Toast struct {
	ID int
	Signal
}

// Toasts is a bounded queue of notices. The oldest toast is dropped when
// the limit is exceeded. Not safe for concurrent use; the TUI owns it from
// its event loop.
type Toasts struct {
	Limit  int
	items  []Toast
	nextID int
}

// NewToasts creates a queue holding at most limit toasts.
// A limit below 1 uses DefaultToastLimit.
func NewToasts(limit int) *Toasts {
	if limit < 1 {
		limit = DefaultToastLimit
	}
	return &Toasts{Limit: limit}
}

func (t *Toasts) Success(msg string) { t.push(KindSuccess, msg) }
func (t *Toasts) Failure(msg string) { t.push(KindFailure, msg) }

func (t *Toasts) push(kind Kind, msg string) {
	t.nextID++
	t.items = append(t.items, Toast{ID: t.nextID, Signal: Signal{Kind: kind, Message: msg}})
	if over := len(t.items) - t.Limit; over > 0 {
		t.items = t.items[over:]
	}
}

// Items returns the visible toasts, oldest first.
func (t *Toasts) Items() []Toast {
	out := make([]Toast, len(t.items))
	copy(out, t.items)
	return out
}

// Dismiss removes the toast with the given id. It reports whether one was removed.
func (t *Toasts) Dismiss(id int) bool {
	for i, item := range t.items {
		if item.ID == id {
			t.items = append(t.items[:i:i], t.items[i+1:]...)
			return true
		}
	}
	return false
}

// DismissOldest removes the oldest toast, if any.
func (t *Toasts) DismissOldest() bool {
	if len(t.items) == 0 {
		return false
	}
	t.items = t.items[1:]
	return true
}

// Len returns the number of visible toasts.
func (t *Toasts) Len() int {
	return len(t.items)
}
