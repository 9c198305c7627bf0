// Package navigation keeps the named-route stack the screens move through.
package navigation

import (
	"errors"
	"sync"
)

// Route names used by the screens.
const (
	RouteStart             = "StartScreen"
	RouteLogin             = "Login"
	RouteSignup            = "Signup"
	RouteHome              = "Home"
	RouteServiceDetail     = "ServiceDetail"
	RouteProfileDetail     = "ProfileDetail"
	RouteChat              = "Chat"
	RouteTracking          = "Tracking"
	RouteMyBookings        = "MyBookings"
	RouteMyProfile         = "MyProfile"
	RouteEmployeeLogin     = "EmployeeLogin"
	RouteEmployeeSignup    = "EmployeeSignup"
	RouteEmployeeDashboard = "EmployeeDashboard"
)

var ErrEmptyRoute = errors.New("route name is required")

// Params is the serializable parameter mapping passed along with a route.
type Params map[string]any

// Entry is one screen on the stack.
type Entry struct {
	Route  string `json:"route"`
	Params Params `json:"params,omitempty"`
}

// LeaveFunc is called with every entry that leaves the stack, so the owner
// of that screen can cancel its timers.
type LeaveFunc func(Entry)

// Router is a named-route stack. The zero value is not usable; use New.
type Router struct {
	mu      sync.Mutex
	stack   []Entry
	onLeave LeaveFunc
}

// New returns a Router positioned on initial.
func New(initial string, params Params) *Router {
	return &Router{stack: []Entry{{Route: initial, Params: params}}}
}

// OnLeave registers fn to be called for entries popped or replaced.
func (r *Router) OnLeave(fn LeaveFunc) {
	r.mu.Lock()
	r.onLeave = fn
	r.mu.Unlock()
}

// Navigate moves to route. If route is already on the stack the entries
// above it are popped and its params replaced; otherwise it is pushed.
func (r *Router) Navigate(route string, params Params) (Entry, error) {
	if route == "" {
		return Entry{}, ErrEmptyRoute
	}
	r.mu.Lock()
	var left []Entry
	idx := -1
	for i := len(r.stack) - 1; i >= 0; i-- {
		if r.stack[i].Route == route {
			idx = i
			break
		}
	}
	if idx >= 0 {
		left = append(left, r.stack[idx+1:]...)
		r.stack = r.stack[:idx+1]
		r.stack[idx].Params = params
	} else {
		r.stack = append(r.stack, Entry{Route: route, Params: params})
	}
	cur := r.stack[len(r.stack)-1]
	fn := r.onLeave
	r.mu.Unlock()

	notify(fn, left)
	return cur, nil
}

// Replace swaps the current entry for route. The replaced entry can no
// longer be reached with GoBack.
func (r *Router) Replace(route string, params Params) (Entry, error) {
	if route == "" {
		return Entry{}, ErrEmptyRoute
	}
	r.mu.Lock()
	top := len(r.stack) - 1
	left := []Entry{r.stack[top]}
	r.stack[top] = Entry{Route: route, Params: params}
	cur := r.stack[top]
	fn := r.onLeave
	r.mu.Unlock()

	notify(fn, left)
	return cur, nil
}

// GoBack pops the current entry. It reports false when there is nothing
// to go back to.
func (r *Router) GoBack() (Entry, bool) {
	r.mu.Lock()
	if len(r.stack) < 2 {
		cur := r.stack[len(r.stack)-1]
		r.mu.Unlock()
		return cur, false
	}
	left := []Entry{r.stack[len(r.stack)-1]}
	r.stack = r.stack[:len(r.stack)-1]
	cur := r.stack[len(r.stack)-1]
	fn := r.onLeave
	r.mu.Unlock()

	notify(fn, left)
	return cur, true
}

// Reset clears the stack down to a single entry.
func (r *Router) Reset(route string, params Params) (Entry, error) {
	if route == "" {
		return Entry{}, ErrEmptyRoute
	}
	r.mu.Lock()
	left := r.stack
	r.stack = []Entry{{Route: route, Params: params}}
	cur := r.stack[0]
	fn := r.onLeave
	r.mu.Unlock()

	notify(fn, left)
	return cur, nil
}

func (r *Router) Current() Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stack[len(r.stack)-1]
}

func (r *Router) CanGoBack() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stack) > 1
}

// Stack returns a copy of the entries, bottom first.
func (r *Router) Stack() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.stack))
	copy(out, r.stack)
	return out
}

func notify(fn LeaveFunc, left []Entry) {
	if fn == nil {
		return
	}
	for i := len(left) - 1; i >= 0; i-- {
		fn(left[i])
	}
}
