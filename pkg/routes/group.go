package routes

import "net/http"

// Guard wraps a route handler, typically to enforce authentication.
type Guard func(http.HandlerFunc) http.HandlerFunc

// Group organizes routes under a common prefix. Guards apply to the group's
// routes and are inherited by its children, outermost first.
type Group struct {
	Prefix   string
	Guards   []Guard
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", nil, group)
	}
}

func registerGroup(mux *http.ServeMux, parentPrefix string, parentGuards []Guard, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	guards := append(append([]Guard{}, parentGuards...), group.Guards...)

	for _, route := range group.Routes {
		pattern := route.Method + " " + fullPrefix + route.Pattern
		mux.HandleFunc(pattern, wrap(route.Handler, guards))
	}
	for _, child := range group.Children {
		registerGroup(mux, fullPrefix, guards, child)
	}
}

func wrap(handler http.HandlerFunc, guards []Guard) http.HandlerFunc {
	for i := len(guards) - 1; i >= 0; i-- {
		handler = guards[i](handler)
	}
	return handler
}
