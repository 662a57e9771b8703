// Package nav decouples the session layer from the UI's routing. The core
// only needs "go to this route"; what a route looks like is the UI's
// business.
package nav

// Route identifies a navigation target.
type Route string

const (
	RouteLogin Route = "login"
	RouteHome  Route = "home"
)

// Navigator replaces the current screen with the given route.
type Navigator interface {
	Replace(route Route)
}

// Func adapts a function to the Navigator interface.
type Func func(route Route)

func (f Func) Replace(route Route) { f(route) }
