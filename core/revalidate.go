package core

// Revalidator marks previously rendered frontend routes as stale after a
// mutation. The frontend owns rendering and caching; the backend only names
// the routes whose output it just invalidated.
type Revalidator interface {
	Revalidate(paths ...string)
}

// LogRevalidator is the default Revalidator; it records the stale routes and
// leaves refetching to the frontend's own cache policy.
type LogRevalidator struct {
	Logger Logger
}

func (r LogRevalidator) Revalidate(paths ...string) {
	for _, p := range paths {
		r.Logger.Debug("revalidate: " + p)
	}
}

// NopRevalidator ignores revalidation signals. Used in tests.
type NopRevalidator struct{}

func (NopRevalidator) Revalidate(...string) {}
