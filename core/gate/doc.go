// Package gate provides the counting gate that caps how many outbound
// requests may be in flight at once.
//
// A single Gate is created per process and handed to every component that
// talks to the inventory API, so page fetches, batch pushes and category
// creation all share the same budget.
//
// # Usage
//
//	g := gate.New(5)
//	err := g.Do(ctx, func() error {
//	    return doRequest(ctx)
//	})
package gate
