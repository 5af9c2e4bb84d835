// Package inventory is the REST client for the inventory service.
//
// It fetches paginated product and product folder collections, creates
// folders on demand, and pushes product payloads in batches. Every outbound
// request goes through a shared gate.Gate so fetch, push and folder creation
// together never exceed the configured number of in-flight requests.
package inventory
