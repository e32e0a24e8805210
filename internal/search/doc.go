// Package search provides the HTTP client for the policy search API.
//
// # Request Flow
//
// A search is split into two steps so the caller can record the sequence
// number before any network I/O happens:
//
//	req := client.Prepare(params) // seq and request id assigned here
//	res := client.Do(ctx, req)    // GET <base>/apolices?<params>
//
// Search does both in one call.
//
// # Outcomes
//
// Every failure is an *Error carrying a Kind:
//
//   - KindNetwork: no response (refused, timeout, DNS, truncated body)
//   - KindServer: non-2xx status, kept in Error.Status
//   - KindParse: body is not a JSON array of objects or exceeds MaxBodyBytes
//
// An empty array is a success with zero records. The response shape is
// checked with gojsonschema before the order-preserving decode in the policy
// package runs.
//
// # Headers
//
// Requests send Accept: application/json, User-Agent: apolice/<version>,
// X-Request-Seq and X-Request-ID so backend logs can be correlated with ours.
//
// # Metrics
//
// Each outcome increments apolice_search_requests_total{outcome} and observes
// apolice_search_request_duration_seconds.
package search
