// Package stub is a development backend for the policy search API. It serves
// GET /api/apolices from YAML fixtures with the same filters the real backend
// applies, and can add random latency or fail every request so the client's
// ordering and error paths can be exercised by hand.
package stub
