// Package policy models insurance-policy records returned by the search API
// and projects them into display fields.
//
// Records keep the key order of the JSON they were decoded from. Formatting
// helpers never fail: absent values render as N/A, unparseable dates are shown
// verbatim and any status other than "Vencida" is treated as active.
package policy
