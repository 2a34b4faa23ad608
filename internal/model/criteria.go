package model

// SearchCriteria maps a vehicle field name to a wanted value: an exact-match
// scalar, a two-element inclusive range for numeric fields, or a substring
// for string fields. The synthetic keys "max_price" and "min_year" are
// always recognized. Unknown keys are ignored; all criteria are conjunctive.
type SearchCriteria map[string]any
