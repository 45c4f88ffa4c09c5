// Package rules implements the profile check battery.
//
// Each check is a Detector that inspects one aspect of a profile record and
// either stays silent or raises a red flag with a fixed severity and score
// impact. The Engine runs the full battery in a fixed order so reports are
// deterministic and repeatable.
//
// Design decision: checks are heuristics over pre-collected records, not
// platform lookups. All keyword vocabularies are static package data,
// extensible through Options but never fetched at runtime. Matching is
// lowercase substring containment; that looseness (short indicators hit
// inside longer words) is accepted as part of the heuristic contract.
package rules
