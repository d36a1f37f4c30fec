// Package classify separates substantive chat messages from automated system
// chatter using an ordered, operator-extensible table of text pattern rules.
//
// Classification is a pure function of the record text: no timestamp, no
// position, no semantic understanding. The rule table is an open policy,
// not a closed enum; operators append rules through configuration without
// touching the matching algorithm. Verdicts are best-effort noise reduction,
// and false positives in either direction are expected.
package classify
