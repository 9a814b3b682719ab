// Package reportlist derives the displayed report list from fetched data and operator
// intents, and decides which job feedback to show.
//
// # Model
//
// State is a value. Every operation is a function taking a State (and an intent) and
// returning a new State, plus a list of Commands for the caller to execute against a
// Store. Nothing in this package performs I/O except Dispatch and the Refresher.
//
// # Sort and search
//
// Search and sort compose: the displayed list is always
//
//	sort(filter(base, search), sortKey)
//
// recomputed after every refresh, sort and search. An empty search term is a reset: it
// clears both the search and the sort so the displayed list equals the base list in
// service order.
//
// # Feedback
//
// Success feedback ("Job successfully aborted", "Job created successfully: <id>") is
// shown while a stop or create success flag is set on the store. A create success is
// only announced when it follows a re-run issued from this list. Failures go to a
// separate alert channel.
package reportlist
