// Package lookup turns operator input into a single TMDb record.
//
// It validates the requested id or name, runs the TMDb search, delegates
// disambiguation to a Chooser when more than one title matches, and fetches
// the full details for the chosen entry. Failures caused by the operator are
// returned as services.InputError so the CLI can print them verbatim.
package lookup
