// Package entityval holds the pieces shared by the resource and person
// validation engines: the structural Schema wrapper, rule violations with
// their severities, and the aggregated ValidationResult handed back to
// handlers.
//
// Nothing in this package (or in resourceval, personval and kindresolve)
// performs I/O or keeps state between calls. Every exported function is a
// deterministic function of its arguments and safe for concurrent use.
package entityval
