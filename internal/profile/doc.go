// Package profile provides the stateful controller that owns a single credit
// profile, keeps its derived state (aggregates, validation findings, score and
// factor analysis) consistent after every command, and records simulation
// history. One Controller is created per user session.
package profile
