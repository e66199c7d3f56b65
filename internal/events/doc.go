// Package events carries domain notifications between services without
// direct dependencies. The profile service emits score.changed events and
// handlers such as the score history recorder react to them.
package events
