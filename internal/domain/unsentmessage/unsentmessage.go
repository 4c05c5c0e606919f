// Package unsentmessage holds the row a scheduler-bound MQ message lands in
// when its publish to the broker fails (SPEC_FULL.md §3 supplement).
// Reporter-bound publishes and broker-side dead-lettering add no rows.
package unsentmessage

// UnsentMessage records a message the runtime could not deliver, for
// operator visibility only — the gateway never auto-redelivers from here
// (scheduler/broker internals are out of scope, §1 Non-goals), so
// RetryCount is never incremented.
type UnsentMessage struct {
	ID         string `bson:"_id" json:"id"`
	Queue      string `bson:"queue" json:"queue"`
	Payload    string `bson:"payload" json:"payload"`
	FailedAt   string `bson:"failed_at" json:"failed_at"`
	RetryCount int    `bson:"retry_count" json:"retry_count"`
}
