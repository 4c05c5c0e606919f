// Package crash holds the crash records ingested from the external
// crash-analyzer service over the message queue.
package crash

// Type discriminates a crash report from a reproduction failure report.
type Type string

const (
	TypeCrash   Type = "crash"
	TypeOom     Type = "oom"
	TypeTimeout Type = "timeout"
	TypeLeak    Type = "leak"
)

// Crash is a unique crash found by a revision; duplicate occurrences of the
// same crash only bump DuplicateCount rather than creating new rows. The
// RevisionID field is the database's own name for what the MQ wire payload
// calls fuzzer_rev (see internal/mq for the wire-level struct).
type Crash struct {
	ID             string `bson:"_id" json:"id"`
	Created        string `bson:"created" json:"created"`
	FuzzerID       string `bson:"fuzzer_id" json:"fuzzer_id"`
	RevisionID     string `bson:"revision_id" json:"revision_id"`
	Preview        string `bson:"preview" json:"preview"`
	InputID        string `bson:"input_id,omitempty" json:"input_id,omitempty"`
	InputHash      string `bson:"input_hash" json:"input_hash"`
	Output         string `bson:"output" json:"output"`
	Brief          string `bson:"brief" json:"brief"`
	Reproduced     bool   `bson:"reproduced" json:"reproduced"`
	Archived       bool   `bson:"archived" json:"archived"`
	Type           Type   `bson:"type" json:"type"`
	DuplicateCount int    `bson:"duplicate_count" json:"duplicate_count"`
}

// NotifyOnDuplicate reports whether a duplicate ingest that brings the crash
// to newCount should fan out a downstream notification: the first repeat and
// every tenth thereafter, never every occurrence.
func NotifyOnDuplicate(newCount int) bool {
	return newCount == 1 || newCount%10 == 0
}
